package daterange

import (
	"testing"
	"time"
)

func TestResolve_WeekStartsMonday(t *testing.T) {
	// 2024-03-13 is a Wednesday.
	now := time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC)
	bounds := Resolve(KindWeek, "", "", now)

	if bounds.Start == nil || bounds.End == nil {
		t.Fatal("expected both bounds for a week range")
	}
	wantStart := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	if !bounds.Start.Equal(wantStart) {
		t.Fatalf("expected Monday %v, got %v", wantStart, bounds.Start)
	}
}

func TestResolve_WeekOnSundayReachesBackSixDays(t *testing.T) {
	// 2024-03-17 is a Sunday.
	now := time.Date(2024, 3, 17, 9, 0, 0, 0, time.UTC)
	bounds := Resolve(KindWeek, "", "", now)

	wantStart := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	if bounds.Start == nil || !bounds.Start.Equal(wantStart) {
		t.Fatalf("expected Monday six days prior %v, got %v", wantStart, bounds.Start)
	}
}

func TestResolve_TodayAndYesterday(t *testing.T) {
	now := time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC)

	today := Resolve(KindToday, "", "", now)
	if today.Start == nil || today.Start.Hour() != 0 || today.Start.Day() != 13 {
		t.Fatalf("unexpected today start %v", today.Start)
	}
	if today.End == nil || today.End.Hour() != 23 || today.End.Day() != 13 {
		t.Fatalf("unexpected today end %v", today.End)
	}

	yesterday := Resolve(KindYesterday, "", "", now)
	if yesterday.Start == nil || yesterday.Start.Day() != 12 {
		t.Fatalf("unexpected yesterday start %v", yesterday.Start)
	}
	if yesterday.End == nil || yesterday.End.Day() != 12 || yesterday.End.Hour() != 23 {
		t.Fatalf("unexpected yesterday end %v", yesterday.End)
	}
}

func TestResolve_MonthAndYear(t *testing.T) {
	now := time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC)

	month := Resolve(KindMonth, "", "", now)
	if month.Start == nil || !month.Start.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected month start %v", month.Start)
	}

	year := Resolve(KindYear, "", "", now)
	if year.Start == nil || !year.Start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected year start %v", year.Start)
	}
}

func TestResolve_CustomFallsBackPerBound(t *testing.T) {
	now := time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC)

	bounds := Resolve(KindCustom, "2024-02-01", "2024-02-29", now)
	if bounds.Start == nil || !bounds.Start.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected custom start %v", bounds.Start)
	}
	if bounds.End == nil || bounds.End.Day() != 29 || bounds.End.Hour() != 23 {
		t.Fatalf("expected inclusive custom end, got %v", bounds.End)
	}

	partial := Resolve(KindCustom, "not-a-date", "2024-02-29", now)
	if partial.Start != nil {
		t.Fatalf("expected unbounded start for malformed input, got %v", partial.Start)
	}
	if partial.End == nil {
		t.Fatal("expected end bound to survive a malformed start")
	}
}

func TestResolve_AllAndUnknownAreUnbounded(t *testing.T) {
	now := time.Date(2024, 3, 13, 15, 30, 0, 0, time.UTC)

	for _, kind := range []string{KindAll, "", "fortnight"} {
		bounds := Resolve(kind, "", "", now)
		if bounds.Start != nil || bounds.End != nil {
			t.Fatalf("expected unbounded range for %q, got %+v", kind, bounds)
		}
	}
}

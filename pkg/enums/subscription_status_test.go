package enums

import "testing"

func TestParseSubscriptionStatus(t *testing.T) {
	for _, value := range []string{"active", "frozen", "suspended", "stopped"} {
		status, err := ParseSubscriptionStatus(value)
		if err != nil {
			t.Fatalf("expected %q to parse, got %v", value, err)
		}
		if status.String() != value {
			t.Fatalf("expected %q got %q", value, status)
		}
	}

	if _, err := ParseSubscriptionStatus("cancelled"); err == nil {
		t.Fatal("expected unknown status to be rejected")
	}
}

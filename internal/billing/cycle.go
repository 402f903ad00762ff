// Package billing holds the pure billing-cycle math shared by the
// subscription lifecycle, the reports, and the dunning sweep.
package billing

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopdesk/shopdesk-backend/pkg/enums"
)

// Fixed period lengths in days. Due-amount math intentionally uses these
// approximations rather than calendar-exact month and year lengths.
const (
	weeklyPeriodDays  = 7
	monthlyPeriodDays = 30
	yearlyPeriodDays  = 365
)

// PeriodDays returns the fixed period length for a cadence, or 0 for
// one-time subscriptions.
func PeriodDays(cadence enums.SubscriptionCadence) int {
	switch cadence {
	case enums.SubscriptionCadenceWeekly:
		return weeklyPeriodDays
	case enums.SubscriptionCadenceMonthly:
		return monthlyPeriodDays
	case enums.SubscriptionCadenceYearly:
		return yearlyPeriodDays
	default:
		return 0
	}
}

// NextDueDate returns when the next payment falls due after a payment made
// at the given time. One-time subscriptions have no next due date. Monthly
// advancement uses calendar months, so a Jan 31 payment comes due again in
// early March when February is shorter.
func NextDueDate(cadence enums.SubscriptionCadence, from time.Time) *time.Time {
	var next time.Time
	switch cadence {
	case enums.SubscriptionCadenceWeekly:
		next = from.AddDate(0, 0, 7)
	case enums.SubscriptionCadenceMonthly:
		next = from.AddDate(0, 1, 0)
	case enums.SubscriptionCadenceYearly:
		next = from.AddDate(1, 0, 0)
	default:
		return nil
	}
	return &next
}

// OverduePeriods counts how many billing periods have elapsed since the
// next payment date. Zero unless nextPaymentDate is strictly before asOf.
// One-time subscriptions never accrue periods. Elapsed time rounds up to
// whole days, then up to whole periods, so one day past due already counts
// as a full period.
func OverduePeriods(cadence enums.SubscriptionCadence, nextPaymentDate *time.Time, asOf time.Time) int {
	if nextPaymentDate == nil || !nextPaymentDate.Before(asOf) {
		return 0
	}
	period := PeriodDays(cadence)
	if period == 0 {
		return 0
	}
	elapsed := asOf.Sub(*nextPaymentDate)
	days := int(math.Ceil(elapsed.Hours() / 24))
	if days < 1 {
		days = 1
	}
	return (days + period - 1) / period
}

// AmountDue computes the outstanding amount for a subscription as of the
// given time. Nothing is due until the next payment date has passed.
func AmountDue(cadence enums.SubscriptionCadence, amount decimal.Decimal, nextPaymentDate *time.Time, asOf time.Time) decimal.Decimal {
	periods := OverduePeriods(cadence, nextPaymentDate, asOf)
	if periods == 0 {
		return decimal.Zero
	}
	return amount.Mul(decimal.NewFromInt(int64(periods)))
}

package enums

import "fmt"

// SubscriptionCadence defines how often a shop subscription bills.
type SubscriptionCadence string

const (
	SubscriptionCadenceOnce    SubscriptionCadence = "once"
	SubscriptionCadenceWeekly  SubscriptionCadence = "weekly"
	SubscriptionCadenceMonthly SubscriptionCadence = "monthly"
	SubscriptionCadenceYearly  SubscriptionCadence = "yearly"
)

var validSubscriptionCadences = []SubscriptionCadence{
	SubscriptionCadenceOnce,
	SubscriptionCadenceWeekly,
	SubscriptionCadenceMonthly,
	SubscriptionCadenceYearly,
}

// String implements fmt.Stringer.
func (c SubscriptionCadence) String() string {
	return string(c)
}

// IsValid reports whether the value is a known SubscriptionCadence.
func (c SubscriptionCadence) IsValid() bool {
	for _, candidate := range validSubscriptionCadences {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseSubscriptionCadence converts raw input into a SubscriptionCadence.
func ParseSubscriptionCadence(value string) (SubscriptionCadence, error) {
	for _, candidate := range validSubscriptionCadences {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid subscription cadence %q", value)
}

package enums

import "fmt"

// NotificationType categorizes shop notifications.
type NotificationType string

const (
	NotificationTypeGeneral    NotificationType = "general"
	NotificationTypeWarning    NotificationType = "warning"
	NotificationTypeFreeze     NotificationType = "freeze"
	NotificationTypeSuspension NotificationType = "suspension"
	NotificationTypePaymentDue NotificationType = "payment_due"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeGeneral,
	NotificationTypeWarning,
	NotificationTypeFreeze,
	NotificationTypeSuspension,
	NotificationTypePaymentDue,
}

// String implements fmt.Stringer.
func (n NotificationType) String() string {
	return string(n)
}

// IsValid reports whether the value is a known NotificationType.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw input into a NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}

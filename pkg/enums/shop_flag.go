package enums

import "fmt"

// ShopFlag is a single access restriction applied to a shop.
type ShopFlag string

const (
	ShopFlagFrozen    ShopFlag = "frozen"
	ShopFlagStopped   ShopFlag = "stopped"
	ShopFlagSuspended ShopFlag = "suspended"
	ShopFlagWarning   ShopFlag = "warning"
)

var validShopFlags = []ShopFlag{
	ShopFlagFrozen,
	ShopFlagStopped,
	ShopFlagSuspended,
	ShopFlagWarning,
}

// String implements fmt.Stringer.
func (f ShopFlag) String() string {
	return string(f)
}

// IsValid reports whether the value is a known ShopFlag.
func (f ShopFlag) IsValid() bool {
	for _, candidate := range validShopFlags {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseShopFlag converts raw input into a ShopFlag.
func ParseShopFlag(value string) (ShopFlag, error) {
	for _, candidate := range validShopFlags {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shop flag %q", value)
}

package types

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/shopdesk/shopdesk-backend/pkg/enums"
)

// shopStatusActive is what the shops.status column holds when no flag is set.
const shopStatusActive = "active"

// ShopFlags is the set of access restrictions on a shop, persisted as the
// legacy comma-joined status string ("frozen,warning", or "active" when
// nothing is set). Flag order in the stored form is fixed.
type ShopFlags struct {
	Frozen    bool `json:"frozen"`
	Stopped   bool `json:"stopped"`
	Suspended bool `json:"suspended"`
	Warning   bool `json:"warning"`
}

// Restricted reports whether any flag is set.
func (f ShopFlags) Restricted() bool {
	return f.Frozen || f.Stopped || f.Suspended || f.Warning
}

// Set turns the given flag on or off.
func (f *ShopFlags) Set(flag enums.ShopFlag, on bool) {
	switch flag {
	case enums.ShopFlagFrozen:
		f.Frozen = on
	case enums.ShopFlagStopped:
		f.Stopped = on
	case enums.ShopFlagSuspended:
		f.Suspended = on
	case enums.ShopFlagWarning:
		f.Warning = on
	}
}

// Has reports whether the given flag is set.
func (f ShopFlags) Has(flag enums.ShopFlag) bool {
	switch flag {
	case enums.ShopFlagFrozen:
		return f.Frozen
	case enums.ShopFlagStopped:
		return f.Stopped
	case enums.ShopFlagSuspended:
		return f.Suspended
	case enums.ShopFlagWarning:
		return f.Warning
	default:
		return false
	}
}

// String implements fmt.Stringer using the stored representation.
func (f ShopFlags) String() string {
	var parts []string
	if f.Frozen {
		parts = append(parts, string(enums.ShopFlagFrozen))
	}
	if f.Stopped {
		parts = append(parts, string(enums.ShopFlagStopped))
	}
	if f.Suspended {
		parts = append(parts, string(enums.ShopFlagSuspended))
	}
	if f.Warning {
		parts = append(parts, string(enums.ShopFlagWarning))
	}
	if len(parts) == 0 {
		return shopStatusActive
	}
	return strings.Join(parts, ",")
}

// ParseShopFlags decodes the stored status string. Unknown tokens and the
// bare "active" marker resolve to no flags.
func ParseShopFlags(value string) ShopFlags {
	var flags ShopFlags
	for _, token := range strings.Split(value, ",") {
		token = strings.TrimSpace(token)
		if token == "" || token == shopStatusActive {
			continue
		}
		if flag, err := enums.ParseShopFlag(token); err == nil {
			flags.Set(flag, true)
		}
	}
	return flags
}

// Value implements driver.Valuer.
func (f ShopFlags) Value() (driver.Value, error) {
	return f.String(), nil
}

// Scan implements sql.Scanner.
func (f *ShopFlags) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*f = ShopFlags{}
		return nil
	case string:
		*f = ParseShopFlags(v)
		return nil
	case []byte:
		*f = ParseShopFlags(string(v))
		return nil
	default:
		return fmt.Errorf("shop flags: cannot scan %T", src)
	}
}

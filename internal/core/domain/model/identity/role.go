package identity

import (
	"fmt"
	"strings"

	"parceltrack/internal/pkg/errs"
)

// Role is the locally stored authority of a principal.
// New users start as RoleUser; only an admin may change a role.
type Role int

const (
	// RoleUnknown is the zero value and never valid.
	RoleUnknown Role = iota
	RoleUser
	RoleAgent
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "unknown",
		RoleUser:    "user",
		RoleAgent:   "agent",
		RoleAdmin:   "admin",
	}
}

// ParseRole accepts the lower-case names "user", "agent" and "admin".
func ParseRole(s string) (Role, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == normalized {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) Validate() error {
	if r < RoleUser || r > RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

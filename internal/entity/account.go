package entity

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleCreator Role = "creator"
	RoleMaker   Role = "maker"
	RoleShopper Role = "shopper"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCreator, RoleMaker, RoleShopper:
		return true
	default:
		return false
	}
}

// ParseRole accepts the role name in any letter case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

type Account struct {
	Role    Role     `json:"role"`
	Address Identity `json:"address"`
}

package ledger

import (
	"fmt"
	"strings"
)

// OverwritePolicy decides what creating a record over an existing one does.
type OverwritePolicy uint8

const (
	// OverwriteAllow replaces the existing record silently.
	OverwriteAllow OverwritePolicy = iota
	// OverwriteReject fails with ErrAlreadyExists.
	OverwriteReject
)

func (p OverwritePolicy) String() string {
	switch p {
	case OverwriteAllow:
		return "allow"
	case OverwriteReject:
		return "reject"
	default:
		return fmt.Sprintf("OverwritePolicy(%d)", uint8(p))
	}
}

func ParseOverwritePolicy(s string) (OverwritePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "allow":
		return OverwriteAllow, nil
	case "reject":
		return OverwriteReject, nil
	default:
		return 0, fmt.Errorf("unknown overwrite policy %q", s)
	}
}

type Policy struct {
	Accounts OverwritePolicy
	Jobs     OverwritePolicy
	NFTs     OverwritePolicy

	// SelfSignedAccounts requires the caller to be the address it creates.
	SelfSignedAccounts bool
	// SingleRelease records the first payment release and rejects the rest.
	SingleRelease bool
}

// DefaultPolicy keeps silent overwrites and repeatable releases, and
// requires accounts to be created by their own address.
func DefaultPolicy() Policy {
	return Policy{SelfSignedAccounts: true}
}

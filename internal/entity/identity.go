package entity

import (
	"errors"
	"fmt"
	"strings"
)

// MaxIdentifierLen is the longest job or NFT id accepted, matching the
// symbol limit of the host chain.
const MaxIdentifierLen = 32

var (
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrInvalidIdentity   = errors.New("invalid identity")
)

// Identity is an opaque account reference such as a public address.
type Identity string

func (id Identity) String() string { return string(id) }

// ParseIdentity trims surrounding whitespace and rejects empty values.
func ParseIdentity(s string) (Identity, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidIdentity)
	}
	return Identity(s), nil
}

// ValidateIdentifier checks a job or NFT id: 1..32 characters of [A-Za-z0-9_].
func ValidateIdentifier(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidIdentifier)
	}
	if len(id) > MaxIdentifierLen {
		return fmt.Errorf("%w: %q longer than %d characters", ErrInvalidIdentifier, id, MaxIdentifierLen)
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		default:
			return fmt.Errorf("%w: %q contains %q", ErrInvalidIdentifier, id, c)
		}
	}
	return nil
}

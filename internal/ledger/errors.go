package ledger

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the ledger matches exactly one of
// these with errors.Is.
var (
	ErrNotFound        = errors.New("ledger: not found")
	ErrInvalidState    = errors.New("ledger: invalid state")
	ErrUnauthorized    = errors.New("ledger: unauthorized")
	ErrAlreadyExists   = errors.New("ledger: already exists")
	ErrInvalidArgument = errors.New("ledger: invalid argument")
)

// InvalidState causes.
var (
	ErrJobNotCompleted        = fmt.Errorf("%w: job not completed", ErrInvalidState)
	ErrPaymentAlreadyReleased = fmt.Errorf("%w: payment already released", ErrInvalidState)
	ErrListingNotListed       = fmt.Errorf("%w: nft not available for purchase", ErrInvalidState)
	ErrListingSold            = fmt.Errorf("%w: listing already sold", ErrInvalidState)
)

func invalidArgument(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Kind names the error kind of err for metrics and logs. It returns "ok" for
// nil and "internal" for errors that are not ledger errors.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	default:
		return "internal"
	}
}

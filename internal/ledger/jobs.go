package ledger

import (
	"context"
	"fmt"

	"marketplace-ledger-service/internal/entity"
	"marketplace-ledger-service/internal/events"
	"marketplace-ledger-service/internal/store"
)

// CreateJob stores a new, not yet completed job. Creator and maker are not
// required to have accounts.
func (l *Ledger) CreateJob(ctx context.Context, tx store.Tx, id string, creator, maker entity.Identity, price entity.Amount) (*entity.Job, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	creator, err := parseIdentity(creator)
	if err != nil {
		return nil, err
	}
	maker, err = parseIdentity(maker)
	if err != nil {
		return nil, err
	}

	key := store.JobKey(id)
	if err := checkOverwrite(ctx, tx, key, l.policy.Jobs); err != nil {
		return nil, err
	}
	job := &entity.Job{
		ID:      id,
		Creator: creator,
		Maker:   maker,
		Price:   price,
	}
	if err := save(ctx, tx, key, job); err != nil {
		return nil, err
	}
	return job, nil
}

// CompleteJob marks the job completed. Completing twice rewrites the same
// record.
func (l *Ledger) CompleteJob(ctx context.Context, tx store.Tx, id string) (*entity.Job, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	key := store.JobKey(id)
	job, err := load[entity.Job](ctx, tx, key)
	if err != nil {
		return nil, err
	}
	job.IsCompleted = true
	if err := save(ctx, tx, key, job); err != nil {
		return nil, err
	}
	return job, nil
}

// ReleasePayment records the intent to pay the maker of a completed job.
// No value moves here. Unless the policy asks for a single release, the
// job is left untouched and the call can be repeated.
func (l *Ledger) ReleasePayment(ctx context.Context, tx store.Tx, id string) (events.Event, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	key := store.JobKey(id)
	job, err := load[entity.Job](ctx, tx, key)
	if err != nil {
		return nil, err
	}
	if !job.IsCompleted {
		return nil, fmt.Errorf("%w: %s", ErrJobNotCompleted, key)
	}
	if l.policy.SingleRelease {
		if job.IsReleased {
			return nil, fmt.Errorf("%w: %s", ErrPaymentAlreadyReleased, key)
		}
		job.IsReleased = true
		if err := save(ctx, tx, key, job); err != nil {
			return nil, err
		}
	}
	return events.PaymentReleased{JobID: id}, nil
}

func (l *Ledger) GetJob(ctx context.Context, tx store.Tx, id string) (*entity.Job, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	return load[entity.Job](ctx, tx, store.JobKey(id))
}

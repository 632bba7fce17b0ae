package password

import (
	"context"
	"errors"

	"golang.org/x/sync/semaphore"

	"github.com/kynelabs/authkeep/identity"
)

// Pool dispatches hashing work through a bounded semaphore so that Argon2id
// never monopolizes the scheduler under concurrent logins. Acquisition
// respects the caller's context; once dispatched, a hash runs to completion
// even if the caller goes away.
type Pool struct {
	hasher *Argon2
	sem    *semaphore.Weighted
}

// NewPool wraps a hasher with a concurrency bound. maxConcurrent must be
// at least 1.
func NewPool(hasher *Argon2, maxConcurrent int64) (*Pool, error) {
	if hasher == nil {
		return nil, errors.New("pool requires a hasher")
	}
	if maxConcurrent < 1 {
		return nil, errors.New("pool concurrency must be >= 1")
	}
	return &Pool{
		hasher: hasher,
		sem:    semaphore.NewWeighted(maxConcurrent),
	}, nil
}

// Hash derives a fresh hash for the password, waiting for pool capacity.
func (p *Pool) Hash(ctx context.Context, password identity.Password) (string, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}

	type result struct {
		hash string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		defer p.sem.Release(1)
		h, err := p.hasher.Hash(password.Expose())
		done <- result{hash: h, err: err}
	}()

	// Waiting on the channel, not the context: dispatched work finishes.
	res := <-done
	return res.hash, res.err
}

// Verify compares the password against a stored hash, waiting for pool
// capacity. A mismatch is (false, nil).
func (p *Pool) Verify(ctx context.Context, password identity.Password, encodedHash string) (bool, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}

	type result struct {
		ok  bool
		err error
	}
	done := make(chan result, 1)
	go func() {
		defer p.sem.Release(1)
		ok, err := p.hasher.Verify(password.Expose(), encodedHash)
		done <- result{ok: ok, err: err}
	}()

	res := <-done
	return res.ok, res.err
}

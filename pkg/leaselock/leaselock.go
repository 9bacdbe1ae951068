// Package leaselock provides short-lived exclusive locks backed by a
// Postgres table. Locks expire after a TTL and are renewed in the
// background while held, so a crashed holder never blocks forever.
package leaselock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var (
	ErrBusy = errors.New("lease lock busy")
	ErrLost = errors.New("lease lock lost")
)

type dbConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Client struct {
	db dbConn
}

func New(pool *pgxpool.Pool) *Client {
	return &Client{db: pool}
}

type Lease struct {
	Key   string
	Token string

	// Context is cancelled when the lease is released or lost.
	Context context.Context

	client *Client
	cancel context.CancelCauseFunc

	stopOnce sync.Once
	stopCh   chan struct{}
}

// WithLease runs fn while holding the lock for key. It returns ErrBusy
// without running fn when another holder has the lock.
func (c *Client) WithLease(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) error) error {
	lease, err := c.Acquire(ctx, key, ttl)
	if err != nil {
		return err
	}
	defer func() {
		_ = lease.Release(context.Background())
	}()
	return fn(lease.Context)
}

// Acquire takes the lock for key or returns ErrBusy. The returned lease is
// renewed every ttl/2 until released.
func (c *Client) Acquire(ctx context.Context, key string, ttl time.Duration) (*Lease, error) {
	if key == "" {
		return nil, errors.New("lease lock key is empty")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	ttlMs := ttl.Milliseconds()

	token, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	var returnedKey string
	err = c.db.QueryRow(ctx, tryAcquireSQL, key, token, ttlMs).Scan(&returnedKey)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBusy
		}
		return nil, err
	}

	leaseCtx, cancel := context.WithCancelCause(ctx)
	l := &Lease{
		Key:     key,
		Token:   token,
		Context: leaseCtx,
		client:  c,
		cancel:  cancel,
		stopCh:  make(chan struct{}),
	}

	go l.renewLoop(max(ttl/2, time.Second), ttlMs)

	return l, nil
}

func (l *Lease) Release(ctx context.Context) error {
	l.stopOnce.Do(func() {
		close(l.stopCh)
		l.cancel(context.Canceled)
	})

	_, err := l.client.db.Exec(ctx, releaseSQL, l.Key, l.Token)
	return err
}

func (l *Lease) renewLoop(every time.Duration, ttlMs int64) {
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case <-l.Context.Done():
			return
		case <-t.C:
			if err := l.renewOnce(ttlMs); err != nil {
				l.cancel(err)
				return
			}
		}
	}
}

func (l *Lease) renewOnce(ttlMs int64) error {
	renewCtx, cancel := context.WithTimeout(l.Context, 15*time.Second)
	defer cancel()

	var returnedKey string
	err := l.client.db.QueryRow(renewCtx, renewSQL, l.Key, l.Token, ttlMs).Scan(&returnedKey)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrLost
	}
	return err
}

const tryAcquireSQL = `
INSERT INTO worker_locks (lock_key, locked_by, expires_at)
VALUES ($1, $2, now() + ($3::bigint * interval '1 millisecond'))
ON CONFLICT (lock_key) DO UPDATE
SET locked_by  = EXCLUDED.locked_by,
    expires_at = EXCLUDED.expires_at
WHERE worker_locks.expires_at < now()
   OR worker_locks.locked_by = EXCLUDED.locked_by
RETURNING lock_key;
`

const renewSQL = `
UPDATE worker_locks
SET expires_at = now() + ($3::bigint * interval '1 millisecond')
WHERE lock_key = $1 AND locked_by = $2
RETURNING lock_key;
`

const releaseSQL = `
DELETE FROM worker_locks
WHERE lock_key = $1 AND locked_by = $2;
`

// Package migrations evolves the relational schema through a linear chain of
// reversible revisions. Each revision names its predecessor, runs inside its
// own transaction, and moves the schema_revision pointer in that same
// transaction, so a failing step leaves the schema at its prior revision.
package migrations

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"ml-metadata-service/internal/core/domain"
)

// advisoryLockKey serializes migration runners across processes. Migrations
// are offline, single-writer operations.
const advisoryLockKey int64 = 743_902_118

// Revision is one reversible schema step.
type Revision struct {
	ID        string
	Parent    string
	Summary   string
	Upgrade   func(ctx context.Context, tx pgx.Tx) error
	Downgrade func(ctx context.Context, tx pgx.Tx) error
}

// registry lists every known revision. Order here is irrelevant; the chain
// is reconstructed and validated from the parent pointers.
func registry() []Revision {
	return []Revision{
		baselineRevision,
		stepConfigExternalArtifactsRevision,
		runUniqueConstraintRevision,
	}
}

// orderChain validates that the revisions form one linear history (exactly
// one root, every parent known, no forks) and returns them root-first.
func orderChain(revs []Revision) ([]Revision, error) {
	byParent := make(map[string]Revision, len(revs))
	ids := make(map[string]bool, len(revs))
	for _, rev := range revs {
		if ids[rev.ID] {
			return nil, fmt.Errorf("%w: duplicate revision %s", domain.ErrRevisionChain, rev.ID)
		}
		ids[rev.ID] = true
		if _, ok := byParent[rev.Parent]; ok {
			return nil, fmt.Errorf("%w: fork at parent %q", domain.ErrRevisionChain, rev.Parent)
		}
		byParent[rev.Parent] = rev
	}

	root, ok := byParent[""]
	if !ok {
		return nil, fmt.Errorf("%w: no root revision", domain.ErrRevisionChain)
	}
	for _, rev := range revs {
		if rev.Parent != "" && !ids[rev.Parent] {
			return nil, fmt.Errorf("%w: revision %s names unknown parent %s", domain.ErrRevisionChain, rev.ID, rev.Parent)
		}
	}

	chain := make([]Revision, 0, len(revs))
	for rev, ok := root, true; ok; rev, ok = byParent[rev.ID] {
		chain = append(chain, rev)
	}
	if len(chain) != len(revs) {
		return nil, fmt.Errorf("%w: %d revisions unreachable from root", domain.ErrRevisionChain, len(revs)-len(chain))
	}
	return chain, nil
}

// Status describes one revision relative to the applied pointer.
type Status struct {
	ID      string
	Summary string
	Applied bool
	Current bool
}

// Runner applies and rolls back revisions against one database.
type Runner struct {
	pool  *pgxpool.Pool
	chain []Revision
}

func NewRunner(pool *pgxpool.Pool) (*Runner, error) {
	chain, err := orderChain(registry())
	if err != nil {
		return nil, err
	}
	return &Runner{pool: pool, chain: chain}, nil
}

// Up applies every pending revision in chain order.
func (r *Runner) Up(ctx context.Context) error {
	conn, unlock, err := r.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	current, err := currentRevision(ctx, conn)
	if err != nil {
		return err
	}

	pending := r.chain
	if current != "" {
		idx := r.indexOf(current)
		if idx < 0 {
			return fmt.Errorf("%w: database at unknown revision %s", domain.ErrRevisionChain, current)
		}
		pending = r.chain[idx+1:]
	}
	if len(pending) == 0 {
		log.Info("schema is up to date")
		return nil
	}

	for _, rev := range pending {
		if err := r.apply(ctx, conn, rev, true); err != nil {
			return fmt.Errorf("revision %s: %w", rev.ID, err)
		}
		log.WithField("revision", rev.ID).Info("applied")
	}
	return nil
}

// Down rolls back the n most recent applied revisions.
func (r *Runner) Down(ctx context.Context, n int) error {
	conn, unlock, err := r.lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	current, err := currentRevision(ctx, conn)
	if err != nil {
		return err
	}
	if current == "" {
		log.Info("nothing to roll back")
		return nil
	}
	idx := r.indexOf(current)
	if idx < 0 {
		return fmt.Errorf("%w: database at unknown revision %s", domain.ErrRevisionChain, current)
	}

	for i := 0; i < n && idx-i >= 0; i++ {
		rev := r.chain[idx-i]
		if err := r.apply(ctx, conn, rev, false); err != nil {
			return fmt.Errorf("revision %s: %w", rev.ID, err)
		}
		log.WithField("revision", rev.ID).Info("rolled back")
	}
	return nil
}

// Status reports every revision and whether it is applied.
func (r *Runner) Status(ctx context.Context) ([]Status, error) {
	current, err := currentRevision(ctx, r.pool)
	if err != nil {
		return nil, err
	}
	idx := -1
	if current != "" {
		idx = r.indexOf(current)
		if idx < 0 {
			return nil, fmt.Errorf("%w: database at unknown revision %s", domain.ErrRevisionChain, current)
		}
	}

	statuses := make([]Status, len(r.chain))
	for i, rev := range r.chain {
		statuses[i] = Status{
			ID:      rev.ID,
			Summary: rev.Summary,
			Applied: i <= idx,
			Current: i == idx,
		}
	}
	return statuses, nil
}

// apply runs one revision in one transaction and moves the pointer in that
// same transaction.
func (r *Runner) apply(ctx context.Context, conn *pgxpool.Conn, rev Revision, up bool) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if up {
		if err := rev.Upgrade(ctx, tx); err != nil {
			return err
		}
		if err := setRevision(ctx, tx, rev.ID); err != nil {
			return err
		}
	} else {
		if err := rev.Downgrade(ctx, tx); err != nil {
			return err
		}
		// The root's downgrade drops the pointer table with the rest of
		// the schema.
		if rev.Parent != "" {
			if err := setRevision(ctx, tx, rev.Parent); err != nil {
				return err
			}
		}
	}
	return tx.Commit(ctx)
}

func (r *Runner) indexOf(id string) int {
	for i, rev := range r.chain {
		if rev.ID == id {
			return i
		}
	}
	return -1
}

func (r *Runner) lock(ctx context.Context) (*pgxpool.Conn, func(), error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("acquire connection: %w", err)
	}
	if _, err := conn.Exec(ctx, `SELECT pg_advisory_lock($1)`, advisoryLockKey); err != nil {
		conn.Release()
		return nil, nil, fmt.Errorf("acquire migration lock: %w", err)
	}
	unlock := func() {
		if _, err := conn.Exec(context.Background(), `SELECT pg_advisory_unlock($1)`, advisoryLockKey); err != nil {
			log.WithError(err).Warn("release migration lock failed")
		}
		conn.Release()
	}
	return conn, unlock, nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// currentRevision reads the pointer. A missing schema_revision table means a
// virgin database.
func currentRevision(ctx context.Context, q querier) (string, error) {
	var revision string
	err := q.QueryRow(ctx, `SELECT revision FROM schema_revision`).Scan(&revision)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
			return "", nil
		}
		return "", fmt.Errorf("read schema revision: %w", err)
	}
	return revision, nil
}

func setRevision(ctx context.Context, tx pgx.Tx, id string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM schema_revision`); err != nil {
		return fmt.Errorf("clear schema revision: %w", err)
	}
	if _, err := tx.Exec(ctx, `INSERT INTO schema_revision (revision) VALUES ($1)`, id); err != nil {
		return fmt.Errorf("write schema revision: %w", err)
	}
	return nil
}

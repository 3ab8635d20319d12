// internal/journal/journal.go
package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry is one recorded analysis.
type Entry struct {
	ID          uuid.UUID
	Subject     string // authenticated caller, empty when auth is disabled
	Hand        string
	Trick       string
	Leading     bool
	LegalCount  int
	Recommended string // notation of the recommended play; empty without logits
	Declare     *bool
	CreatedAt   time.Time
}

// Recorder persists analyses.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

const schema = `CREATE TABLE IF NOT EXISTS analyses (
	id          UUID PRIMARY KEY,
	subject     TEXT NOT NULL DEFAULT '',
	hand        TEXT NOT NULL,
	trick       TEXT NOT NULL DEFAULT '',
	leading     BOOLEAN NOT NULL,
	legal_count INTEGER NOT NULL,
	recommended TEXT NOT NULL DEFAULT '',
	declare     BOOLEAN,
	created_at  TIMESTAMPTZ NOT NULL
)`

const insertEntry = `INSERT INTO analyses
	(id, subject, hand, trick, leading, legal_count, recommended, declare, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// execer is the subset of pgxpool.Pool used by Postgres.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres records entries in the analyses table.
type Postgres struct {
	db execer
}

// NewPostgres wraps an existing pool or connection.
func NewPostgres(db execer) *Postgres {
	return &Postgres{db: db}
}

// Connect opens a pool for dsn and makes sure the schema exists.
func Connect(ctx context.Context, dsn string) (*Postgres, *pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("opening pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("pinging database: %w", err)
	}
	p := NewPostgres(pool)
	if err := p.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return p, pool, nil
}

// Migrate creates the analyses table if it is missing.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("creating analyses table: %w", err)
	}
	return nil
}

// Record inserts e, filling in ID and CreatedAt when they are zero.
func (p *Postgres) Record(ctx context.Context, e Entry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	tag, err := p.db.Exec(ctx, insertEntry,
		e.ID, e.Subject, e.Hand, e.Trick, e.Leading, e.LegalCount, e.Recommended, e.Declare, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("recording analysis %s: %w", e.ID, err)
	}
	if tag.RowsAffected() != 1 {
		return fmt.Errorf("recording analysis %s: %d rows affected", e.ID, tag.RowsAffected())
	}
	return nil
}

// Nop discards entries.
type Nop struct{}

func (Nop) Record(context.Context, Entry) error { return nil }

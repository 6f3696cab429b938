package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	audit "soulbound/pkg/platform/audit"
	txcontext "soulbound/pkg/platform/tx"
)

// Schema creates the outbox table. Store.Migrate runs it; deployments with
// their own migration tooling can apply it directly.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_outbox (
	id             UUID PRIMARY KEY,
	seq            BIGINT NOT NULL,
	category       TEXT NOT NULL,
	event_type     TEXT NOT NULL,
	aggregate_type TEXT NOT NULL,
	aggregate_id   TEXT NOT NULL,
	payload        JSONB NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL,
	published_at   TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS audit_outbox_unpublished ON audit_outbox (created_at) WHERE published_at IS NULL;
`

// Store implements audit.Store using the transactional outbox pattern.
// A relay ships unpublished rows downstream and marks them published.
type Store struct {
	db *sql.DB
	tx *txcontext.Runner
}

func New(db *sql.DB) *Store {
	return &Store{db: db, tx: txcontext.NewRunner(db)}
}

func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create audit outbox: %w", err)
	}
	return nil
}

// RunInTx runs fn in a transaction that Append, ListUnpublished and
// MarkPublished join when called with the context fn receives.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.tx.RunInTx(ctx, fn)
}

// Append writes an audit event to the outbox table. The event ID is the row
// ID, so a retried append of the same event is ignored.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	category := event.Category
	if category == "" {
		category = audit.AuditEvent(event.Action).Category()
	}

	payload, err := event.Payload()
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	aggregateType := "registry"
	aggregateID := "registry"
	switch {
	case event.TokenID != 0:
		aggregateType = "badge"
		aggregateID = fmt.Sprintf("%d", event.TokenID)
	case event.EventID != 0:
		aggregateType = "event"
		aggregateID = fmt.Sprintf("%d", event.EventID)
	}

	query := `
		INSERT INTO audit_outbox (id, seq, category, event_type, aggregate_type, aggregate_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`
	_, err = txcontext.Using(ctx, s.db).ExecContext(ctx, query,
		event.ID,
		int64(event.Seq),
		string(category),
		event.Action,
		aggregateType,
		aggregateID,
		payload,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

// OutboxEntry is an outbox row awaiting publication.
type OutboxEntry struct {
	ID            uuid.UUID
	Seq           uint64
	EventType     string
	AggregateType string
	AggregateID   string
	Payload       []byte
	CreatedAt     time.Time
}

// ListUnpublished returns up to limit unpublished rows, oldest first. Inside
// a transaction the rows stay locked until it ends and rows locked by another
// transaction are skipped, so concurrent relays never ship the same batch.
func (s *Store) ListUnpublished(ctx context.Context, limit int) ([]OutboxEntry, error) {
	query := `
		SELECT id, seq, event_type, aggregate_type, aggregate_id, payload, created_at
		FROM audit_outbox
		WHERE published_at IS NULL
		ORDER BY seq, created_at
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`
	rows, err := txcontext.Using(ctx, s.db).QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var entries []OutboxEntry
	for rows.Next() {
		var (
			e   OutboxEntry
			seq int64
		)
		if err := rows.Scan(&e.ID, &seq, &e.EventType, &e.AggregateType, &e.AggregateID, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		e.Seq = uint64(seq)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox: %w", err)
	}
	return entries, nil
}

// MarkPublished stamps the given rows as shipped in one statement.
func (s *Store) MarkPublished(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, entryID := range ids {
		keys[i] = entryID.String()
	}
	_, err := txcontext.Using(ctx, s.db).ExecContext(ctx,
		`UPDATE audit_outbox SET published_at = $1 WHERE id = ANY($2::uuid[]) AND published_at IS NULL`,
		time.Now(), pq.Array(keys),
	)
	if err != nil {
		return fmt.Errorf("mark outbox entries published: %w", err)
	}
	return nil
}

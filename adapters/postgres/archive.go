package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/core"
	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/session"
	"github.com/sridharshinicloud/carey-foster-bridge-new/ports"
)

// ArchiveRepository implements ports.ReportArchive on PostgreSQL.
// Snapshots are stored whole as JSONB; the simulator never queries
// inside them, it only lists and replays.
type ArchiveRepository struct {
	db *sqlx.DB
}

// NewArchiveRepository creates a new PostgreSQL report archive.
func NewArchiveRepository(db *sqlx.DB) ports.ReportArchive {
	return &ArchiveRepository{db: db}
}

// Migrate creates the snapshot table when missing.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS report_snapshots (
			id         TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			payload    JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("create report_snapshots: %w", err)
	}
	return nil
}

type snapshotRow struct {
	ID        string    `db:"id"`
	SessionID string    `db:"session_id"`
	Payload   []byte    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
}

// Save archives one snapshot.
func (r *ArchiveRepository) Save(ctx context.Context, snap session.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO report_snapshots (id, session_id, payload, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload
	`, snap.ID.String(), snap.SessionID.String(), payload, snap.CreatedAt.Time())
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// Get loads one archived snapshot.
func (r *ArchiveRepository) Get(ctx context.Context, id core.SnapshotID) (*session.Snapshot, error) {
	var row snapshotRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, session_id, payload, created_at
		FROM report_snapshots
		WHERE id = $1
	`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}
	var snap session.Snapshot
	if err := json.Unmarshal(row.Payload, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// List returns the most recent snapshots, newest first.
func (r *ArchiveRepository) List(ctx context.Context, limit int) ([]session.Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []snapshotRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, session_id, payload, created_at
		FROM report_snapshots
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	snaps := make([]session.Snapshot, 0, len(rows))
	for _, row := range rows {
		var snap session.Snapshot
		if err := json.Unmarshal(row.Payload, &snap); err != nil {
			return nil, fmt.Errorf("unmarshal snapshot %s: %w", row.ID, err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, nil
}

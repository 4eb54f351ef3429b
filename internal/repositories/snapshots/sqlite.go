package snapshots

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"

	// registers the "sqlite" driver
	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/pkg/clock"
)

const createSnapshotsTable = `CREATE TABLE IF NOT EXISTS combat_snapshots (
	session_id TEXT PRIMARY KEY,
	snapshot   TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteConfig contains configuration for the SQLite snapshot repository
type SQLiteConfig struct {
	DB    *sql.DB
	Clock clock.Clock
}

// Validate validates the SQLiteConfig
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.DB == nil {
		vb.RequiredField("DB")
	}
	if cfg.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

type sqliteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// OpenSQLite opens (creating if needed) a SQLite database file
func OpenSQLite(path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.InvalidArgument("sqlite path is required")
	}

	db, err := sql.Open("sqlite", filepath.Clean(path)+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite db")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to ping sqlite db")
	}

	return db, nil
}

// NewSQLite creates a SQLite-backed snapshot repository, creating its table if needed
func NewSQLite(ctx context.Context, cfg *SQLiteConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	if _, err := cfg.DB.ExecContext(ctx, createSnapshotsTable); err != nil {
		return nil, errors.Wrap(err, "failed to create combat_snapshots table")
	}

	return &sqliteRepository{
		db:    cfg.DB,
		clock: cfg.Clock,
	}, nil
}

func (r *sqliteRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	var snapshot string
	err := r.db.QueryRowContext(ctx,
		`SELECT snapshot FROM combat_snapshots WHERE session_id = ?`,
		input.SessionID,
	).Scan(&snapshot)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &LoadOutput{}, nil
		}
		return nil, errors.Wrapf(err, "failed to load snapshot for session %s", input.SessionID)
	}

	return &LoadOutput{Snapshot: snapshot, Found: true}, nil
}

func (r *sqliteRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO combat_snapshots (session_id, snapshot, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(session_id) DO UPDATE SET
		   snapshot = excluded.snapshot,
		   updated_at = excluded.updated_at`,
		input.SessionID,
		input.Snapshot,
		r.clock.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to save snapshot for session %s", input.SessionID)
	}

	return &SaveOutput{}, nil
}

func (r *sqliteRepository) Clear(ctx context.Context, input ClearInput) (*ClearOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM combat_snapshots WHERE session_id = ?`,
		input.SessionID,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to clear snapshot for session %s", input.SessionID)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read affected rows")
	}

	return &ClearOutput{Existed: affected > 0}, nil
}

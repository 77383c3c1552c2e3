// Package snapshot keeps imported type manifests in SQLite so generation can
// be repeated against a fixed type universe without the original files.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matsim-eth/python-matsim/db"
	"github.com/matsim-eth/python-matsim/discovery/manifest"
	"github.com/matsim-eth/python-matsim/errors"
	"github.com/matsim-eth/python-matsim/logger"
)

// Snapshot describes one stored manifest.
type Snapshot struct {
	ID        string    `json:"id"`
	Scope     string    `json:"scope"`
	Types     int       `json:"types"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists manifests.
type Store struct {
	db     *sql.DB
	logger *zap.SugaredLogger
	now    func() time.Time
}

// NewStore creates a store over a migrated database.
func NewStore(db *sql.DB, log *zap.SugaredLogger) *Store {
	if log == nil {
		log = logger.ComponentLogger("snapshot")
	}
	return &Store{db: db, logger: log, now: time.Now}
}

// Import validates m and stores it under a fresh id.
func (s *Store) Import(ctx context.Context, m *manifest.Manifest) (*Snapshot, error) {
	if err := manifest.Validate(m); err != nil {
		return nil, err
	}
	doc, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, "encode manifest")
	}

	snap := &Snapshot{
		ID:        uuid.NewString(),
		Scope:     m.Scope,
		Types:     len(m.Types),
		CreatedAt: s.now().UTC(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, wrapDB(err, "begin snapshot import")
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, scope, type_count, created_at) VALUES (?, ?, ?, ?)`,
		snap.ID, snap.Scope, snap.Types, snap.CreatedAt,
	); err != nil {
		tx.Rollback()
		return nil, errors.Wrap(err, "insert snapshot")
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshot_documents (snapshot_id, document) VALUES (?, ?)`,
		snap.ID, string(doc),
	); err != nil {
		tx.Rollback()
		return nil, errors.Wrap(err, "insert snapshot document")
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit snapshot import")
	}

	s.logger.Infow("snapshot imported",
		logger.FieldSnapshotID, snap.ID,
		"scope", snap.Scope,
		logger.FieldCount, snap.Types,
	)
	return snap, nil
}

// List returns all snapshots, newest first.
func (s *Store) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, scope, type_count, created_at FROM snapshots ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, wrapDB(err, "list snapshots")
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.Scope, &snap.Types, &snap.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan snapshot")
		}
		out = append(out, snap)
	}
	return out, errors.Wrap(rows.Err(), "list snapshots")
}

// Latest returns the most recently imported snapshot.
func (s *Store) Latest(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	err := s.db.QueryRowContext(ctx,
		`SELECT id, scope, type_count, created_at FROM snapshots ORDER BY created_at DESC, id LIMIT 1`,
	).Scan(&snap.ID, &snap.Scope, &snap.Types, &snap.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Mark(errors.New("no snapshots imported"), errors.ErrNotFound)
	}
	if err != nil {
		return nil, wrapDB(err, "load latest snapshot")
	}
	return &snap, nil
}

// Manifest decodes the document stored for id.
func (s *Store) Manifest(ctx context.Context, id string) (*manifest.Manifest, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM snapshot_documents WHERE snapshot_id = ?`, id,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Mark(errors.Newf("snapshot %s not found", id), errors.ErrNotFound)
	}
	if err != nil {
		return nil, wrapDB(err, "load snapshot "+id)
	}

	var m manifest.Manifest
	if err := json.Unmarshal([]byte(doc), &m); err != nil {
		return nil, errors.Wrapf(err, "decode snapshot %s", id)
	}
	return &m, nil
}

// Delete removes a snapshot and its document.
func (s *Store) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapDB(err, "begin snapshot delete")
	}
	// pooled connections may not carry the foreign_keys pragma, so no cascade
	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_documents WHERE snapshot_id = ?`, id); err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "delete snapshot document %s", id)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "delete snapshot %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		tx.Rollback()
		return errors.Mark(errors.Newf("snapshot %s not found", id), errors.ErrNotFound)
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit snapshot delete")
	}
	s.logger.Infow("snapshot deleted", logger.FieldSnapshotID, id)
	return nil
}

// wrapDB annotates err, marking closed-database failures so callers can
// tell them from query errors.
func wrapDB(err error, msg string) error {
	wrapped := errors.Wrap(err, msg)
	if db.IsDatabaseClosed(err) {
		return errors.Mark(wrapped, db.ErrDatabaseClosed)
	}
	return wrapped
}

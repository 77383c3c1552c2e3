package db

import (
	"database/sql"
	"embed"
	"path"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/matsim-eth/python-matsim/errors"
)

//go:embed sqlite/migrations/*.sql
var migrations embed.FS

const migrationDir = "sqlite/migrations"

// migration is one embedded schema step. Its version is the file-name
// prefix before the first underscore.
type migration struct {
	version string
	file    string
}

func loadMigrations() ([]migration, error) {
	entries, err := migrations.ReadDir(migrationDir)
	if err != nil {
		return nil, errors.Wrap(err, "read migrations")
	}
	var out []migration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		version, _, _ := strings.Cut(name, "_")
		out = append(out, migration{version: version, file: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].file < out[j].file })
	return out, nil
}

// AppliedVersions returns the recorded migration versions. A database
// that has never been migrated has none.
func AppliedVersions(db *sql.DB) (map[string]bool, error) {
	applied := make(map[string]bool)

	var present int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'schema_migrations'").Scan(&present)
	if err != nil {
		return nil, errors.Wrap(err, "inspect schema")
	}
	if present == 0 {
		return applied, nil
	}

	rows, err := db.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, errors.Wrap(err, "query schema_migrations")
	}
	defer rows.Close()
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, errors.Wrap(err, "scan schema_migrations")
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// Pending lists the embedded migration files not yet applied to db.
func Pending(db *sql.DB) ([]string, error) {
	all, err := loadMigrations()
	if err != nil {
		return nil, err
	}
	applied, err := AppliedVersions(db)
	if err != nil {
		return nil, err
	}
	var pending []string
	for _, m := range all {
		if !applied[m.version] {
			pending = append(pending, m.file)
		}
	}
	return pending, nil
}

// Migrate applies every pending migration in file-name order, each in its
// own transaction. A nil logger runs silently.
func Migrate(db *sql.DB, logger *zap.SugaredLogger) error {
	all, err := loadMigrations()
	if err != nil {
		return err
	}
	applied, err := AppliedVersions(db)
	if err != nil {
		return err
	}
	if len(applied) == 0 && len(all) > 0 && all[0].version != "000" {
		return errors.Newf("schema_migrations table missing, but first migration is not 000: %s", all[0].file)
	}

	count := 0
	for _, m := range all {
		if applied[m.version] {
			if logger != nil {
				logger.Debugw("Skipping migration (already applied)", "migration", m.file)
			}
			continue
		}
		if logger != nil {
			logger.Infow("Applying migration", "migration", m.file, "version", m.version)
		}
		if err := apply(db, m); err != nil {
			return err
		}
		count++
	}

	if logger != nil {
		logger.Infow("Migrations complete", "total_migrations", len(all), "applied", count)
	}
	return nil
}

// apply runs one migration and records it; 000 creates the table it is
// recorded in.
func apply(db *sql.DB, m migration) error {
	body, err := migrations.ReadFile(path.Join(migrationDir, m.file))
	if err != nil {
		return errors.Wrapf(err, "read %s", m.file)
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrapf(err, "begin tx for %s", m.file)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(string(body)); err != nil {
		return errors.Wrapf(err, "execute %s", m.file)
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
		return errors.Wrapf(err, "record %s", m.file)
	}
	return errors.Wrapf(tx.Commit(), "commit %s", m.file)
}

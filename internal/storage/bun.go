package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/goliatone/go-multisite/internal/runtimeconfig"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// OpenBunDB wraps an already-open *sql.DB with the bun dialect matching the
// configured storage provider.
func OpenBunDB(cfg runtimeconfig.StorageConfig, sqlDB *sql.DB) (*bun.DB, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "sqlite":
		return bun.NewDB(sqlDB, sqlitedialect.New()), nil
	case "postgres":
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("storage: provider %q has no bun dialect", cfg.Provider)
	}
}

// RunMigrations executes every .up.sql file found in the given filesystem in
// lexical order. Statements are split on ";" so a file can hold several DDL
// statements.
func RunMigrations(ctx context.Context, db *bun.DB, migrations fs.FS, dir string) error {
	entries, err := fs.ReadDir(migrations, dir)
	if err != nil {
		return fmt.Errorf("storage: read migrations: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		contents, err := fs.ReadFile(migrations, dir+"/"+name)
		if err != nil {
			return fmt.Errorf("storage: read migration %s: %w", name, err)
		}
		for _, statement := range strings.Split(string(contents), ";") {
			trimmed := strings.TrimSpace(statement)
			if trimmed == "" {
				continue
			}
			if _, err := db.ExecContext(ctx, trimmed); err != nil {
				return fmt.Errorf("storage: apply migration %s: %w", name, err)
			}
		}
	}
	return nil
}

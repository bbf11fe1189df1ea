package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/innerventory/server/internal/storage"
	"github.com/innerventory/server/internal/storage/postgres"
	"github.com/innerventory/server/internal/storage/sqlite"
)

// openRepository picks the backend from the URL scheme: sqlite: or file paths ending
// in .db use SQLite, everything else is handed to Postgres.
func openRepository(ctx context.Context, databaseURL string, migrate bool) (storage.Repository, error) {
	if isSQLite(databaseURL) {
		return sqlite.NewStore(ctx, databaseURL)
	}
	return postgres.NewStore(ctx, databaseURL, migrate)
}

func isSQLite(databaseURL string) bool {
	lower := strings.ToLower(strings.TrimSpace(databaseURL))
	return strings.HasPrefix(lower, "sqlite:") || strings.HasPrefix(lower, "file:") ||
		lower == ":memory:" || strings.HasSuffix(lower, ".db")
}

func requirePostgres(databaseURL string) error {
	if isSQLite(databaseURL) {
		return fmt.Errorf("migrations only apply to Postgres; SQLite creates its schema on open")
	}
	return nil
}

package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pkordes/wedding-timeline/migrations"
	"github.com/pkordes/wedding-timeline/testutil"
)

// TestMain applies all pending migrations once for the package, so individual
// tests never need to think about schema state. Without TEST_DATABASE_URL the
// tests run and skip themselves.
func TestMain(m *testing.M) {
	dsn := testutil.DSN()
	if dsn == "" {
		os.Exit(m.Run())
	}

	db := testutil.MustOpenSQLDB(dsn)
	if _, err := migrations.Up(context.Background(), db); err != nil {
		db.Close()
		log.Fatalf("TestMain: run migrations: %v", err)
	}
	db.Close()

	os.Exit(m.Run())
}

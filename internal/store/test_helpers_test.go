package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"rofl-backend/internal/config"

	"github.com/jackc/pgx/v5"
)

// openStore migrates a fresh schema on TEST_POSTGRES_DSN and drops it on
// cleanup.
func openStore(t *testing.T) (*Store, context.Context, func()) {
	t.Helper()
	cfg, err := config.LoadTest()
	if err != nil {
		t.Skipf("skip test db: %v", err)
	}
	ctx := context.Background()
	schema := pgx.Identifier{fmt.Sprintf("store_test_%d", time.Now().UnixNano())}

	if err := adminExec(ctx, cfg.TestPostgresDSN, "CREATE SCHEMA "+schema.Sanitize()); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	st, err := New(ctx, withSearchPath(cfg.TestPostgresDSN, schema[0]))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		t.Fatalf("migrate: %v", err)
	}
	return st, ctx, func() {
		st.Close()
		_ = adminExec(ctx, cfg.TestPostgresDSN, "DROP SCHEMA "+schema.Sanitize()+" CASCADE")
	}
}

func adminExec(ctx context.Context, dsn, sql string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)
	_, err = conn.Exec(ctx, sql)
	return err
}

func withSearchPath(dsn, schema string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "search_path=" + url.QueryEscape(schema)
}

func mustCreateUser(t *testing.T, st *Store, ctx context.Context, email string) *User {
	t.Helper()
	u, err := st.CreateUser(ctx, User{Name: "Test " + email, Email: email, PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

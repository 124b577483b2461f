package inventory

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/config"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/db"
	"github.com/Marlon-urtecho/TecnoAdmin-sub000/pkg/migrate"
)

// openTestDB boots an isolated in-memory database per test. The shared
// cache keeps every pooled connection on the same database.
func openTestDB(t *testing.T) *db.Client {
	t.Helper()

	cfg := config.DBConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}
	client, err := db.New(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})

	if err := migrate.Run(context.Background(), client.DB()); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return client
}

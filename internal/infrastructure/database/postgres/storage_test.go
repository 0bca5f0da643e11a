package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Requires a disposable database, e.g.
// STOREFRONT_TEST_DATABASE_DSN="host=localhost user=storefront password=storefront dbname=storefront_test sslmode=disable"
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("STOREFRONT_TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("STOREFRONT_TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, NewMigration(db, logger.Discard()).RunAutoMigrations())
	require.NoError(t, db.Exec("DELETE FROM storefront_storage").Error)
	return db
}

func TestStorageGetSet(t *testing.T) {
	ctx := context.Background()
	s := NewStorage(openTestDB(t))

	_, err := s.Get(ctx, "cart")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Set(ctx, "cart", `[{"id":1,"qty":1}]`))
	require.NoError(t, s.Set(ctx, "cart", `[{"id":1,"qty":4}]`))

	v, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1,"qty":4}]`, v)
}

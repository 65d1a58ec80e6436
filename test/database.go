package test

import (
	"path/filepath"
	"testing"

	"github.com/envelope-zero/ledger/pkg/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TmpFile returns the path to a unique file to be used in tests
func TmpFile(t *testing.T) string {
	dir := t.TempDir()
	return filepath.Join(dir, uuid.New().String())
}

// Connect opens a fresh database for the test. The connection is closed
// when the test finishes.
func Connect(t *testing.T) *gorm.DB {
	db, err := database.Connect(TmpFile(t))
	require.Nil(t, err, "Database initialization failed")

	t.Cleanup(func() {
		CloseDB(t, db)
	})

	return db
}

// CloseDB closes the database connection. This enables testing the handling
// of database errors. Closing an already closed connection is a no-op.
func CloseDB(t *testing.T, db *gorm.DB) {
	sqlDB, err := db.DB()
	require.Nil(t, err, "Failed to get database resource")
	sqlDB.Close()
}

package test

import (
	"path/filepath"
	"testing"

	"github.com/expense-tracker/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TmpFile returns the path to a unique SQLite file in a temporary
// directory that is removed after the test.
func TmpFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), uuid.New().String()+".db")
}

// Connect connects models.DB to a fresh database. The connection is
// closed when the test ends.
func Connect(t *testing.T) {
	require.Nil(t, models.Connect(TmpFile(t)), "Database connection failed")

	t.Cleanup(func() {
		if sqlDB, err := models.DB.DB(); err == nil {
			sqlDB.Close()
		}
	})
}

package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/adapters/persistence"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/infrastructure/database"
)

// NewTestDB opens a migrated in-memory result store that is closed when
// the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewTestConnection()
	require.NoError(t, err, "open in-memory result store")
	t.Cleanup(func() { _ = database.Close(db) })

	return db
}

// NewTestSweepRunRepository returns a gorm repository over a fresh
// in-memory store, plus the store for direct row checks.
func NewTestSweepRunRepository(t *testing.T) (*persistence.GormSweepRunRepository, *gorm.DB) {
	t.Helper()

	db := NewTestDB(t)
	return persistence.NewGormSweepRunRepository(db), db
}

package models_test

import (
	"bytes"
	"testing"

	"github.com/rpupo63/portfolio-backend/database/dbtest"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestColumnMismatches(t *testing.T) {
	db := dbtest.Open(t)

	reports, err := models.ColumnMismatches(db)
	require.NoError(t, err)
	require.Len(t, reports, len(models.All()))
	for _, r := range reports {
		assert.False(t, r.Missing, r.Table)
		assert.Empty(t, r.Mismatches, r.Table)
	}

	require.NoError(t, db.Exec("ALTER TABLE services ADD COLUMN legacy_icon text").Error)

	var buf bytes.Buffer
	require.NoError(t, models.WriteColumnMismatchReport(&buf, db))
	assert.Contains(t, buf.String(), "--- Table: services ---\nFound 1 columns not accounted for in model:\n  - legacy_icon")
	assert.Contains(t, buf.String(), "Total mismatched columns across all tables: 1")
}

func TestColumnMismatchesBeforeMigration(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	reports, err := models.ColumnMismatches(db)
	require.NoError(t, err)
	for _, r := range reports {
		assert.True(t, r.Missing, r.Table)
	}
}

func TestParseStatus(t *testing.T) {
	s, ok := models.ParseStatus(" Valid ")
	assert.True(t, ok)
	assert.Equal(t, models.StatusValid, s)

	_, ok = models.ParseStatus("draft")
	assert.False(t, ok)
	assert.False(t, models.Status("draft").IsValid())
}

func TestContactFullName(t *testing.T) {
	c := models.Contact{FirstName: "Ada", LastName: "Lovelace"}
	assert.Equal(t, "Ada Lovelace", c.FullName())
}

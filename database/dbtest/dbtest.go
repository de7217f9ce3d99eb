// Package dbtest opens throwaway SQLite databases with the full schema for tests.
package dbtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

// Open returns a migrated in-memory database private to t. A single connection is used, so
// code under test must route every query of a transaction through the transaction handle.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, models.Migrate(db))
	return db
}

// AddLaggingReplica registers a second, empty database as the only read replica of db, so
// any read routed to replicas misses rows written through db.
func AddLaggingReplica(t testing.TB, db *gorm.DB) {
	t.Helper()
	replica, err := Open(t).DB()
	require.NoError(t, err)
	require.NoError(t, db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: []gorm.Dialector{sqlite.New(sqlite.Config{Conn: replica})},
	})))
}

// New returns a Database over a fresh schema.
func New(t testing.TB) (database.Database, *gorm.DB) {
	t.Helper()
	db := Open(t)
	return database.New(db), db
}

// SeedUser inserts an admin user to own created records.
func SeedUser(t testing.TB, db database.Database) *models.User {
	t.Helper()
	user := &models.User{Name: "Admin", Email: uuid.NewString() + "@example.com", PasswordHash: "x"}
	require.NoError(t, db.UserRepo().Add(context.Background(), user))
	return user
}

package testutil

import (
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/tanisha366/backened/internal/config"
	"github.com/tanisha366/backened/internal/database"
	"gorm.io/gorm"
)

// TestDatabase holds test database connection (in-memory SQLite)
type TestDatabase struct {
	DB  *gorm.DB
	DSN string
}

// TestRedis holds test Redis mock (miniredis)
type TestRedis struct {
	Server *miniredis.Miniredis
	URL    string
}

// SetupTestDatabase creates an isolated in-memory SQLite database.
// Each call gets its own named database so suites never share rows.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	db, err := database.OpenSQL(config.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// a single connection keeps the in-memory database alive for the whole test
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.EnsureSchema(db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return &TestDatabase{
		DB:  db,
		DSN: dsn,
	}
}

// Teardown cleans up the test database (closes connection)
func (td *TestDatabase) Teardown(t *testing.T) {
	sqlDB, err := td.DB.DB()
	if err != nil {
		t.Logf("Warning: Failed to get underlying DB: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Logf("Warning: Failed to close database: %v", err)
	}
}

// SetupTestRedis creates an in-memory Redis mock (miniredis)
func SetupTestRedis(t *testing.T) *TestRedis {
	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	return &TestRedis{
		Server: server,
		URL:    fmt.Sprintf("redis://%s", server.Addr()),
	}
}

// Teardown cleans up the test Redis mock
func (tr *TestRedis) Teardown(t *testing.T) {
	tr.Server.Close()
}

// CleanDatabase deletes all messages (for test isolation)
func CleanDatabase(t *testing.T, db *gorm.DB) {
	if err := db.Exec("DELETE FROM messages").Error; err != nil {
		t.Logf("Warning: Failed to clean messages table: %v", err)
	}
}

// CountMessages returns the number of stored messages
func CountMessages(t *testing.T, db *gorm.DB) int64 {
	var count int64
	if err := db.Table("messages").Count(&count).Error; err != nil {
		t.Fatalf("Failed to count messages: %v", err)
	}
	return count
}

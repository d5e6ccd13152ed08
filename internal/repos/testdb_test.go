package repos

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/akarwowski/lingocards-backend/internal/types"
)

// openTestDB gives each test its own in-memory database with the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&types.User{},
		&types.Flashcard{},
		&types.ProgressRecord{},
		&types.UserEvent{},
	); err != nil {
		t.Fatalf("migrating schema: %v", err)
	}
	return db
}

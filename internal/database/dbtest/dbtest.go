// Package dbtest поднимает изолированную базу для тестов других пакетов.
package dbtest

import (
	"fmt"
	"strings"
	"testing"

	"job-tracker/internal/database"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// Admin — админ, которого создаёт Open.
var Admin = database.AdminSeed{
	Email:    "admin@jobs.local",
	Password: "Admin123!",
	Name:     "Administrator",
	City:     "Moscow",
}

// Open поднимает отдельную in-memory SQLite базу на тест
// и прогоняет те же миграции и сиды, что и в проде.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)

	db, err := database.Open(sqlite.Open(dsn))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// одна коннекция: in-memory база живёт, пока она открыта
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Setup(db, Admin); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return db
}

package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/printpro/internal/auth"
	"github.com/printpro/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testAdmin = &auth.Identity{UserID: 1, Username: "admin"}

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func strPtr(v string) *string {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func TestOptionalString(t *testing.T) {
	if got := optionalString("   "); got != nil {
		t.Fatalf("expected nil for blank input, got %q", *got)
	}
	got := optionalString("  555-0100 ")
	if got == nil || *got != "555-0100" {
		t.Fatalf("expected trimmed value, got %v", got)
	}
	if derefString(nil) != "" {
		t.Fatal("expected empty string for nil pointer")
	}
}

func TestCountsOnEmptyDatabase(t *testing.T) {
	gdb := setupServiceTestDB(t)
	ctx := context.Background()

	if n, err := NewCatalogService(gdb).Count(ctx); err != nil || n != 0 {
		t.Fatalf("expected 0 services, got %d (%v)", n, err)
	}
	if n, err := NewGalleryService(gdb).Count(ctx); err != nil || n != 0 {
		t.Fatalf("expected 0 gallery images, got %d (%v)", n, err)
	}
}

package db

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/logger"
)

func TestOpenSQLiteCreatesParentDirAndTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "printpro.db")

	gdb, err := Open(DriverSQLite, path, logger.Default.LogMode(logger.Silent))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	for _, model := range []any{&User{}, &Service{}, &GalleryImage{}, &ContactSubmission{}, &SiteSetting{}} {
		if !gdb.Migrator().HasTable(model) {
			t.Fatalf("expected table for %T to exist", model)
		}
	}
	if !gdb.Migrator().HasColumn(&Service{}, "sort_order") {
		t.Fatal("expected services.sort_order column")
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open("mysql", "whatever", nil); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestEnsureUserCreatesOnce(t *testing.T) {
	dsn := fmt.Sprintf("file:db-user-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := Open(DriverSQLite, dsn, logger.Default.LogMode(logger.Silent))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	created, err := EnsureUser(gdb, " admin ", "s3cret")
	if err != nil {
		t.Fatalf("ensure user: %v", err)
	}
	if !created {
		t.Fatal("expected user to be created")
	}

	created, err = EnsureUser(gdb, "admin", "other")
	if err != nil {
		t.Fatalf("ensure user second call: %v", err)
	}
	if created {
		t.Fatal("expected existing user to be kept")
	}

	var user User
	if err := gdb.Where("username = ?", "admin").First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret")) != nil {
		t.Fatal("expected stored password to match the first call")
	}

	if err := SetPassword(gdb, "admin", "rotated"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	if err := gdb.First(&user, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("rotated")) != nil {
		t.Fatal("expected password to be rotated")
	}

	if err := SetPassword(gdb, "ghost", "x"); err == nil {
		t.Fatal("expected error for unknown user")
	}
}

func TestEnsureUserSkipsBlankCredentials(t *testing.T) {
	created, err := EnsureUser(nil, "", "")
	if err != nil || created {
		t.Fatalf("expected blank credentials to be ignored, got created=%v err=%v", created, err)
	}
}

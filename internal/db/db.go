package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	// DriverSQLite 与 config.DriverSQLite 保持一致。
	DriverSQLite = "sqlite"
	// DriverPostgres 与 config.DriverPostgres 保持一致。
	DriverPostgres = "postgres"
)

// Open 根据驱动名称建立数据库连接并执行自动迁移。
// sqlite 的 dsn 为文件路径，为空时回退到 printpro.db。
func Open(driver, dsn string, logger gormlogger.Interface) (*gorm.DB, error) {
	dialector, err := dialectorFor(driver, dsn)
	if err != nil {
		return nil, err
	}

	cfg := &gorm.Config{}
	if logger != nil {
		cfg.Logger = logger
	}

	gdb, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// Migrate 为全部模型创建或更新表结构。
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&User{},
		&Service{},
		&GalleryImage{},
		&ContactSubmission{},
		&SiteSetting{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverSQLite:
		path := strings.TrimSpace(dsn)
		if path == "" {
			path = "printpro.db"
		}
		if !isMemoryDSN(path) {
			if err := ensureParentDir(path); err != nil {
				return nil, err
			}
		}
		return sqlite.Open(path), nil
	case DriverPostgres:
		if strings.TrimSpace(dsn) == "" {
			return nil, errors.New("postgres dsn is required")
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(strings.TrimPrefix(path, "file:"))
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}

package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/printpro/internal/config"
	"github.com/printpro/internal/db"
	"github.com/printpro/internal/logging"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type globalFlags struct {
	driver   string
	dsn      string
	logLevel string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "printproctl",
		Short:         "Administrative tasks for the PrintPro site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.driver, "driver", "", "database driver (sqlite|postgres), defaults to DATABASE_DRIVER")
	root.PersistentFlags().StringVar(&flags.dsn, "dsn", "", "database DSN, defaults to DATABASE_DSN")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "log level")

	root.AddCommand(
		newUserCmd(flags),
		newMigrateCmd(flags),
		newSeedCmd(flags),
	)
	return root
}

// openDB 按配置与命令行参数打开数据库，命令行参数优先。
func openDB(flags *globalFlags) (*gorm.DB, config.AppConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, err
	}
	if v := strings.TrimSpace(flags.driver); v != "" {
		cfg.DatabaseDriver = strings.ToLower(v)
	}
	if v := strings.TrimSpace(flags.dsn); v != "" {
		cfg.DatabaseDSN = v
	}

	logger := logging.Setup(flags.logLevel, "text")
	gdb, err := db.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, logging.NewGormLogger(logger))
	if err != nil {
		return nil, cfg, fmt.Errorf("open database: %w", err)
	}
	slog.Debug("database opened", "driver", cfg.DatabaseDriver)
	return gdb, cfg, nil
}

func closeDB(gdb *gorm.DB) {
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newMigrateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			gdb, _, err := openDB(flags)
			if err != nil {
				return err
			}
			defer closeDB(gdb)

			fmt.Fprintln(cmd.OutOrStdout(), "database schema is up to date")
			return nil
		},
	}
}

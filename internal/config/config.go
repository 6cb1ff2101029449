package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DriverSQLite 使用本地 sqlite 文件，适合开发与单机部署。
	DriverSQLite = "sqlite"
	// DriverPostgres 使用 PostgreSQL，DSN 为标准连接串。
	DriverPostgres = "postgres"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr     string
	Port           string
	DatabaseDriver string
	DatabaseDSN    string
	SessionSecret  string
	GinMode        string
	UploadDir      string
	UploadURLPath  string
	AdminUsername  string
	AdminPassword  string
	SiteBaseURL    string
	LogLevel       string
	LogFormat      string
}

// Load 从环境变量（以及可选的 CONFIG_FILE）读取应用配置，并为缺失项提供安全的默认值。
func Load() (AppConfig, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", "8080")
	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_dsn", "data/printpro.db")
	v.SetDefault("session_secret", "printpro-dev-secret")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("upload_dir", "data/uploads")
	v.SetDefault("upload_url_path", "/uploads")
	v.SetDefault("site_base_url", "http://localhost:8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	for _, key := range []string{"listen_addr", "admin_username", "admin_password", "config_file"} {
		if err := v.BindEnv(key); err != nil {
			return AppConfig{}, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if path := strings.TrimSpace(v.GetString("config_file")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return AppConfig{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	port := strings.TrimSpace(v.GetString("port"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(v.GetString("listen_addr"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	driver := strings.ToLower(strings.TrimSpace(v.GetString("database_driver")))
	if driver != DriverSQLite && driver != DriverPostgres {
		return AppConfig{}, fmt.Errorf("unsupported database driver %q", driver)
	}

	cfg := AppConfig{
		ListenAddr:     listenAddr,
		Port:           port,
		DatabaseDriver: driver,
		DatabaseDSN:    strings.TrimSpace(v.GetString("database_dsn")),
		SessionSecret:  strings.TrimSpace(v.GetString("session_secret")),
		GinMode:        strings.TrimSpace(v.GetString("gin_mode")),
		UploadDir:      strings.TrimSpace(v.GetString("upload_dir")),
		UploadURLPath:  strings.TrimSpace(v.GetString("upload_url_path")),
		AdminUsername:  strings.TrimSpace(v.GetString("admin_username")),
		AdminPassword:  strings.TrimSpace(v.GetString("admin_password")),
		SiteBaseURL:    strings.TrimRight(strings.TrimSpace(v.GetString("site_base_url")), "/"),
		LogLevel:       strings.TrimSpace(v.GetString("log_level")),
		LogFormat:      strings.TrimSpace(v.GetString("log_format")),
	}

	if cfg.DatabaseDSN == "" {
		return AppConfig{}, errors.New("database dsn is required")
	}

	return cfg, nil
}

// internal/config/config.go
package config

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // postgres | sqlite
	URL    string `mapstructure:"url"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type AuthConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

// ClientConfig はコンセプトAPIへの接続設定 (CLI用)
type ClientConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Table   string        `mapstructure:"table"`
	Timeout time.Duration `mapstructure:"timeout"`
	Token   string        `mapstructure:"token"`
}

type StudyConfig struct {
	SwipeThreshold float64 `mapstructure:"swipe_threshold"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Client   ClientConfig   `mapstructure:"client"`
	Study    StudyConfig    `mapstructure:"study"`
}

// LoadConfig は config.yaml と環境変数 (APP_ 接頭辞) から設定を読み込みます。
// 設定ファイルが無くてもデフォルト値と環境変数で動作します。
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.AddConfigPath(".")

	// 例: APP_DATABASE_URL -> database.url
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			slog.Warn("Config file not found. Using default settings and environment variables.")
		} else {
			slog.Error("Error reading config file", slog.Any("error", err))
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		slog.Error("Error unmarshalling config", slog.Any("error", err))
		return nil, err
	}
	cfg.applyFallbacks()

	slog.Info("Config loaded successfully",
		slog.String("server_port", cfg.Server.Port),
		slog.String("database_driver", cfg.Database.Driver),
		slog.Bool("auth_enabled", cfg.Auth.Enabled),
		slog.String("client_base_url", cfg.Client.BaseURL),
	)
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("database.driver", DefaultDatabaseDriver)
	v.SetDefault("database.url", DefaultDatabaseURL)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Content-Type", "Authorization", "X-Request-ID"})
	v.SetDefault("cors.max_age", 300)
	v.SetDefault("cors.exposed_headers", []string{})
	v.SetDefault("cors.allow_credentials", false)
	v.SetDefault("auth.enabled", DefaultAuthEnabled)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("client.base_url", DefaultClientBaseURL)
	v.SetDefault("client.table", DefaultConceptTable)
	v.SetDefault("client.timeout", DefaultClientTimeout)
	v.SetDefault("client.token", "")
	v.SetDefault("study.swipe_threshold", DefaultSwipeThreshold)
}

// applyFallbacks は空文字やゼロ値で上書きされた設定をデフォルトに戻します
func (c *Config) applyFallbacks() {
	if c.Server.Port == "" {
		slog.Warn("Server port not set, using default", slog.String("port", DefaultServerPort))
		c.Server.Port = DefaultServerPort
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DefaultDatabaseDriver
	}
	if c.Client.Table == "" {
		c.Client.Table = DefaultConceptTable
	}
	if c.Client.Timeout <= 0 {
		c.Client.Timeout = DefaultClientTimeout
	}
	if c.Study.SwipeThreshold <= 0 {
		slog.Warn("Swipe threshold not set or invalid, using default", slog.Float64("threshold", DefaultSwipeThreshold))
		c.Study.SwipeThreshold = DefaultSwipeThreshold
	}
	if c.Auth.Enabled && c.Auth.JWTSecret == "" {
		slog.Warn("Auth is enabled but jwt_secret is empty; every protected request will be rejected")
	}
}

// ParseLogLevel は設定文字列を slog.Level に変換します。不明な値は Info
func ParseLogLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

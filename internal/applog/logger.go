// internal/applog/logger.go
package applog

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"concept_flash/internal/config"

	"github.com/lmittmann/tint"
)

// New は設定に基づいて slog ロガーを作ります。
// appEnv が "dev" のときは tint (カラー表示)、それ以外は JSON で出力します。
func New(w io.Writer, level, appEnv string) *slog.Logger {
	logLevel := new(slog.LevelVar)
	lvl, known := config.ParseLogLevel(level)
	logLevel.Set(lvl)

	var handler slog.Handler
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}

	logger := slog.New(handler).With(slog.String("app", config.AppName))
	if !known && level != "" {
		logger.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", level))
	}
	return logger
}

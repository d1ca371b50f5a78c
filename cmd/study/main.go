// cmd/study/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"

	"concept_flash/internal/applog"
	"concept_flash/internal/client"
	"concept_flash/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using process environment: %v", err)
	}

	baseURL := flag.String("base-url", "", "concept API base URL (overrides client.base_url)")
	configDir := flag.String("config", "./configs", "directory containing config.yaml")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading configuration:", err)
		os.Exit(1)
	}
	if *baseURL != "" {
		cfg.Client.BaseURL = *baseURL
	}

	// CLI の画面を汚さないようログは標準エラーへ
	logger := applog.New(os.Stderr, cfg.Log.Level, os.Getenv("APP_ENV"))
	slog.SetDefault(logger)

	token, err := clientToken(cfg, time.Now())
	if err != nil {
		logger.Error("Failed to sign client token", slog.Any("error", err))
		os.Exit(1)
	}

	api := client.NewClient(cfg.Client, logger, client.WithToken(token))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := newApp(cfg, logger, api, os.Stdout)
	if err := a.run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		logger.Error("Study session ended with error", slog.Any("error", err))
		os.Exit(1)
	}
}

// clientToken は client.token をそのまま使い、無ければ auth.jwt_secret から短命のトークンを発行します
func clientToken(cfg *config.Config, now time.Time) (string, error) {
	if cfg.Client.Token != "" {
		return cfg.Client.Token, nil
	}
	if cfg.Auth.JWTSecret == "" {
		return "", nil
	}
	claims := jwt.RegisteredClaims{
		Subject:   config.AppName + "-cli",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Auth.JWTSecret))
}

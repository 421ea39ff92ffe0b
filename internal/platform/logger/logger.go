// Package logger は slog のデフォルトロガーを設定します。
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"stockboard_backend/internal/shared/envconfig"
)

// Config はログ出力の設定です。File が空ならファイルには書きません。
type Config struct {
	Level      string // debug | info | warn | error
	Format     string // json | text
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// LoadConfig は環境変数からログ設定を読み込みます。
func LoadConfig() (Config, error) {
	cfg := Config{
		Level:  envconfig.String("LOG_LEVEL", "info"),
		Format: envconfig.String("LOG_FORMAT", "json"),
		File:   envconfig.String("LOG_FILE", ""),
	}
	var err error
	if cfg.MaxSizeMB, err = envconfig.Int("LOG_MAX_SIZE_MB", 100); err != nil {
		return Config{}, fmt.Errorf("logger config: %w", err)
	}
	if cfg.MaxBackups, err = envconfig.Int("LOG_MAX_BACKUPS", 5); err != nil {
		return Config{}, fmt.Errorf("logger config: %w", err)
	}
	if cfg.MaxAgeDays, err = envconfig.Int("LOG_MAX_AGE_DAYS", 28); err != nil {
		return Config{}, fmt.Errorf("logger config: %w", err)
	}
	return cfg, nil
}

// New は cfg に従ったロガーを作ります。戻り値の io.Closer はファイル出力を閉じます。
func New(cfg Config, stdout io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	w := stdout
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		w = io.MultiWriter(stdout, file)
		closer = file
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text":
		h = slog.NewTextHandler(w, opts)
	case "json", "":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	return slog.New(h), closer, nil
}

// Setup は New で作ったロガーを slog のデフォルトに設定します。
func Setup(cfg Config) (io.Closer, error) {
	l, closer, err := New(cfg, os.Stdout)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(l)
	return closer, nil
}

// ParseLevel は debug/info/warn/error を slog.Level に変換します。
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

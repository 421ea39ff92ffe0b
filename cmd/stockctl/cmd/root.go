// Package cmd は stockctl のサブコマンドです。
package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"stockboard_backend/internal/app/config"
	"stockboard_backend/internal/app/di"
	platformdb "stockboard_backend/internal/platform/db"
	"stockboard_backend/internal/platform/logger"
	platformredis "stockboard_backend/internal/platform/redis"
)

// NewRootCmd はサブコマンドを登録したルートコマンドを返します。
func NewRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "stockctl",
		Short:         "stockboard operator CLI",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env が無くても環境変数で設定できる
			if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			logCfg, err := logger.LoadConfig()
			if err != nil {
				return err
			}
			l, _, err := logger.New(logger.Config{Level: logCfg.Level, Format: "text"}, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			slog.SetDefault(l)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before running")

	root.AddCommand(
		newMigrateCmd(),
		newSeedCmd(),
		newMockCmd(),
		newTokenCmd(),
	)
	return root
}

// openDB はサーバーと同じ設定でデータベースに接続します。
func openDB() (*gorm.DB, error) {
	cfg, err := platformdb.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return platformdb.Open(cfg)
}

// openContainer はサーバーと同じ構成でユースケースを組み立てます。
// Redis に接続できれば書き込み時にサーバー側のキャッシュも無効化されます。
func openContainer(ctx context.Context) (*di.Container, func(), error) {
	db, err := openDB()
	if err != nil {
		return nil, nil, err
	}
	closers := []func(){func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}}
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	appCfg, err := config.Load()
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	redisCfg, err := platformredis.LoadConfig()
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	rdb, err := platformredis.NewRedisClient(ctx, redisCfg)
	if err != nil {
		slog.Warn("Redis unavailable, cached price series will expire on their own", "error", err)
		rdb = nil
	}
	if rdb != nil {
		closers = append(closers, func() { _ = rdb.Close() })
	}
	return di.NewContainer(db, rdb, appCfg.CacheTTL), closeAll, nil
}

// now はテストで差し替えます。
var now = time.Now

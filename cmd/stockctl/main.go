// Command stockctl は運用向けのCLIです（マイグレーション、銘柄投入、モック生成、トークン発行）。
//
// 使い方:
//
//	go run ./cmd/stockctl migrate
//	go run ./cmd/stockctl seed --file configs/instruments.yaml
//	go run ./cmd/stockctl mock --all --days 365
//	go run ./cmd/stockctl token --user alice --ttl 24h
package main

import (
	"os"

	"stockboard_backend/cmd/stockctl/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

package cmd

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"stockboard_backend/internal/feature/instruments/domain/entity"
)

const (
	maxSymbolLen = 10
	maxNameLen   = 100
)

// seedFile は銘柄投入用YAMLの形式です。
type seedFile struct {
	Instruments []struct {
		Symbol string  `yaml:"symbol"`
		Name   string  `yaml:"name"`
		Price  float64 `yaml:"price"`
	} `yaml:"instruments"`
}

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert or update instruments from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			instruments, err := loadSeedFile(file)
			if err != nil {
				return err
			}
			c, closeFn, err := openContainer(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if err := c.Instruments.Seed(cmd.Context(), instruments); err != nil {
				return fmt.Errorf("seed instruments: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d instruments\n", len(instruments))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "configs/instruments.yaml", "YAML file with an instruments list")
	return cmd
}

// loadSeedFile はYAMLを読み込み、シンボルと名称の長さを検証します。
func loadSeedFile(path string) ([]entity.Instrument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	seen := make(map[string]struct{}, len(sf.Instruments))
	out := make([]entity.Instrument, 0, len(sf.Instruments))
	for i, in := range sf.Instruments {
		symbol := strings.TrimSpace(in.Symbol)
		name := strings.TrimSpace(in.Name)
		switch {
		case symbol == "":
			return nil, fmt.Errorf("instrument #%d: symbol is required", i+1)
		case utf8.RuneCountInString(symbol) > maxSymbolLen:
			return nil, fmt.Errorf("instrument %s: symbol longer than %d characters", symbol, maxSymbolLen)
		case name == "":
			return nil, fmt.Errorf("instrument %s: name is required", symbol)
		case utf8.RuneCountInString(name) > maxNameLen:
			return nil, fmt.Errorf("instrument %s: name longer than %d characters", symbol, maxNameLen)
		case in.Price < 0:
			return nil, fmt.Errorf("instrument %s: price must not be negative", symbol)
		}
		if _, dup := seen[symbol]; dup {
			return nil, fmt.Errorf("instrument %s: duplicate symbol", symbol)
		}
		seen[symbol] = struct{}{}
		out = append(out, entity.Instrument{Symbol: symbol, Name: name, Price: in.Price})
	}
	return out, nil
}

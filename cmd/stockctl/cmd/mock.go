package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newMockCmd() *cobra.Command {
	var (
		instrumentID uint
		all          bool
		days         int
	)

	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Generate mock daily prices ending yesterday",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (instrumentID != 0) {
				return errors.New("specify exactly one of --instrument-id or --all")
			}
			if days < 0 {
				return errors.New("--days must not be negative")
			}

			c, closeFn, err := openContainer(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			ids := []uint{instrumentID}
			if all {
				instruments, err := c.Instruments.ListAll(cmd.Context())
				if err != nil {
					return err
				}
				ids = ids[:0]
				for _, in := range instruments {
					ids = append(ids, in.ID)
				}
			}

			today := now()
			total := 0
			for _, id := range ids {
				n, err := c.Prices.GenerateMockSeries(cmd.Context(), id, days, today)
				total += n
				if err != nil {
					return fmt.Errorf("instrument %d: generated %d before failing: %w", id, n, err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "instrument %d: generated %d\n", id, n)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "total generated %d\n", total)
			return nil
		},
	}
	cmd.Flags().UintVar(&instrumentID, "instrument-id", 0, "instrument to generate prices for")
	cmd.Flags().BoolVar(&all, "all", false, "generate prices for every instrument")
	cmd.Flags().IntVar(&days, "days", 365, "number of calendar days to cover")
	return cmd
}

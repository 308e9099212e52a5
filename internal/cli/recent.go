package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRecentCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently used commands",
		Long: `List commands ordered by most recent usage. Commands never used
follow in alphabetical order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := newService()
			if err != nil {
				return err
			}
			defer svc.Close()

			if limit <= 0 {
				limit = cfg.RecentLimit
			}
			results, err := svc.GetRecentCommands(limit)
			if err != nil {
				return fmt.Errorf("recent: %w", err)
			}
			return printCommands(cmd, results)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum results")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmdpal/cmdpal/internal/store"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the external-lookup cache",
	}
	cmd.AddCommand(newCacheSweepCmd())
	return cmd
}

func newCacheSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Remove expired cache entries",
		Long: `Remove cache rows whose expiry has passed. Expired rows are already
invisible to readers; sweeping reclaims the space.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			s := store.NewSQLiteStore(cfg.DBPath(), cfg.SnapshotPath)
			if err := s.Init(); err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer s.Close()

			removed, err := s.ClearExpiredCache()
			if err != nil {
				return fmt.Errorf("sweep cache: %w", err)
			}
			cmd.Printf("removed %d expired entries\n", removed)
			return nil
		},
	}
}

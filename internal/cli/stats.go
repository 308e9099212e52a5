package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show store statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := newService()
			if err != nil {
				return err
			}
			defer svc.Close()

			count, err := svc.GetCommandCount()
			if err != nil {
				return fmt.Errorf("count: %w", err)
			}

			if flags.jsonMode {
				data, err := json.MarshalIndent(map[string]interface{}{
					"commands": count,
					"backend":  backendName(svc),
					"database": cfg.DBPath(),
				}, "", "  ")
				if err != nil {
					return err
				}
				cmd.Println(string(data))
				return nil
			}

			cmd.Printf("commands: %d\n", count)
			cmd.Printf("backend:  %s\n", backendName(svc))
			cmd.Printf("database: %s\n", cfg.DBPath())
			return nil
		},
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmdpal/cmdpal/internal/store"
)

func newShowCmd() *cobra.Command {
	var noLog bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a stored command by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService()
			if err != nil {
				return err
			}
			defer svc.Close()

			name := args[0]
			c, err := svc.GetCommandByName(name)
			if err == store.ErrNotFound {
				return fmt.Errorf("no command named %q", name)
			}
			if err != nil {
				return fmt.Errorf("lookup %q: %w", name, err)
			}

			// Showing a command is a usage event; logging it is an
			// explicit call, separate from any save.
			if !noLog {
				if err := svc.LogCommandUsage(c.ID, name); err != nil {
					return fmt.Errorf("log usage: %w", err)
				}
			}
			return printCommand(cmd, c)
		},
	}

	cmd.Flags().BoolVar(&noLog, "no-log", false, "do not record this lookup in usage history")
	return cmd
}

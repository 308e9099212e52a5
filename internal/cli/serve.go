package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cmdpal/cmdpal/internal/bridge"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve store operations to a display process over stdio",
		Long: `Run the host side of the display bridge: line-delimited JSON
requests on stdin, one response per line on stdout. The overlay shell
spawns this and keeps the pipe open for its lifetime. Blocks until
stdin closes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newHost()
			if err != nil {
				return err
			}
			defer svc.Close()

			return bridge.NewServer(svc).Serve(os.Stdin, os.Stdout)
		},
	}
}

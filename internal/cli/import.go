package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cmdpal/cmdpal/internal/seed"
	"github.com/cmdpal/cmdpal/internal/store"
)

func newImportCmd() *cobra.Command {
	var tldrDir string

	cmd := &cobra.Command{
		Use:   "import [file.json]",
		Short: "Import command records",
		Long: `Import command records through the ordinary save path. Records may
come from a JSON file in the flat seed format or, with --tldr, from a
directory of tldr-pages markdown (the platform directory name becomes
the category). Saving is an upsert by name, so re-importing is safe.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var records []store.Command
			switch {
			case tldrDir != "":
				var err error
				if records, err = seed.ParseTldrDir(tldrDir); err != nil {
					return err
				}
			case len(args) == 1:
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read %s: %w", args[0], err)
				}
				if records, err = seed.ParseFile(data); err != nil {
					return err
				}
			default:
				return fmt.Errorf("either a JSON file or --tldr is required")
			}

			svc, _, err := newService()
			if err != nil {
				return err
			}
			defer svc.Close()

			saved := 0
			for _, rec := range records {
				if err := svc.SaveCommand(rec); err != nil {
					cmd.PrintErrf("skip %s: %v\n", rec.Name, err)
					continue
				}
				saved++
			}
			cmd.Printf("imported %d of %d commands\n", saved, len(records))
			return nil
		},
	}

	cmd.Flags().StringVar(&tldrDir, "tldr", "", "directory of tldr-pages markdown to import")
	return cmd
}

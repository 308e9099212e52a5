package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cmdpal/cmdpal/internal/store"
)

func newSearchCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search stored commands",
		Long: `Search the command store. With no query (or a query that reduces to
nothing after sanitization) the recently-used list is shown instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cfg, err := newService()
			if err != nil {
				return err
			}
			defer svc.Close()

			if limit <= 0 {
				limit = cfg.SearchLimit
			}
			query := ""
			if len(args) > 0 {
				query = args[0]
			}

			results, err := svc.SearchCommands(query, limit)
			if err != nil {
				return fmt.Errorf("search: %w", err)
			}
			return printCommands(cmd, results)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum results")
	return cmd
}

// printCommands renders a result list in text or JSON mode.
func printCommands(cmd *cobra.Command, results []store.Command) error {
	if flags.jsonMode {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		cmd.Println("no matches")
		return nil
	}
	for _, c := range results {
		line := c.Name
		if c.StandsFor != "" {
			line += " (" + c.StandsFor + ")"
		}
		if c.Summary != "" {
			line += " - " + c.Summary
		}
		cmd.Println(line)
		for _, ex := range c.Examples {
			cmd.Println("    " + ex)
		}
	}
	return nil
}

// printCommand renders a single command in text or JSON mode.
func printCommand(cmd *cobra.Command, c *store.Command) error {
	if flags.jsonMode {
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(c.Name)
	if c.StandsFor != "" {
		cmd.Printf("stands for: %s\n", c.StandsFor)
	}
	if c.Summary != "" {
		cmd.Println(c.Summary)
	}
	if c.Category != "" {
		cmd.Printf("category: %s\n", c.Category)
	}
	if len(c.Examples) > 0 {
		cmd.Println("\nexamples:")
		for _, ex := range c.Examples {
			cmd.Println("  " + ex)
		}
	}
	if c.Content != "" {
		cmd.Println("\n" + strings.TrimSpace(c.Content))
	}
	return nil
}

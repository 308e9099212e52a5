/*
Package cli implements the cmdpal command-line interface.

Query subcommands build a host-role facade over the local durable store
by default (falling back to memory when the store is unavailable); with
--remote they take the display role instead, forwarding every call over
the bridge to a spawned serve process. serve exposes the host facade to
a display process over that same bridge.
*/
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cmdpal/cmdpal/internal/config"
	"github.com/cmdpal/cmdpal/internal/paths"
	"github.com/cmdpal/cmdpal/internal/service"
	"github.com/cmdpal/cmdpal/internal/version"
)

// rootFlags holds global flag values shared by all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	remote    bool
}

var flags rootFlags

// NewRootCmd creates the top-level cmdpal command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cmdpal",
		Short: "Command lookup for the cmdpal overlay",
		Long: `cmdpal stores shell-command reference records (name, summary, usage
examples, tldr content) in a local full-text-searchable database and
answers lookups for the popup overlay.`,
		Version:      version.String(),
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "",
		"configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "",
		"data directory holding the command database")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false,
		"output in JSON format")
	root.PersistentFlags().BoolVar(&flags.remote, "remote", false,
		"route through a cmdpal serve host process instead of opening the store")

	root.AddCommand(newSearchCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newRecentCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newCacheCmd())
	root.AddCommand(newServeCmd())

	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the config directory and loads settings.
func loadConfig() (*config.Config, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	return config.Load(configDir, flags.dataDir)
}

// newHost builds the host-role facade. Never fails: an unavailable
// durable store degrades to the seeded in-memory backend.
func newHost() (*service.Host, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return service.NewHost(cfg.DBPath(), cfg.SnapshotPath), cfg, nil
}

// newService selects the facade for query subcommands: the host role by
// default, or the display role over the bridge when --remote is set.
func newService() (service.Service, *config.Config, error) {
	if flags.remote {
		cfg, err := loadConfig()
		if err != nil {
			return nil, nil, err
		}
		svc, err := newDisplay()
		if err != nil {
			return nil, nil, err
		}
		return svc, cfg, nil
	}
	return newHost()
}

// backendName reports which backend a facade selected, for stats output.
func backendName(svc service.Service) string {
	if h, ok := svc.(*service.Host); ok {
		return string(h.Source())
	}
	return "bridge"
}

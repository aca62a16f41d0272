package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	shipFlag   string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "coriolis",
		Short: "Coriolis - Ship outfitting and build engine",
		Long: `Coriolis plans ship loadouts against the reference catalog.

Builds are carried around as compact build codes. Every command that takes a
code prints the resulting code, so builds can be piped from one command into
the next or stored under a name.

Examples:
  coriolis ship list
  coriolis ship options --ship anaconda --slot internal:3
  coriolis build inspect --ship sidewinder
  coriolis build modify --ship anaconda --select hardpoint:0=0u
  coriolis build export <code> --name "Trade Conda" > conda.json
  coriolis saved save "Trade Conda" <code>
  coriolis saved list --ship anaconda`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&shipFlag, "ship", "",
		"Ship id (defaults to the ship set with 'coriolis config set-ship')")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewShipCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewBuildCommand())
	rootCmd.AddCommand(NewSavedCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

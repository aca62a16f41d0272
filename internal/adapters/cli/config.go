package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/cmmcleod/coriolis-sub002/internal/application/outfitting/queries"
	"github.com/cmmcleod/coriolis-sub002/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage Coriolis configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (CORIOLIS_* prefix, DATABASE_URL)
2. Config file (config.yaml)
3. Default values

User preferences (default ship) are stored in ~/.coriolis/config.json

Examples:
  coriolis config show
  coriolis config set-ship anaconda
  coriolis config clear-ship`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetShipCommand())
	cmd.AddCommand(newConfigClearShipCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load system config
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			// Load user config
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Printf("Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			// Display configuration
			fmt.Println("Coriolis Configuration")
			fmt.Println("======================")

			fmt.Println("User Preferences:")
			fmt.Printf("  Config file:      %s\n", userConfigHandler.GetConfigPath())
			if userCfg.DefaultShip != "" {
				fmt.Printf("  Default Ship:     %s\n", userCfg.DefaultShip)
			} else {
				fmt.Printf("  Default Ship:     (not set)\n")
			}

			fmt.Println("\nCatalog:")
			if cfg.Catalog.Path != "" {
				fmt.Printf("  Reference data:   %s\n", cfg.Catalog.Path)
			} else {
				fmt.Printf("  Reference data:   (embedded)\n")
			}

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Printf("  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Printf("  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Printf("  Host:             %s\n", cfg.Database.Host)
				fmt.Printf("  Port:             %d\n", cfg.Database.Port)
				fmt.Printf("  Database:         %s\n", cfg.Database.Name)
				fmt.Printf("  User:             %s\n", cfg.Database.User)
			}
			fmt.Printf("  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

			fmt.Println("\nMetrics:")
			fmt.Printf("  Enabled:          %t\n", cfg.Metrics.Enabled)
			fmt.Printf("  Endpoint:         %s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}

	return cmd
}

// newConfigSetShipCommand creates the config set-ship subcommand
func newConfigSetShipCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-ship <ship id>",
		Short: "Set default ship",
		Long: `Set the ship used by commands when --ship is not given.

The ship must exist in the catalog.

Example:
  coriolis config set-ship anaconda`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shipID := args[0]

			// Verify ship exists in catalog
			err := withApp(appOptions{}, func(a *app) error {
				result, err := a.send(&queries.ListShipsQuery{})
				if err != nil {
					return err
				}
				for _, ship := range result.(*queries.ListShipsResponse).Ships {
					if ship.ID == shipID {
						return nil
					}
				}
				return fmt.Errorf("ship '%s' not found in catalog", shipID)
			})
			if err != nil {
				return err
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := userConfigHandler.SetDefaultShip(shipID); err != nil {
				return fmt.Errorf("failed to set default ship: %w", err)
			}

			fmt.Println("✓ Default ship set successfully")
			fmt.Printf("  Ship: %s\n", shipID)
			fmt.Printf("\nCommands will now use this ship by default.\n")
			fmt.Printf("Override with the --ship flag.\n")

			return nil
		},
	}

	return cmd
}

// newConfigClearShipCommand creates the config clear-ship subcommand
func newConfigClearShipCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear-ship",
		Short: "Clear default ship setting",
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.ClearDefaultShip(); err != nil {
				return fmt.Errorf("failed to clear default ship: %w", err)
			}

			fmt.Println("✓ Default ship cleared")
			return nil
		},
	}

	return cmd
}

// maskPassword masks passwords in connection strings for display
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "(unparseable url)"
	}
	return u.Redacted()
}

package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cmmcleod/coriolis-sub002/internal/application/outfitting/commands"
	"github.com/cmmcleod/coriolis-sub002/internal/application/outfitting/queries"
)

// NewSavedCommand creates the saved command with subcommands
func NewSavedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saved",
		Short: "Manage saved builds",
		Long: `Store builds under a name. Names are unique per ship; saving an existing
name replaces the stored build.

Saved builds live in the configured database (SQLite file coriolis.db by
default, or PostgreSQL via DATABASE_URL).

Examples:
  coriolis saved save "Trade Conda" <code>
  coriolis saved list
  coriolis saved load "Trade Conda" --ship anaconda
  coriolis saved delete "Trade Conda" --ship anaconda`,
	}

	cmd.AddCommand(newSavedSaveCommand())
	cmd.AddCommand(newSavedLoadCommand())
	cmd.AddCommand(newSavedListCommand())
	cmd.AddCommand(newSavedDeleteCommand())

	return cmd
}

// newSavedSaveCommand creates the saved save subcommand
func newSavedSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <code>",
		Short: "Save a build under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readCode(args[1:])
			if err != nil {
				return err
			}

			return withApp(appOptions{store: true}, func(a *app) error {
				result, err := a.send(&commands.SaveBuildCommand{Name: args[0], Code: code})
				if err != nil {
					return fmt.Errorf("failed to save build: %w", err)
				}
				response := result.(*commands.SaveBuildResponse)

				fmt.Printf("Saved %q for %s\n", response.Saved.Name, response.Saved.ShipID)
				fmt.Printf("  ID:   %s\n", response.Saved.ID)
				fmt.Printf("  Code: %s\n", response.Saved.Code)
				return nil
			})
		},
	}
}

// newSavedLoadCommand creates the saved load subcommand
func newSavedLoadCommand() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "load <name>",
		Short: "Load a saved build",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shipID, err := resolveShip(true)
			if err != nil {
				return err
			}

			return withApp(appOptions{store: true}, func(a *app) error {
				result, err := a.send(&queries.LoadBuildQuery{ShipID: shipID, Name: args[0]})
				if err != nil {
					return fmt.Errorf("failed to load build: %w", err)
				}
				response := result.(*queries.LoadBuildResponse)

				if quiet {
					fmt.Println(response.Saved.Code)
					return nil
				}
				fmt.Printf("%s (saved %s)\n", response.Saved.Name,
					response.Saved.UpdatedAt.UTC().Format("2006-01-02 15:04:05"))
				return displayBuild(os.Stdout, response.Build, response.Saved.Code)
			})
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the build code")

	return cmd
}

// newSavedListCommand creates the saved list subcommand
func newSavedListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved builds",
		Long: `List saved builds of --ship, or of every ship when no ship is given
and no default ship is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			shipID, err := resolveShip(false)
			if err != nil {
				return err
			}

			return withApp(appOptions{store: true}, func(a *app) error {
				result, err := a.send(&queries.ListBuildsQuery{ShipID: shipID})
				if err != nil {
					return fmt.Errorf("failed to list builds: %w", err)
				}
				response := result.(*queries.ListBuildsResponse)

				if len(response.Builds) == 0 {
					fmt.Println("No saved builds found")
					return nil
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "SHIP\tNAME\tCOST\tUPDATED\tCODE")
				fmt.Fprintln(w, "----\t----\t----\t-------\t----")
				for _, b := range response.Builds {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
						b.ShipID, b.Name, formatCredits(b.TotalCost), b.UpdatedAt, b.Code)
				}
				return w.Flush()
			})
		},
	}
}

// newSavedDeleteCommand creates the saved delete subcommand
func newSavedDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved build",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shipID, err := resolveShip(true)
			if err != nil {
				return err
			}

			return withApp(appOptions{store: true}, func(a *app) error {
				if _, err := a.send(&commands.DeleteBuildCommand{ShipID: shipID, Name: args[0]}); err != nil {
					return fmt.Errorf("failed to delete build: %w", err)
				}
				fmt.Printf("Deleted %q for %s\n", args[0], shipID)
				return nil
			})
		},
	}
}

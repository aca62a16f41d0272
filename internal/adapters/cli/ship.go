package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cmmcleod/coriolis-sub002/internal/application/outfitting/queries"
)

// NewShipCommand creates the ship command with subcommands
func NewShipCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ship",
		Short: "Browse ship templates",
		Long: `Browse the ships of the reference catalog and the components each
slot of a ship accepts.

Examples:
  coriolis ship list
  coriolis ship options --ship cobra_mk_iii --slot "common:frame shift drive"`,
	}

	// Add subcommands
	cmd.AddCommand(newShipListCommand())
	cmd.AddCommand(newShipOptionsCommand())

	return cmd
}

// newShipListCommand creates the ship list subcommand
func newShipListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all ships in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(appOptions{}, func(a *app) error {
				result, err := a.send(&queries.ListShipsQuery{})
				if err != nil {
					return fmt.Errorf("failed to list ships: %w", err)
				}
				response := result.(*queries.ListShipsResponse)

				fmt.Printf("Catalog %s\n\n", response.CatalogVersion)
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tMANUFACTURER\tHULL MASS\tMAX MASS\tHARDPOINTS\tINTERNAL\tHULL COST")
				fmt.Fprintln(w, "--\t----\t------------\t---------\t--------\t----------\t--------\t---------")
				for _, ship := range response.Ships {
					fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%.1f\t%d\t%d\t%s\n",
						ship.ID,
						ship.Name,
						ship.Manufacturer,
						ship.HullMass,
						ship.MaxMass,
						len(ship.Hardpoints),
						len(ship.Internal),
						formatCredits(ship.HullCost),
					)
				}
				return w.Flush()
			})
		},
	}
}

// newShipOptionsCommand creates the ship options subcommand
func newShipOptionsCommand() *cobra.Command {
	var slot string

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List the components a slot accepts",
		Long: `List every component that can be fitted to one slot of a ship.

Slots are addressed as:
  bulkhead
  common:<role>        role name or index, e.g. "common:thrusters" or "common:1"
  hardpoint:<index>
  internal:<index>

Example:
  coriolis ship options --ship anaconda --slot internal:0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			shipID, err := resolveShip(true)
			if err != nil {
				return err
			}

			return withApp(appOptions{}, func(a *app) error {
				result, err := a.send(&queries.SlotOptionsQuery{ShipID: shipID, Slot: slot})
				if err != nil {
					return fmt.Errorf("failed to list slot options: %w", err)
				}
				response := result.(*queries.SlotOptionsResponse)

				fmt.Printf("%s %s (class %d): %d components\n\n",
					shipID, response.Slot, response.SlotClass, len(response.Components))
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tGROUP\tCLASS\tNAME\tMASS\tPOWER\tCOST")
				fmt.Fprintln(w, "--\t-----\t-----\t----\t----\t-----\t----")
				for _, c := range response.Components {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%.2f\t%s\n",
						c.ID, c.Group, c.Designation(), c.Name, c.Mass, c.Power, formatCredits(c.Cost))
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&slot, "slot", "", "Slot reference (required)")
	_ = cmd.MarkFlagRequired("slot")

	return cmd
}

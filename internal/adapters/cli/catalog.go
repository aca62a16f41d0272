package cli

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"
)

// NewCatalogCommand creates the catalog command with subcommands
func NewCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the reference catalog",
		Long: `Inspect the component catalog the engine was loaded with.

The embedded reference data is used unless catalog.path points at a directory
containing components.json and ships.json.

Examples:
  coriolis catalog summary
  coriolis catalog group shield_generator`,
	}

	cmd.AddCommand(newCatalogSummaryCommand())
	cmd.AddCommand(newCatalogGroupCommand())

	return cmd
}

// newCatalogSummaryCommand creates the catalog summary subcommand
func newCatalogSummaryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show component counts per group",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(appOptions{}, func(a *app) error {
				cat := a.catalog
				fmt.Printf("Catalog %s: %d ships\n\n", cat.Version(), len(cat.Ships()))

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "CATEGORY\tGROUP\tCOMPONENTS")
				fmt.Fprintln(w, "--------\t-----\t----------")
				for _, role := range catalog.Roles() {
					fmt.Fprintf(w, "common\t%s\t%d\n", role.Group(), len(cat.CommonPool(role)))
				}
				fmt.Fprintf(w, "hardpoint\t(all)\t%d\n", len(cat.AllHardpoints()))
				for _, group := range cat.InternalGroups() {
					fmt.Fprintf(w, "internal\t%s\t%d\n", group, len(cat.InternalPool(group)))
				}
				return w.Flush()
			})
		},
	}
}

// newCatalogGroupCommand creates the catalog group subcommand
func newCatalogGroupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "group <group>",
		Short: "List the components of one group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			group := catalog.Group(args[0])
			category, ok := group.Category()
			if !ok {
				return fmt.Errorf("unknown component group %q", args[0])
			}

			return withApp(appOptions{}, func(a *app) error {
				var pool catalog.Pool
				switch category {
				case catalog.CategoryBulkhead:
					return fmt.Errorf("bulkheads belong to a ship: use 'coriolis ship options --slot bulkhead'")
				case catalog.CategoryCommon:
					role, _ := catalog.RoleForGroup(group)
					pool = a.catalog.CommonPool(role)
				case catalog.CategoryHardpoint:
					pool = make(catalog.Pool)
					for id, c := range a.catalog.AllHardpoints() {
						if c.Group == group {
							pool[id] = c
						}
					}
				default:
					pool = a.catalog.InternalPool(group)
				}

				records := make([]*catalog.ComponentRecord, 0, len(pool))
				for _, c := range pool {
					records = append(records, c)
				}
				sort.Slice(records, func(i, j int) bool {
					if records[i].Class != records[j].Class {
						return records[i].Class < records[j].Class
					}
					if records[i].Rating != records[j].Rating {
						return records[i].Rating < records[j].Rating
					}
					return records[i].ID < records[j].ID
				})

				if len(records) == 0 {
					fmt.Printf("No %s components in catalog\n", group)
					return nil
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tCLASS\tNAME\tMASS\tPOWER\tMAX MASS\tCOST")
				fmt.Fprintln(w, "--\t-----\t----\t----\t-----\t--------\t----")
				for _, c := range records {
					maxMass := "-"
					if c.MaxMass > 0 {
						maxMass = fmt.Sprintf("%.0f", c.MaxMass)
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.2f\t%s\t%s\n",
						c.ID, c.Designation(), c.Name, c.Mass, c.Power, maxMass, formatCredits(c.Cost))
				}
				return w.Flush()
			})
		},
	}
}

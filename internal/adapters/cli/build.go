package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cmmcleod/coriolis-sub002/internal/application/outfitting/commands"
	"github.com/cmmcleod/coriolis-sub002/internal/application/outfitting/queries"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/outfitting"
)

// NewBuildCommand creates the build command with subcommands
func NewBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Inspect, modify and exchange builds",
		Long: `Work with ship builds given as build codes.

A code of "-" is read from stdin. Without a code, commands start from the
stock build of --ship.

Examples:
  coriolis build inspect --ship sidewinder
  coriolis build modify --ship anaconda --select bulkhead=01 --toggle internal:2
  coriolis build modify <code> --modify "common:frame_shift_drive@optimal_mass=0.2"
  coriolis build export <code> --name "Explorer" --output explorer.json
  coriolis build import explorer.json
  coriolis build compare <code-a> <code-b>
  coriolis build curve <code>`,
	}

	cmd.AddCommand(newBuildInspectCommand())
	cmd.AddCommand(newBuildModifyCommand())
	cmd.AddCommand(newBuildExportCommand())
	cmd.AddCommand(newBuildImportCommand())
	cmd.AddCommand(newBuildCompareCommand())
	cmd.AddCommand(newBuildCurveCommand())

	return cmd
}

// newBuildInspectCommand creates the build inspect subcommand
func newBuildInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [code]",
		Short: "Show the slots and statistics of a build",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := inspectQuery(args)
			if err != nil {
				return err
			}

			return withApp(appOptions{}, func(a *app) error {
				result, err := a.send(query)
				if err != nil {
					return fmt.Errorf("failed to inspect build: %w", err)
				}
				response := result.(*queries.InspectBuildResponse)
				return displayBuild(os.Stdout, response.Build, response.Code)
			})
		},
	}
}

// newBuildModifyCommand creates the build modify subcommand
func newBuildModifyCommand() *cobra.Command {
	var (
		reset       bool
		selects     []string
		toggles     []string
		costToggles []string
		mods        []string
		quiet       bool
	)

	cmd := &cobra.Command{
		Use:   "modify [code]",
		Short: "Apply changes to a build and print the new code",
		Long: `Apply changes to a build and print the resulting build and code.

Changes are applied in this order: --reset, --select, --toggle,
--toggle-cost, --modify. Within a flag, in the order given. If any change
is rejected nothing is printed.

  --select <slot>=<component id>      fit a component ("" empties the slot)
  --toggle <slot>                     flip whether the slot draws power
  --toggle-cost <slot>                flip whether the slot counts towards cost
  --modify <slot>@<stat>=<value>      scale a stat: mass, power, optimal_mass,
                                      max_fuel, capacity (0.1 = +10%)

Example:
  coriolis build modify --ship anaconda --select hardpoint:0=0u --select hardpoint:6=`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := readCode(args)
			if err != nil {
				return err
			}
			shipID, err := resolveShip(code == "")
			if err != nil {
				return err
			}

			operations, err := parseOperations(reset, selects, toggles, costToggles, mods)
			if err != nil {
				return err
			}

			return withApp(appOptions{}, func(a *app) error {
				result, err := a.send(&commands.ModifyBuildCommand{
					Code:       code,
					ShipID:     shipID,
					Operations: operations,
				})
				if err != nil {
					return fmt.Errorf("failed to modify build: %w", err)
				}
				response := result.(*commands.ModifyBuildResponse)
				if quiet {
					fmt.Println(response.Code)
					return nil
				}
				return displayBuild(os.Stdout, response.Build, response.Code)
			})
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Reset to the stock build first")
	cmd.Flags().StringArrayVar(&selects, "select", nil, "Fit a component: <slot>=<id>")
	cmd.Flags().StringArrayVar(&toggles, "toggle", nil, "Toggle power for a slot")
	cmd.Flags().StringArrayVar(&costToggles, "toggle-cost", nil, "Toggle cost inclusion for a slot")
	cmd.Flags().StringArrayVar(&mods, "modify", nil, "Modify a stat: <slot>@<stat>=<value>")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the resulting code")

	return cmd
}

// newBuildExportCommand creates the build export subcommand
func newBuildExportCommand() *cobra.Command {
	var (
		name   string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export [code]",
		Short: "Write the schema-validated export document of a build",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := inspectQuery(args)
			if err != nil {
				return err
			}

			return withApp(appOptions{}, func(a *app) error {
				result, err := a.send(&queries.ExportBuildQuery{
					Name:   name,
					Code:   query.Code,
					ShipID: query.ShipID,
				})
				if err != nil {
					return fmt.Errorf("failed to export build: %w", err)
				}
				response := result.(*queries.ExportBuildResponse)

				data, err := json.MarshalIndent(response.Document, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal document: %w", err)
				}
				data = append(data, '\n')

				if output == "" {
					_, err = os.Stdout.Write(data)
					return err
				}
				if err := os.WriteFile(output, data, 0644); err != nil {
					return fmt.Errorf("failed to write %s: %w", output, err)
				}
				fmt.Printf("Exported %s to %s\n", response.Document.Code, output)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Build name (required)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// newBuildImportCommand creates the build import subcommand
func newBuildImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Validate an export document and show its build",
		Long: `Validate an export document against the ship-loadout schema, rebuild
the build from its slots and show it. A file of "-" is read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				raw []byte
				err error
			)
			if args[0] == "-" {
				raw, err = io.ReadAll(os.Stdin)
			} else {
				raw, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read document: %w", err)
			}

			return withApp(appOptions{}, func(a *app) error {
				result, err := a.send(&queries.ImportBuildQuery{Document: raw})
				if err != nil {
					return fmt.Errorf("failed to import build: %w", err)
				}
				response := result.(*queries.ImportBuildResponse)

				fmt.Printf("Imported %q\n", response.Document.Name)
				return displayBuild(os.Stdout, response.Build, response.Document.Code)
			})
		},
	}
}

// newBuildCompareCommand creates the build compare subcommand
func newBuildCompareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <code-a> <code-b>",
		Short: "Compare the statistics of two builds",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(appOptions{}, func(a *app) error {
				result, err := a.send(&queries.CompareBuildsQuery{CodeA: args[0], CodeB: args[1]})
				if err != nil {
					return fmt.Errorf("failed to compare builds: %w", err)
				}
				response := result.(*queries.CompareBuildsResponse)

				fmt.Printf("A: %s\nB: %s\n\n", response.A.Ship().Name, response.B.Ship().Name)
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "STAT\tA\tB\tDELTA")
				fmt.Fprintln(w, "----\t-\t-\t-----")
				for _, d := range response.Deltas {
					fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%+.2f\n", d.Name, d.A, d.B, d.Delta)
				}
				return w.Flush()
			})
		},
	}
}

// newBuildCurveCommand creates the build curve subcommand
func newBuildCurveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "curve [code]",
		Short: "Print the jump range from unladen to maximum mass",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := inspectQuery(args)
			if err != nil {
				return err
			}

			return withApp(appOptions{}, func(a *app) error {
				result, err := a.send(query)
				if err != nil {
					return fmt.Errorf("failed to inspect build: %w", err)
				}
				response := result.(*queries.InspectBuildResponse)

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "MASS (T)\tRANGE (LY)")
				fmt.Fprintln(w, "--------\t----------")
				for sample := range response.Build.JumpCurve() {
					fmt.Fprintf(w, "%.1f\t%.2f\n", sample.Mass, sample.Range)
				}
				return w.Flush()
			})
		},
	}
}

// inspectQuery builds an InspectBuildQuery from a code argument or --ship
func inspectQuery(args []string) (*queries.InspectBuildQuery, error) {
	code, err := readCode(args)
	if err != nil {
		return nil, err
	}
	if code != "" {
		return &queries.InspectBuildQuery{Code: code}, nil
	}
	shipID, err := resolveShip(true)
	if err != nil {
		return nil, err
	}
	return &queries.InspectBuildQuery{ShipID: shipID}, nil
}

// parseOperations converts modify flags into build operations
func parseOperations(reset bool, selects, toggles, costToggles, mods []string) ([]commands.BuildOperation, error) {
	var ops []commands.BuildOperation
	if reset {
		ops = append(ops, commands.BuildOperation{Kind: commands.OpReset})
	}

	for _, s := range selects {
		i := strings.LastIndex(s, "=")
		if i < 0 {
			return nil, fmt.Errorf("invalid --select %q: expected <slot>=<component id>", s)
		}
		ops = append(ops, commands.BuildOperation{Kind: commands.OpSelect, Slot: s[:i], ComponentID: s[i+1:]})
	}
	for _, slot := range toggles {
		ops = append(ops, commands.BuildOperation{Kind: commands.OpToggleEnabled, Slot: slot})
	}
	for _, slot := range costToggles {
		ops = append(ops, commands.BuildOperation{Kind: commands.OpToggleCost, Slot: slot})
	}

	for _, m := range mods {
		at := strings.LastIndex(m, "@")
		eq := strings.LastIndex(m, "=")
		if at < 0 || eq < at {
			return nil, fmt.Errorf("invalid --modify %q: expected <slot>@<stat>=<value>", m)
		}
		value, err := strconv.ParseFloat(m[eq+1:], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --modify %q: %w", m, err)
		}
		ops = append(ops, commands.BuildOperation{
			Kind:         commands.OpModify,
			Slot:         m[:at],
			Modification: m[at+1 : eq],
			Value:        value,
		})
	}

	return ops, nil
}

// displayBuild prints the build summary, slots and retrofit changes
func displayBuild(out io.Writer, build *outfitting.Build, code string) error {
	stats := build.Stats()

	fmt.Fprintf(out, "%s\n", build.Ship().Name)
	fmt.Fprintf(out, "Code: %s\n\n", code)

	fmt.Fprintf(out, "Mass:         %.2f T unladen, %.2f T laden (max %.0f T)\n",
		stats.UnladenMass, stats.LadenMass, build.Ship().MaxMass)
	fmt.Fprintf(out, "Fuel / Cargo: %.0f T / %.0f T\n", stats.FuelCapacity, stats.CargoCapacity)
	fmt.Fprintf(out, "Power:        %.2f MW generated, %.2f MW consumed (%+.2f)\n",
		stats.PowerGenerated, stats.PowerConsumed, stats.PowerBalance)
	fmt.Fprintf(out, "Jump range:   %.2f LY unladen, %.2f LY laden\n",
		stats.UnladenJumpRange, stats.LadenJumpRange)
	fmt.Fprintf(out, "Cost:         %s components, %s total\n\n",
		formatCredits(stats.TotalCost), formatCredits(stats.ShipCost))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLOT\tSIZE\tCOMPONENT\tPOWERED\tCOSTED\tMASS\tPOWER\tCOST\tMODS")
	fmt.Fprintln(w, "----\t----\t---------\t-------\t------\t----\t-----\t----\t----")
	for _, slot := range build.Slots() {
		component := "(empty)"
		if c := slot.Component(); c != nil {
			component = c.String()
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%.2f\t%.2f\t%s\t%s\n",
			slot.Ref(),
			slot.Class(),
			component,
			formatFlag(slot.Enabled()),
			formatFlag(slot.IncludeInCost()),
			slot.Mass(),
			slot.Power(),
			formatCredits(slot.Cost()),
			formatModifications(slot.Modifications()),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(stats.RetrofitChanges) == 0 {
		fmt.Fprintln(out, "\nStock build")
		return nil
	}

	fmt.Fprintf(out, "\nRetrofit: %s\n", formatCredits(stats.RetrofitTotal))
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLOT\tFROM\tTO\tDELTA")
	for _, change := range stats.RetrofitChanges {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			change.Slot, orDash(change.FromID), orDash(change.ToID), formatCredits(change.Delta()))
	}
	return w.Flush()
}

func formatModifications(mods []outfitting.Modification) string {
	if len(mods) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(mods))
	for _, m := range mods {
		parts = append(parts, fmt.Sprintf("%s %+.1f%%", m.ID, m.Value*100))
	}
	return strings.Join(parts, ", ")
}

func orDash(id string) string {
	if id == outfitting.Unassigned {
		return "-"
	}
	return id
}

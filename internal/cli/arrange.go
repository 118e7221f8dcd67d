package cli

import (
	"github.com/spf13/cobra"

	apperrors "github.com/ethan-kaseff/seating-chart/pkg/errors"
	"github.com/ethan-kaseff/seating-chart/pkg/seating/arrange"
	"github.com/ethan-kaseff/seating-chart/pkg/seating/editor"
)

// arrangeCommand creates the arrange command.
func (c *CLI) arrangeCommand() *cobra.Command {
	var (
		layout    string
		spacing   float64
		clearance float64
		columns   int
		yes       bool
	)

	cmd := &cobra.Command{
		Use:   "arrange <event-id>",
		Short: "Lay tables out on the floor",
		Long: `Lay tables out on the floor.

Tables are packed in rows around venue objects. When the layout does not
fit the floor, or leaves most of it empty, a resize is proposed and
confirmed interactively; --yes accepts it without asking.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			opts := cfg.ArrangeOptions()
			if cmd.Flags().Changed("layout") {
				if layout != string(arrange.LayoutGrid) && layout != string(arrange.LayoutStaggered) {
					return apperrors.New(apperrors.ErrCodeInvalidLayout, "unknown layout %q", layout)
				}
				opts.Layout = arrange.Layout(layout)
			}
			if cmd.Flags().Changed("spacing") {
				opts.Spacing = spacing
			}
			if cmd.Flags().Changed("clearance") {
				opts.ObjectClearance = clearance
			}
			if cmd.Flags().Changed("columns") {
				opts.MaxColumns = columns
			}

			return c.withEvent(cmd.Context(), args[0], func(ed *editor.Editor) error {
				doc := ed.Document()
				if len(doc.Tables) == 0 {
					printInfo("No tables to arrange")
					return nil
				}

				ed.Arrange(opts, func(p arrange.Proposal) bool {
					if yes {
						return true
					}
					return confirmResize(doc.FloorSize.Width, doc.FloorSize.Height, p)
				})

				after := ed.Document()
				printSuccess("Arranged %d tables (%s)", len(after.Tables), opts.Layout)
				printDetail("floor %s", floorDims(after.FloorSize.Width, after.FloorSize.Height))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&layout, "layout", "", "packing pattern: grid or staggered")
	cmd.Flags().Float64Var(&spacing, "spacing", 0, "center-to-center table distance in pixels")
	cmd.Flags().Float64Var(&clearance, "clearance", 0, "minimum distance from venue objects in pixels")
	cmd.Flags().IntVar(&columns, "columns", 0, "maximum tables per row (0 = auto)")
	cmd.Flags().BoolVar(&yes, "yes", false, "accept a proposed floor resize without asking")

	return cmd
}

// autoseatCommand creates the autoseat command.
func (c *CLI) autoseatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "autoseat <event-id>",
		Short: "Seat unassigned guests automatically",
		Long: `Seat unassigned guests automatically.

Guests are grouped by their group name and placed largest group first,
each into the emptiest table that fits the whole group. Groups too large
for any single table are split.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID := args[0]
			return c.withEvent(cmd.Context(), eventID, func(ed *editor.Editor) error {
				sp := newSpinner("Seating guests...")
				sp.Start()
				placed := ed.AutoSeat()
				sp.Stop()

				doc := ed.Document()
				unseated := len(doc.UnassignedGuests())
				if placed == 0 && unseated == 0 {
					printInfo("Everyone is already seated")
					return nil
				}

				printSuccess("Seated %d guests", placed)
				if unseated > 0 {
					printWarning("%d guests could not be seated (not enough free seats)", unseated)
					printNextStep("Add more tables", "seating table add "+eventID)
				}
				return nil
			})
		},
	}
}

package cli

import (
	"github.com/spf13/cobra"

	apperrors "github.com/ethan-kaseff/seating-chart/pkg/errors"
	"github.com/ethan-kaseff/seating-chart/pkg/seating"
	"github.com/ethan-kaseff/seating-chart/pkg/seating/editor"
)

// tableCommand creates the table command group.
func (c *CLI) tableCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Manage tables",
	}
	cmd.AddCommand(c.tableAddCommand())
	cmd.AddCommand(c.tableUpdateCommand())
	cmd.AddCommand(c.tableRemoveCommand())
	return cmd
}

// tableAddCommand creates the table add command.
func (c *CLI) tableAddCommand() *cobra.Command {
	var (
		name  string
		seats int
	)

	cmd := &cobra.Command{
		Use:   "add <event-id>",
		Short: "Add a table to an event",
		Long: `Add a table to an event.

The table is named automatically when --name is omitted, and placed near
the floor center. Run arrange to lay tables out properly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if seats == 0 {
				cfg, err := c.loadConfig()
				if err != nil {
					return err
				}
				seats = cfg.Editor.DefaultSeats
			}
			if seats != 0 {
				if err := apperrors.ValidateSeatCount(seats); err != nil {
					return err
				}
			}
			return c.withEvent(cmd.Context(), args[0], func(ed *editor.Editor) error {
				t := ed.AddTable(seats, name)
				printSuccess("Added table %s", StyleHighlight.Render(t.Name))
				printDetail("id %s · %d seats · %s", t.ID, t.Capacity(), t.Color)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "table name (default Table N)")
	cmd.Flags().IntVar(&seats, "seats", 0, "seat count (default 8)")

	return cmd
}

// tableUpdateCommand creates the table update command.
func (c *CLI) tableUpdateCommand() *cobra.Command {
	var (
		name  string
		seats int
		color string
		x, y  float64
	)

	cmd := &cobra.Command{
		Use:   "update <event-id> <table-id>",
		Short: "Update a table's details",
		Long: `Update a table's details.

Only the given flags change. Shrinking the seat count unseats guests on
removed seats.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := seating.TablePatch{}
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("seats") {
				if err := apperrors.ValidateSeatCount(seats); err != nil {
					return err
				}
				s := make([]seating.Seat, seats)
				patch.Seats = &s
			}
			if cmd.Flags().Changed("color") {
				if err := apperrors.ValidateColor(color); err != nil {
					return err
				}
				patch.Color = &color
			}
			if cmd.Flags().Changed("x") {
				patch.X = &x
			}
			if cmd.Flags().Changed("y") {
				patch.Y = &y
			}

			return c.withEvent(cmd.Context(), args[0], func(ed *editor.Editor) error {
				if !ed.Dispatch(seating.UpdateTable{ID: args[1], Patch: patch}) {
					return apperrors.New(apperrors.ErrCodeTableNotFound, "table %s not found", args[1])
				}
				printSuccess("Updated table %s", args[1])
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "table name")
	cmd.Flags().IntVar(&seats, "seats", 0, "seat count")
	cmd.Flags().StringVar(&color, "color", "", "hex color, e.g. #8b5cf6")
	cmd.Flags().Float64Var(&x, "x", 0, "x position in pixels")
	cmd.Flags().Float64Var(&y, "y", 0, "y position in pixels")

	return cmd
}

// tableRemoveCommand creates the table remove command.
func (c *CLI) tableRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <event-id> <table-id>",
		Short: "Remove a table, unseating its guests",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withEvent(cmd.Context(), args[0], func(ed *editor.Editor) error {
				if !ed.Dispatch(seating.DeleteTable{ID: args[1]}) {
					return apperrors.New(apperrors.ErrCodeTableNotFound, "table %s not found", args[1])
				}
				printSuccess("Removed table %s", args[1])
				return nil
			})
		},
	}
}

// objectCommand creates the object command group for venue fixtures.
func (c *CLI) objectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "object",
		Short: "Manage venue objects (stage, bar, dance floor, ...)",
	}
	cmd.AddCommand(c.objectAddCommand())
	cmd.AddCommand(c.objectUpdateCommand())
	cmd.AddCommand(c.objectRemoveCommand())
	return cmd
}

// objectAddCommand creates the object add command.
func (c *CLI) objectAddCommand() *cobra.Command {
	var (
		label string
		x, y  float64
	)

	cmd := &cobra.Command{
		Use:       "add <event-id> <type>",
		Short:     "Add a venue object",
		Long:      "Add a venue object. Types: " + objectTypeList() + ".",
		Args:      cobra.ExactArgs(2),
		ValidArgs: append([]string{}, objectTypeNames()...),
		RunE: func(cmd *cobra.Command, args []string) error {
			objType := seating.ObjectType(args[1])
			if !knownObjectType(objType) {
				return apperrors.New(apperrors.ErrCodeInvalidInput,
					"unknown object type %q (one of %s)", args[1], objectTypeList())
			}
			return c.withEvent(cmd.Context(), args[0], func(ed *editor.Editor) error {
				o := ed.AddObject(objType, label, x, y)
				printSuccess("Added %s", StyleHighlight.Render(o.Label))
				printDetail("id %s · %.0fx%.0f px at (%.0f, %.0f)", o.ID, o.Width, o.Height, o.X, o.Y)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "display label (default from type)")
	cmd.Flags().Float64Var(&x, "x", 0, "x position in pixels")
	cmd.Flags().Float64Var(&y, "y", 0, "y position in pixels")

	return cmd
}

// objectUpdateCommand creates the object update command.
func (c *CLI) objectUpdateCommand() *cobra.Command {
	var (
		label         string
		x, y          float64
		width, height float64
		clearPadding  bool
	)

	cmd := &cobra.Command{
		Use:   "update <event-id> <object-id>",
		Short: "Update a venue object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := seating.ObjectPatch{ClearPadding: clearPadding}
			if cmd.Flags().Changed("label") {
				patch.Label = &label
			}
			if cmd.Flags().Changed("x") {
				patch.X = &x
			}
			if cmd.Flags().Changed("y") {
				patch.Y = &y
			}
			if cmd.Flags().Changed("width") {
				patch.Width = &width
			}
			if cmd.Flags().Changed("height") {
				patch.Height = &height
			}

			return c.withEvent(cmd.Context(), args[0], func(ed *editor.Editor) error {
				if !ed.Dispatch(seating.UpdateObject{ID: args[1], Patch: patch}) {
					return apperrors.New(apperrors.ErrCodeNotFound, "object %s not found", args[1])
				}
				printSuccess("Updated object %s", args[1])
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "display label")
	cmd.Flags().Float64Var(&x, "x", 0, "x position in pixels")
	cmd.Flags().Float64Var(&y, "y", 0, "y position in pixels")
	cmd.Flags().Float64Var(&width, "width", 0, "width in pixels")
	cmd.Flags().Float64Var(&height, "height", 0, "height in pixels")
	cmd.Flags().BoolVar(&clearPadding, "clear-padding", false, "reset keep-out padding")

	return cmd
}

// objectRemoveCommand creates the object remove command.
func (c *CLI) objectRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <event-id> <object-id>",
		Short: "Remove a venue object",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withEvent(cmd.Context(), args[0], func(ed *editor.Editor) error {
				if !ed.Dispatch(seating.DeleteObject{ID: args[1]}) {
					return apperrors.New(apperrors.ErrCodeNotFound, "object %s not found", args[1])
				}
				printSuccess("Removed object %s", args[1])
				return nil
			})
		},
	}
}

func objectTypeNames() []string {
	names := make([]string, 0, len(seating.ObjectCatalog))
	for _, spec := range seating.ObjectCatalog {
		names = append(names, string(spec.Type))
	}
	return names
}

func objectTypeList() string {
	out := ""
	for i, n := range objectTypeNames() {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

func knownObjectType(t seating.ObjectType) bool {
	for _, spec := range seating.ObjectCatalog {
		if spec.Type == t {
			return true
		}
	}
	return false
}

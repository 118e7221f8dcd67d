package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ethan-kaseff/seating-chart/internal/config"
	apperrors "github.com/ethan-kaseff/seating-chart/pkg/errors"
	"github.com/ethan-kaseff/seating-chart/pkg/seating"
	"github.com/ethan-kaseff/seating-chart/pkg/store"
)

// newCommand creates the new command for creating an event.
func (c *CLI) newCommand() *cobra.Command {
	var (
		floorPreset string
		width       float64
		height      float64
	)

	cmd := &cobra.Command{
		Use:   "new <event-id>",
		Short: "Create a new event with an empty floor plan",
		Long: `Create a new event with an empty floor plan.

The floor defaults to 80x53 ft (1200x800 floor pixels). Use --preset for
a standard room size, or --width/--height for exact floor-pixel
dimensions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNew(cmd.Context(), args[0], floorPreset, width, height)
		},
	}

	cmd.Flags().StringVar(&floorPreset, "preset", "", "floor preset: "+presetNames())
	cmd.Flags().Float64Var(&width, "width", 0, "floor width in floor pixels")
	cmd.Flags().Float64Var(&height, "height", 0, "floor height in floor pixels")

	return cmd
}

func (c *CLI) runNew(ctx context.Context, eventID, preset string, width, height float64) error {
	if err := apperrors.ValidateEventID(eventID); err != nil {
		return err
	}

	doc := seating.NewDocument()
	switch {
	case preset != "":
		p, ok := presetByName(preset)
		if !ok {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "unknown floor preset %q (have %s)", preset, presetNames())
		}
		doc.FloorSize = seating.FloorSize{Width: p.Width, Height: p.Height}
	case width > 0 && height > 0:
		if err := apperrors.ValidateFloorSize(width, height); err != nil {
			return err
		}
		doc.FloorSize = seating.FloorSize{Width: width, Height: height}
	}

	return c.withStore(ctx, func(st store.Store, cfg config.Config) error {
		if _, err := st.Load(ctx, eventID); err == nil {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "event %s already exists", eventID)
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if err := st.Save(ctx, eventID, doc); err != nil {
			return fmt.Errorf("create event %s: %w", eventID, err)
		}

		printSuccess("Created event %s", StyleHighlight.Render(eventID))
		printDetail("floor %.0f x %.0f px (%.0f x %.0f ft)",
			doc.FloorSize.Width, doc.FloorSize.Height,
			doc.FloorSize.Width/seating.PixelsPerFoot, doc.FloorSize.Height/seating.PixelsPerFoot)
		printNextStep("Add guests", fmt.Sprintf("seating guest add %s --name \"Ada Lovelace\"", eventID))
		return nil
	})
}

// listCommand creates the list command for listing events.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List events in the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store, cfg config.Config) error {
				ids, err := st.List(cmd.Context())
				if err != nil {
					return fmt.Errorf("list events: %w", err)
				}
				if len(ids) == 0 {
					printInfo("No events yet")
					printNextStep("Create one", "seating new my-event")
					return nil
				}
				sort.Strings(ids)
				for _, id := range ids {
					fmt.Println(StyleValue.Render(id))
				}
				return nil
			})
		},
	}
}

// showCommand creates the show command for printing an event overview.
func (c *CLI) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <event-id>",
		Short: "Show an event's tables, guests, and floor plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store, cfg config.Config) error {
				doc, err := st.Load(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("load event %s: %w", args[0], err)
				}
				printDocument(args[0], doc)
				return nil
			})
		},
	}
}

// deleteCommand creates the delete command for removing an event.
func (c *CLI) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <event-id>",
		Short: "Delete an event from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(st store.Store, cfg config.Config) error {
				if err := st.Delete(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("delete event %s: %w", args[0], err)
				}
				printSuccess("Deleted event %s", StyleHighlight.Render(args[0]))
				return nil
			})
		},
	}
}

// printDocument renders an event overview to stdout.
func printDocument(eventID string, doc seating.Document) {
	fmt.Println(StyleTitle.Render(eventID))
	printKeyValue("floor", fmt.Sprintf("%.0f x %.0f px (%.0f x %.0f ft)",
		doc.FloorSize.Width, doc.FloorSize.Height,
		doc.FloorSize.Width/seating.PixelsPerFoot, doc.FloorSize.Height/seating.PixelsPerFoot))
	printKeyValue("seats", fmt.Sprintf("%d across %d tables", doc.TotalSeats(), len(doc.Tables)))
	printStats(len(doc.Tables), len(doc.Guests), len(doc.Guests)-len(doc.UnassignedGuests()))

	if len(doc.Tables) > 0 {
		fmt.Println()
		fmt.Println(StyleTitle.Render("Tables"))
		for _, t := range doc.Tables {
			seated := len(doc.SeatedGuests(t.ID))
			fmt.Printf("  %s %s\n",
				StyleValue.Render(fmt.Sprintf("%-16s", t.Name)),
				StyleDim.Render(fmt.Sprintf("%d/%d seats · (%.0f, %.0f)", seated, t.Capacity(), t.X, t.Y)))
		}
	}

	if len(doc.Objects) > 0 {
		fmt.Println()
		fmt.Println(StyleTitle.Render("Objects"))
		for _, o := range doc.Objects {
			fmt.Printf("  %s %s\n",
				StyleValue.Render(fmt.Sprintf("%-16s", o.Label)),
				StyleDim.Render(fmt.Sprintf("%s · %.0fx%.0f at (%.0f, %.0f)", o.Type, o.Width, o.Height, o.X, o.Y)))
		}
	}

	if len(doc.Guests) > 0 {
		fmt.Println()
		fmt.Println(StyleTitle.Render("Guests"))
		for _, g := range doc.Guests {
			place := styleUnseated.Render("unassigned")
			if g.Seated() {
				if t, ok := doc.Table(*g.TableID); ok {
					place = styleSeated.Render(fmt.Sprintf("%s seat %d", t.Name, *g.SeatIndex+1))
				}
			}
			detail := g.Meal
			if g.Group != "" {
				detail = g.Group + " · " + detail
			}
			fmt.Printf("  %s %s %s\n",
				StyleValue.Render(fmt.Sprintf("%-20s", g.Name)),
				StyleDim.Render(fmt.Sprintf("%-24s", detail)),
				place)
		}
	}
}

// presetKey reduces a preset label like "Small (40×30 ft)" to the flag
// value "small".
func presetKey(p seating.FloorPreset) string {
	key, _, _ := strings.Cut(p.Label, " ")
	return strings.ToLower(key)
}

// presetNames lists the floor presets for flag help.
func presetNames() string {
	keys := make([]string, len(seating.FloorPresets))
	for i, p := range seating.FloorPresets {
		keys[i] = presetKey(p)
	}
	return strings.Join(keys, ", ")
}

func presetByName(name string) (seating.FloorPreset, bool) {
	for _, p := range seating.FloorPresets {
		if presetKey(p) == strings.ToLower(name) {
			return p, true
		}
	}
	return seating.FloorPreset{}, false
}

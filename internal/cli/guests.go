package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	apperrors "github.com/ethan-kaseff/seating-chart/pkg/errors"
	"github.com/ethan-kaseff/seating-chart/pkg/seating"
	"github.com/ethan-kaseff/seating-chart/pkg/seating/editor"
)

// guestCommand creates the guest command group.
func (c *CLI) guestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guest",
		Short: "Manage the guest list",
	}
	cmd.AddCommand(c.guestAddCommand())
	cmd.AddCommand(c.guestUpdateCommand())
	cmd.AddCommand(c.guestRemoveCommand())
	return cmd
}

// guestAddCommand creates the guest add command.
func (c *CLI) guestAddCommand() *cobra.Command {
	var (
		name    string
		group   string
		meal    string
		dietary []string
	)

	cmd := &cobra.Command{
		Use:   "add <event-id>",
		Short: "Add a guest to an event",
		Long: `Add a guest to an event.

Meal defaults to Standard. Dietary restrictions can be given multiple
times or comma-separated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := apperrors.ValidateGuestName(name); err != nil {
				return err
			}
			return c.withEvent(cmd.Context(), args[0], func(ed *editor.Editor) error {
				g := ed.AddGuest(name, group, meal, dietary)
				printSuccess("Added guest %s", StyleHighlight.Render(g.Name))
				printDetail("id %s · %s", g.ID, g.Meal)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "guest name (required)")
	cmd.Flags().StringVar(&group, "group", "", "group or party name, used by autoseat")
	cmd.Flags().StringVar(&meal, "meal", "", "meal choice (default Standard)")
	cmd.Flags().StringSliceVar(&dietary, "dietary", nil, "dietary restrictions")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// guestUpdateCommand creates the guest update command.
func (c *CLI) guestUpdateCommand() *cobra.Command {
	var (
		name    string
		group   string
		meal    string
		dietary []string
	)

	cmd := &cobra.Command{
		Use:   "update <event-id> <guest-id>",
		Short: "Update a guest's details",
		Long: `Update a guest's details.

Only the given flags change; everything else is left as it is. Seat
assignment is not part of update; use assign and unassign.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := seating.GuestPatch{}
			if cmd.Flags().Changed("name") {
				if err := apperrors.ValidateGuestName(name); err != nil {
					return err
				}
				patch.Name = &name
			}
			if cmd.Flags().Changed("group") {
				patch.Group = &group
			}
			if cmd.Flags().Changed("meal") {
				patch.Meal = &meal
			}
			if cmd.Flags().Changed("dietary") {
				patch.Dietary = &dietary
			}

			return c.withEvent(cmd.Context(), args[0], func(ed *editor.Editor) error {
				if !ed.Dispatch(seating.UpdateGuest{ID: args[1], Patch: patch}) {
					return apperrors.New(apperrors.ErrCodeGuestNotFound, "guest %s not found", args[1])
				}
				printSuccess("Updated guest %s", args[1])
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "guest name")
	cmd.Flags().StringVar(&group, "group", "", "group or party name")
	cmd.Flags().StringVar(&meal, "meal", "", "meal choice")
	cmd.Flags().StringSliceVar(&dietary, "dietary", nil, "dietary restrictions")

	return cmd
}

// guestRemoveCommand creates the guest remove command.
func (c *CLI) guestRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <event-id> <guest-id>",
		Short: "Remove a guest from an event",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withEvent(cmd.Context(), args[0], func(ed *editor.Editor) error {
				if !ed.Dispatch(seating.DeleteGuest{ID: args[1]}) {
					return apperrors.New(apperrors.ErrCodeGuestNotFound, "guest %s not found", args[1])
				}
				printSuccess("Removed guest %s", args[1])
				return nil
			})
		},
	}
}

// assignCommand creates the assign command for seating a guest.
func (c *CLI) assignCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <event-id> [<guest-id> <table-id> <seat>]",
		Short: "Seat a guest at a table",
		Long: `Seat a guest at a table.

Seats are numbered from 1. Seating a guest on an occupied seat displaces
the current occupant back to the unassigned list. With only the event id,
guest and table are picked interactively.`,
		Args: cobra.MatchAll(cobra.MinimumNArgs(1), cobra.MaximumNArgs(4)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return c.withEvent(cmd.Context(), args[0], assignInteractive)
			}
			if len(args) != 4 {
				return apperrors.New(apperrors.ErrCodeInvalidInput,
					"assign takes an event id alone, or event, guest, table, and seat")
			}

			seat, err := strconv.Atoi(args[3])
			if err != nil {
				return apperrors.New(apperrors.ErrCodeInvalidInput, "bad seat number %q", args[3])
			}

			return c.withEvent(cmd.Context(), args[0], func(ed *editor.Editor) error {
				doc := ed.Document()
				if _, ok := doc.Guest(args[1]); !ok {
					return apperrors.New(apperrors.ErrCodeGuestNotFound, "guest %s not found", args[1])
				}
				table, ok := doc.Table(args[2])
				if !ok {
					return apperrors.New(apperrors.ErrCodeTableNotFound, "table %s not found", args[2])
				}
				if seat < 1 || seat > table.Capacity() {
					return apperrors.New(apperrors.ErrCodeInvalidInput,
						"seat %d out of range for %s (1-%d)", seat, table.Name, table.Capacity())
				}

				ed.Dispatch(seating.AssignGuest{
					GuestID:   args[1],
					TableID:   args[2],
					SeatIndex: seat - 1,
				})
				printSuccess("Seated guest at %s seat %d", StyleHighlight.Render(table.Name), seat)
				return nil
			})
		},
	}
}

// assignInteractive picks an unassigned guest and a table with room, then
// takes the table's first free seat.
func assignInteractive(ed *editor.Editor) error {
	doc := ed.Document()

	unassigned := doc.UnassignedGuests()
	if len(unassigned) == 0 {
		printInfo("Everyone is already seated")
		return nil
	}

	guestItems := make([]PickerItem, len(unassigned))
	for i, g := range unassigned {
		detail := g.Meal
		if g.Group != "" {
			detail = g.Group + " · " + detail
		}
		guestItems[i] = PickerItem{ID: g.ID, Title: g.Name, Detail: detail}
	}
	guest, ok := pick("Select Guest", guestItems)
	if !ok {
		printDetail("No selection made")
		return nil
	}

	tableItems := make([]PickerItem, len(doc.Tables))
	for i, t := range doc.Tables {
		free := doc.AvailableSeats(t)
		tableItems[i] = PickerItem{
			ID:       t.ID,
			Title:    t.Name,
			Detail:   fmt.Sprintf("%d of %d seats free", len(free), t.Capacity()),
			Disabled: len(free) == 0,
		}
	}
	choice, ok := pick("Select Table", tableItems)
	if !ok {
		printDetail("No selection made")
		return nil
	}

	table, _ := doc.Table(choice.ID)
	free := doc.AvailableSeats(table)
	ed.Dispatch(seating.AssignGuest{
		GuestID:   guest.ID,
		TableID:   table.ID,
		SeatIndex: free[0],
	})
	printSuccess("Seated %s at %s seat %d",
		StyleHighlight.Render(guest.Title), StyleHighlight.Render(table.Name), free[0]+1)
	return nil
}

// unassignCommand creates the unassign command.
func (c *CLI) unassignCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unassign <event-id> <guest-id>",
		Short: "Clear a guest's seat assignment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withEvent(cmd.Context(), args[0], func(ed *editor.Editor) error {
				if !ed.Dispatch(seating.UnassignGuest{GuestID: args[1]}) {
					printInfo("Guest %s was not seated", args[1])
					return nil
				}
				printSuccess("Unassigned guest %s", args[1])
				return nil
			})
		},
	}
}

package cli

import (
	"github.com/spf13/cobra"

	apperrors "github.com/ethan-kaseff/seating-chart/pkg/errors"
	"github.com/ethan-kaseff/seating-chart/pkg/excel"
	"github.com/ethan-kaseff/seating-chart/pkg/seating"
	"github.com/ethan-kaseff/seating-chart/pkg/seating/editor"
)

// importCommand creates the import command for Excel workbooks.
func (c *CLI) importCommand() *cobra.Command {
	var document bool

	cmd := &cobra.Command{
		Use:   "import <event-id> <file.xlsx>",
		Short: "Import guests or a whole event from Excel",
		Long: `Import guests or a whole event from Excel.

By default the first sheet is read as a guest list (Name, Group, Meal,
Dietary columns; only Name is required) and the guests are appended to
the event. With --document the workbook must be a full event export and
replaces the event's contents.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if document {
				doc, err := excel.ImportDocument(args[1])
				if err != nil {
					return err
				}
				return c.withEvent(cmd.Context(), args[0], func(ed *editor.Editor) error {
					ed.Dispatch(seating.SetDocument{Document: doc})
					printSuccess("Imported event from %s", args[1])
					printStats(len(doc.Tables), len(doc.Guests), len(doc.Guests)-len(doc.UnassignedGuests()))
					return nil
				})
			}

			guests, err := excel.ImportGuests(args[1])
			if err != nil {
				return err
			}
			if len(guests) == 0 {
				printInfo("No guests found in %s", args[1])
				return nil
			}

			return c.withEvent(cmd.Context(), args[0], func(ed *editor.Editor) error {
				for _, g := range guests {
					ed.AddGuest(g.Name, g.Group, g.Meal, g.Dietary)
				}
				printSuccess("Imported %d guests from %s", len(guests), args[1])
				printNextStep("Seat them", "seating autoseat "+args[0])
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&document, "document", false, "treat the workbook as a full event export")

	return cmd
}

// exportCommand creates the export command for Excel workbooks.
func (c *CLI) exportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <event-id> <file.xlsx>",
		Short: "Export an event to Excel",
		Long: `Export an event to Excel.

The summary format is a readable report of guests, tables, and totals.
The document format carries the full floor plan and can be imported
back with import --document.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withEvent(cmd.Context(), args[0], func(ed *editor.Editor) error {
				doc := ed.Document()

				var err error
				switch format {
				case "summary":
					err = excel.ExportSummary(doc, args[1])
				case "document":
					err = excel.ExportDocument(doc, args[1])
				default:
					return apperrors.New(apperrors.ErrCodeInvalidInput,
						"unknown format %q (summary or document)", format)
				}
				if err != nil {
					return err
				}

				printSuccess("Exported %s format", format)
				printFile(args[1])
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "summary", "workbook format: summary or document")

	return cmd
}

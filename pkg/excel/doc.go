// Package excel provides spreadsheet import and export for seating documents.
//
// # Overview
//
// This package bridges seating documents and .xlsx workbooks. It covers
// three workflows:
//
//   - Guest list import: read guests from a spreadsheet prepared outside
//     the tool, typically an RSVP export
//   - Full document export/import: a round-trip capable workbook holding
//     the floor plan, tables, venue objects, and guest assignments
//   - Summary export: a read-only workbook for sharing with caterers and
//     venue staff
//
// # Guest List Format
//
// Guest import reads the first sheet of the workbook. The header row is
// matched case-insensitively against a set of aliases:
//
//   - Name, Guest Name
//   - Group, Party
//   - Meal, Meal Preference
//   - Dietary, Dietary Restrictions
//
// Dietary cells are comma-separated lists. Rows without a name are
// skipped. Missing meal cells default to the standard meal option.
//
// # Document Format
//
// Full document workbooks hold four sheets: Floor, Tables, Objects, and
// Guests. Coordinates and dimensions are expressed in feet; the importer
// and exporter convert to and from floor pixels. Guests reference tables
// by name and seats by 1-based number, so the workbook stays editable by
// hand. Entity IDs are regenerated on import. Object clearance padding is
// not carried through the workbook.
//
// # Summary Format
//
// Summary export writes Guests, Tables, and Summary sheets with per-guest
// placements, per-table occupancy, and headline counts. It is not meant
// to be re-imported.
//
// # Import
//
// Use [ImportGuests] or [ImportDocument] to read from a file path, or
// [ReadGuests] and [ReadDocument] to read from any io.Reader. Import
// errors are wrapped with the sheet and row that caused the problem.
//
// # Export
//
// Use [ExportDocument] and [ExportSummary] for file-based output, or
// [WriteDocument] and [WriteSummary] to write to any io.Writer.
package excel

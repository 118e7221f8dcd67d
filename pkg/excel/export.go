package excel

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ethan-kaseff/seating-chart/pkg/seating"
)

// WriteDocument encodes a document as a four-sheet workbook and writes
// it to w. Coordinates are converted to feet, rounded to two decimals.
// The output can be re-imported with [ReadDocument].
func WriteDocument(doc seating.Document, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetFloor); err != nil {
		return fmt.Errorf("sheet %s: %w", sheetFloor, err)
	}
	if err := setRow(f, sheetFloor, 1, "Width (ft)", "Height (ft)"); err != nil {
		return err
	}
	if err := setRow(f, sheetFloor, 2, feet(doc.FloorSize.Width), feet(doc.FloorSize.Height)); err != nil {
		return err
	}

	if _, err := f.NewSheet(sheetTables); err != nil {
		return fmt.Errorf("sheet %s: %w", sheetTables, err)
	}
	if err := setRow(f, sheetTables, 1, "Name", "Capacity", "X (ft)", "Y (ft)", "Color"); err != nil {
		return err
	}
	for i, t := range doc.Tables {
		err := setRow(f, sheetTables, i+2, t.Name, t.Capacity(), feet(t.X), feet(t.Y), t.Color)
		if err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(sheetObjects); err != nil {
		return fmt.Errorf("sheet %s: %w", sheetObjects, err)
	}
	if err := setRow(f, sheetObjects, 1, "Type", "Label", "X (ft)", "Y (ft)", "Width (ft)", "Height (ft)", "Color"); err != nil {
		return err
	}
	for i, o := range doc.Objects {
		err := setRow(f, sheetObjects, i+2,
			string(o.Type), o.Label, feet(o.X), feet(o.Y), feet(o.Width), feet(o.Height), o.Color)
		if err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(sheetGuests); err != nil {
		return fmt.Errorf("sheet %s: %w", sheetGuests, err)
	}
	if err := setRow(f, sheetGuests, 1, "Name", "Group", "Meal", "Dietary", "Table", "Seat"); err != nil {
		return err
	}
	for i, g := range doc.Guests {
		tableName, seat := placement(doc, g)
		err := setRow(f, sheetGuests, i+2,
			g.Name, g.Group, g.Meal, strings.Join(g.Dietary, ", "), tableName, seat)
		if err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ExportDocument writes a document workbook to an .xlsx file at path.
func ExportDocument(doc seating.Document, path string) error {
	return exportFile(path, func(w io.Writer) error { return WriteDocument(doc, w) })
}

// WriteSummary encodes a read-only seating summary and writes it to w.
// The workbook holds a Guests sheet with per-guest placements, a Tables
// sheet with per-table occupancy, and a Summary sheet with headline
// counts.
func WriteSummary(doc seating.Document, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetGuests); err != nil {
		return fmt.Errorf("sheet %s: %w", sheetGuests, err)
	}
	if err := setRow(f, sheetGuests, 1, "Name", "Group", "Meal", "Dietary Restrictions", "Table", "Seat"); err != nil {
		return err
	}
	for i, g := range doc.Guests {
		tableName, seat := placement(doc, g)
		if tableName == "" {
			tableName = "Unassigned"
		}
		err := setRow(f, sheetGuests, i+2,
			g.Name, g.Group, g.Meal, strings.Join(g.Dietary, ", "), tableName, seat)
		if err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(sheetTables); err != nil {
		return fmt.Errorf("sheet %s: %w", sheetTables, err)
	}
	if err := setRow(f, sheetTables, 1, "Table", "Capacity", "Assigned", "Available", "Guests"); err != nil {
		return err
	}
	for i, t := range doc.Tables {
		seated := doc.SeatedGuests(t.ID)
		names := make([]string, len(seated))
		for j, g := range seated {
			names[j] = g.Name
		}
		err := setRow(f, sheetTables, i+2,
			t.Name, t.Capacity(), len(seated), t.Capacity()-len(seated), strings.Join(names, ", "))
		if err != nil {
			return err
		}
	}

	if _, err := f.NewSheet("Summary"); err != nil {
		return fmt.Errorf("sheet Summary: %w", err)
	}
	unassigned := len(doc.UnassignedGuests())
	metrics := []struct {
		name  string
		value int
	}{
		{"Total Guests", len(doc.Guests)},
		{"Assigned Guests", len(doc.Guests) - unassigned},
		{"Unassigned Guests", unassigned},
		{"Total Tables", len(doc.Tables)},
		{"Total Seats", doc.TotalSeats()},
	}
	if err := setRow(f, "Summary", 1, "Metric", "Value"); err != nil {
		return err
	}
	for i, m := range metrics {
		if err := setRow(f, "Summary", i+2, m.name, m.value); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ExportSummary writes a seating summary to an .xlsx file at path.
func ExportSummary(doc seating.Document, path string) error {
	return exportFile(path, func(w io.Writer) error { return WriteSummary(doc, w) })
}

func exportFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// placement resolves a guest's table name and 1-based seat number, or
// ("", "") when unassigned.
func placement(doc seating.Document, g seating.Guest) (string, any) {
	if !g.Seated() {
		return "", ""
	}
	t, ok := doc.Table(*g.TableID)
	if !ok {
		return "", ""
	}
	return t.Name, *g.SeatIndex + 1
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	if err := f.SetSheetRow(sheet, "A"+strconv.Itoa(row), &values); err != nil {
		return fmt.Errorf("sheet %s row %d: %w", sheet, row, err)
	}
	return nil
}

// feet converts floor pixels to feet, rounded to two decimals.
func feet(px float64) float64 {
	return math.Round(px/seating.PixelsPerFoot*100) / 100
}

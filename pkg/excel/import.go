package excel

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/ethan-kaseff/seating-chart/pkg/seating"
)

// Sheet names used by the full document format.
const (
	sheetFloor   = "Floor"
	sheetTables  = "Tables"
	sheetObjects = "Objects"
	sheetGuests  = "Guests"
)

// guestHeaderAliases maps lowercased header cells to canonical guest
// columns. Spreadsheets exported from RSVP tools vary in their headings,
// so several spellings are accepted for each column.
var guestHeaderAliases = map[string]string{
	"name":                 "name",
	"guest name":           "name",
	"group":                "group",
	"party":                "group",
	"meal":                 "meal",
	"meal preference":      "meal",
	"dietary":              "dietary",
	"dietary restrictions": "dietary",
}

// ReadGuests decodes a guest list from the first sheet of an .xlsx
// workbook. The header row is matched against the accepted column
// aliases; unrecognized columns are ignored. Rows with an empty name are
// skipped, and a missing meal defaults to the standard meal option.
//
// The returned guests carry fresh IDs and no seat assignments. ReadGuests
// does not close r.
func ReadGuests(r io.Reader) ([]seating.Guest, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := map[string]int{}
	for i, h := range rows[0] {
		if field, ok := guestHeaderAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			if _, seen := cols[field]; !seen {
				cols[field] = i
			}
		}
	}
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("sheet %s: no name column found", sheets[0])
	}

	var guests []seating.Guest
	for _, row := range rows[1:] {
		name := strings.TrimSpace(cell(row, cols, "name"))
		if name == "" {
			continue
		}
		meal := strings.TrimSpace(cell(row, cols, "meal"))
		if meal == "" {
			meal = seating.DefaultMeal
		}
		guests = append(guests, seating.Guest{
			ID:      "guest-" + uuid.NewString(),
			Name:    name,
			Group:   strings.TrimSpace(cell(row, cols, "group")),
			Meal:    meal,
			Dietary: splitDietary(cell(row, cols, "dietary")),
		})
	}
	return guests, nil
}

// ImportGuests reads a guest list workbook at path.
func ImportGuests(path string) ([]seating.Guest, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadGuests(f)
}

// ReadDocument decodes a full document workbook written by
// [WriteDocument]. Entity IDs are regenerated; guests are matched to
// tables by name and to seats by 1-based number.
//
// ReadDocument returns an error if:
//   - A required sheet is missing
//   - A numeric cell cannot be parsed
//   - Two tables share a name
//   - A guest references an unknown table, an out-of-range seat, or a
//     seat already taken by an earlier row
//
// Errors are wrapped with the sheet and row that caused the problem.
// ReadDocument does not close r.
func ReadDocument(r io.Reader) (seating.Document, error) {
	doc := seating.NewDocument()

	f, err := excelize.OpenReader(r)
	if err != nil {
		return doc, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	for _, sheet := range []string{sheetFloor, sheetTables, sheetObjects, sheetGuests} {
		if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
			return doc, fmt.Errorf("sheet %s missing", sheet)
		}
	}

	if err := readFloor(f, &doc); err != nil {
		return doc, err
	}
	tableIDs, err := readTables(f, &doc)
	if err != nil {
		return doc, err
	}
	if err := readObjects(f, &doc); err != nil {
		return doc, err
	}
	if err := readGuestSheet(f, &doc, tableIDs); err != nil {
		return doc, err
	}

	return doc.RefreshSeatCaches(), nil
}

// ImportDocument reads a full document workbook at path.
func ImportDocument(path string) (seating.Document, error) {
	f, err := openFile(path)
	if err != nil {
		return seating.NewDocument(), err
	}
	defer f.Close()
	return ReadDocument(f)
}

func readFloor(f *excelize.File, doc *seating.Document) error {
	rows, err := f.GetRows(sheetFloor)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", sheetFloor, err)
	}
	if len(rows) < 2 {
		return nil
	}
	w, err := parseFeet(rows[1], 0, sheetFloor, 2)
	if err != nil {
		return err
	}
	h, err := parseFeet(rows[1], 1, sheetFloor, 2)
	if err != nil {
		return err
	}
	if w > 0 && h > 0 {
		doc.FloorSize = seating.FloorSize{Width: w, Height: h}
	}
	return nil
}

func readTables(f *excelize.File, doc *seating.Document) (map[string]string, error) {
	rows, err := f.GetRows(sheetTables)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheetTables, err)
	}

	ids := map[string]string{}
	for i, row := range skipHeader(rows) {
		rowNum := i + 2
		name := strings.TrimSpace(at(row, 0))
		if name == "" {
			continue
		}
		if _, dup := ids[name]; dup {
			return nil, fmt.Errorf("sheet %s row %d: duplicate table name %q", sheetTables, rowNum, name)
		}
		capacity, err := parseInt(row, 1, sheetTables, rowNum)
		if err != nil {
			return nil, err
		}
		if capacity < 0 {
			return nil, fmt.Errorf("sheet %s row %d: negative capacity", sheetTables, rowNum)
		}
		x, err := parseFeet(row, 2, sheetTables, rowNum)
		if err != nil {
			return nil, err
		}
		y, err := parseFeet(row, 3, sheetTables, rowNum)
		if err != nil {
			return nil, err
		}
		color := strings.TrimSpace(at(row, 4))
		if color == "" {
			color = seating.TableColors[len(doc.Tables)%len(seating.TableColors)]
		}

		id := "table-" + uuid.NewString()
		ids[name] = id
		doc.Tables = append(doc.Tables, seating.Table{
			ID:    id,
			Name:  name,
			X:     x,
			Y:     y,
			Seats: make([]seating.Seat, capacity),
			Color: color,
		})
	}
	return ids, nil
}

func readObjects(f *excelize.File, doc *seating.Document) error {
	rows, err := f.GetRows(sheetObjects)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", sheetObjects, err)
	}

	for i, row := range skipHeader(rows) {
		rowNum := i + 2
		typ := strings.TrimSpace(at(row, 0))
		if typ == "" {
			continue
		}
		x, err := parseFeet(row, 2, sheetObjects, rowNum)
		if err != nil {
			return err
		}
		y, err := parseFeet(row, 3, sheetObjects, rowNum)
		if err != nil {
			return err
		}
		w, err := parseFeet(row, 4, sheetObjects, rowNum)
		if err != nil {
			return err
		}
		h, err := parseFeet(row, 5, sheetObjects, rowNum)
		if err != nil {
			return err
		}
		obj := seating.VenueObject{
			ID:     "object-" + uuid.NewString(),
			Type:   seating.ObjectType(typ),
			Label:  strings.TrimSpace(at(row, 1)),
			X:      x,
			Y:      y,
			Width:  w,
			Height: h,
			Color:  strings.TrimSpace(at(row, 6)),
		}
		if obj.Label == "" {
			obj.Label = seating.ObjectSpecFor(obj.Type).Label
		}
		doc.Objects = append(doc.Objects, obj)
	}
	return nil
}

func readGuestSheet(f *excelize.File, doc *seating.Document, tableIDs map[string]string) error {
	rows, err := f.GetRows(sheetGuests)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", sheetGuests, err)
	}

	taken := map[string]bool{}
	for i, row := range skipHeader(rows) {
		rowNum := i + 2
		name := strings.TrimSpace(at(row, 0))
		if name == "" {
			continue
		}
		meal := strings.TrimSpace(at(row, 2))
		if meal == "" {
			meal = seating.DefaultMeal
		}
		g := seating.Guest{
			ID:      "guest-" + uuid.NewString(),
			Name:    name,
			Group:   strings.TrimSpace(at(row, 1)),
			Meal:    meal,
			Dietary: splitDietary(at(row, 3)),
		}

		tableName := strings.TrimSpace(at(row, 4))
		seatCell := strings.TrimSpace(at(row, 5))
		if tableName != "" {
			tableID, ok := tableIDs[tableName]
			if !ok {
				return fmt.Errorf("sheet %s row %d: unknown table %q", sheetGuests, rowNum, tableName)
			}
			seatNum, err := strconv.Atoi(seatCell)
			if err != nil {
				return fmt.Errorf("sheet %s row %d: bad seat %q", sheetGuests, rowNum, seatCell)
			}
			var capacity int
			if t, ok := doc.Table(tableID); ok {
				capacity = t.Capacity()
			}
			if seatNum < 1 || seatNum > capacity {
				return fmt.Errorf("sheet %s row %d: seat %d out of range for table %q", sheetGuests, rowNum, seatNum, tableName)
			}
			key := fmt.Sprintf("%s#%d", tableID, seatNum)
			if taken[key] {
				return fmt.Errorf("sheet %s row %d: seat %d at table %q already taken", sheetGuests, rowNum, seatNum, tableName)
			}
			taken[key] = true

			seatIndex := seatNum - 1
			g.TableID = &tableID
			g.SeatIndex = &seatIndex
		}

		doc.Guests = append(doc.Guests, g)
	}
	return nil
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

func splitDietary(cell string) []string {
	var out []string
	for _, part := range strings.Split(cell, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// cell returns the named column of row, or "" when the column is absent.
func cell(row []string, cols map[string]int, field string) string {
	idx, ok := cols[field]
	if !ok {
		return ""
	}
	return at(row, idx)
}

// at guards against the short rows GetRows produces when trailing cells
// are empty.
func at(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func skipHeader(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	return rows[1:]
}

func parseInt(row []string, idx int, sheet string, rowNum int) (int, error) {
	s := strings.TrimSpace(at(row, idx))
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("sheet %s row %d: bad number %q", sheet, rowNum, s)
	}
	return n, nil
}

// parseFeet parses a cell holding feet and converts to floor pixels.
func parseFeet(row []string, idx int, sheet string, rowNum int) (float64, error) {
	s := strings.TrimSpace(at(row, idx))
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("sheet %s row %d: bad number %q", sheet, rowNum, s)
	}
	return math.Round(v*seating.PixelsPerFoot*100) / 100, nil
}

package excel

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ethan-kaseff/seating-chart/pkg/seating"
)

// buildWorkbook assembles an in-memory .xlsx from named sheets. Sheet
// order follows the order slice so the first sheet is deterministic.
func buildWorkbook(t *testing.T, order []string, sheets map[string][][]any) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			row := row
			require.NoError(t, f.SetSheetRow(name, "A"+strconv.Itoa(r+1), &row))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

func TestReadGuestsHeaderAliases(t *testing.T) {
	r := buildWorkbook(t, []string{"RSVPs"}, map[string][][]any{
		"RSVPs": {
			{"Guest Name", "Party", "Meal Preference", "Dietary Restrictions"},
			{"Ada Lovelace", "Byron", "Vegetarian", "Nut Allergy, Gluten-Free"},
			{"", "Ghost", "Vegan", ""},
			{"Grace Hopper", "Navy", "", "Dairy-Free"},
		},
	})

	guests, err := ReadGuests(r)
	require.NoError(t, err)
	require.Len(t, guests, 2)

	require.Equal(t, "Ada Lovelace", guests[0].Name)
	require.Equal(t, "Byron", guests[0].Group)
	require.Equal(t, "Vegetarian", guests[0].Meal)
	require.Equal(t, []string{"Nut Allergy", "Gluten-Free"}, guests[0].Dietary)
	require.NotEmpty(t, guests[0].ID)
	require.Nil(t, guests[0].TableID)
	require.Nil(t, guests[0].SeatIndex)

	require.Equal(t, "Grace Hopper", guests[1].Name)
	require.Equal(t, seating.DefaultMeal, guests[1].Meal)
	require.Equal(t, []string{"Dairy-Free"}, guests[1].Dietary)
	require.NotEqual(t, guests[0].ID, guests[1].ID)
}

func TestReadGuestsRequiresNameColumn(t *testing.T) {
	r := buildWorkbook(t, []string{"Sheet"}, map[string][][]any{
		"Sheet": {
			{"Email", "Phone"},
			{"ada@example.com", "555-0100"},
		},
	})

	_, err := ReadGuests(r)
	require.ErrorContains(t, err, "no name column")
}

func TestReadGuestsEmptyWorkbook(t *testing.T) {
	r := buildWorkbook(t, []string{"Sheet"}, map[string][][]any{"Sheet": nil})

	guests, err := ReadGuests(r)
	require.NoError(t, err)
	require.Empty(t, guests)
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := seating.NewDocument()
	doc.FloorSize = seating.FloorSize{Width: 1500, Height: 900}
	doc.Tables = []seating.Table{
		{ID: "t1", Name: "Head Table", X: 300, Y: 150, Seats: make([]seating.Seat, 8), Color: "#3B82F6"},
		{ID: "t2", Name: "Table 2", X: 512.5, Y: 323.2, Seats: make([]seating.Seat, 4), Color: "#EF4444"},
	}
	doc.Objects = []seating.VenueObject{
		{ID: "o1", Type: seating.ObjectStage, Label: "Stage", X: 600, Y: 30, Width: 200, Height: 80, Color: "#8B5CF6"},
	}
	doc.Guests = []seating.Guest{
		{ID: "g1", Name: "Ada", Group: "Byron", Meal: "Vegan", Dietary: []string{"Nut Allergy"}},
		{ID: "g2", Name: "Grace", Group: "Navy", Meal: "Standard"},
	}
	var changed bool
	doc, changed = seating.Apply(doc, seating.AssignGuest{GuestID: "g1", TableID: "t1", SeatIndex: 2})
	require.True(t, changed)

	var buf bytes.Buffer
	require.NoError(t, WriteDocument(doc, &buf))

	got, err := ReadDocument(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	require.InDelta(t, 1500, got.FloorSize.Width, 0.1)
	require.InDelta(t, 900, got.FloorSize.Height, 0.1)

	require.Len(t, got.Tables, 2)
	require.Equal(t, "Head Table", got.Tables[0].Name)
	require.Equal(t, 8, got.Tables[0].Capacity())
	require.Equal(t, "#3B82F6", got.Tables[0].Color)
	require.InDelta(t, 300, got.Tables[0].X, 0.1)
	require.InDelta(t, 512.5, got.Tables[1].X, 0.1)
	require.InDelta(t, 323.2, got.Tables[1].Y, 0.1)
	// IDs are regenerated, never reused from the workbook.
	require.NotEqual(t, "t1", got.Tables[0].ID)

	require.Len(t, got.Objects, 1)
	require.Equal(t, seating.ObjectStage, got.Objects[0].Type)
	require.InDelta(t, 200, got.Objects[0].Width, 0.1)

	require.Len(t, got.Guests, 2)
	ada := got.Guests[0]
	require.Equal(t, "Ada", ada.Name)
	require.Equal(t, []string{"Nut Allergy"}, ada.Dietary)
	require.NotNil(t, ada.TableID)
	require.Equal(t, got.Tables[0].ID, *ada.TableID)
	require.NotNil(t, ada.SeatIndex)
	require.Equal(t, 2, *ada.SeatIndex)
	// Seat caches are rebuilt on import.
	require.NotNil(t, got.Tables[0].Seats[2].GuestID)
	require.Equal(t, ada.ID, *got.Tables[0].Seats[2].GuestID)

	grace := got.Guests[1]
	require.False(t, grace.Seated())
}

func documentSheets() map[string][][]any {
	return map[string][][]any{
		sheetFloor:   {{"Width (ft)", "Height (ft)"}, {80, 53.33}},
		sheetTables:  {{"Name", "Capacity", "X (ft)", "Y (ft)", "Color"}, {"Table 1", 4, 20, 10, "#3B82F6"}},
		sheetObjects: {{"Type", "Label", "X (ft)", "Y (ft)", "Width (ft)", "Height (ft)", "Color"}},
		sheetGuests:  {{"Name", "Group", "Meal", "Dietary", "Table", "Seat"}, {"Ada", "Byron", "Vegan", "", "Table 1", 1}},
	}
}

func TestReadDocumentMissingSheet(t *testing.T) {
	sheets := documentSheets()
	delete(sheets, sheetObjects)
	r := buildWorkbook(t, []string{sheetFloor, sheetTables, sheetGuests}, sheets)

	_, err := ReadDocument(r)
	require.ErrorContains(t, err, "Objects")
}

func TestReadDocumentUnknownTable(t *testing.T) {
	sheets := documentSheets()
	sheets[sheetGuests] = [][]any{
		{"Name", "Group", "Meal", "Dietary", "Table", "Seat"},
		{"Ada", "", "", "", "Table 99", 1},
	}
	r := buildWorkbook(t, []string{sheetFloor, sheetTables, sheetObjects, sheetGuests}, sheets)

	_, err := ReadDocument(r)
	require.ErrorContains(t, err, "unknown table")
}

func TestReadDocumentSeatValidation(t *testing.T) {
	t.Run("out of range", func(t *testing.T) {
		sheets := documentSheets()
		sheets[sheetGuests] = [][]any{
			{"Name", "Group", "Meal", "Dietary", "Table", "Seat"},
			{"Ada", "", "", "", "Table 1", 5},
		}
		r := buildWorkbook(t, []string{sheetFloor, sheetTables, sheetObjects, sheetGuests}, sheets)

		_, err := ReadDocument(r)
		require.ErrorContains(t, err, "out of range")
	})

	t.Run("taken", func(t *testing.T) {
		sheets := documentSheets()
		sheets[sheetGuests] = [][]any{
			{"Name", "Group", "Meal", "Dietary", "Table", "Seat"},
			{"Ada", "", "", "", "Table 1", 1},
			{"Grace", "", "", "", "Table 1", 1},
		}
		r := buildWorkbook(t, []string{sheetFloor, sheetTables, sheetObjects, sheetGuests}, sheets)

		_, err := ReadDocument(r)
		require.ErrorContains(t, err, "already taken")
	})

	t.Run("duplicate table name", func(t *testing.T) {
		sheets := documentSheets()
		sheets[sheetTables] = append(sheets[sheetTables], []any{"Table 1", 4, 30, 10, ""})
		r := buildWorkbook(t, []string{sheetFloor, sheetTables, sheetObjects, sheetGuests}, sheets)

		_, err := ReadDocument(r)
		require.ErrorContains(t, err, "duplicate table name")
	})
}

func TestWriteSummary(t *testing.T) {
	doc := seating.NewDocument()
	doc.Tables = []seating.Table{
		{ID: "t1", Name: "Head Table", Seats: make([]seating.Seat, 4), Color: "#3B82F6"},
	}
	doc.Guests = []seating.Guest{
		{ID: "g1", Name: "Ada", Group: "Byron", Meal: "Vegan", Dietary: []string{"Nut Allergy"}},
		{ID: "g2", Name: "Grace", Group: "Navy", Meal: "Standard"},
	}
	doc, _ = seating.Apply(doc, seating.AssignGuest{GuestID: "g1", TableID: "t1", SeatIndex: 0})

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(doc, &buf))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	get := func(sheet, cell string) string {
		v, err := f.GetCellValue(sheet, cell)
		require.NoError(t, err)
		return v
	}

	require.Equal(t, "Ada", get(sheetGuests, "A2"))
	require.Equal(t, "Head Table", get(sheetGuests, "E2"))
	require.Equal(t, "1", get(sheetGuests, "F2"))
	require.Equal(t, "Unassigned", get(sheetGuests, "E3"))

	require.Equal(t, "Head Table", get(sheetTables, "A2"))
	require.Equal(t, "4", get(sheetTables, "B2"))
	require.Equal(t, "1", get(sheetTables, "C2"))
	require.Equal(t, "3", get(sheetTables, "D2"))
	require.Equal(t, "Ada", get(sheetTables, "E2"))

	require.Equal(t, "Total Guests", get("Summary", "A2"))
	require.Equal(t, "2", get("Summary", "B2"))
	require.Equal(t, "Assigned Guests", get("Summary", "A3"))
	require.Equal(t, "1", get("Summary", "B3"))
	require.Equal(t, "Total Seats", get("Summary", "A6"))
	require.Equal(t, "4", get("Summary", "B6"))
}

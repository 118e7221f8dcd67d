package seating

import "encoding/json"

// =============================================================================
// Core Entities
// =============================================================================

// Guest is a single attendee on the guest list.
//
// TableID and SeatIndex are either both nil (unseated) or both non-nil
// (seated). The reducer maintains this pairing; callers should treat the two
// fields as a unit and never set one without the other.
type Guest struct {
	ID        string   `json:"id" bson:"id"`
	Name      string   `json:"name" bson:"name"`
	Group     string   `json:"group" bson:"group"`
	Meal      string   `json:"meal" bson:"meal"`
	Dietary   []string `json:"dietary" bson:"dietary"`
	TableID   *string  `json:"tableId" bson:"table_id"`
	SeatIndex *int     `json:"seatIndex" bson:"seat_index"`
}

// Seated reports whether the guest is assigned to a seat.
func (g Guest) Seated() bool { return g.TableID != nil && g.SeatIndex != nil }

// SeatedAt reports whether the guest occupies the given seat.
func (g Guest) SeatedAt(tableID string, seatIndex int) bool {
	return g.TableID != nil && *g.TableID == tableID &&
		g.SeatIndex != nil && *g.SeatIndex == seatIndex
}

// Seat is a single seat slot at a table. GuestID is a denormalized cache for
// display; the guest records are the source of truth for occupancy. Use
// Document.RefreshSeatCaches to rebuild it.
type Seat struct {
	GuestID *string `json:"guestId" bson:"guest_id"`
}

// Table is a round table on the floor plan. X and Y are the center point in
// floor coordinate units (pixels).
type Table struct {
	ID    string  `json:"id" bson:"id"`
	Name  string  `json:"name" bson:"name"`
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
	Seats []Seat  `json:"seats" bson:"seats"`
	Color string  `json:"color" bson:"color"`
}

// Capacity returns the number of seat slots at the table.
func (t Table) Capacity() int { return len(t.Seats) }

// ObjectType identifies the kind of a venue object.
type ObjectType string

// Venue object types.
const (
	ObjectStage      ObjectType = "stage"
	ObjectBar        ObjectType = "bar"
	ObjectDancefloor ObjectType = "dancefloor"
	ObjectEntrance   ObjectType = "entrance"
	ObjectBuffet     ObjectType = "buffet"
	ObjectDJ         ObjectType = "dj"
	ObjectPhotobooth ObjectType = "photobooth"
	ObjectRestrooms  ObjectType = "restrooms"
	ObjectKitchen    ObjectType = "kitchen"
	ObjectCustom     ObjectType = "custom"
)

// Padding is a per-side exclusion margin around a venue object, in floor
// units. The arrangement engine keeps table centers out of the object's
// bounding box expanded by these margins.
type Padding struct {
	Top    float64 `json:"top" bson:"top"`
	Right  float64 `json:"right" bson:"right"`
	Bottom float64 `json:"bottom" bson:"bottom"`
	Left   float64 `json:"left" bson:"left"`
}

// VenueObject is a fixed rectangular fixture on the floor plan (stage, bar,
// dance floor, ...). X and Y are the top-left corner.
type VenueObject struct {
	ID      string     `json:"id" bson:"id"`
	Type    ObjectType `json:"type" bson:"type"`
	Label   string     `json:"label" bson:"label"`
	X       float64    `json:"x" bson:"x"`
	Y       float64    `json:"y" bson:"y"`
	Width   float64    `json:"width" bson:"width"`
	Height  float64    `json:"height" bson:"height"`
	Color   string     `json:"color" bson:"color"`
	Padding *Padding   `json:"padding,omitempty" bson:"padding,omitempty"`
}

// FloorSize is the floor plan dimensions in floor units.
type FloorSize struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// =============================================================================
// Document - Aggregate Root
// =============================================================================

// Document is the full seating chart: tables, guests, venue objects, floor
// dimensions, and the transient view zoom. It is the single aggregate the
// reducer transitions over; entities have no identity outside it.
//
// Documents are treated as immutable values. The reducer returns a new
// Document on every effective transition and the same value on no-ops, so
// documents can be held on history stacks and compared cheaply.
type Document struct {
	Tables    []Table       `json:"tables" bson:"tables"`
	Guests    []Guest       `json:"guests" bson:"guests"`
	Objects   []VenueObject `json:"objects" bson:"objects"`
	FloorSize FloorSize     `json:"floorSize" bson:"floor_size"`
	Zoom      float64       `json:"zoom" bson:"zoom"`
}

// NewDocument returns an empty document with the default floor size and zoom.
func NewDocument() Document {
	return Document{
		Tables:    []Table{},
		Guests:    []Guest{},
		Objects:   []VenueObject{},
		FloorSize: FloorSize{Width: DefaultFloorWidth, Height: DefaultFloorHeight},
		Zoom:      1.0,
	}
}

// Table returns the table with the given id, or false if absent.
func (d Document) Table(id string) (Table, bool) {
	for _, t := range d.Tables {
		if t.ID == id {
			return t, true
		}
	}
	return Table{}, false
}

// Guest returns the guest with the given id, or false if absent.
func (d Document) Guest(id string) (Guest, bool) {
	for _, g := range d.Guests {
		if g.ID == id {
			return g, true
		}
	}
	return Guest{}, false
}

// Object returns the venue object with the given id, or false if absent.
func (d Document) Object(id string) (VenueObject, bool) {
	for _, o := range d.Objects {
		if o.ID == id {
			return o, true
		}
	}
	return VenueObject{}, false
}

// UnassignedGuests returns the guests with no table assignment, in guest
// list order.
func (d Document) UnassignedGuests() []Guest {
	var out []Guest
	for _, g := range d.Guests {
		if g.TableID == nil {
			out = append(out, g)
		}
	}
	return out
}

// SeatedGuests returns the guests seated at the given table, in guest list
// order.
func (d Document) SeatedGuests(tableID string) []Guest {
	var out []Guest
	for _, g := range d.Guests {
		if g.TableID != nil && *g.TableID == tableID {
			out = append(out, g)
		}
	}
	return out
}

// AvailableSeats returns the seat indexes at the given table not claimed by
// any guest record, in ascending order.
func (d Document) AvailableSeats(t Table) []int {
	taken := make(map[int]bool, len(t.Seats))
	for _, g := range d.Guests {
		if g.TableID != nil && *g.TableID == t.ID && g.SeatIndex != nil {
			taken[*g.SeatIndex] = true
		}
	}
	var out []int
	for i := range t.Seats {
		if !taken[i] {
			out = append(out, i)
		}
	}
	return out
}

// TotalSeats returns the seat count summed across all tables.
func (d Document) TotalSeats() int {
	n := 0
	for _, t := range d.Tables {
		n += len(t.Seats)
	}
	return n
}

// RefreshSeatCaches returns a copy of the document with every table's
// Seat.GuestID cache recomputed from the guest records. The cache is a
// derived view for display; nothing in the core reads it back.
func (d Document) RefreshSeatCaches() Document {
	occupied := make(map[string]map[int]string)
	for _, g := range d.Guests {
		if !g.Seated() {
			continue
		}
		m := occupied[*g.TableID]
		if m == nil {
			m = make(map[int]string)
			occupied[*g.TableID] = m
		}
		m[*g.SeatIndex] = g.ID
	}

	tables := make([]Table, len(d.Tables))
	for i, t := range d.Tables {
		seats := make([]Seat, len(t.Seats))
		for j := range t.Seats {
			if id, ok := occupied[t.ID][j]; ok {
				seats[j] = Seat{GuestID: ptr(id)}
			}
		}
		t.Seats = seats
		tables[i] = t
	}
	d.Tables = tables
	return d
}

// FitZoom returns the zoom level that fits the floor into a viewport of the
// given dimensions, clamped to the allowed zoom range.
func (d Document) FitZoom(viewportWidth, viewportHeight float64) float64 {
	if d.FloorSize.Width <= 0 || d.FloorSize.Height <= 0 {
		return 1.0
	}
	scaleX := viewportWidth / d.FloorSize.Width
	scaleY := viewportHeight / d.FloorSize.Height
	z := min(scaleX, scaleY)
	return clampZoom(z)
}

// Clone returns a deep copy of the document. The reducer shares unchanged
// slices between versions; Clone is for callers that need a fully detached
// value (e.g., handing a document across an API boundary for mutation).
func (d Document) Clone() Document {
	data, err := json.Marshal(d)
	if err != nil {
		// Document contains only plain data types; marshal cannot fail.
		panic(err)
	}
	var out Document
	if err := json.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	return out
}

func ptr[T any](v T) *T { return &v }

func clampZoom(z float64) float64 {
	if z < MinZoom {
		return MinZoom
	}
	if z > MaxZoom {
		return MaxZoom
	}
	return z
}

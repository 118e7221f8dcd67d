package seating

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Zoom bounds for the floor plan view.
const (
	MinZoom = 0.5
	MaxZoom = 2.0
)

// PixelsPerFoot converts between the floor coordinate space (pixels) and
// real-world venue measurements (feet). Import/export adapters own the
// conversion; the core works in pixels only.
const PixelsPerFoot = 15.0

// Default floor dimensions in pixels (80×53 ft).
const (
	DefaultFloorWidth  = 1200.0
	DefaultFloorHeight = 800.0
)

// DefaultMeal is the meal choice assigned when none is specified.
const DefaultMeal = "Standard"

// MealOptions is the fixed set of meal choices.
var MealOptions = []string{
	"Standard",
	"Vegetarian",
	"Vegan",
	"Kosher",
	"Halal",
	"Gluten-Free",
	"Kids Meal",
}

// DietaryOptions is the suggested set of dietary restriction labels. The
// Guest.Dietary field is free-form; these are offered as common choices.
var DietaryOptions = []string{
	"Nut Allergy",
	"Dairy-Free",
	"Shellfish Allergy",
	"Egg Allergy",
	"Soy Allergy",
	"Low Sodium",
	"Diabetic-Friendly",
}

// TableColors is the palette cycled through when creating tables.
var TableColors = []string{
	"#3B82F6", // blue
	"#10B981", // green
	"#F59E0B", // amber
	"#EF4444", // red
	"#8B5CF6", // purple
	"#EC4899", // pink
	"#06B6D4", // cyan
	"#F97316", // orange
}

// FloorPreset is a named standard venue size.
type FloorPreset struct {
	Label  string
	Width  float64
	Height float64
}

// FloorPresets are common venue sizes offered when creating or resizing a
// floor plan.
var FloorPresets = []FloorPreset{
	{Label: "Small (40×30 ft)", Width: 40 * PixelsPerFoot, Height: 30 * PixelsPerFoot},
	{Label: "Medium (60×40 ft)", Width: 60 * PixelsPerFoot, Height: 40 * PixelsPerFoot},
	{Label: "Large (100×60 ft)", Width: 100 * PixelsPerFoot, Height: 60 * PixelsPerFoot},
	{Label: "Ballroom (150×80 ft)", Width: 150 * PixelsPerFoot, Height: 80 * PixelsPerFoot},
}

// ObjectSpec describes a venue object type in the catalog: its display label
// and the default footprint used when one is placed.
type ObjectSpec struct {
	Type          ObjectType
	Label         string
	DefaultWidth  float64
	DefaultHeight float64
}

// ObjectCatalog lists every venue object type with its defaults.
var ObjectCatalog = []ObjectSpec{
	{Type: ObjectStage, Label: "Stage", DefaultWidth: 200, DefaultHeight: 80},
	{Type: ObjectBar, Label: "Bar", DefaultWidth: 120, DefaultHeight: 40},
	{Type: ObjectDancefloor, Label: "Dance Floor", DefaultWidth: 150, DefaultHeight: 150},
	{Type: ObjectEntrance, Label: "Entrance", DefaultWidth: 60, DefaultHeight: 30},
	{Type: ObjectBuffet, Label: "Buffet", DefaultWidth: 150, DefaultHeight: 50},
	{Type: ObjectDJ, Label: "DJ Booth", DefaultWidth: 80, DefaultHeight: 60},
	{Type: ObjectPhotobooth, Label: "Photo Booth", DefaultWidth: 80, DefaultHeight: 80},
	{Type: ObjectRestrooms, Label: "Restrooms", DefaultWidth: 80, DefaultHeight: 60},
	{Type: ObjectKitchen, Label: "Kitchen", DefaultWidth: 120, DefaultHeight: 80},
	{Type: ObjectCustom, Label: "Custom", DefaultWidth: 80, DefaultHeight: 80},
}

// ObjectSpecFor returns the catalog entry for the given type. Unknown types
// fall back to the custom entry.
func ObjectSpecFor(t ObjectType) ObjectSpec {
	for _, spec := range ObjectCatalog {
		if spec.Type == t {
			return spec
		}
	}
	return ObjectSpec{Type: ObjectCustom, Label: "Custom", DefaultWidth: 80, DefaultHeight: 80}
}

package presenter

import "fmt"

// Slot names understood by Row.Slot and Row.SetSlot.
const (
	SlotSection         = "section"
	SlotPrimaryLocation = "primary_location"
	SlotLocationOffset  = "location_offset"
	SlotDate            = "date"
	SlotTime            = "time"
	SlotURL             = "url"
)

// NoMagnitude marks a row whose section is not a magnitude.
const NoMagnitude = -1

// Row is the reusable view-model for one list entry. The host owns rows and
// may hand the same Row to Render repeatedly.
type Row struct {
	Section         string
	PrimaryLocation string
	LocationOffset  string
	Date            string
	Time            string
	URL             string

	// Magnitude is the colour bucket (1..10) of a numeric section, or
	// NoMagnitude.
	Magnitude int
}

// NewRow returns an empty row.
func NewRow() *Row {
	return &Row{Magnitude: NoMagnitude}
}

// Slot returns the text of the named slot. It panics on an unknown name.
func (r *Row) Slot(name string) string {
	return *r.slot(name)
}

// SetSlot replaces the text of the named slot. It panics on an unknown name.
func (r *Row) SetSlot(name, text string) {
	*r.slot(name) = text
}

func (r *Row) slot(name string) *string {
	switch name {
	case SlotSection:
		return &r.Section
	case SlotPrimaryLocation:
		return &r.PrimaryLocation
	case SlotLocationOffset:
		return &r.LocationOffset
	case SlotDate:
		return &r.Date
	case SlotTime:
		return &r.Time
	case SlotURL:
		return &r.URL
	}
	panic(fmt.Sprintf("presenter: row has no slot %q", name))
}

package domain

// Location is one of the fixed destinations hotels are grouped by.
type Location string

// Destinations is the closed set of locations, in tab order.
var Destinations = []Location{
	"哈尔滨", "亚布力", "雪乡", "延吉", "长白山", "横道河子", "二浪河", "长春",
}

// IsDestination reports whether l belongs to the fixed destination set.
func IsDestination(l Location) bool {
	for _, d := range Destinations {
		if d == l {
			return true
		}
	}
	return false
}

type Hotel struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Location    Location `json:"location"`
	Stars       int      `json:"stars"`
	Rating      float64  `json:"rating"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	BookingURL  string   `json:"bookingUrl"` // date (YYYY-MM-DD) is appended verbatim
	PriceRange  string   `json:"priceRange,omitempty"`
}

// Collection is every hotel in insertion order.
type Collection []Hotel

// Clone returns a deep copy so callers can't alias the stored tags.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	for i, h := range c {
		out[i] = h
		if h.Tags != nil {
			out[i].Tags = append([]string{}, h.Tags...)
		}
	}
	return out
}

// Find returns the hotel with the given id.
func (c Collection) Find(id string) (Hotel, bool) {
	for _, h := range c {
		if h.ID == id {
			return h, true
		}
	}
	return Hotel{}, false
}

// CountByLocation counts hotels per destination; unknown locations are ignored.
func (c Collection) CountByLocation() map[Location]int {
	out := make(map[Location]int, len(Destinations))
	for _, d := range Destinations {
		out[d] = 0
	}
	for _, h := range c {
		if _, ok := out[h.Location]; ok {
			out[h.Location]++
		}
	}
	return out
}

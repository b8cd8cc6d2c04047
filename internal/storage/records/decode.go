package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"snowland_hotels/internal/domain"
)

// decodeCollection parses a persisted blob. Only a non-array top level is an
// error; bad elements are dropped and bad tags become empty.
// normalized counts records whose tags had to be replaced.
func decodeCollection(b []byte) (out domain.Collection, normalized int, err error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(b, &elems); err != nil {
		return nil, 0, fmt.Errorf("decode collection: %w", err)
	}
	if elems == nil {
		// literal null
		return nil, 0, fmt.Errorf("decode collection: not an array")
	}
	out = make(domain.Collection, 0, len(elems))
	for i, raw := range elems {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
			log.Warn().Int("index", i).Msg("dropping persisted hotel that is not an object")
			continue
		}
		h, fixed := decodeHotel(fields)
		if fixed {
			normalized++
		}
		out = append(out, h)
	}
	return out, normalized, nil
}

func decodeHotel(f map[string]json.RawMessage) (domain.Hotel, bool) {
	tags, ok := asTags(f["tags"])
	return domain.Hotel{
		ID:          asString(f["id"]),
		Name:        asString(f["name"]),
		Location:    domain.Location(asString(f["location"])),
		Stars:       asStars(f["stars"]),
		Rating:      asNumber(f["rating"]),
		Tags:        tags,
		Description: asString(f["description"]),
		ImageURL:    asString(f["imageUrl"]),
		BookingURL:  asString(f["bookingUrl"]),
		PriceRange:  asString(f["priceRange"]),
	}, !ok
}

// asTags keeps the string elements of an array. ok is false when the value
// was missing or not an array and has been replaced with an empty slice.
func asTags(raw json.RawMessage) (tags []string, ok bool) {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil || items == nil {
		return []string{}, false
	}
	tags = make([]string, 0, len(items))
	for _, it := range items {
		var s string
		if json.Unmarshal(it, &s) == nil {
			tags = append(tags, s)
		}
	}
	return tags, true
}

func asString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	// numbers and bools keep their literal text (ids written as 1 instead of "1")
	if raw = bytes.TrimSpace(raw); len(raw) > 0 && raw[0] != '{' && raw[0] != '[' && !bytes.Equal(raw, []byte("null")) {
		return string(raw)
	}
	return ""
}

// asStars rounds a persisted star count to the nearest integer. Values that
// cannot be a star count (NaN, infinite, beyond ±1000) become 0.
func asStars(raw json.RawMessage) int {
	n := math.Round(asNumber(raw))
	if math.IsNaN(n) || math.Abs(n) > maxStars {
		return 0
	}
	return int(n)
}

const maxStars = 1000

func asNumber(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var n float64
	if json.Unmarshal(raw, &n) == nil {
		return n
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return v
		}
	}
	return 0
}

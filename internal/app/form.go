package app

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"snowland_hotels/internal/domain"
)

const (
	defaultStars  = 5
	defaultRating = 5.0
)

// ParseHotelForm turns untyped admin input into a Hotel. Numbers may arrive as
// JSON numbers or strings, tags as an array or a comma-separated string.
// The id is copied when present; assigning one for new hotels is the caller's job.
func ParseHotelForm(in map[string]any) (domain.Hotel, error) {
	h := domain.Hotel{
		ID:          strings.TrimSpace(str(in["id"])),
		Name:        strings.TrimSpace(str(in["name"])),
		Location:    domain.Location(strings.TrimSpace(str(in["location"]))),
		Description: str(in["description"]),
		ImageURL:    strings.TrimSpace(str(in["imageUrl"])),
		BookingURL:  strings.TrimSpace(str(in["bookingUrl"])),
		PriceRange:  strings.TrimSpace(str(in["priceRange"])),
		Tags:        tags(in["tags"]),
	}
	if h.Name == "" {
		return domain.Hotel{}, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if h.Location == "" {
		return domain.Hotel{}, fmt.Errorf("%w: location is required", domain.ErrInvalidInput)
	}

	stars, err := number(in["stars"], defaultStars)
	if err != nil || stars != math.Trunc(stars) || stars < 1 || stars > 5 {
		return domain.Hotel{}, fmt.Errorf("%w: stars must be an integer between 1 and 5", domain.ErrInvalidInput)
	}
	h.Stars = int(stars)

	rating, err := number(in["rating"], defaultRating)
	if err != nil || rating < 0 || rating > 5 {
		return domain.Hotel{}, fmt.Errorf("%w: rating must be between 0 and 5", domain.ErrInvalidInput)
	}
	h.Rating = rating
	return h, nil
}

func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// number reads a float from a JSON number or numeric string; absent or blank
// input yields def.
func number(v any, def float64) (float64, error) {
	switch t := v.(type) {
	case nil:
		return def, nil
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case json.Number:
		return t.Float64()
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return def, nil
		}
		return strconv.ParseFloat(s, 64)
	default:
		return 0, fmt.Errorf("unsupported number type %T", v)
	}
}

func tags(v any) []string {
	var parts []string
	switch t := v.(type) {
	case string:
		parts = strings.Split(t, ",")
	case []string:
		parts = t
	case []any:
		for _, e := range t {
			if s, ok := e.(string); ok {
				parts = append(parts, s)
			}
		}
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package app

import (
	"strings"

	"snowland_hotels/internal/domain"
)

// Displayed derives the visible hotels. A blank query shows the selected
// destination; otherwise the trimmed query is matched case-insensitively
// against name, tags and location across every destination.
// Collection order is kept.
func Displayed(all domain.Collection, destination domain.Location, query string) domain.Collection {
	q := strings.TrimSpace(query)
	out := domain.Collection{}
	if q == "" {
		for _, h := range all {
			if h.Location == destination {
				out = append(out, h)
			}
		}
		return out
	}
	q = strings.ToLower(q)
	for _, h := range all {
		if matches(h, q) {
			out = append(out, h)
		}
	}
	return out
}

func matches(h domain.Hotel, q string) bool {
	if strings.Contains(strings.ToLower(h.Name), q) ||
		strings.Contains(strings.ToLower(string(h.Location)), q) {
		return true
	}
	for _, t := range h.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

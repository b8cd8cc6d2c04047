package app

import (
	"fmt"
	"time"

	"snowland_hotels/internal/domain"
)

const dateLayout = "2006-01-02"

// ViewState is what a browsing client has selected. The zero value is not
// useful; start from NewViewState.
type ViewState struct {
	Location    domain.Location
	Query       string
	BookingDate string // YYYY-MM-DD
}

// NewViewState opens on the first destination with no search and today's date.
func NewViewState(now time.Time) ViewState {
	return ViewState{
		Location:    domain.Destinations[0],
		BookingDate: now.Format(dateLayout),
	}
}

// SelectLocation switches tabs; switching clears any search.
func (v *ViewState) SelectLocation(l domain.Location) {
	v.Location = l
	v.Query = ""
}

func (v *ViewState) SetBookingDate(s string) error {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return fmt.Errorf("%w: booking date must be YYYY-MM-DD", domain.ErrInvalidInput)
	}
	v.BookingDate = s
	return nil
}

func (v ViewState) Displayed(all domain.Collection) domain.Collection {
	return Displayed(all, v.Location, v.Query)
}

// BookingLink appends the booking date to the hotel's booking URL.
func (v ViewState) BookingLink(h domain.Hotel) string {
	return h.BookingURL + v.BookingDate
}

package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"snowland_hotels/internal/app"
	"snowland_hotels/internal/domain"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	Repo   *app.Repository
	Advice *app.AdviceService
	Admins map[string]string // basic-auth user -> password
	Now    func() time.Time  // defaults to time.Now
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type destinationCount struct {
	Name  domain.Location `json:"name"`
	Count int             `json:"count"`
}

type hotelsPage struct {
	Location domain.Location   `json:"location"`
	Query    string            `json:"query,omitempty"`
	Count    int               `json:"count"`
	Items    domain.Collection `json:"items"`
}

type bookingLink struct {
	HotelID string `json:"hotelId"`
	Date    string `json:"date"`
	URL     string `json:"url"`
}

type advice struct {
	Text string `json:"text"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/destinations", h.listDestinations)
	s.mux.Get("/v1/destinations/{location}/tips", h.destinationTips)
	s.mux.Get("/v1/hotels", h.listHotels)
	s.mux.Get("/v1/hotels/{id}", h.getHotel)
	s.mux.Get("/v1/hotels/{id}/booking", h.booking)
	s.mux.Get("/v1/hotels/{id}/summary", h.hotelSummary)

	s.mux.Route("/v1/admin", func(r chi.Router) {
		r.Use(chimw.BasicAuth("snowland-admin", h.Admins))
		r.Get("/hotels", h.adminList)
		r.Post("/hotels", h.createHotel)
		r.Put("/hotels/{id}", h.updateHotel)
		r.Delete("/hotels/{id}", h.deleteHotel)
	})
}

func (h *Handlers) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCacheable writes v as JSON with a weak ETag, answering 304 when the
// client already holds this version.
func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	writeBody(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal response")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	writeBody(w, status, body)
}

func writeBody(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// writeRepoErr maps the only repository failure, an abandoned request.
func writeRepoErr(w http.ResponseWriter, err error) {
	log.Warn().Err(err).Msg("repository call abandoned")
	writeProblem(w, http.StatusServiceUnavailable, "Unavailable", "request cancelled")
}

func pathLocation(r *http.Request) domain.Location {
	raw := chi.URLParam(r, "location")
	if v, err := url.PathUnescape(raw); err == nil {
		raw = v
	}
	return domain.Location(raw)
}

func (h *Handlers) findHotel(w http.ResponseWriter, r *http.Request) (domain.Hotel, bool) {
	all, err := h.Repo.FetchAll(r.Context())
	if err != nil {
		writeRepoErr(w, err)
		return domain.Hotel{}, false
	}
	hotel, ok := all.Find(chi.URLParam(r, "id"))
	if !ok {
		writeProblem(w, http.StatusNotFound, "Not Found", "hotel not found")
		return domain.Hotel{}, false
	}
	return hotel, true
}

func (h *Handlers) listDestinations(w http.ResponseWriter, r *http.Request) {
	all, err := h.Repo.FetchAll(r.Context())
	if err != nil {
		writeRepoErr(w, err)
		return
	}
	counts := all.CountByLocation()
	out := make([]destinationCount, 0, len(domain.Destinations))
	for _, d := range domain.Destinations {
		out = append(out, destinationCount{Name: d, Count: counts[d]})
	}
	writeCacheable(w, r, out)
}

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	vs := app.NewViewState(h.now())
	if loc := r.URL.Query().Get("location"); loc != "" {
		vs.SelectLocation(domain.Location(loc))
	}
	vs.Query = r.URL.Query().Get("q")

	all, err := h.Repo.FetchAll(r.Context())
	if err != nil {
		writeRepoErr(w, err)
		return
	}
	items := vs.Displayed(all)
	writeCacheable(w, r, hotelsPage{Location: vs.Location, Query: vs.Query, Count: len(items), Items: items})
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hotel, ok := h.findHotel(w, r)
	if !ok {
		return
	}
	writeCacheable(w, r, hotel)
}

func (h *Handlers) booking(w http.ResponseWriter, r *http.Request) {
	vs := app.NewViewState(h.now())
	if d := r.URL.Query().Get("date"); d != "" {
		if err := vs.SetBookingDate(d); err != nil {
			writeProblem(w, http.StatusBadRequest, "Invalid date", "date must be YYYY-MM-DD")
			return
		}
	}
	hotel, ok := h.findHotel(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, bookingLink{HotelID: hotel.ID, Date: vs.BookingDate, URL: vs.BookingLink(hotel)})
}

func (h *Handlers) hotelSummary(w http.ResponseWriter, r *http.Request) {
	hotel, ok := h.findHotel(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, advice{Text: h.Advice.HotelSummary(r.Context(), hotel)})
}

func (h *Handlers) destinationTips(w http.ResponseWriter, r *http.Request) {
	loc := pathLocation(r)
	if !domain.IsDestination(loc) {
		writeProblem(w, http.StatusNotFound, "Not Found", "unknown destination")
		return
	}
	writeJSON(w, http.StatusOK, advice{Text: h.Advice.DestinationTips(r.Context(), loc)})
}

// ---- admin ----

func (h *Handlers) adminList(w http.ResponseWriter, r *http.Request) {
	var (
		out domain.Collection
		err error
	)
	if loc := r.URL.Query().Get("location"); loc != "" {
		out, err = h.Repo.FetchByLocation(r.Context(), domain.Location(loc))
	} else {
		out, err = h.Repo.FetchAll(r.Context())
	}
	if err != nil {
		writeRepoErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func decodeForm(w http.ResponseWriter, r *http.Request) (domain.Hotel, bool) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	var in map[string]any
	if err := dec.Decode(&in); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "body must be a JSON object")
		return domain.Hotel{}, false
	}
	hotel, err := app.ParseHotelForm(in)
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, domain.ErrInvalidInput) {
			status = http.StatusInternalServerError
		}
		writeProblem(w, status, "Invalid hotel", err.Error())
		return domain.Hotel{}, false
	}
	return hotel, true
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	hotel, ok := decodeForm(w, r)
	if !ok {
		return
	}
	hotel.ID = uuid.NewString()
	out, err := h.Repo.Create(r.Context(), hotel)
	if err != nil {
		writeRepoErr(w, err)
		return
	}
	log.Info().Str("id", hotel.ID).Str("location", string(hotel.Location)).Msg("hotel created")
	w.Header().Set("Location", "/v1/hotels/"+hotel.ID)
	writeJSON(w, http.StatusCreated, out)
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	hotel, ok := decodeForm(w, r)
	if !ok {
		return
	}
	hotel.ID = chi.URLParam(r, "id")
	out, err := h.Repo.Update(r.Context(), hotel)
	if err != nil {
		writeRepoErr(w, err)
		return
	}
	h.Advice.ForgetHotel(r.Context(), hotel.ID)
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	out, err := h.Repo.Delete(r.Context(), id)
	if err != nil {
		writeRepoErr(w, err)
		return
	}
	h.Advice.ForgetHotel(r.Context(), id)
	writeJSON(w, http.StatusOK, out)
}

package httpserver_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	server "snowland_hotels/internal/adapters/http_server"
	"snowland_hotels/internal/app"
	"snowland_hotels/internal/domain"
	"snowland_hotels/internal/storage/records"
)

type echoGen struct{}

func (echoGen) Generate(_ context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", nil
	}
	return "generated", nil
}

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	repo := app.NewRepository(records.New(records.NewMemory()), app.Latency{})
	srv := server.New()
	srv.MountHandlers(&server.Handlers{
		Repo:   repo,
		Advice: app.NewAdviceService(echoGen{}, nil, time.Minute),
		Admins: map[string]string{"admin": "snowland2025"},
		Now:    func() time.Time { return time.Date(2026, 12, 24, 10, 0, 0, 0, time.UTC) },
	})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, u string, body string, admin bool) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, u, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if admin {
		req.SetBasicAuth("admin", "snowland2025")
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, u, err)
	}
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func decodeInto(t *testing.T, res *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestListHotels_DestinationAndSearch(t *testing.T) {
	ts := newAPI(t)

	var page struct {
		Location string            `json:"location"`
		Count    int               `json:"count"`
		Items    domain.Collection `json:"items"`
	}
	res := do(t, "GET", ts.URL+"/v1/hotels", "", false)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	decodeInto(t, res, &page)
	if page.Location != "哈尔滨" || page.Count != 1 || page.Items[0].ID != "1" {
		t.Fatalf("unexpected default page: %+v", page)
	}

	res = do(t, "GET", ts.URL+"/v1/hotels?location="+url.QueryEscape("雪乡")+"&q="+url.QueryEscape(" 滑雪 "), "", false)
	decodeInto(t, res, &page)
	// search is global: both ski hotels, neither in 雪乡
	if page.Count != 2 || page.Items[0].ID != "2" || page.Items[1].ID != "5" {
		t.Fatalf("unexpected search page: %+v", page)
	}
}

func TestListHotels_ETag(t *testing.T) {
	ts := newAPI(t)
	res := do(t, "GET", ts.URL+"/v1/hotels", "", false)
	etag := res.Header.Get("ETag")
	if etag == "" {
		t.Fatalf("missing ETag")
	}
	req, _ := http.NewRequest("GET", ts.URL+"/v1/hotels", nil)
	req.Header.Set("If-None-Match", etag)
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res2.Body.Close()
	if res2.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", res2.StatusCode)
	}
}

func TestDestinations_Counts(t *testing.T) {
	ts := newAPI(t)
	var out []struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	decodeInto(t, do(t, "GET", ts.URL+"/v1/destinations", "", false), &out)
	if len(out) != len(domain.Destinations) {
		t.Fatalf("expected %d destinations, got %d", len(domain.Destinations), len(out))
	}
	total := 0
	for _, d := range out {
		total += d.Count
	}
	if total != 5 || out[0].Name != "哈尔滨" || out[0].Count != 1 || out[7].Count != 0 {
		t.Fatalf("unexpected counts: %+v", out)
	}
}

func TestGetHotelAndBooking(t *testing.T) {
	ts := newAPI(t)

	if res := do(t, "GET", ts.URL+"/v1/hotels/nope", "", false); res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}

	var h domain.Hotel
	decodeInto(t, do(t, "GET", ts.URL+"/v1/hotels/3", "", false), &h)
	if h.Name != "雪乡万嘉戴斯度假酒店" {
		t.Fatalf("unexpected hotel: %+v", h)
	}

	var link struct {
		Date string `json:"date"`
		URL  string `json:"url"`
	}
	decodeInto(t, do(t, "GET", ts.URL+"/v1/hotels/3/booking", "", false), &link)
	if link.Date != "2026-12-24" || link.URL != "#2026-12-24" {
		t.Fatalf("unexpected default booking link: %+v", link)
	}
	decodeInto(t, do(t, "GET", ts.URL+"/v1/hotels/3/booking?date=2027-01-02", "", false), &link)
	if link.URL != "#2027-01-02" {
		t.Fatalf("unexpected booking link: %+v", link)
	}
	if res := do(t, "GET", ts.URL+"/v1/hotels/3/booking?date=tomorrow", "", false); res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

func TestAdvisoryEndpoints(t *testing.T) {
	ts := newAPI(t)
	var a struct {
		Text string `json:"text"`
	}
	decodeInto(t, do(t, "GET", ts.URL+"/v1/destinations/"+url.PathEscape("延吉")+"/tips", "", false), &a)
	if a.Text != "generated" {
		t.Fatalf("unexpected tips: %q", a.Text)
	}
	if res := do(t, "GET", ts.URL+"/v1/destinations/atlantis/tips", "", false); res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
	decodeInto(t, do(t, "GET", ts.URL+"/v1/hotels/1/summary", "", false), &a)
	if a.Text != "generated" {
		t.Fatalf("unexpected summary: %q", a.Text)
	}
}

func TestAdmin_RequiresBasicAuth(t *testing.T) {
	ts := newAPI(t)
	if res := do(t, "GET", ts.URL+"/v1/admin/hotels", "", false); res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.StatusCode)
	}
	req, _ := http.NewRequest("GET", ts.URL+"/v1/admin/hotels", nil)
	req.SetBasicAuth("admin", "wrong")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", res.StatusCode)
	}
}

func TestAdmin_CRUD(t *testing.T) {
	ts := newAPI(t)
	base := ts.URL + "/v1/admin/hotels"

	var all domain.Collection
	res := do(t, "POST", base, `{"name":"新雪谷","location":"二浪河","stars":"4","rating":4.2,"tags":"木屋, 滑雪","bookingUrl":"https://b/?d="}`, true)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create status %d", res.StatusCode)
	}
	decodeInto(t, res, &all)
	if len(all) != 6 {
		t.Fatalf("expected 6 hotels, got %d", len(all))
	}
	created := all[5]
	if created.ID == "" || created.Stars != 4 || len(created.Tags) != 2 || res.Header.Get("Location") != "/v1/hotels/"+created.ID {
		t.Fatalf("unexpected created hotel: %+v", created)
	}

	var byLoc domain.Collection
	decodeInto(t, do(t, "GET", base+"?location="+url.QueryEscape("二浪河"), "", true), &byLoc)
	if len(byLoc) != 1 || byLoc[0].ID != created.ID {
		t.Fatalf("unexpected location listing: %+v", byLoc)
	}

	decodeInto(t, do(t, "PUT", base+"/"+created.ID, `{"name":"新雪谷度假","location":"二浪河","stars":5}`, true), &all)
	if len(all) != 6 || all[5].Name != "新雪谷度假" || all[5].Stars != 5 {
		t.Fatalf("unexpected after update: %+v", all[5])
	}

	decodeInto(t, do(t, "PUT", base+"/ghost", `{"name":"Ghost","location":"长春"}`, true), &all)
	if len(all) != 6 {
		t.Fatalf("update of unknown id must not append: %d", len(all))
	}

	decodeInto(t, do(t, "DELETE", base+"/"+created.ID, "", true), &all)
	if len(all) != 5 {
		t.Fatalf("expected 5 after delete, got %d", len(all))
	}
	decodeInto(t, do(t, "DELETE", base+"/"+created.ID, "", true), &all)
	if len(all) != 5 {
		t.Fatalf("second delete changed the collection: %d", len(all))
	}
}

func TestAdmin_RejectsInvalidInput(t *testing.T) {
	ts := newAPI(t)
	for _, body := range []string{`not json`, `{"location":"长春"}`, `{"name":"N","location":"长春","stars":9}`} {
		res := do(t, "POST", ts.URL+"/v1/admin/hotels", body, true)
		if res.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, res.StatusCode)
		}
		if ct := res.Header.Get("Content-Type"); ct != "application/problem+json" {
			t.Fatalf("unexpected content type %q", ct)
		}
	}
}

func TestHealthz(t *testing.T) {
	ts := newAPI(t)
	res := do(t, "GET", ts.URL+"/healthz", "", false)
	b, _ := io.ReadAll(res.Body)
	if res.StatusCode != http.StatusOK || string(b) != "ok" {
		t.Fatalf("unexpected healthz: %d %q", res.StatusCode, b)
	}
}

type countingGen struct{ calls atomic.Int32 }

func (g *countingGen) Generate(context.Context, string) (string, error) {
	g.calls.Add(1)
	return "generated", nil
}

type mapCache struct {
	mu sync.Mutex
	m  map[string]string
}

func (c *mapCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[key]
	if ok {
		*dst.(*string) = v
	}
	return ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, v any, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = v.(string)
	return nil
}

func (c *mapCache) Del(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, key)
	return nil
}

func TestAdmin_EditEvictsCachedSummary(t *testing.T) {
	gen := &countingGen{}
	srv := server.New()
	srv.MountHandlers(&server.Handlers{
		Repo:   app.NewRepository(records.New(records.NewMemory()), app.Latency{}),
		Advice: app.NewAdviceService(gen, &mapCache{m: map[string]string{}}, time.Minute),
		Admins: map[string]string{"admin": "snowland2025"},
	})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	do(t, "GET", ts.URL+"/v1/hotels/4/summary", "", false)
	do(t, "GET", ts.URL+"/v1/hotels/4/summary", "", false)
	if gen.calls.Load() != 1 {
		t.Fatalf("expected cached summary, generator called %d times", gen.calls.Load())
	}

	body := `{"name":"延吉白山大厦","location":"延吉","stars":4,"rating":4.7,"tags":["市中心"]}`
	if res := do(t, "PUT", ts.URL+"/v1/admin/hotels/4", body, true); res.StatusCode != http.StatusOK {
		t.Fatalf("update status %d", res.StatusCode)
	}
	do(t, "GET", ts.URL+"/v1/hotels/4/summary", "", false)
	if gen.calls.Load() != 2 {
		t.Fatalf("update should evict the summary, generator called %d times", gen.calls.Load())
	}

	if res := do(t, "DELETE", ts.URL+"/v1/admin/hotels/4", "", true); res.StatusCode != http.StatusOK {
		t.Fatalf("delete status %d", res.StatusCode)
	}
	if res := do(t, "GET", ts.URL+"/v1/hotels/4/summary", "", false); res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", res.StatusCode)
	}
}

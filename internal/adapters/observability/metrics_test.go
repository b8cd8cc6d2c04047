package observability_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"snowland_hotels/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so the vectors are exported
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveStore("seed")
	observability.ObserveRepo("fetch_all", 3*time.Millisecond)

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{
		"snowland_http_requests_total",
		"snowland_record_store_events_total",
		"snowland_repository_call_duration_seconds",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}

func TestLabelErr(t *testing.T) {
	if got := observability.LabelErr(nil); got != "none" {
		t.Fatalf("nil error label: %q", got)
	}
	if got := observability.LabelErr(io.EOF); got != "*errors.errorString" {
		t.Fatalf("unexpected label: %q", got)
	}
}

func TestServe_StandaloneListenerExposesRegistry(t *testing.T) {
	reg := observability.InitRegistry()
	observability.ObserveStore("seed")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	srv := observability.Serve(addr, reg)
	if srv == nil {
		t.Fatal("expected a server")
	}
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	var out string
	deadline := time.Now().Add(2 * time.Second)
	for {
		res, err := http.Get("http://" + addr + "/metrics")
		if err == nil {
			body, _ := io.ReadAll(res.Body)
			res.Body.Close()
			out = string(body)
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("metrics listener never came up: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}
	if !strings.Contains(out, "snowland_record_store_events_total") {
		t.Fatalf("standalone listener does not serve the private registry:\n%s", out)
	}
	if strings.Contains(out, "go_goroutines") {
		t.Fatalf("standalone listener serves the default registry")
	}
}

func TestServe_EmptyAddrDisabled(t *testing.T) {
	if srv := observability.Serve("", observability.InitRegistry()); srv != nil {
		t.Fatalf("expected no server for empty addr")
	}
}

func TestObserveExternalErr_LabelsByType(t *testing.T) {
	reg := observability.InitRegistry()
	observability.ObserveExternalErr("advisor", io.ErrUnexpectedEOF)

	rr := httptest.NewRecorder()
	observability.MetricsHandler(reg).ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	out := rr.Body.String()
	if !strings.Contains(out, `snowland_external_errors_total{class="*errors.errorString",service="advisor"}`) {
		t.Fatalf("missing error counter:\n%s", out)
	}
}

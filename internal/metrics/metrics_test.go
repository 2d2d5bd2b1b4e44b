package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func family(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("metric %s not found", name)
	return nil
}

func label(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

func TestRecordRequest_CountsAndObserves(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest("GET", "/api/clients", 200, 30*time.Millisecond)
	c.RecordRequest("GET", "/api/clients", 200, 10*time.Millisecond)
	c.RecordRequest("GET", "", 404, time.Millisecond)

	mf := family(t, reg, "mvauto_http_requests_total")
	got := map[string]float64{}
	for _, m := range mf.GetMetric() {
		got[label(m, "route")+" "+label(m, "status")] = m.GetCounter().GetValue()
	}
	if got["/api/clients 200"] != 2 {
		t.Errorf("/api/clients 200 = %v, want 2", got["/api/clients 200"])
	}
	if got["unmatched 404"] != 1 {
		t.Errorf("unmatched 404 = %v, want 1", got["unmatched 404"])
	}

	hist := family(t, reg, "mvauto_http_request_duration_seconds")
	for _, m := range hist.GetMetric() {
		if label(m, "route") == "/api/clients" && m.GetHistogram().GetSampleCount() != 2 {
			t.Errorf("sample count = %d, want 2", m.GetHistogram().GetSampleCount())
		}
	}
}

func TestRecordLoginAndMutation(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLogin("success")
	c.RecordLogin("invalid")
	c.RecordLogin("invalid")
	c.RecordMutation("client", "create")

	for _, m := range family(t, reg, "mvauto_login_attempts_total").GetMetric() {
		want := map[string]float64{"success": 1, "invalid": 2}[label(m, "outcome")]
		if m.GetCounter().GetValue() != want {
			t.Errorf("login %s = %v, want %v", label(m, "outcome"), m.GetCounter().GetValue(), want)
		}
	}

	mut := family(t, reg, "mvauto_record_mutations_total").GetMetric()
	if len(mut) != 1 || label(mut[0], "entity") != "client" || mut[0].GetCounter().GetValue() != 1 {
		t.Errorf("mutations = %v", mut)
	}
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordLogin("success")

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `mvauto_login_attempts_total{outcome="success"} 1`) {
		t.Errorf("body does not contain login counter:\n%s", body)
	}
}

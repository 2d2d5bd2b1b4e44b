package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BruksfildServices01/mv-autocenter/internal/domain/catalog"
	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/models"
)

type mockAppointments struct {
	listFn func(ctx context.Context, start, end time.Time) ([]models.Appointment, error)
}

func (m *mockAppointments) ListAppointmentsForPeriod(ctx context.Context, start, end time.Time) ([]models.Appointment, error) {
	return m.listFn(ctx, start, end)
}

type mockStock struct {
	listFn func(ctx context.Context, f catalog.ProductFilter) ([]models.Product, error)
}

func (m *mockStock) List(ctx context.Context, f catalog.ProductFilter) ([]models.Product, error) {
	return m.listFn(ctx, f)
}

var (
	lavagem   = models.Service{ID: "s1", Name: "Lavagem Premium", Price: 80}
	polimento = models.Service{ID: "s2", Name: "Polimento Técnico", Price: 300}
	oleo      = models.Service{ID: "s3", Name: "Troca de Óleo", Price: 120}
)

// quarta-feira, 14/10/2026, 15h no fuso da oficina
var fixedNow = time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)

func newService(apps []models.Appointment, low int) (*Service, *[][2]time.Time) {
	var calls [][2]time.Time
	appSrc := &mockAppointments{listFn: func(_ context.Context, start, end time.Time) ([]models.Appointment, error) {
		calls = append(calls, [2]time.Time{start, end})
		return apps, nil
	}}
	stock := &mockStock{listFn: func(_ context.Context, f catalog.ProductFilter) ([]models.Product, error) {
		if !f.LowOnly {
			return nil, errors.New("dashboard must ask for low stock only")
		}
		return make([]models.Product, low), nil
	}}

	s := NewService(appSrc, stock, time.UTC)
	s.now = func() time.Time { return fixedNow }
	return s, &calls
}

func TestDashboard(t *testing.T) {
	apps := []models.Appointment{
		{ID: "a1", Status: "completed", Total: 380},
		{ID: "a2", Status: "in_progress", Total: 80},
		{ID: "a3", Status: "scheduled", Total: 120},
		{ID: "a4", Status: "scheduled", Total: 120},
	}
	s, calls := newService(apps, 3)

	d, err := s.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if d.Date != "2026-10-14" {
		t.Errorf("Date = %q", d.Date)
	}
	if !(*calls)[0][0].Equal(time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("queried from %v", (*calls)[0][0])
	}
	if d.ByStatus["scheduled"] != 2 || d.ByStatus["completed"] != 1 || d.ByStatus["cancelled"] != 0 {
		t.Errorf("ByStatus = %v", d.ByStatus)
	}
	if d.RevenueToday != 380 {
		t.Errorf("RevenueToday = %v, want 380", d.RevenueToday)
	}
	if d.LowStock != 3 || len(d.Appointments) != 4 {
		t.Errorf("LowStock = %d appointments = %d", d.LowStock, len(d.Appointments))
	}
}

func TestBounds(t *testing.T) {
	s, _ := newService(nil, 0)

	cases := []struct {
		period     Period
		start, end time.Time
	}{
		{Weekly, time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)},
		{Monthly, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)},
		{Yearly, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		start, end, err := s.Bounds(tc.period)
		if err != nil {
			t.Fatalf("%s: %v", tc.period, err)
		}
		if !start.Equal(tc.start) || !end.Equal(tc.end) {
			t.Errorf("%s = [%v, %v), want [%v, %v)", tc.period, start, end, tc.start, tc.end)
		}
	}

	// domingo pertence à semana que começou na segunda anterior
	s.now = func() time.Time { return time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC) }
	start, _, _ := s.Bounds(Weekly)
	if start.Day() != 12 {
		t.Errorf("sunday week start = %v, want day 12", start)
	}
}

func TestReport_Aggregates(t *testing.T) {
	apps := []models.Appointment{
		{ClientID: "c1", Status: "completed", Total: 380, Services: []models.Service{lavagem, polimento}},
		{ClientID: "c1", Status: "completed", Total: 80, Services: []models.Service{lavagem}},
		{ClientID: "c2", Status: "completed", Total: 120, Services: []models.Service{oleo}},
		{ClientID: "c3", Status: "cancelled", Total: 300, Services: []models.Service{polimento}},
		{ClientID: "c4", Status: "scheduled", Total: 80, Services: []models.Service{lavagem}},
	}
	s, _ := newService(apps, 0)

	r, err := s.Report(context.Background(), Monthly)
	if err != nil {
		t.Fatalf("Report: %v", err)
	}

	if r.TotalRevenue != 580 || r.TotalServices != 3 || r.TotalClients != 2 {
		t.Errorf("totals = %v / %d / %d", r.TotalRevenue, r.TotalServices, r.TotalClients)
	}
	if r.AverageTicket < 193.33 || r.AverageTicket > 193.34 {
		t.Errorf("AverageTicket = %v", r.AverageTicket)
	}

	want := []ServiceTotal{
		{Name: "Polimento Técnico", Count: 1, Revenue: 300},
		{Name: "Lavagem Premium", Count: 2, Revenue: 160},
		{Name: "Troca de Óleo", Count: 1, Revenue: 120},
	}
	if len(r.TopServices) != len(want) {
		t.Fatalf("TopServices = %+v", r.TopServices)
	}
	for i, w := range want {
		if r.TopServices[i] != w {
			t.Errorf("TopServices[%d] = %+v, want %+v", i, r.TopServices[i], w)
		}
	}
}

func TestReport_EmptyPeriod(t *testing.T) {
	s, _ := newService(nil, 0)

	r, err := s.Report(context.Background(), Weekly)
	if err != nil {
		t.Fatal(err)
	}
	if r.AverageTicket != 0 || r.TopServices == nil || len(r.TopServices) != 0 {
		t.Errorf("report = %+v", r)
	}
}

func TestParsePeriod(t *testing.T) {
	if p, err := ParsePeriod(""); err != nil || p != Monthly {
		t.Errorf("ParsePeriod(\"\") = %q, %v", p, err)
	}
	if p, err := ParsePeriod("yearly"); err != nil || p != Yearly {
		t.Errorf("ParsePeriod(yearly) = %q, %v", p, err)
	}
	if _, err := ParsePeriod("daily"); !errors.Is(err, httperr.ErrBusiness("invalid_period")) {
		t.Errorf("ParsePeriod(daily) err = %v", err)
	}
}

// Package report monta o painel do dia e os relatórios financeiros.
package report

import (
	"context"
	"slices"
	"time"

	domain "github.com/BruksfildServices01/mv-autocenter/internal/domain/appointment"
	"github.com/BruksfildServices01/mv-autocenter/internal/domain/catalog"
	"github.com/BruksfildServices01/mv-autocenter/internal/dto"
	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/models"
	"github.com/BruksfildServices01/mv-autocenter/internal/timezone"
)

type Period string

const (
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

const topServicesLimit = 5

type AppointmentSource interface {
	ListAppointmentsForPeriod(ctx context.Context, start, end time.Time) ([]models.Appointment, error)
}

type StockSource interface {
	List(ctx context.Context, f catalog.ProductFilter) ([]models.Product, error)
}

type Dashboard struct {
	Date         string                   `json:"date"`
	Appointments []dto.AppointmentListDTO `json:"appointments"`
	ByStatus     map[string]int           `json:"by_status"`
	RevenueToday float64                  `json:"revenue_today"`
	LowStock     int                      `json:"low_stock"`
}

type ServiceTotal struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type Report struct {
	Period        Period         `json:"period"`
	Start         time.Time      `json:"start"`
	End           time.Time      `json:"end"`
	TotalRevenue  float64        `json:"total_revenue"`
	TotalServices int            `json:"total_services"`
	TotalClients  int            `json:"total_clients"`
	AverageTicket float64        `json:"average_ticket"`
	TopServices   []ServiceTotal `json:"top_services"`
}

type Service struct {
	appointments AppointmentSource
	stock        StockSource
	loc          *time.Location
	now          func() time.Time
}

func NewService(appointments AppointmentSource, stock StockSource, loc *time.Location) *Service {
	return &Service{
		appointments: appointments,
		stock:        stock,
		loc:          loc,
		now:          time.Now,
	}
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	start, end := timezone.DayBounds(s.now(), s.loc)

	apps, err := s.appointments.ListAppointmentsForPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}

	low, err := s.stock.List(ctx, catalog.ProductFilter{LowOnly: true})
	if err != nil {
		return nil, err
	}

	out := &Dashboard{
		Date:         start.Format("2006-01-02"),
		Appointments: make([]dto.AppointmentListDTO, 0, len(apps)),
		ByStatus: map[string]int{
			string(domain.StatusScheduled):  0,
			string(domain.StatusInProgress): 0,
			string(domain.StatusCompleted):  0,
			string(domain.StatusCancelled):  0,
		},
		LowStock: len(low),
	}

	for _, ap := range apps {
		out.Appointments = append(out.Appointments, dto.AppointmentList(ap))
		out.ByStatus[ap.Status]++
		if ap.Status == string(domain.StatusCompleted) {
			out.RevenueToday += ap.Total
		}
	}

	return out, nil
}

// Bounds devolve o intervalo civil corrente: semana (seg-dom), mês ou ano.
func (s *Service) Bounds(p Period) (time.Time, time.Time, error) {
	today, _ := timezone.DayBounds(s.now(), s.loc)

	switch p {
	case Weekly:
		offset := (int(today.Weekday()) + 6) % 7
		start := today.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7), nil
	case Monthly:
		start, end := timezone.MonthBounds(today.Year(), today.Month(), s.loc)
		return start, end, nil
	case Yearly:
		start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, s.loc)
		return start, start.AddDate(1, 0, 0), nil
	}
	return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_period")
}

// Report considera só serviços concluídos.
func (s *Service) Report(ctx context.Context, p Period) (*Report, error) {
	start, end, err := s.Bounds(p)
	if err != nil {
		return nil, err
	}

	apps, err := s.appointments.ListAppointmentsForPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}

	out := &Report{Period: p, Start: start, End: end, TopServices: []ServiceTotal{}}

	clients := map[string]struct{}{}
	byService := map[string]*ServiceTotal{}

	for _, ap := range apps {
		if ap.Status != string(domain.StatusCompleted) {
			continue
		}

		out.TotalServices++
		out.TotalRevenue += ap.Total
		clients[ap.ClientID] = struct{}{}

		for _, svc := range ap.Services {
			st, ok := byService[svc.ID]
			if !ok {
				st = &ServiceTotal{Name: svc.Name}
				byService[svc.ID] = st
			}
			st.Count++
			st.Revenue += svc.Price
		}
	}

	out.TotalClients = len(clients)
	if out.TotalServices > 0 {
		out.AverageTicket = out.TotalRevenue / float64(out.TotalServices)
	}

	for _, st := range byService {
		out.TopServices = append(out.TopServices, *st)
	}
	slices.SortFunc(out.TopServices, func(a, b ServiceTotal) int {
		switch {
		case a.Revenue > b.Revenue:
			return -1
		case a.Revenue < b.Revenue:
			return 1
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	if len(out.TopServices) > topServicesLimit {
		out.TopServices = out.TopServices[:topServicesLimit]
	}

	return out, nil
}

func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case Weekly, Monthly, Yearly:
		return p, nil
	case "":
		return Monthly, nil
	}
	return "", httperr.ErrBusiness("invalid_period")
}

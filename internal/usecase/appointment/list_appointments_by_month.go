package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/mv-autocenter/internal/domain/appointment"
	"github.com/BruksfildServices01/mv-autocenter/internal/dto"
	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/timezone"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
	loc *time.Location,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
		loc:  loc,
	}
}

// Execute devolve os dias do mês com agendamentos não cancelados, em ordem.
func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	year int,
	month int,
) ([]dto.MonthDayDTO, error) {

	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return nil, httperr.ErrBusiness("invalid_period")
	}

	start, end := timezone.MonthBounds(year, time.Month(month), uc.loc)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}

	out := []dto.MonthDayDTO{}
	index := map[string]int{}
	for _, ap := range appointments {
		if ap.Status == string(domain.StatusCancelled) {
			continue
		}
		day := ap.ScheduledAt.In(uc.loc).Format("2006-01-02")
		if i, ok := index[day]; ok {
			out[i].Count++
			continue
		}
		index[day] = len(out)
		out = append(out, dto.MonthDayDTO{Date: day, Count: 1})
	}

	return out, nil
}

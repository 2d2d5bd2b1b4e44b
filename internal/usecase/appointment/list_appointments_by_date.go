package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/mv-autocenter/internal/domain/appointment"
	"github.com/BruksfildServices01/mv-autocenter/internal/dto"
	"github.com/BruksfildServices01/mv-autocenter/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
	loc  *time.Location
}

func NewListAppointmentsByDate(
	repo domain.Repository,
	loc *time.Location,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
		loc:  loc,
	}
}

// Execute lista o dia civil da oficina que contém date.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	start, end := timezone.DayBounds(date, uc.loc)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentList(ap))
	}

	return out, nil
}

package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/mv-autocenter/internal/audit"
	domain "github.com/BruksfildServices01/mv-autocenter/internal/domain/appointment"
	"github.com/BruksfildServices01/mv-autocenter/internal/models"
)

type transition func(ap *models.Appointment, now time.Time) error

// ChangeStatus aplica uma transição da agenda (iniciar, concluir, cancelar).
type ChangeStatus struct {
	repo   domain.Repository
	audit  audit.Sink
	now    func() time.Time
	apply  transition
	action string
}

func newChangeStatus(repo domain.Repository, sink audit.Sink, action string, apply transition) *ChangeStatus {
	return &ChangeStatus{
		repo:   repo,
		audit:  sink,
		now:    time.Now,
		apply:  apply,
		action: action,
	}
}

func NewStartAppointment(repo domain.Repository, sink audit.Sink) *ChangeStatus {
	return newChangeStatus(repo, sink, "appointment_started", func(ap *models.Appointment, _ time.Time) error {
		return domain.Start(ap)
	})
}

func NewCompleteAppointment(repo domain.Repository, sink audit.Sink) *ChangeStatus {
	return newChangeStatus(repo, sink, "appointment_completed", domain.Complete)
}

func NewCancelAppointment(repo domain.Repository, sink audit.Sink) *ChangeStatus {
	return newChangeStatus(repo, sink, "appointment_cancelled", domain.Cancel)
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	actorID string,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	from := ap.Status
	if err := uc.apply(ap, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   uc.action,
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{"from": from, "to": ap.Status},
	})

	return ap, nil
}

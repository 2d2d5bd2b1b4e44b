package appointment

import "github.com/BruksfildServices01/mv-autocenter/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

// CanStart: só agendamentos ainda não iniciados
func CanStart(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete: agendado ou em andamento
func CanComplete(current Status) error {
	if current != StatusScheduled && current != StatusInProgress {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel: não se cancela serviço concluído ou já cancelado
func CanCancel(current Status) error {
	if current != StatusScheduled && current != StatusInProgress {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}

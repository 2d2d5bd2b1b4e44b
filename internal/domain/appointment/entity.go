package appointment

import (
	"time"

	"github.com/BruksfildServices01/mv-autocenter/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Start(ap *models.Appointment) error {
	if err := CanStart(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusInProgress)
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

// Total soma os preços do catálogo no momento do agendamento.
func Total(services []models.Service) float64 {
	var total float64
	for _, s := range services {
		total += s.Price
	}
	return total
}

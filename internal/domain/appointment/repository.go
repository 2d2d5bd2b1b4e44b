package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/mv-autocenter/internal/models"
)

type Repository interface {
	// -------- Client / Vehicle --------
	FindClientByPhone(
		ctx context.Context,
		phone string,
	) (*models.Client, error)

	CreateClient(
		ctx context.Context,
		client *models.Client,
	) error

	FindVehicleByPlate(
		ctx context.Context,
		clientID string,
		plate string,
	) (*models.Vehicle, error)

	CreateVehicle(
		ctx context.Context,
		vehicle *models.Vehicle,
	) error

	// -------- Catalog --------
	ListServicesByIDs(
		ctx context.Context,
		ids []string,
	) ([]models.Service, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointment(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}

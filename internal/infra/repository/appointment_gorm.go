package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/mv-autocenter/internal/domain/appointment"
	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)

// --------------------------------------------------
// Client / Vehicle
// --------------------------------------------------

func (r *AppointmentGormRepository) FindClientByPhone(
	ctx context.Context,
	phone string,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&client).Error; err != nil {
		return nil, translate("find client by phone", "client", phone, err)
	}
	return &client, nil
}

func (r *AppointmentGormRepository) CreateClient(
	ctx context.Context,
	client *models.Client,
) error {
	return translate("create client", "client", "", r.db.WithContext(ctx).Create(client).Error)
}

func (r *AppointmentGormRepository) FindVehicleByPlate(
	ctx context.Context,
	clientID string,
	plate string,
) (*models.Vehicle, error) {

	var v models.Vehicle
	if err := r.db.WithContext(ctx).
		Where("client_id = ? AND plate = ?", clientID, plate).
		First(&v).Error; err != nil {
		return nil, translate("find vehicle by plate", "vehicle", plate, err)
	}
	return &v, nil
}

func (r *AppointmentGormRepository) CreateVehicle(
	ctx context.Context,
	vehicle *models.Vehicle,
) error {
	return translate("create vehicle", "vehicle", "", r.db.WithContext(ctx).Create(vehicle).Error)
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) ListServicesByIDs(
	ctx context.Context,
	ids []string,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND active = ?", ids, true).
		Find(&services).Error; err != nil {
		return nil, httperr.Persistence("list services", err)
	}
	return services, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return translate("create appointment", "appointment", "", r.db.WithContext(ctx).Create(ap).Error)
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Vehicle").
		Preload("Services").
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, translate("get appointment", "appointment", id, err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return translate("update appointment", "appointment", ap.ID,
		r.db.WithContext(ctx).Omit("Client", "Vehicle", "Services").Save(ap).Error)
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Vehicle").
		Preload("Services").
		Where("scheduled_at >= ? AND scheduled_at < ?", start, end).
		Order("scheduled_at ASC").
		Find(&apps).Error; err != nil {
		return nil, httperr.Persistence("list appointments", err)
	}
	return apps, nil
}

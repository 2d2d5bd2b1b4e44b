package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/mv-autocenter/internal/domain/client"
	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/models"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

var _ domain.Repository = (*ClientGormRepository)(nil)

func preloadRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Vehicles").
		Preload("Appointments", func(db *gorm.DB) *gorm.DB {
			return db.Order("scheduled_at DESC")
		})
}

// mantém só os agendamentos mais recentes e garante slices não-nil no JSON
func shapeClient(c *models.Client) {
	if c.Vehicles == nil {
		c.Vehicles = []models.Vehicle{}
	}
	if c.Appointments == nil {
		c.Appointments = []models.Appointment{}
	}
	if len(c.Appointments) > domain.RecentAppointments {
		c.Appointments = c.Appointments[:domain.RecentAppointments]
	}
}

// --------------------------------------------------
// List
// --------------------------------------------------

func (r *ClientGormRepository) List(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := preloadRelations(r.db.WithContext(ctx)).
		Find(&clients).Error; err != nil {
		return nil, httperr.Persistence("list clients", err)
	}

	for i := range clients {
		shapeClient(&clients[i])
	}
	if clients == nil {
		clients = []models.Client{}
	}
	return clients, nil
}

func (r *ClientGormRepository) FindByID(ctx context.Context, id string) (*models.Client, error) {
	var c models.Client
	if err := preloadRelations(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&c).Error; err != nil {
		return nil, translate("find client", "client", id, err)
	}

	shapeClient(&c)
	return &c, nil
}

// --------------------------------------------------
// Mutations
// --------------------------------------------------

func (r *ClientGormRepository) Create(ctx context.Context, in domain.Input) (*models.Client, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	c := in.ToModel()
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, translate("create client", "client", "", err)
	}

	shapeClient(&c)
	return &c, nil
}

func (r *ClientGormRepository) Update(ctx context.Context, id string, p domain.Patch) (*models.Client, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	cols := p.Columns()
	if len(cols) == 0 {
		return r.FindByID(ctx, id)
	}

	res := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		Updates(cols)
	if res.Error != nil {
		return nil, translate("update client", "client", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, httperr.NotFoundErr("client", id)
	}

	return r.FindByID(ctx, id)
}

// Delete não é idempotente: a segunda remoção devolve NotFoundError.
// Veículos e agendamentos caem pelo ON DELETE CASCADE do banco.
func (r *ClientGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Client{})
	if res.Error != nil {
		return translate("delete client", "client", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFoundErr("client", id)
	}
	return nil
}

// --------------------------------------------------
// Vehicles
// --------------------------------------------------

func (r *ClientGormRepository) AddVehicle(
	ctx context.Context,
	clientID string,
	in domain.VehicleInput,
) (*models.Vehicle, error) {

	if err := in.Validate(); err != nil {
		return nil, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", clientID).
		Count(&count).Error; err != nil {
		return nil, httperr.Persistence("find client", err)
	}
	if count == 0 {
		return nil, httperr.NotFoundErr("client", clientID)
	}

	v := in.ToModel(clientID)
	if err := r.db.WithContext(ctx).Create(&v).Error; err != nil {
		return nil, translate("create vehicle", "vehicle", "", err)
	}
	return &v, nil
}

func (r *ClientGormRepository) RemoveVehicle(ctx context.Context, clientID, vehicleID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND client_id = ?", vehicleID, clientID).
		Delete(&models.Vehicle{})
	if res.Error != nil {
		return translate("delete vehicle", "vehicle", vehicleID, res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFoundErr("vehicle", vehicleID)
	}
	return nil
}

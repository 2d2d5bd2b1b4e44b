package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/mv-autocenter/internal/audit"
	domain "github.com/BruksfildServices01/mv-autocenter/internal/domain/appointment"
	"github.com/BruksfildServices01/mv-autocenter/internal/domain/client"
	"github.com/BruksfildServices01/mv-autocenter/internal/dto"
	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateServiceInput struct {
	ActorID string

	ClientName  string
	ClientPhone string
	ClientEmail string

	VehicleBrand string
	VehicleModel string
	VehiclePlate string
	VehicleYear  *int

	ServiceIDs []string
	Conditions []string
	Notes      string

	// nil = agora (atendimento de balcão)
	ScheduledAt *time.Time
}

func (in CreateServiceInput) validate() error {
	if strings.TrimSpace(in.ClientName) == "" {
		return httperr.Validation("client_name", "is required")
	}
	if strings.TrimSpace(in.ClientPhone) == "" {
		return httperr.Validation("client_phone", "is required")
	}
	if strings.TrimSpace(in.VehicleModel) == "" {
		return httperr.Validation("vehicle_model", "is required")
	}
	if client.NormalizePlate(in.VehiclePlate) == "" {
		return httperr.Validation("vehicle_plate", "is required")
	}
	if len(uniqueIDs(in.ServiceIDs)) == 0 {
		return httperr.Validation("service_ids", "select at least one service")
	}

	// tamanhos das colunas de cliente e veículo
	phone, email, plate := in.ClientPhone, in.ClientEmail, in.VehiclePlate
	if err := (client.Input{Name: in.ClientName, Phone: &phone, Email: &email}).Validate(); err != nil {
		return err
	}
	return client.VehicleInput{Brand: in.VehicleBrand, Model: in.VehicleModel, Plate: &plate}.Validate()
}

// ======================================================
// USE CASE
// ======================================================

type CreateService struct {
	repo  domain.Repository
	audit audit.Sink
	now   func() time.Time
}

func NewCreateService(
	repo domain.Repository,
	audit audit.Sink,
) *CreateService {
	return &CreateService{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *CreateService) Execute(
	ctx context.Context,
	in CreateServiceInput,
) (*models.Appointment, error) {

	if err := in.validate(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Serviços do catálogo (só ativos)
	// --------------------------------------------------
	ids := uniqueIDs(in.ServiceIDs)
	services, err := uc.repo.ListServicesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(services) != len(ids) {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	// --------------------------------------------------
	// Cliente (pelo telefone) e veículo (pela placa)
	// --------------------------------------------------
	c, err := uc.findOrCreateClient(ctx, in)
	if err != nil {
		return nil, err
	}

	v, err := uc.findOrCreateVehicle(ctx, c.ID, in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Agendamento
	// --------------------------------------------------
	scheduledAt := uc.now()
	if in.ScheduledAt != nil {
		scheduledAt = *in.ScheduledAt
	}

	ap := &models.Appointment{
		ClientID:    c.ID,
		VehicleID:   &v.ID,
		Services:    services,
		ScheduledAt: scheduledAt,
		Status:      string(domain.InitialStatus()),
		Notes:       strings.TrimSpace(in.Notes),
		Conditions:  dto.JoinConditions(in.Conditions),
		Total:       domain.Total(services),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	ap.Client = c
	ap.Vehicle = v

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.ActorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{
			"client_id": c.ID,
			"services":  len(services),
			"total":     ap.Total,
		},
	})

	return ap, nil
}

func (uc *CreateService) findOrCreateClient(ctx context.Context, in CreateServiceInput) (*models.Client, error) {
	phone := strings.TrimSpace(in.ClientPhone)

	c, err := uc.repo.FindClientByPhone(ctx, phone)
	if err == nil {
		return c, nil
	}
	if !httperr.IsNotFound(err) {
		return nil, err
	}

	email := in.ClientEmail
	created := client.Input{
		Name:  in.ClientName,
		Phone: &phone,
		Email: &email,
	}.ToModel()
	if err := uc.repo.CreateClient(ctx, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (uc *CreateService) findOrCreateVehicle(ctx context.Context, clientID string, in CreateServiceInput) (*models.Vehicle, error) {
	plate := client.NormalizePlate(in.VehiclePlate)

	v, err := uc.repo.FindVehicleByPlate(ctx, clientID, plate)
	if err == nil {
		return v, nil
	}
	if !httperr.IsNotFound(err) {
		return nil, err
	}

	created := client.VehicleInput{
		Brand: in.VehicleBrand,
		Model: in.VehicleModel,
		Plate: &plate,
		Year:  in.VehicleYear,
	}.ToModel(clientID)
	if err := uc.repo.CreateVehicle(ctx, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

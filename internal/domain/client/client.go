package client

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/models"
)

// RecentAppointments é quantos agendamentos (mais recentes) acompanham cada cliente na listagem.
const RecentAppointments = 1

type Repository interface {
	List(ctx context.Context) ([]models.Client, error)
	FindByID(ctx context.Context, id string) (*models.Client, error)
	Create(ctx context.Context, in Input) (*models.Client, error)
	Update(ctx context.Context, id string, p Patch) (*models.Client, error)
	Delete(ctx context.Context, id string) error

	AddVehicle(ctx context.Context, clientID string, in VehicleInput) (*models.Vehicle, error)
	RemoveVehicle(ctx context.Context, clientID, vehicleID string) error
}

type Input struct {
	Name     string  `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Document *string `json:"document"`
	Address  *string `json:"address"`
}

// Tamanhos das colunas em models.Client e models.Vehicle.
const (
	MaxNameLen     = 100
	MaxEmailLen    = 100
	MaxPhoneLen    = 20
	MaxDocumentLen = 30
	MaxAddressLen  = 255

	MaxBrandLen = 50
	MaxModelLen = 100
	MaxPlateLen = 10
)

type lengthRule struct {
	field string
	value *string
	max   int
}

// checkLengths compara o valor já aparado, em caracteres (varchar do Postgres).
func checkLengths(rules ...lengthRule) error {
	for _, r := range rules {
		if r.value == nil {
			continue
		}
		if utf8.RuneCountInString(strings.TrimSpace(*r.value)) > r.max {
			return httperr.Validation(r.field, fmt.Sprintf("must be at most %d characters", r.max))
		}
	}
	return nil
}

// Validate falha com ValidationError quando o nome é vazio ou só espaços,
// ou quando algum campo passa do tamanho da coluna.
func (in Input) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return httperr.Validation("name", "is required")
	}
	return checkLengths(
		lengthRule{"name", &in.Name, MaxNameLen},
		lengthRule{"email", in.Email, MaxEmailLen},
		lengthRule{"phone", in.Phone, MaxPhoneLen},
		lengthRule{"document", in.Document, MaxDocumentLen},
		lengthRule{"address", in.Address, MaxAddressLen},
	)
}

// ToModel normaliza a entrada: opcionais em branco viram NULL.
func (in Input) ToModel() models.Client {
	return models.Client{
		Name:     strings.TrimSpace(in.Name),
		Email:    optional(in.Email),
		Phone:    optional(in.Phone),
		Document: optional(in.Document),
		Address:  optional(in.Address),
	}
}

// Patch é uma atualização parcial; nil = não alterar.
type Patch struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Document *string `json:"document,omitempty"`
	Address  *string `json:"address,omitempty"`
}

func (p Patch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return httperr.Validation("name", "is required")
	}
	return checkLengths(
		lengthRule{"name", p.Name, MaxNameLen},
		lengthRule{"email", p.Email, MaxEmailLen},
		lengthRule{"phone", p.Phone, MaxPhoneLen},
		lengthRule{"document", p.Document, MaxDocumentLen},
		lengthRule{"address", p.Address, MaxAddressLen},
	)
}

// Columns devolve o mapa de colunas a atualizar. String vazia limpa o campo opcional.
func (p Patch) Columns() map[string]any {
	cols := map[string]any{}
	if p.Name != nil {
		cols["name"] = strings.TrimSpace(*p.Name)
	}
	set := func(col string, v *string) {
		if v != nil {
			cols[col] = optional(v)
		}
	}
	set("email", p.Email)
	set("phone", p.Phone)
	set("document", p.Document)
	set("address", p.Address)
	return cols
}

type VehicleInput struct {
	Brand string  `json:"brand"`
	Model string  `json:"model"`
	Plate *string `json:"plate"`
	Year  *int    `json:"year"`
}

func (in VehicleInput) Validate() error {
	if strings.TrimSpace(in.Model) == "" {
		return httperr.Validation("model", "is required")
	}
	return checkLengths(
		lengthRule{"brand", &in.Brand, MaxBrandLen},
		lengthRule{"model", &in.Model, MaxModelLen},
		lengthRule{"plate", in.Plate, MaxPlateLen},
	)
}

func (in VehicleInput) ToModel(clientID string) models.Vehicle {
	var plate *string
	if p := optional(in.Plate); p != nil {
		up := NormalizePlate(*p)
		plate = &up
	}
	return models.Vehicle{
		ClientID: clientID,
		Brand:    strings.TrimSpace(in.Brand),
		Model:    strings.TrimSpace(in.Model),
		Plate:    plate,
		Year:     in.Year,
	}
}

func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

func optional(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}

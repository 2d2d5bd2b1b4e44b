package user

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/models"
	"github.com/BruksfildServices01/mv-autocenter/internal/validators"
)

// Projection é o usuário como sai da camada de acesso: nunca carrega o hash.
type Projection struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      Role      `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func Project(u *models.User) Projection {
	return Projection{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      Role(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}

type CreateInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     Role
}

// Normalize devolve a entrada com e-mail normalizado e valida os campos.
func (in CreateInput) Normalize() (CreateInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = validators.NormalizeEmail(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)

	if in.Name == "" {
		return in, httperr.Validation("name", "is required")
	}
	if !validators.IsEmailSyntaxValid(in.Email) {
		return in, httperr.Validation("email", "is invalid")
	}
	if err := checkPassword(in.Password); err != nil {
		return in, err
	}
	if in.Role == "" {
		in.Role = RoleFuncionario
	}
	if !in.Role.Valid() {
		return in, httperr.Validation("role", "is invalid")
	}
	return in, nil
}

// MaxPasswordBytes é o limite do bcrypt; acima dele o hash falha.
const MaxPasswordBytes = 72

func checkPassword(pw string) error {
	if pw == "" {
		return httperr.Validation("password", "is required")
	}
	if len(pw) > MaxPasswordBytes {
		return httperr.Validation("password", "must be at most 72 bytes")
	}
	return nil
}

// Patch: campos nil ficam inalterados.
type Patch struct {
	Name     *string
	Email    *string
	Password *string
	Phone    *string
	Role     *Role
	Active   *bool
}

func (p Patch) Normalize() (Patch, error) {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return p, httperr.Validation("name", "is required")
		}
		p.Name = &name
	}
	if p.Email != nil {
		email := validators.NormalizeEmail(*p.Email)
		if !validators.IsEmailSyntaxValid(email) {
			return p, httperr.Validation("email", "is invalid")
		}
		p.Email = &email
	}
	if p.Password != nil {
		if err := checkPassword(*p.Password); err != nil {
			return p, err
		}
	}
	if p.Role != nil && !p.Role.Valid() {
		return p, httperr.Validation("role", "is invalid")
	}
	return p, nil
}

type Repository interface {
	Create(ctx context.Context, in CreateInput) (*Projection, error)
	FindAll(ctx context.Context) ([]Projection, error)
	FindByID(ctx context.Context, id string) (*Projection, error)
	Update(ctx context.Context, id string, p Patch) (*Projection, error)
	Delete(ctx context.Context, id string) error
}

// CredentialSource é usado apenas pela autenticação.
type CredentialSource interface {
	FindCredentialsByEmail(ctx context.Context, email string) (*models.User, error)
}

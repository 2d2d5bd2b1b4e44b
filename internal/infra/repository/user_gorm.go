package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/mv-autocenter/internal/audit"
	domain "github.com/BruksfildServices01/mv-autocenter/internal/domain/user"
	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/models"
	"github.com/BruksfildServices01/mv-autocenter/internal/password"
	"github.com/BruksfildServices01/mv-autocenter/internal/validators"
)

// colunas públicas: password_hash nunca sai daqui
var userColumns = []string{"id", "name", "email", "phone", "role", "active", "created_at"}

type UserGormRepository struct {
	db     *gorm.DB
	hasher password.Hasher
	audit  audit.Sink
}

func NewUserGormRepository(db *gorm.DB, hasher password.Hasher, sink audit.Sink) *UserGormRepository {
	return &UserGormRepository{db: db, hasher: hasher, audit: sink}
}

var (
	_ domain.Repository       = (*UserGormRepository)(nil)
	_ domain.CredentialSource = (*UserGormRepository)(nil)
)

func (r *UserGormRepository) record(ctx context.Context, action, id string, meta map[string]any) {
	r.audit.Dispatch(audit.Event{
		ActorID:  audit.ActorFrom(ctx),
		Action:   action,
		Entity:   "user",
		EntityID: id,
		Metadata: meta,
	})
}

func (r *UserGormRepository) emailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, httperr.Persistence("check user email", err)
	}
	return count > 0, nil
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func (r *UserGormRepository) Create(ctx context.Context, in domain.CreateInput) (*domain.Projection, error) {
	in, err := in.Normalize()
	if err != nil {
		return nil, err
	}

	taken, err := r.emailTaken(ctx, in.Email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		r.record(ctx, "user_create_rejected", "", map[string]any{"email": in.Email, "reason": "email_exists"})
		return nil, httperr.Conflict("user", "email")
	}

	hashed, err := r.hasher.Hash(in.Password)
	if httperr.IsValidation(err) {
		return nil, err
	}
	if err != nil {
		return nil, httperr.Persistence("hash password", err)
	}

	u := models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hashed,
		Phone:        in.Phone,
		Role:         string(in.Role),
		Active:       true,
	}

	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, httperr.Conflict("user", "email")
		}
		return nil, httperr.Persistence("create user", err)
	}

	r.record(ctx, "user_created", u.ID, map[string]any{
		"email":    u.Email,
		"role":     u.Role,
		"password": audit.Redacted,
	})

	p := domain.Project(&u)
	return &p, nil
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *UserGormRepository) FindAll(ctx context.Context) ([]domain.Projection, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Select(userColumns).
		Order("name ASC").
		Find(&users).Error; err != nil {
		return nil, httperr.Persistence("list users", err)
	}

	out := make([]domain.Projection, 0, len(users))
	for i := range users {
		out = append(out, domain.Project(&users[i]))
	}

	r.record(ctx, "user_listed", "", map[string]any{"count": len(out)})
	return out, nil
}

func (r *UserGormRepository) FindByID(ctx context.Context, id string) (*domain.Projection, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Select(userColumns).
		Where("id = ?", id).
		First(&u).Error; err != nil {
		return nil, translate("find user", "user", id, err)
	}

	r.record(ctx, "user_viewed", id, nil)
	p := domain.Project(&u)
	return &p, nil
}

// FindCredentialsByEmail é a única leitura que carrega o hash.
func (r *UserGormRepository) FindCredentialsByEmail(ctx context.Context, email string) (*models.User, error) {
	email = validators.NormalizeEmail(email)

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, translate("find credentials", "user", "", err)
	}
	return &u, nil
}

// --------------------------------------------------
// Update / Delete
// --------------------------------------------------

func (r *UserGormRepository) Update(ctx context.Context, id string, p domain.Patch) (*domain.Projection, error) {
	p, err := p.Normalize()
	if err != nil {
		return nil, err
	}

	var u models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate("find user", "user", id, err)
	}

	changes := map[string]any{}
	fields := []string{}

	if p.Name != nil {
		changes["name"] = *p.Name
		fields = append(fields, "name")
	}
	if p.Email != nil && *p.Email != u.Email {
		taken, err := r.emailTaken(ctx, *p.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			r.record(ctx, "user_update_rejected", id, map[string]any{"email": *p.Email, "reason": "email_exists"})
			return nil, httperr.Conflict("user", "email")
		}
		changes["email"] = *p.Email
		fields = append(fields, "email")
	}
	if p.Phone != nil {
		changes["phone"] = *p.Phone
		fields = append(fields, "phone")
	}
	if p.Role != nil {
		changes["role"] = string(*p.Role)
		fields = append(fields, "role")
	}
	if p.Active != nil {
		changes["active"] = *p.Active
		fields = append(fields, "active")
	}
	if p.Password != nil {
		hashed, err := r.hasher.Hash(*p.Password)
		if httperr.IsValidation(err) {
			return nil, err
		}
		if err != nil {
			return nil, httperr.Persistence("hash password", err)
		}
		changes["password_hash"] = hashed
		fields = append(fields, "password")
	}

	if len(changes) > 0 {
		if err := r.db.WithContext(ctx).Model(&u).Updates(changes).Error; err != nil {
			if isDuplicateKey(err) {
				return nil, httperr.Conflict("user", "email")
			}
			return nil, httperr.Persistence("update user", err)
		}
	}

	applyUserChanges(&u, changes)

	meta := map[string]any{"fields": fields}
	if p.Password != nil {
		meta["password"] = audit.Redacted
	}
	r.record(ctx, "user_updated", id, meta)

	proj := domain.Project(&u)
	return &proj, nil
}

func (r *UserGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.User{})
	if res.Error != nil {
		return httperr.Persistence("delete user", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFoundErr("user", id)
	}

	r.record(ctx, "user_deleted", id, nil)
	return nil
}

func applyUserChanges(u *models.User, changes map[string]any) {
	if v, ok := changes["name"].(string); ok {
		u.Name = v
	}
	if v, ok := changes["email"].(string); ok {
		u.Email = v
	}
	if v, ok := changes["phone"].(string); ok {
		u.Phone = v
	}
	if v, ok := changes["role"].(string); ok {
		u.Role = v
	}
	if v, ok := changes["active"].(bool); ok {
		u.Active = v
	}
	if v, ok := changes["password_hash"].(string); ok {
		u.PasswordHash = v
	}
}

// CountByRole é usado pelo seed inicial.
func (r *UserGormRepository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", string(role)).
		Count(&count).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, httperr.Persistence("count users", err)
	}
	return count, nil
}

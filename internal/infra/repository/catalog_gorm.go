package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/mv-autocenter/internal/domain/catalog"
	"github.com/BruksfildServices01/mv-autocenter/internal/httperr"
	"github.com/BruksfildServices01/mv-autocenter/internal/models"
)

// ======================================================
// PRODUCTS (ESTOQUE)
// ======================================================

type ProductGormRepository struct {
	db *gorm.DB
}

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

var _ catalog.ProductRepository = (*ProductGormRepository)(nil)

func (r *ProductGormRepository) List(ctx context.Context, f catalog.ProductFilter) ([]models.Product, error) {
	q := r.db.WithContext(ctx).Model(&models.Product{})

	if category := strings.ToLower(strings.TrimSpace(f.Category)); category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}
	if query := strings.ToLower(strings.TrimSpace(f.Query)); query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR LOWER(category) LIKE ? OR LOWER(supplier) LIKE ?",
			like, like, like,
		)
	}
	if f.LowOnly {
		q = q.Where("quantity <= min_quantity")
	}

	var products []models.Product
	if err := q.Order("name ASC").Find(&products).Error; err != nil {
		return nil, httperr.Persistence("list products", err)
	}
	return products, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, translate("find product", "product", id, err)
	}
	return &p, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, in catalog.ProductInput) (*models.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	p := in.ToModel()
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, translate("create product", "product", "", err)
	}
	return &p, nil
}

func (r *ProductGormRepository) Update(ctx context.Context, id string, patch catalog.ProductPatch) (*models.Product, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := patch.Apply(p); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return nil, translate("update product", "product", id, err)
	}
	return p, nil
}

func (r *ProductGormRepository) SetQuantity(ctx context.Context, id string, quantity float64) (*models.Product, error) {
	if quantity < 0 {
		return nil, httperr.Validation("quantity", "must not be negative")
	}

	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("quantity", quantity)
	if res.Error != nil {
		return nil, httperr.Persistence("set product quantity", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, httperr.NotFoundErr("product", id)
	}
	return r.FindByID(ctx, id)
}

func (r *ProductGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{})
	if res.Error != nil {
		return httperr.Persistence("delete product", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.NotFoundErr("product", id)
	}
	return nil
}

// ======================================================
// SERVICES (CATÁLOGO)
// ======================================================

type ServiceGormRepository struct {
	db *gorm.DB
}

func NewServiceGormRepository(db *gorm.DB) *ServiceGormRepository {
	return &ServiceGormRepository{db: db}
}

var _ catalog.ServiceRepository = (*ServiceGormRepository)(nil)

func (r *ServiceGormRepository) List(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	q := r.db.WithContext(ctx)
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		return nil, httperr.Persistence("list services", err)
	}
	return services, nil
}

func (r *ServiceGormRepository) Create(ctx context.Context, in catalog.ServiceInput) (*models.Service, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s := models.Service{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		DurationMin: in.DurationMin,
		Active:      true,
	}
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return nil, translate("create service", "service", "", err)
	}
	return &s, nil
}

func (r *ServiceGormRepository) Update(ctx context.Context, id string, patch catalog.ServicePatch) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, translate("find service", "service", id, err)
	}
	if err := patch.Apply(&s); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Save(&s).Error; err != nil {
		return nil, translate("update service", "service", id, err)
	}
	return &s, nil
}

// ======================================================
// SETTINGS
// ======================================================

type SettingGormRepository struct {
	db *gorm.DB
}

func NewSettingGormRepository(db *gorm.DB) *SettingGormRepository {
	return &SettingGormRepository{db: db}
}

var _ catalog.SettingRepository = (*SettingGormRepository)(nil)

func (r *SettingGormRepository) All(ctx context.Context) (map[string]string, error) {
	var rows []models.Setting
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, httperr.Persistence("list settings", err)
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

func (r *SettingGormRepository) Put(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	rows := make([]models.Setting, 0, len(values))
	for k, v := range values {
		if !catalog.IsSettingKey(k) {
			return httperr.Validation(k, "is not a known setting")
		}
		rows = append(rows, models.Setting{Key: k, Value: v})
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rows).Error; err != nil {
		return httperr.Persistence("save settings", err)
	}
	return nil
}

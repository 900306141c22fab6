package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/sweetworks/sweetshop-api/internal/domain/sweet"
	"github.com/sweetworks/sweetshop-api/internal/models"
)

type SweetGormRepository struct {
	db *gorm.DB
}

func NewSweetGormRepository(db *gorm.DB) *SweetGormRepository {
	return &SweetGormRepository{db: db}
}

// --------------------------------------------------
// Sweet
// --------------------------------------------------

func (r *SweetGormRepository) Create(
	ctx context.Context,
	s *models.Sweet,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SweetGormRepository) GetByID(
	ctx context.Context,
	id uint,
) (*models.Sweet, error) {

	var s models.Sweet
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SweetGormRepository) GetByIDWithShop(
	ctx context.Context,
	id uint,
) (*models.Sweet, error) {

	var s models.Sweet
	if err := r.db.WithContext(ctx).
		Preload("Shop").
		First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SweetGormRepository) ListAll(
	ctx context.Context,
) ([]models.Sweet, error) {

	var sweets []models.Sweet
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&sweets).Error; err != nil {
		return nil, err
	}
	return sweets, nil
}

func (r *SweetGormRepository) Search(
	ctx context.Context,
	f domain.SearchFilter,
) ([]models.Sweet, error) {

	q := r.db.WithContext(ctx).Model(&models.Sweet{})

	if f.Name != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+escapeLike(f.Name)+"%")
	}

	if f.Category != "" {
		q = q.Where("LOWER(category) = LOWER(?)", f.Category)
	}

	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}

	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}

	var sweets []models.Sweet
	if err := q.
		Preload("Shop").
		Order("created_at DESC").
		Find(&sweets).Error; err != nil {
		return nil, err
	}
	return sweets, nil
}

func (r *SweetGormRepository) ApplyUpdate(
	ctx context.Context,
	id uint,
	fields domain.UpdateFields,
) (*models.Sweet, error) {

	updates := map[string]any{}
	if fields.Name != nil {
		updates["name"] = *fields.Name
	}
	if fields.Category != nil {
		updates["category"] = *fields.Category
	}
	if fields.Price != nil {
		updates["price"] = *fields.Price
	}
	if fields.Quantity != nil {
		updates["quantity"] = *fields.Quantity
	}
	if fields.Image != nil {
		updates["image"] = *fields.Image
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&models.Sweet{}).
			Where("id = ?", id).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return r.GetByIDWithShop(ctx, id)
}

func (r *SweetGormRepository) Delete(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Sweet{}, id).Error
}

// --------------------------------------------------
// Stock
// --------------------------------------------------

func (r *SweetGormRepository) IncrementStock(
	ctx context.Context,
	id uint,
	qty int,
) (*models.Sweet, error) {

	var s models.Sweet
	res := r.db.WithContext(ctx).
		Model(&s).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", qty))

	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &s, nil
}

func (r *SweetGormRepository) DecrementStock(
	ctx context.Context,
	id uint,
	qty int,
) (*models.Sweet, error) {

	// Single conditional UPDATE so concurrent purchases can never drive
	// quantity below zero.
	var s models.Sweet
	res := r.db.WithContext(ctx).
		Model(&s).
		Clauses(clause.Returning{}).
		Where("id = ? AND quantity >= ?", id, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))

	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrStockConflict
	}
	return &s, nil
}

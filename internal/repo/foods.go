package repo

import (
	"context"
	"strings"

	"github.com/Skotchmaster/resto_pos/internal/models"
	"github.com/Skotchmaster/resto_pos/pkg/apperr"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const msgFoodNotFound = "Food not found"

type FoodFilter struct {
	Category *models.FoodCategory
	IsActive *bool
}

func (r *GormRepo) CreateFood(ctx context.Context, f *models.Food) error {
	return r.DB.WithContext(ctx).Create(f).Error
}

func (r *GormRepo) GetFood(ctx context.Context, id uuid.UUID) (*models.Food, error) {
	var f models.Food
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		return nil, notFound(err, msgFoodNotFound)
	}
	return &f, nil
}

// FoodsNamed returns every record sharing name and category. Price is compared
// by the caller with decimal equality, as stored precision may differ.
func (r *GormRepo) FoodsNamed(ctx context.Context, name string, category models.FoodCategory) ([]models.Food, error) {
	var foods []models.Food
	if err := r.DB.WithContext(ctx).
		Where("name = ? AND category = ?", name, category).
		Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

func (r *GormRepo) ListFoods(ctx context.Context, f FoodFilter, offset, limit int) (int64, []models.Food, error) {
	q := r.DB.WithContext(ctx).Model(&models.Food{})
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	if f.IsActive != nil {
		q = q.Where("is_active = ?", *f.IsActive)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Food, 0, limit)
	if err := q.Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) FoodsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Food, error) {
	foods := make([]models.Food, 0, len(ids))
	if len(ids) == 0 {
		return foods, nil
	}
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

// SearchFoods is the database fallback for menu search: a case-insensitive
// substring match on name and description.
func (r *GormRepo) SearchFoods(ctx context.Context, q string, offset, limit int) (int64, []models.Food, error) {
	pattern := "%" + strings.ToLower(q) + "%"
	where := r.DB.WithContext(ctx).Model(&models.Food{}).
		Where("LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?", pattern, pattern)

	where = where.Session(&gorm.Session{})

	var total int64
	if err := where.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Food, 0, limit)
	if err := where.Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) SaveFood(ctx context.Context, f *models.Food) error {
	return r.DB.WithContext(ctx).Save(f).Error
}

func (r *GormRepo) DeleteFood(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Food{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(msgFoodNotFound)
	}
	return nil
}

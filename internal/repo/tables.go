package repo

import (
	"context"

	"github.com/Skotchmaster/resto_pos/internal/domain"
	"github.com/Skotchmaster/resto_pos/internal/models"
	"github.com/Skotchmaster/resto_pos/pkg/apperr"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const msgTableNotFound = "Table not found"

type TableFilter struct {
	Status *models.TableStatus
}

func (r *GormRepo) CreateTable(ctx context.Context, t *models.Table) error {
	if err := r.DB.WithContext(ctx).Create(t).Error; err != nil {
		if isDuplicate(err) {
			return apperr.Conflict(domain.TableExistsMessage(t.Code))
		}
		return err
	}
	return nil
}

func (r *GormRepo) GetTable(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	var t models.Table
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, notFound(err, msgTableNotFound)
	}
	return &t, nil
}

func (r *GormRepo) GetTableForUpdate(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	var t models.Table
	if err := r.forUpdate(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, notFound(err, msgTableNotFound)
	}
	return &t, nil
}

func (r *GormRepo) TableCodeTaken(ctx context.Context, code string, except uuid.UUID) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Table{}).
		Where("code = ? AND id <> ?", code, except).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) ListTables(ctx context.Context, f TableFilter, offset, limit int) (int64, []models.Table, error) {
	q := r.DB.WithContext(ctx).Model(&models.Table{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Table, 0, limit)
	if err := q.Order("code ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) SaveTable(ctx context.Context, t *models.Table) error {
	if err := r.DB.WithContext(ctx).Save(t).Error; err != nil {
		if isDuplicate(err) {
			return apperr.Conflict(domain.TableExistsMessage(t.Code))
		}
		return err
	}
	return nil
}

func (r *GormRepo) DeleteTable(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Table{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(msgTableNotFound)
	}
	return nil
}

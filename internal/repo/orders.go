package repo

import (
	"context"

	"github.com/Skotchmaster/resto_pos/internal/domain"
	"github.com/Skotchmaster/resto_pos/internal/models"
	"github.com/Skotchmaster/resto_pos/pkg/apperr"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const msgOrderNotFound = "Order not found"

type OrderFilter struct {
	Status  *models.OrderStatus
	TableID *uuid.UUID
}

func itemsByCreation(db *gorm.DB) *gorm.DB {
	return db.Order("order_items.created_at ASC, order_items.id ASC")
}

// CreateOrder inserts the order row only. A second open order for the same
// table violates idx_orders_one_open_per_table and is reported as a conflict.
func (r *GormRepo) CreateOrder(ctx context.Context, o *models.Order) error {
	if err := r.DB.WithContext(ctx).Omit(clause.Associations).Create(o).Error; err != nil {
		if isDuplicate(err) {
			return apperr.Conflict(domain.MsgTableHasOpenOrder)
		}
		return err
	}
	return nil
}

func (r *GormRepo) HasOpenOrder(ctx context.Context, tableID uuid.UUID) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("table_id = ? AND status = ?", tableID, models.OrderOpen).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetOrder loads the order with its table and items, each item with its food.
func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var o models.Order
	if err := r.DB.WithContext(ctx).
		Preload("Table").
		Preload("Items", itemsByCreation).
		Preload("Items.Food").
		Where("id = ?", id).
		First(&o).Error; err != nil {
		return nil, notFound(err, msgOrderNotFound)
	}
	return &o, nil
}

// GetOrderForUpdate locks the order row and loads its items for a mutation.
func (r *GormRepo) GetOrderForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var o models.Order
	if err := r.forUpdate(ctx).Where("id = ?", id).First(&o).Error; err != nil {
		return nil, notFound(err, domain.MsgOrderNotOpen)
	}
	items, err := r.OrderItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *GormRepo) OrderItems(ctx context.Context, orderID uuid.UUID) ([]models.OrderItem, error) {
	items := []models.OrderItem{}
	if err := itemsByCreation(r.DB.WithContext(ctx)).
		Where("order_id = ?", orderID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, f OrderFilter, offset, limit int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.TableID != nil {
		q = q.Where("table_id = ?", *f.TableID)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.Order, 0, limit)
	if err := q.Preload("Table").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

// OrderIDsWithFood lists orders holding a line for foodID.
func (r *GormRepo) OrderIDsWithFood(ctx context.Context, foodID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Distinct("order_id").
		Where("food_id = ?", foodID).
		Pluck("order_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateOrder writes the order's own columns. Items are persisted separately.
func (r *GormRepo) UpdateOrder(ctx context.Context, o *models.Order) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(o).Error
}

func (r *GormRepo) UpdateOrderTotal(ctx context.Context, o *models.Order) error {
	return r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", o.ID).
		Update("total_price", o.TotalPrice).Error
}

func (r *GormRepo) CreateOrderItem(ctx context.Context, it *models.OrderItem) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Create(it).Error
}

func (r *GormRepo) SaveOrderItem(ctx context.Context, it *models.OrderItem) error {
	return r.DB.WithContext(ctx).Omit(clause.Associations).Save(it).Error
}

func (r *GormRepo) DeleteOrderItem(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.OrderItem{}).Error
}

func (r *GormRepo) DeleteOrderItemsByFood(ctx context.Context, foodID uuid.UUID) error {
	return r.DB.WithContext(ctx).Where("food_id = ?", foodID).Delete(&models.OrderItem{}).Error
}

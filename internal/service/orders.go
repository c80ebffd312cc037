package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/resto_pos/internal/domain"
	"github.com/Skotchmaster/resto_pos/internal/models"
	"github.com/Skotchmaster/resto_pos/internal/receipt"
	"github.com/Skotchmaster/resto_pos/internal/repo"
	"github.com/Skotchmaster/resto_pos/pkg/logging"
	"github.com/google/uuid"
)

// OrderService applies order engine transitions inside a single transaction each.
type OrderService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
	Now    func() time.Time
}

func (s *OrderService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *OrderService) Open(ctx context.Context, tableID uuid.UUID, orderBy *string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.open", "table_id", tableID)

	var tr domain.Transition
	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		table, err := tx.GetTableForUpdate(ctx, tableID)
		if err != nil {
			return err
		}
		hasOpen, err := tx.HasOpenOrder(ctx, table.ID)
		if err != nil {
			return err
		}

		tr, err = domain.Open(*table, hasOpen, orderBy, s.now())
		if err != nil {
			return err
		}

		if err := tx.CreateOrder(ctx, &tr.Order); err != nil {
			return err
		}
		return tx.SaveTable(ctx, tr.Table)
	})
	if err != nil {
		l.Debug("open_order_rejected", "error", err)
		return nil, err
	}

	emit(ctx, s.Events, tr.Event)
	order := tr.Order
	order.Table = tr.Table
	return &order, nil
}

func (s *OrderService) AddItem(ctx context.Context, orderID, foodID uuid.UUID, qty int) (*models.Order, error) {
	return s.mutate(ctx, orderID, func(tx *repo.GormRepo, order models.Order) (domain.Transition, error) {
		food, err := tx.GetFood(ctx, foodID)
		if err != nil {
			return domain.Transition{}, err
		}
		tr, err := domain.AddItem(order, *food, qty, s.now())
		if err != nil {
			return tr, err
		}
		if tr.ItemCreated {
			return tr, tx.CreateOrderItem(ctx, tr.Item)
		}
		return tr, tx.SaveOrderItem(ctx, tr.Item)
	})
}

func (s *OrderService) UpdateItemQty(ctx context.Context, orderID, itemID uuid.UUID, qty int) (*models.Order, error) {
	return s.mutate(ctx, orderID, func(tx *repo.GormRepo, order models.Order) (domain.Transition, error) {
		tr, err := domain.UpdateItemQty(order, itemID, qty, s.now())
		if err != nil {
			return tr, err
		}
		return tr, tx.SaveOrderItem(ctx, tr.Item)
	})
}

func (s *OrderService) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) (*models.Order, error) {
	return s.mutate(ctx, orderID, func(tx *repo.GormRepo, order models.Order) (domain.Transition, error) {
		tr, err := domain.RemoveItem(order, itemID, s.now())
		if err != nil {
			return tr, err
		}
		return tr, tx.DeleteOrderItem(ctx, tr.Item.ID)
	})
}

// mutate loads and locks an open order, lets step change one line, then writes
// the recomputed total and returns the reloaded order, all in one transaction.
func (s *OrderService) mutate(
	ctx context.Context,
	orderID uuid.UUID,
	step func(tx *repo.GormRepo, order models.Order) (domain.Transition, error),
) (*models.Order, error) {
	var (
		tr     domain.Transition
		result *models.Order
	)
	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		order, err := tx.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := domain.RequireOpen(*order); err != nil {
			return err
		}

		tr, err = step(tx, *order)
		if err != nil {
			return err
		}
		if err := tx.UpdateOrderTotal(ctx, &tr.Order); err != nil {
			return err
		}

		result, err = tx.GetOrder(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	emit(ctx, s.Events, tr.Event)
	return result, nil
}

func (s *OrderService) Close(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var (
		tr     domain.Transition
		result *models.Order
	)
	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		order, err := tx.GetOrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := domain.RequireOpen(*order); err != nil {
			return err
		}
		table, err := tx.GetTableForUpdate(ctx, order.TableID)
		if err != nil {
			return err
		}

		tr, err = domain.Close(*order, *table, s.now())
		if err != nil {
			return err
		}
		if err := tx.UpdateOrder(ctx, &tr.Order); err != nil {
			return err
		}
		if err := tx.SaveTable(ctx, tr.Table); err != nil {
			return err
		}

		result, err = tx.GetOrder(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	emit(ctx, s.Events, tr.Event)
	return result, nil
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.Repo.GetOrder(ctx, id)
}

func (s *OrderService) List(ctx context.Context, f repo.OrderFilter, offset, limit int) (int64, []models.Order, error) {
	return s.Repo.ListOrders(ctx, f, offset, limit)
}

func (s *OrderService) Receipt(ctx context.Context, id uuid.UUID) ([]byte, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return receipt.Render(order)
}

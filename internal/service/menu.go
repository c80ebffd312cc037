package service

import (
	"context"
	"strings"

	"github.com/Skotchmaster/resto_pos/internal/domain"
	"github.com/Skotchmaster/resto_pos/internal/models"
	"github.com/Skotchmaster/resto_pos/internal/repo"
	"github.com/Skotchmaster/resto_pos/pkg/apperr"
	"github.com/Skotchmaster/resto_pos/pkg/logging"
	"github.com/google/uuid"
)

// MenuIndex is an optional full-text mirror of the catalog.
type MenuIndex interface {
	IndexFood(ctx context.Context, f models.Food) error
	DeleteFood(ctx context.Context, id uuid.UUID) error
	SearchFoods(ctx context.Context, q string, offset, limit int) (int64, []models.Food, error)
}

type MenuService struct {
	Repo  *repo.GormRepo
	Index MenuIndex
}

func (s *MenuService) Create(ctx context.Context, f models.Food) (*models.Food, error) {
	f.Name = strings.TrimSpace(f.Name)
	if err := domain.ValidateFood(f); err != nil {
		return nil, err
	}

	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		if err := ensureUnique(ctx, tx, f); err != nil {
			return err
		}
		return tx.CreateFood(ctx, &f)
	})
	if err != nil {
		return nil, err
	}

	s.reindex(ctx, f)
	return &f, nil
}

func (s *MenuService) Get(ctx context.Context, id uuid.UUID) (*models.Food, error) {
	return s.Repo.GetFood(ctx, id)
}

func (s *MenuService) List(ctx context.Context, f repo.FoodFilter, offset, limit int) (int64, []models.Food, error) {
	return s.Repo.ListFoods(ctx, f, offset, limit)
}

func (s *MenuService) Update(ctx context.Context, id uuid.UUID, ch domain.FoodChanges) (*models.Food, error) {
	if ch.Name != nil {
		name := strings.TrimSpace(*ch.Name)
		ch.Name = &name
	}

	var updated models.Food
	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		current, err := tx.GetFood(ctx, id)
		if err != nil {
			return err
		}
		updated, err = domain.ApplyFoodChanges(*current, ch)
		if err != nil {
			return err
		}
		if err := ensureUnique(ctx, tx, updated); err != nil {
			return err
		}
		return tx.SaveFood(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}

	s.reindex(ctx, updated)
	return &updated, nil
}

// Delete removes the food with every line that references it and recomputes
// the totals of the orders that held those lines.
func (s *MenuService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		if _, err := tx.GetFood(ctx, id); err != nil {
			return err
		}
		affected, err := tx.OrderIDsWithFood(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.DeleteOrderItemsByFood(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteFood(ctx, id); err != nil {
			return err
		}

		for _, orderID := range affected {
			items, err := tx.OrderItems(ctx, orderID)
			if err != nil {
				return err
			}
			order := models.Order{ID: orderID, TotalPrice: domain.Total(items)}
			if err := tx.UpdateOrderTotal(ctx, &order); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.Index != nil {
		if err := s.Index.DeleteFood(ctx, id); err != nil {
			logging.FromContext(ctx).With("svc", "menu.index").Warn("unindex_food_error", "food_id", id, "error", err)
		}
	}
	return nil
}

// Search prefers the search index and falls back to a database match when the
// index is absent or failing.
func (s *MenuService) Search(ctx context.Context, q string, offset, limit int) (int64, []models.Food, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return 0, nil, apperr.ValidationWithDetails("Validation failed", map[string][]string{
			"q": {"The q field is required."},
		})
	}

	if s.Index != nil {
		total, hits, err := s.Index.SearchFoods(ctx, q, offset, limit)
		if err == nil {
			return total, s.hydrate(ctx, hits), nil
		}
		logging.FromContext(ctx).With("svc", "menu.search").Warn("index_search_error", "error", err)
	}
	return s.Repo.SearchFoods(ctx, q, offset, limit)
}

// hydrate swaps index documents for the stored records, keeping index rank.
// Documents whose record is gone are dropped.
func (s *MenuService) hydrate(ctx context.Context, hits []models.Food) []models.Food {
	ids := make([]uuid.UUID, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.ID)
	}
	stored, err := s.Repo.FoodsByIDs(ctx, ids)
	if err != nil {
		return hits
	}

	byID := make(map[uuid.UUID]models.Food, len(stored))
	for _, f := range stored {
		byID[f.ID] = f
	}
	out := make([]models.Food, 0, len(hits))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			out = append(out, f)
		}
	}
	return out
}

func (s *MenuService) reindex(ctx context.Context, f models.Food) {
	if s.Index == nil {
		return
	}
	if err := s.Index.IndexFood(ctx, f); err != nil {
		logging.FromContext(ctx).With("svc", "menu.index").Warn("index_food_error", "food_id", f.ID, "error", err)
	}
}

func ensureUnique(ctx context.Context, tx *repo.GormRepo, f models.Food) error {
	same, err := tx.FoodsNamed(ctx, f.Name, f.Category)
	if err != nil {
		return err
	}
	if _, dup := domain.FindDuplicate(f, same); dup {
		return apperr.Conflict(domain.DuplicateFoodMessage(f))
	}
	return nil
}

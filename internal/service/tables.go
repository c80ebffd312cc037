package service

import (
	"context"
	"strings"

	"github.com/Skotchmaster/resto_pos/internal/domain"
	"github.com/Skotchmaster/resto_pos/internal/models"
	"github.com/Skotchmaster/resto_pos/internal/repo"
	"github.com/Skotchmaster/resto_pos/pkg/apperr"
	"github.com/google/uuid"
)

type TableService struct {
	Repo *repo.GormRepo
}

func (s *TableService) Create(ctx context.Context, code string, capacity int, status models.TableStatus) (*models.Table, error) {
	code = strings.TrimSpace(code)
	if status != "" && status != models.TableAvailable {
		return nil, apperr.ValidationWithDetails("Validation failed", map[string][]string{
			"status": {"A new table must be available."},
		})
	}
	if capacity < 0 {
		return nil, apperr.ValidationWithDetails("Validation failed", map[string][]string{
			"capacity": {"The capacity field must be at least 0."},
		})
	}

	table := models.NewTable(code, capacity)
	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		taken, err := tx.TableCodeTaken(ctx, code, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Conflict(domain.TableExistsMessage(code))
		}
		return tx.CreateTable(ctx, &table)
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (s *TableService) Get(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	return s.Repo.GetTable(ctx, id)
}

func (s *TableService) List(ctx context.Context, f repo.TableFilter, offset, limit int) (int64, []models.Table, error) {
	return s.Repo.ListTables(ctx, f, offset, limit)
}

func (s *TableService) Update(ctx context.Context, id uuid.UUID, ch domain.TableChanges) (*models.Table, error) {
	if ch.Code != nil {
		code := strings.TrimSpace(*ch.Code)
		ch.Code = &code
	}

	var updated models.Table
	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		table, err := tx.GetTableForUpdate(ctx, id)
		if err != nil {
			return err
		}

		updated, err = domain.UpdateTable(*table, ch)
		if err != nil {
			return err
		}

		if updated.Code != table.Code {
			taken, err := tx.TableCodeTaken(ctx, updated.Code, id)
			if err != nil {
				return err
			}
			if taken {
				return apperr.Conflict(domain.TableExistsMessage(updated.Code))
			}
		}
		return tx.SaveTable(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *TableService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		table, err := tx.GetTableForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := domain.CanDeleteTable(*table); err != nil {
			return err
		}
		return tx.DeleteTable(ctx, id)
	})
}

func (s *TableService) Reserve(ctx context.Context, id uuid.UUID, reservedBy string) (*models.Table, error) {
	return s.transition(ctx, id, func(t models.Table) (models.Table, error) {
		return domain.Reserve(t, reservedBy)
	})
}

func (s *TableService) CancelReservation(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	return s.transition(ctx, id, domain.CancelReservation)
}

func (s *TableService) transition(ctx context.Context, id uuid.UUID, fn func(models.Table) (models.Table, error)) (*models.Table, error) {
	var updated models.Table
	err := s.Repo.InTx(ctx, func(tx *repo.GormRepo) error {
		table, err := tx.GetTableForUpdate(ctx, id)
		if err != nil {
			return err
		}
		updated, err = fn(*table)
		if err != nil {
			return err
		}
		return tx.SaveTable(ctx, &updated)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

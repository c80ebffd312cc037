package domain

import (
	"fmt"
	"strings"

	"github.com/Skotchmaster/resto_pos/internal/models"
	"github.com/Skotchmaster/resto_pos/pkg/apperr"
)

type TableChanges struct {
	Code     *string
	Capacity *int
	Status   *models.TableStatus
}

func label(t models.Table) string {
	return strings.ToUpper(t.Code)
}

func TableExistsMessage(code string) string {
	return fmt.Sprintf("Table %s already exists", strings.ToUpper(code))
}

// UpdateTable applies metadata edits. Only the order engine moves a table in
// or out of occupied, and a reservation must be cancelled before editing.
func UpdateTable(t models.Table, ch TableChanges) (models.Table, error) {
	switch t.Status {
	case models.TableReserved:
		return t, apperr.Conflict(fmt.Sprintf("Table %s is reserved and cannot be updated", label(t)))
	case models.TableOccupied:
		return t, apperr.Conflict(fmt.Sprintf("Table %s is occupied and cannot be updated", label(t)))
	}

	if ch.Status != nil {
		if *ch.Status != models.TableAvailable && *ch.Status != models.TableInactive {
			return t, apperr.ValidationWithDetails("Validation failed", map[string][]string{
				"status": {"The selected status is invalid."},
			})
		}
		t.Status = *ch.Status
	}
	if ch.Capacity != nil {
		if *ch.Capacity < 0 {
			return t, apperr.ValidationWithDetails("Validation failed", map[string][]string{
				"capacity": {"The capacity field must be at least 0."},
			})
		}
		t.Capacity = *ch.Capacity
	}
	if ch.Code != nil {
		t.Code = *ch.Code
	}
	return t, nil
}

func CanDeleteTable(t models.Table) error {
	if t.Status != models.TableAvailable && t.Status != models.TableInactive {
		return apperr.Conflict(fmt.Sprintf("Table %s cannot be deleted while %s", label(t), t.Status))
	}
	return nil
}

func Reserve(t models.Table, reservedBy string) (models.Table, error) {
	reservedBy = strings.TrimSpace(reservedBy)
	if reservedBy == "" {
		return t, apperr.ValidationWithDetails("Validation failed", map[string][]string{
			"reserved_by": {"The reserved by field is required."},
		})
	}
	if t.Status != models.TableAvailable {
		return t, apperr.Conflict(fmt.Sprintf("Table %s is not available for reservation", label(t)))
	}
	t.Status = models.TableReserved
	t.ReservedBy = &reservedBy
	return t, nil
}

func CancelReservation(t models.Table) (models.Table, error) {
	if t.Status != models.TableReserved {
		return t, apperr.Conflict(fmt.Sprintf("Table %s is not reserved", label(t)))
	}
	t.Status = models.TableAvailable
	t.ReservedBy = nil
	return t, nil
}

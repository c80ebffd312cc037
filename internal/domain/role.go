package domain

import (
	"fmt"

	"github.com/Skotchmaster/resto_pos/internal/models"
	"github.com/Skotchmaster/resto_pos/pkg/apperr"
)

type Action string

const (
	ActionTablesList   Action = "tables.list"
	ActionTablesManage Action = "tables.manage"
	ActionMenuRead     Action = "menu.read"
	ActionMenuManage   Action = "menu.manage"
	ActionOrdersRead   Action = "orders.read"
	ActionOrdersOpen   Action = "orders.open"
	ActionOrdersEdit   Action = "orders.edit"
	ActionOrdersClose  Action = "orders.close"
)

var permissions = map[Action][]models.Role{
	ActionTablesList:   {models.RolePelayan, models.RoleKasir},
	ActionTablesManage: {models.RolePelayan},
	ActionMenuRead:     {models.RolePelayan},
	ActionMenuManage:   {models.RolePelayan},
	ActionOrdersRead:   {models.RolePelayan, models.RoleKasir},
	ActionOrdersOpen:   {models.RolePelayan},
	ActionOrdersEdit:   {models.RolePelayan},
	ActionOrdersClose:  {models.RolePelayan, models.RoleKasir},
}

func ParseRole(s string) (models.Role, error) {
	r := models.Role(s)
	if !r.Valid() {
		return "", apperr.Validation(fmt.Sprintf("unknown role %q", s))
	}
	return r, nil
}

// Authorize is the only place role membership is checked. Unknown actions are denied.
func Authorize(role models.Role, action Action) error {
	for _, allowed := range permissions[action] {
		if allowed == role {
			return nil
		}
	}
	return apperr.Forbidden("You do not have permission to access this resource")
}

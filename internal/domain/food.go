package domain

import (
	"fmt"
	"strings"

	"github.com/Skotchmaster/resto_pos/internal/models"
	"github.com/Skotchmaster/resto_pos/pkg/apperr"
	"github.com/shopspring/decimal"
)

type FoodChanges struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *models.FoodCategory
	IsActive    *bool
}

func DuplicateFoodMessage(f models.Food) string {
	category := string(f.Category)
	if category != "" {
		category = strings.ToUpper(category[:1]) + category[1:]
	}
	return fmt.Sprintf("%s %s with price %s already exists", category, f.Name, f.Price.String())
}

func ValidateFood(f models.Food) error {
	details := map[string][]string{}
	if strings.TrimSpace(f.Name) == "" {
		details["name"] = append(details["name"], "The name field is required.")
	}
	if f.Price.IsNegative() {
		details["price"] = append(details["price"], "The price field must be at least 0.")
	}
	if !models.ValidCategory(f.Category) {
		details["category"] = append(details["category"], "The selected category is invalid.")
	}
	if len(details) > 0 {
		return apperr.ValidationWithDetails("Validation failed", details)
	}
	return nil
}

func ApplyFoodChanges(f models.Food, ch FoodChanges) (models.Food, error) {
	if ch.Name != nil {
		f.Name = *ch.Name
	}
	if ch.Description != nil {
		f.Description = ch.Description
	}
	if ch.Price != nil {
		f.Price = *ch.Price
	}
	if ch.Category != nil {
		f.Category = *ch.Category
	}
	if ch.IsActive != nil {
		f.IsActive = *ch.IsActive
	}
	return f, ValidateFood(f)
}

// SameIdentity reports whether other collides with f on (name, price, category).
// A record never collides with itself.
func SameIdentity(f, other models.Food) bool {
	return f.ID != other.ID &&
		f.Name == other.Name &&
		f.Category == other.Category &&
		f.Price.Equal(other.Price)
}

func FindDuplicate(f models.Food, candidates []models.Food) (models.Food, bool) {
	for _, c := range candidates {
		if SameIdentity(f, c) {
			return c, true
		}
	}
	return models.Food{}, false
}

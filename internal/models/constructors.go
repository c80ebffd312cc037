package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Every constructor assigns a fresh id so records never depend on storage-side key generation.

func NewTable(code string, capacity int) Table {
	return Table{
		ID:       uuid.New(),
		Code:     code,
		Capacity: capacity,
		Status:   TableAvailable,
	}
}

func NewFood(name string, description *string, price decimal.Decimal, category FoodCategory, active bool) Food {
	return Food{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		IsActive:    active,
	}
}

func NewOrder(tableID uuid.UUID, orderBy *string) Order {
	return Order{
		ID:             uuid.New(),
		TableID:        tableID,
		OrderBy:        orderBy,
		Status:         OrderOpen,
		PaymentStatus:  PaymentUnpaid,
		DeliveryStatus: DeliveryPending,
		TotalPrice:     decimal.Zero,
	}
}

// NewOrderItem snapshots the food's current price as the line's unit price.
func NewOrderItem(orderID uuid.UUID, food Food, qty int) OrderItem {
	return OrderItem{
		ID:       uuid.New(),
		OrderID:  orderID,
		FoodID:   food.ID,
		Qty:      qty,
		Price:    food.Price,
		Subtotal: food.Price.Mul(decimal.NewFromInt(int64(qty))),
	}
}

func NewUser(name, email, passwordHash string, role Role) User {
	return User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
}

func NewAccessToken(jti string, userID uuid.UUID, expiresAt time.Time) AccessToken {
	return AccessToken{
		ID:        uuid.New(),
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
}

func ValidCategory(c FoodCategory) bool {
	switch c {
	case CategoryFood, CategoryDrink, CategorySnack:
		return true
	}
	return false
}

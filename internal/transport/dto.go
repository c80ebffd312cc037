package transport

import (
	"time"

	"github.com/Skotchmaster/resto_pos/internal/models"
	"github.com/Skotchmaster/resto_pos/internal/util"
	"github.com/shopspring/decimal"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

type LoginResponse struct {
	UserResponse
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func NewUserResponse(u models.User) UserResponse {
	return UserResponse{ID: u.ID.String(), Name: u.Name, Email: u.Email, Role: u.Role}
}

type CreateTableRequest struct {
	Code     string `json:"code"     validate:"required,max=3"`
	Capacity *int   `json:"capacity" validate:"omitempty,min=0"`
	Status   string `json:"status"   validate:"required,oneof=available"`
}

type UpdateTableRequest struct {
	Code     *string `json:"code"     validate:"omitempty,min=1,max=3"`
	Capacity *int    `json:"capacity" validate:"omitempty,min=0"`
	Status   string  `json:"status"   validate:"required,oneof=available inactive"`
}

type ReserveTableRequest struct {
	ReservedBy string `json:"reserved_by" validate:"required,max=100"`
}

type CreateFoodRequest struct {
	Name        string           `json:"name"        validate:"required,max=100"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	Price       *decimal.Decimal `json:"price"       validate:"required"`
	Category    string           `json:"category"    validate:"required,oneof=food drink snack"`
	IsActive    *bool            `json:"is_active"`
}

type UpdateFoodRequest struct {
	Name        *string          `json:"name"        validate:"omitempty,min=1,max=100"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"    validate:"omitempty,oneof=food drink snack"`
	IsActive    *bool            `json:"is_active"`
}

type OpenOrderRequest struct {
	TableID string  `json:"table_id" validate:"required,uuid"`
	OrderBy *string `json:"order_by" validate:"omitempty,max=100"`
}

type AddItemRequest struct {
	FoodID string `json:"food_id" validate:"required,uuid"`
	Qty    int    `json:"qty"     validate:"required,min=1"`
}

type UpdateItemRequest struct {
	Qty int `json:"qty" validate:"required,min=1"`
}

type Page[T any] struct {
	Items []T       `json:"items"`
	Meta  util.Meta `json:"meta"`
}

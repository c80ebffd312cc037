package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TableStatus string

const (
	TableAvailable TableStatus = "available"
	TableOccupied  TableStatus = "occupied"
	TableReserved  TableStatus = "reserved"
	TableInactive  TableStatus = "inactive"
)

type FoodCategory string

const (
	CategoryFood  FoodCategory = "food"
	CategoryDrink FoodCategory = "drink"
	CategorySnack FoodCategory = "snack"
)

type OrderStatus string

const (
	OrderOpen   OrderStatus = "open"
	OrderClosed OrderStatus = "closed"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryDelivered DeliveryStatus = "delivered"
)

type Role string

const (
	RolePelayan Role = "pelayan"
	RoleKasir   Role = "kasir"
)

func (r Role) Valid() bool {
	return r == RolePelayan || r == RoleKasir
}

type Table struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey"         json:"id"`
	Code       string      `gorm:"size:3;uniqueIndex;not null"  json:"code"`
	Capacity   int         `gorm:"not null;check:capacity>=0"   json:"capacity"`
	Status     TableStatus `gorm:"size:16;not null;index"       json:"status"`
	ReservedBy *string     `gorm:"size:100"                     json:"reserved_by"`
	CreatedAt  time.Time   `                                    json:"created_at"`
	UpdatedAt  time.Time   `                                    json:"updated_at"`
}

type Food struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"                    json:"id"`
	Name        string          `gorm:"size:100;not null;index:idx_food_ident"  json:"name"`
	Description *string         `gorm:"type:text"                               json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"             json:"price"`
	Category    FoodCategory    `gorm:"size:16;not null;index:idx_food_ident"   json:"category"`
	IsActive    bool            `gorm:"not null"                                json:"is_active"`
	CreatedAt   time.Time       `                                               json:"created_at"`
	UpdatedAt   time.Time       `                                               json:"updated_at"`
}

type Order struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"                           json:"id"`
	TableID        uuid.UUID       `gorm:"type:uuid;not null;index"                       json:"table_id"`
	Table          *Table          `gorm:"foreignKey:TableID;constraint:OnDelete:CASCADE" json:"table,omitempty"`
	OrderBy        *string         `gorm:"size:100"                                       json:"order_by"`
	Status         OrderStatus     `gorm:"size:16;not null;index"                         json:"status"`
	PaymentStatus  PaymentStatus   `gorm:"size:16;not null"                               json:"payment_status"`
	DeliveryStatus DeliveryStatus  `gorm:"size:16;not null"                               json:"delivery_status"`
	TotalPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"                    json:"total_price"`
	ClosedAt       *time.Time      `                                                      json:"closed_at"`
	Items          []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt      time.Time       `                                                      json:"created_at"`
	UpdatedAt      time.Time       `                                                      json:"updated_at"`
}

type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"                          json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_food" json:"order_id"`
	FoodID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_food" json:"food_id"`
	Food      *Food           `gorm:"foreignKey:FoodID;constraint:OnDelete:CASCADE" json:"food,omitempty"`
	Qty       int             `gorm:"not null;check:qty>0"                          json:"qty"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"                   json:"price"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"                   json:"subtotal"`
	CreatedAt time.Time       `                                                     json:"created_at"`
	UpdatedAt time.Time       `                                                     json:"updated_at"`
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"         json:"id"`
	Name         string    `gorm:"size:100;not null"            json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null"                     json:"-"`
	Role         Role      `gorm:"size:16;not null"             json:"role"`
	CreatedAt    time.Time `                                    json:"created_at"`
	UpdatedAt    time.Time `                                    json:"updated_at"`
}

type AccessToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	JTI       string    `gorm:"size:64;uniqueIndex;not null" json:"jti"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null"                 json:"expires_at"`
	Revoked   bool      `gorm:"not null"                 json:"revoked"`
	CreatedAt time.Time `                                json:"created_at"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EventType string

const (
	EventOrderOpened      EventType = "order.opened"
	EventOrderItemAdded   EventType = "order.item_added"
	EventOrderItemUpdated EventType = "order.item_updated"
	EventOrderItemRemoved EventType = "order.item_removed"
	EventOrderClosed      EventType = "order.closed"
)

type Event struct {
	Type    EventType       `json:"type"`
	OrderID uuid.UUID       `json:"order_id"`
	TableID uuid.UUID       `json:"table_id"`
	ItemID  *uuid.UUID      `json:"item_id,omitempty"`
	FoodID  *uuid.UUID      `json:"food_id,omitempty"`
	Qty     int             `json:"qty,omitempty"`
	Total   decimal.Decimal `json:"total"`
	At      time.Time       `json:"at"`
}

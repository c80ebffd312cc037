package domain

import (
	"time"

	"github.com/Skotchmaster/resto_pos/internal/models"
	"github.com/Skotchmaster/resto_pos/pkg/apperr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MsgTableOccupied     = "table already occupied"
	MsgTableHasOpenOrder = "table already has an open order"
	MsgOrderNotOpen      = "order not found or already closed"
	MsgItemUnavailable   = "item unavailable"
	MsgItemNotFound      = "order item not found"
)

// Transition is the outcome of one engine step. Table is set only when the
// table row changed, Item only when a single line was touched.
type Transition struct {
	Order       models.Order
	Table       *models.Table
	Item        *models.OrderItem
	ItemCreated bool
	Event       Event
}

// Total sums line subtotals. It is the only way an order total is produced.
func Total(items []models.OrderItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Subtotal)
	}
	return sum
}

func Recompute(o models.Order) models.Order {
	o.TotalPrice = Total(o.Items)
	return o
}

func Open(table models.Table, hasOpenOrder bool, orderBy *string, now time.Time) (Transition, error) {
	if table.Status != models.TableAvailable {
		return Transition{}, apperr.Conflict(MsgTableOccupied)
	}
	if hasOpenOrder {
		return Transition{}, apperr.Conflict(MsgTableHasOpenOrder)
	}

	order := models.NewOrder(table.ID, orderBy)
	order.Items = []models.OrderItem{}

	table.Status = models.TableOccupied
	table.ReservedBy = nil

	return Transition{
		Order: order,
		Table: &table,
		Event: newEvent(EventOrderOpened, order, now),
	}, nil
}

// AddItem merges into the existing (order, food) line when there is one. The
// merged line keeps its original unit price.
func AddItem(order models.Order, food models.Food, qty int, now time.Time) (Transition, error) {
	if err := RequireOpen(order); err != nil {
		return Transition{}, err
	}
	if !food.IsActive {
		return Transition{}, apperr.Conflict(MsgItemUnavailable)
	}
	if err := requireQty(qty); err != nil {
		return Transition{}, err
	}

	items := cloneItems(order.Items)
	var (
		line    models.OrderItem
		created bool
	)
	if i := indexByFood(items, food.ID); i >= 0 {
		items[i].Qty += qty
		items[i].Subtotal = lineSubtotal(items[i].Price, items[i].Qty)
		line = items[i]
	} else {
		line = models.NewOrderItem(order.ID, food, qty)
		items = append(items, line)
		created = true
	}

	order.Items = items
	order = Recompute(order)

	ev := newEvent(EventOrderItemAdded, order, now)
	ev.ItemID, ev.FoodID, ev.Qty = &line.ID, &line.FoodID, line.Qty
	return Transition{Order: order, Item: &line, ItemCreated: created, Event: ev}, nil
}

func UpdateItemQty(order models.Order, itemID uuid.UUID, qty int, now time.Time) (Transition, error) {
	if err := RequireOpen(order); err != nil {
		return Transition{}, err
	}
	items := cloneItems(order.Items)
	i := indexByID(items, itemID)
	if i < 0 {
		return Transition{}, apperr.NotFound(MsgItemNotFound)
	}
	if err := requireQty(qty); err != nil {
		return Transition{}, err
	}

	items[i].Qty = qty
	items[i].Subtotal = lineSubtotal(items[i].Price, qty)
	line := items[i]

	order.Items = items
	order = Recompute(order)

	ev := newEvent(EventOrderItemUpdated, order, now)
	ev.ItemID, ev.FoodID, ev.Qty = &line.ID, &line.FoodID, line.Qty
	return Transition{Order: order, Item: &line, Event: ev}, nil
}

func RemoveItem(order models.Order, itemID uuid.UUID, now time.Time) (Transition, error) {
	if err := RequireOpen(order); err != nil {
		return Transition{}, err
	}
	i := indexByID(order.Items, itemID)
	if i < 0 {
		return Transition{}, apperr.NotFound(MsgItemNotFound)
	}

	line := order.Items[i]
	items := make([]models.OrderItem, 0, len(order.Items)-1)
	items = append(items, order.Items[:i]...)
	items = append(items, order.Items[i+1:]...)

	order.Items = items
	order = Recompute(order)

	ev := newEvent(EventOrderItemRemoved, order, now)
	ev.ItemID, ev.FoodID = &line.ID, &line.FoodID
	return Transition{Order: order, Item: &line, Event: ev}, nil
}

// Close settles the order in full and frees its table. There is no reopen.
func Close(order models.Order, table models.Table, now time.Time) (Transition, error) {
	if err := RequireOpen(order); err != nil {
		return Transition{}, err
	}
	if table.ID != order.TableID {
		return Transition{}, apperr.Conflict("order does not belong to this table")
	}

	closedAt := now
	order.Status = models.OrderClosed
	order.PaymentStatus = models.PaymentPaid
	order.DeliveryStatus = models.DeliveryDelivered
	order.ClosedAt = &closedAt
	order = Recompute(order)

	table.Status = models.TableAvailable
	table.ReservedBy = nil

	return Transition{
		Order: order,
		Table: &table,
		Event: newEvent(EventOrderClosed, order, now),
	}, nil
}

// RequireOpen rejects mutations on an order that is no longer open.
func RequireOpen(o models.Order) error {
	if o.Status != models.OrderOpen {
		return apperr.NotFound(MsgOrderNotOpen)
	}
	return nil
}

func requireQty(qty int) error {
	if qty < 1 {
		return apperr.ValidationWithDetails("Validation failed", map[string][]string{
			"qty": {"The qty field must be at least 1."},
		})
	}
	return nil
}

func lineSubtotal(price decimal.Decimal, qty int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty)))
}

func cloneItems(items []models.OrderItem) []models.OrderItem {
	out := make([]models.OrderItem, len(items))
	copy(out, items)
	return out
}

func indexByFood(items []models.OrderItem, foodID uuid.UUID) int {
	for i := range items {
		if items[i].FoodID == foodID {
			return i
		}
	}
	return -1
}

func indexByID(items []models.OrderItem, id uuid.UUID) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func newEvent(t EventType, o models.Order, now time.Time) Event {
	return Event{
		Type:    t,
		OrderID: o.ID,
		TableID: o.TableID,
		Total:   o.TotalPrice,
		At:      now.UTC(),
	}
}

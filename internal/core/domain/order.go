package domain

import "time"

// OrderStatus represents the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every status an admin may set, in workflow order.
var OrderStatuses = []OrderStatus{OrderPending, OrderConfirmed, OrderCompleted, OrderCancelled}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Order is a customer's purchase request.
type Order struct {
	ID           string
	UserID       string
	CustomerName string
	Phone        string
	Email        string
	Address      string
	Status       OrderStatus
	Notes        string
	Items        []OrderItem
	CreatedAt    time.Time
}

// OrderItem is one line of an order.
type OrderItem struct {
	ProductID string
	Quantity  int

	// Product is hydrated on read; nil when the product no longer exists.
	Product *Product
}

// ProductIDs returns the distinct product IDs referenced by the order, in
// first-seen order.
func (o *Order) ProductIDs() []string {
	seen := make(map[string]struct{}, len(o.Items))
	ids := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

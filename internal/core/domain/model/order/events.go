package order

import "time"

// Lifecycle event tags, used as broker routing keys and envelope type tags.
const (
	EventOrderCreated   = "order.created"
	EventOrderUpdated   = "order.updated"
	EventOrderCancelled = "order.cancelled"
)

// EventItem is the wire representation of a line item inside a lifecycle event.
type EventItem struct {
	ProductID string `json:"ProductId"`
	Quantity  int    `json:"Quantity"`
	Price     string `json:"Price"`
}

// Event is the domain payload of a lifecycle event. It is serialized into the
// broker envelope's message field.
type Event struct {
	OrderID        string      `json:"OrderId"`
	TrackingNumber string      `json:"TrackingNumber"`
	ClientID       string      `json:"UserId"`
	Items          []EventItem `json:"Items"`
	CreatedAt      time.Time   `json:"CreatedAt"`
	Status         string      `json:"Status"`
	CancelledBy    string      `json:"CancelledBy,omitempty"`
	Reason         string      `json:"Reason,omitempty"`
}

// NewEvent builds the lifecycle event payload for the order's current state.
func NewEvent(o *Order) Event {
	items := make([]EventItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, EventItem{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
			Price:     item.Price().String(),
		})
	}

	return Event{
		OrderID:        o.ID().String(),
		TrackingNumber: o.TrackingNumber(),
		ClientID:       o.ClientID(),
		Items:          items,
		CreatedAt:      o.CreatedAt(),
		Status:         o.Status().String(),
	}
}

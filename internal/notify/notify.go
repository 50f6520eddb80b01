package notify

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/hawkerhub/api/internal/database"
	"github.com/hawkerhub/api/internal/ws"
)

// Event types pushed to connected clients
const (
	EventNewOrder          = "new_order"
	EventOrderStatusUpdate = "order_status_update"
)

// Broadcaster publishes an event to every subscriber of a topic.
// Satisfied by *ws.Hub.
type Broadcaster interface {
	Broadcast(topic string, event ws.Event)
}

// Notifier translates committed order state into WebSocket events.
// Services call it after their transaction commits, never before.
type Notifier struct {
	hub Broadcaster
}

func New(hub Broadcaster) *Notifier {
	return &Notifier{hub: hub}
}

// OrderPayload is the wire shape of an order in pushed events.
// Amounts are decimal strings, never JSON numbers.
type OrderPayload struct {
	ID          uuid.UUID `json:"id"`
	StallID     uuid.UUID `json:"stall_id"`
	Status      string    `json:"status"`
	TotalAmount string    `json:"total_amount"`
	OrderNotes  *string   `json:"order_notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OrderCreated announces a freshly placed order to the kitchen feed.
func (n *Notifier) OrderCreated(order database.Order) {
	payload, err := json.Marshal(toPayload(order))
	if err != nil {
		log.Printf("ERROR: marshal order %s payload: %v", order.ID, err)
		return
	}
	n.hub.Broadcast(ws.KitchenTopic, ws.Event{Type: EventNewOrder, Payload: payload})
}

// OrderStatusChanged announces a status transition to the kitchen feed
// and to the customers tracking that order.
func (n *Notifier) OrderStatusChanged(order database.Order) {
	payload, err := json.Marshal(toPayload(order))
	if err != nil {
		log.Printf("ERROR: marshal order %s payload: %v", order.ID, err)
		return
	}
	event := ws.Event{Type: EventOrderStatusUpdate, Payload: payload}
	n.hub.Broadcast(ws.KitchenTopic, event)
	n.hub.Broadcast(ws.OrderTopic(order.ID), event)
}

func toPayload(order database.Order) OrderPayload {
	p := OrderPayload{
		ID:          order.ID,
		StallID:     order.StallID,
		Status:      order.Status,
		TotalAmount: numericString(order.TotalAmount),
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
	if order.OrderNotes.Valid {
		notes := order.OrderNotes.String
		p.OrderNotes = &notes
	}
	return p
}

func numericString(n pgtype.Numeric) string {
	if !n.Valid {
		return "0"
	}
	return decimal.NewFromBigInt(n.Int, n.Exp).String()
}

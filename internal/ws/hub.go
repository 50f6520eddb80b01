package ws

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// KitchenTopic is the unscoped broadcast channel. Every kitchen dashboard
// subscribes here and observes every order's lifecycle.
const KitchenTopic = "kitchen"

// OrderTopic names the room scoped to a single order. Only customers
// tracking that order join it.
func OrderTopic(orderID uuid.UUID) string {
	return "order:" + orderID.String()
}

// Event represents a WebSocket message to be broadcast
type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// topicEvent is an internal struct for routing events to a single room
type topicEvent struct {
	Topic string
	Event Event
}

// subscription joins an already-connected client to an additional room
type subscription struct {
	client *Client
	topic  string
}

// Hub maintains the set of active clients and broadcasts messages to them.
// A single Run loop owns all room transitions, so events broadcast for one
// topic are delivered to each subscriber in the order they were published.
type Hub struct {
	// Registered clients by topic
	rooms map[string]map[*Client]bool

	// Inbound messages from clients (register/unregister/room joins)
	register   chan *Client
	unregister chan *Client
	subscribe  chan subscription

	// Outbound messages to broadcast
	broadcast chan *topicEvent

	// Closed by Stop to terminate the Run loop
	done chan struct{}

	// Mutex for thread-safe room access
	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		subscribe:  make(chan subscription),
		broadcast:  make(chan *topicEvent, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop
// This should be called as a goroutine: go hub.Run()
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			return

		case client := <-h.register:
			h.mu.Lock()
			for topic := range client.topics {
				h.addToRoom(topic, client)
			}
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.removeClient(client)
			h.mu.Unlock()

		case sub := <-h.subscribe:
			h.mu.Lock()
			sub.client.topics[sub.topic] = true
			h.addToRoom(sub.topic, sub.client)
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.Lock()
			clients := h.rooms[event.Topic]

			// Marshal event to JSON once
			message, err := json.Marshal(event.Event)
			if err != nil {
				h.mu.Unlock()
				continue
			}

			for client := range clients {
				select {
				case client.send <- message:
				default:
					// Client's send buffer is full, drop the connection
					h.removeClient(client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Stop terminates the Run loop. Connected clients are torn down by their
// own pumps when the connection closes.
func (h *Hub) Stop() {
	close(h.done)
}

// Broadcast sends an event to all clients subscribed to the given topic.
// This is the public API for services to publish events.
func (h *Hub) Broadcast(topic string, event Event) {
	h.broadcast <- &topicEvent{
		Topic: topic,
		Event: event,
	}
}

// addToRoom requires h.mu to be held.
func (h *Hub) addToRoom(topic string, client *Client) {
	if h.rooms[topic] == nil {
		h.rooms[topic] = make(map[*Client]bool)
	}
	h.rooms[topic][client] = true
}

// removeClient drops a client from every room it joined and closes its
// send channel. Requires h.mu to be held.
func (h *Hub) removeClient(client *Client) {
	removed := false
	for topic := range client.topics {
		if clients, ok := h.rooms[topic]; ok {
			if _, exists := clients[client]; exists {
				delete(clients, client)
				removed = true
				// Clean up empty rooms
				if len(clients) == 0 {
					delete(h.rooms, topic)
				}
			}
		}
	}
	if removed {
		close(client.send)
	}
}

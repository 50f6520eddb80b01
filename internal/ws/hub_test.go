package ws

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

// mockClient creates a client for testing without a real WebSocket connection
func mockClient(hub *Hub, topics ...string) *Client {
	set := make(map[string]bool, len(topics))
	for _, topic := range topics {
		set[topic] = true
	}
	return &Client{
		hub:    hub,
		send:   make(chan []byte, 256),
		topics: set,
	}
}

func TestHubRegistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := mockClient(hub, KitchenTopic)

	hub.register <- client

	// Give hub time to process
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if hub.rooms[KitchenTopic] == nil {
		t.Fatal("kitchen room not created")
	}
	if !hub.rooms[KitchenTopic][client] {
		t.Fatal("client not registered in kitchen room")
	}
}

func TestHubUnregistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	topic := OrderTopic(uuid.New())
	client := mockClient(hub, topic)

	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	hub.unregister <- client
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	// Room should be cleaned up when empty
	if hub.rooms[topic] != nil {
		t.Fatal("order room not cleaned up after last client unregistered")
	}
}

func TestSubscribeJoinsOrderRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// A customer connects with no subscriptions, then joins their order room
	client := mockClient(hub)
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	orderID := uuid.New()
	hub.subscribe <- subscription{client: client, topic: OrderTopic(orderID)}
	time.Sleep(10 * time.Millisecond)

	event := Event{
		Type:    "order_status_update",
		Payload: json.RawMessage(`{"status":"READY"}`),
	}
	hub.Broadcast(OrderTopic(orderID), event)

	select {
	case msg := <-client.send:
		var received Event
		if err := json.Unmarshal(msg, &received); err != nil {
			t.Fatalf("failed to unmarshal message: %v", err)
		}
		if received.Type != "order_status_update" {
			t.Errorf("expected type 'order_status_update', got '%s'", received.Type)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("subscribed client did not receive order room event")
	}
}

func TestBroadcastToSingleRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	order1 := OrderTopic(uuid.New())
	order2 := OrderTopic(uuid.New())

	client1 := mockClient(hub, order1)
	client2 := mockClient(hub, order2)

	hub.register <- client1
	hub.register <- client2
	time.Sleep(10 * time.Millisecond)

	testPayload := json.RawMessage(`{"order_id":"test-123"}`)
	event := Event{
		Type:    "order_status_update",
		Payload: testPayload,
	}
	hub.Broadcast(order1, event)

	// Check client1 receives the message
	select {
	case msg := <-client1.send:
		var received Event
		if err := json.Unmarshal(msg, &received); err != nil {
			t.Fatalf("failed to unmarshal message: %v", err)
		}
		if received.Type != "order_status_update" {
			t.Errorf("expected type 'order_status_update', got '%s'", received.Type)
		}
		if string(received.Payload) != string(testPayload) {
			t.Errorf("expected payload '%s', got '%s'", testPayload, received.Payload)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client1 did not receive message")
	}

	// Check client2 does NOT receive the message
	select {
	case <-client2.send:
		t.Fatal("client2 should not have received message for different order")
	case <-time.After(50 * time.Millisecond):
		// Expected - no message received
	}
}

func TestBroadcastToKitchenReachesAllDashboards(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client1 := mockClient(hub, KitchenTopic)
	client2 := mockClient(hub, KitchenTopic)
	client3 := mockClient(hub, KitchenTopic)

	hub.register <- client1
	hub.register <- client2
	hub.register <- client3
	time.Sleep(10 * time.Millisecond)

	event := Event{
		Type:    "new_order",
		Payload: json.RawMessage(`{"status":"PENDING"}`),
	}
	hub.Broadcast(KitchenTopic, event)

	clients := []*Client{client1, client2, client3}
	for i, client := range clients {
		select {
		case msg := <-client.send:
			var received Event
			if err := json.Unmarshal(msg, &received); err != nil {
				t.Fatalf("client%d: failed to unmarshal: %v", i+1, err)
			}
			if received.Type != "new_order" {
				t.Errorf("client%d: expected type 'new_order', got '%s'", i+1, received.Type)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("client%d did not receive message", i+1)
		}
	}
}

// Events on one topic must reach a subscriber in publication order.
func TestBroadcastOrderingPerTopic(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	topic := OrderTopic(uuid.New())
	client := mockClient(hub, topic)
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	statuses := []string{"PENDING", "IN_PROGRESS", "READY", "SERVED"}
	for _, status := range statuses {
		hub.Broadcast(topic, Event{
			Type:    "order_status_update",
			Payload: json.RawMessage(fmt.Sprintf(`{"status":%q}`, status)),
		})
	}

	for _, want := range statuses {
		select {
		case msg := <-client.send:
			var received Event
			if err := json.Unmarshal(msg, &received); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			var payload struct {
				Status string `json:"status"`
			}
			if err := json.Unmarshal(received.Payload, &payload); err != nil {
				t.Fatalf("unmarshal payload: %v", err)
			}
			if payload.Status != want {
				t.Fatalf("out of order: got %s, want %s", payload.Status, want)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("did not receive event for status %s", want)
		}
	}
}

func TestClientInMultipleRooms(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	order1 := OrderTopic(uuid.New())
	order2 := OrderTopic(uuid.New())

	// One customer tracking two orders from the same table
	client := mockClient(hub)
	hub.register <- client
	hub.subscribe <- subscription{client: client, topic: order1}
	hub.subscribe <- subscription{client: client, topic: order2}
	time.Sleep(10 * time.Millisecond)

	hub.Broadcast(order1, Event{Type: "order_status_update", Payload: json.RawMessage(`{"n":1}`)})
	hub.Broadcast(order2, Event{Type: "order_status_update", Payload: json.RawMessage(`{"n":2}`)})

	for i := 0; i < 2; i++ {
		select {
		case <-client.send:
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("missing event %d", i+1)
		}
	}

	// Unregistering removes the client from both rooms
	hub.unregister <- client
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	if hub.rooms[order1] != nil || hub.rooms[order2] != nil {
		t.Fatal("order rooms not cleaned up after unregister")
	}
}

func TestHubCleanupEmptyRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client1 := mockClient(hub, KitchenTopic)
	client2 := mockClient(hub, KitchenTopic)

	hub.register <- client1
	hub.register <- client2
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	if len(hub.rooms[KitchenTopic]) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(hub.rooms[KitchenTopic]))
	}
	hub.mu.RUnlock()

	hub.unregister <- client1
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	if len(hub.rooms[KitchenTopic]) != 1 {
		t.Fatalf("expected 1 client after first unregister, got %d", len(hub.rooms[KitchenTopic]))
	}
	hub.mu.RUnlock()

	hub.unregister <- client2
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	if hub.rooms[KitchenTopic] != nil {
		t.Fatal("room should be deleted when last client unregisters")
	}
	hub.mu.RUnlock()
}

func TestBroadcastToNonExistentRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := mockClient(hub, KitchenTopic)
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	// Broadcast to an order room nobody joined
	event := Event{
		Type:    "order_status_update",
		Payload: json.RawMessage(`{"test":"data"}`),
	}
	hub.Broadcast(OrderTopic(uuid.New()), event)

	select {
	case <-client.send:
		t.Fatal("client should not receive message for a room it never joined")
	case <-time.After(50 * time.Millisecond):
		// Expected - no message
	}
}

func TestOrderTopicFormat(t *testing.T) {
	id := uuid.New()
	want := "order:" + id.String()
	if got := OrderTopic(id); got != want {
		t.Fatalf("OrderTopic: got %s, want %s", got, want)
	}
}

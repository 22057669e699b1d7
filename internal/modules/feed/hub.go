package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"tenniscourt/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024

	// TopicAll receives every event.
	TopicAll = "all"
)

const (
	EventReservationCreated = "reservation_created"
	EventTrainingCreated    = "training_created"
)

// Event is a booking event pushed to subscribers.
type Event struct {
	Type    string      `json:"type"`
	Topics  []string    `json:"topics"`
	Payload interface{} `json:"payload,omitempty"`
}

// connection is a single websocket subscriber
type connection struct {
	conn   *websocket.Conn
	send   chan []byte
	topics map[string]bool
}

// Hub fans booking events out to websocket subscribers. Each subscriber
// picks topics such as "court:3" or "person:7"; "all" gets everything.
type Hub struct {
	mu          sync.RWMutex
	connections map[*connection]struct{}
}

func NewHub() *Hub {
	return &Hub{connections: make(map[*connection]struct{})}
}

func CourtTopic(id int64) string     { return fmt.Sprintf("court:%d", id) }
func TrainerTopic(id int64) string   { return fmt.Sprintf("trainer:%d", id) }
func PersonTopic(id int64) string    { return fmt.Sprintf("person:%d", id) }
func EquipmentTopic(id int64) string { return fmt.Sprintf("equipment:%d", id) }

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Publish sends the event to every subscriber of at least one of its topics.
// Slow subscribers miss events instead of blocking the publisher.
func (h *Hub) Publish(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("feed: marshal event type=%s error=%v", event.Type, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		if !c.wants(event.Topics) {
			continue
		}
		select {
		case c.send <- data:
		default:
		}
	}
}

func (c *connection) wants(topics []string) bool {
	if c.topics[TopicAll] {
		return true
	}
	for _, t := range topics {
		if c.topics[t] {
			return true
		}
	}
	return false
}

func (h *Hub) NotifyReservationCreated(ctx context.Context, r *domain.Reservation) error {
	topics := []string{CourtTopic(r.CourtID), PersonTopic(r.ClientID), PersonTopic(r.ParticipantID)}
	if r.EquipmentID != nil {
		topics = append(topics, EquipmentTopic(*r.EquipmentID))
	}
	h.Publish(&Event{Type: EventReservationCreated, Topics: topics, Payload: r})
	return nil
}

func (h *Hub) NotifyTrainingCreated(ctx context.Context, t *domain.Training) error {
	topics := []string{CourtTopic(t.CourtID), TrainerTopic(t.TrainerID)}
	for _, id := range t.ClientIDs {
		topics = append(topics, PersonTopic(id))
	}
	for _, id := range t.ParticipantIDs {
		topics = append(topics, PersonTopic(id))
	}
	for _, id := range t.EquipmentIDs {
		topics = append(topics, EquipmentTopic(id))
	}
	h.Publish(&Event{Type: EventTrainingCreated, Topics: topics, Payload: t})
	return nil
}

// ServeWS registers a new connection and runs its loops until it closes.
func (h *Hub) ServeWS(conn *websocket.Conn, topics []string) {
	c := &connection{
		conn:   conn,
		send:   make(chan []byte, 64),
		topics: make(map[string]bool),
	}
	for _, t := range topics {
		c.topics[t] = true
	}
	if len(c.topics) == 0 {
		c.topics[TopicAll] = true
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

// readPump handles subscribe/unsubscribe messages from the client.
func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("feed: read error=%v", err)
			}
			return
		}

		var in struct {
			Type  string `json:"type"`
			Topic string `json:"topic"`
		}
		if err := json.Unmarshal(msg, &in); err != nil || in.Topic == "" {
			continue
		}

		switch in.Type {
		case "subscribe":
			h.mu.Lock()
			c.topics[in.Topic] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.topics, in.Topic)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close drops every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.connections {
		delete(h.connections, c)
		close(c.send)
	}
}

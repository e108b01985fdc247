package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"sync"
)

// Hub tracks connected clients, broadcasts frames to them and collects their
// crank input.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client // client ID -> client
	// Crank angle in degrees, set by the most recent crank message.
	angle float64

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	welcome func(*Client) any
	log     *slog.Logger
}

// NewHub returns a hub. welcome, if not nil, produces the first message sent
// to each client.
func NewHub(welcome func(*Client) any, log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		welcome:    welcome,
		log:        log,
	}
}

// Run processes registrations until ctx is canceled, then disconnects all
// clients.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		close(h.done)
		h.mu.Lock()
		for id, c := range h.clients {
			delete(h.clients, id)
			close(c.send)
		}
		h.mu.Unlock()
	}()
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ctx.Done():
			return
		}
	}
}

// Register adds a client. It reports false if the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	n := len(h.clients)
	h.mu.Unlock()

	if h.welcome != nil {
		client.Send(h.welcome(client))
	}
	h.log.Info("client joined", "client", client.ID, "clients", n)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.ID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.ID)
	close(client.send)
	n := len(h.clients)
	h.mu.Unlock()

	h.log.Info("client left", "client", client.ID, "clients", n)
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypeCrank:
		if math.IsNaN(msg.Angle) || math.IsInf(msg.Angle, 0) {
			h.log.Warn("invalid crank angle", "client", sender.ID)
			return
		}
		h.mu.Lock()
		h.angle = math.Mod(msg.Angle, 360)
		h.mu.Unlock()
	default:
		h.log.Warn("unknown message type", "type", msg.Type, "client", sender.ID)
	}
}

// Angle returns the current crank angle in degrees.
func (h *Hub) Angle() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.angle
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends v to every client. Clients whose buffers are full miss it.
func (h *Hub) Broadcast(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.log.Error("marshal broadcast", "error", err)
		return
	}
	// Sending under the read lock keeps removeClient from closing a channel
	// mid-send.
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		c.sendRaw(data)
	}
}

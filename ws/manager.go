package ws

import (
	"context"
	"sync"

	"gym_backend/internal/events"
	"gym_backend/internal/logger"
)

// WebSocketManager рассылает события изменения сущностей открытым страницам.
// Реализует events.Publisher.
type WebSocketManager struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan events.Event
	done       chan struct{}
	mu         sync.RWMutex
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan events.Event, 256),
		done:       make(chan struct{}),
	}
}

// Run обслуживает регистрацию и рассылку до отмены ctx
func (manager *WebSocketManager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(manager.done)
			manager.closeAll()
			return

		case client := <-manager.register:
			manager.mu.Lock()
			manager.clients[client.ID] = client
			total := len(manager.clients)
			manager.mu.Unlock()
			logger.Debug("WebSocket client registered", "client_id", client.ID, "gym_id", client.GymID, "total", total)

		case client := <-manager.unregister:
			manager.remove(client)

		case ev := <-manager.broadcast:
			manager.broadcastEvent(ev)
		}
	}
}

// Publish не блокирует: при переполненной очереди событие отбрасывается
func (manager *WebSocketManager) Publish(ev events.Event) {
	select {
	case manager.broadcast <- ev:
	default:
		logger.Warn("WebSocket broadcast queue is full, event dropped",
			"entity", ev.Entity, "action", ev.Action, "id", ev.ID)
	}
}

// Register и Unregister не блокируются после остановки Run
func (manager *WebSocketManager) Register(client *Client) {
	select {
	case manager.register <- client:
	case <-manager.done:
		close(client.Send)
	}
}

func (manager *WebSocketManager) Unregister(client *Client) {
	select {
	case manager.unregister <- client:
	case <-manager.done:
	}
}

func (manager *WebSocketManager) broadcastEvent(ev events.Event) {
	manager.mu.RLock()
	var slow []*Client
	for _, client := range manager.clients {
		if !client.Wants(ev) {
			continue
		}
		select {
		case client.Send <- ev:
		default:
			slow = append(slow, client)
		}
	}
	manager.mu.RUnlock()

	// Канал заполнен - клиент не успевает читать, отключаем
	for _, client := range slow {
		logger.Warn("WebSocket client disconnected due to full send channel", "client_id", client.ID)
		manager.remove(client)
	}
}

func (manager *WebSocketManager) remove(client *Client) {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	if _, ok := manager.clients[client.ID]; ok {
		close(client.Send)
		delete(manager.clients, client.ID)
		logger.Debug("WebSocket client unregistered", "client_id", client.ID, "total", len(manager.clients))
	}
}

func (manager *WebSocketManager) closeAll() {
	manager.mu.Lock()
	defer manager.mu.Unlock()

	for id, client := range manager.clients {
		close(client.Send)
		delete(manager.clients, id)
	}
}

// GetClientCount возвращает количество подключенных клиентов
func (manager *WebSocketManager) GetClientCount() int {
	manager.mu.RLock()
	defer manager.mu.RUnlock()
	return len(manager.clients)
}

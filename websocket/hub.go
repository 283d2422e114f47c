package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

const (
	EventPaymentRecorded = "payment.recorded"
	EventRequestCreated  = "request.created"
	EventRequestUpdated  = "request.updated"
)

// Event is what the core pushes to connected admin dashboards after a
// money movement or request change commits.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var events = make(chan Event, 64)

// Publish hands an event to the hub without blocking the caller. When the
// buffer is full the event is dropped; dashboards refetch on reconnect.
func Publish(evt Event) {
	select {
	case events <- evt:
	default:
		log.Printf("Dashboard event buffer full, dropping %s event", evt.Type)
	}
}

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Dashboard client connected: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Dashboard client disconnected: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case evt := <-events:
			clientsMu.RLock()
			var stale []uuid.UUID
			for userID, conn := range clients {
				if err := conn.WriteJSON(evt); err != nil {
					log.Printf("Error pushing %s event to client %s: %v", evt.Type, userID, err)
					conn.Close()
					stale = append(stale, userID)
				}
			}
			clientsMu.RUnlock()
			if len(stale) > 0 {
				clientsMu.Lock()
				for _, userID := range stale {
					delete(clients, userID)
				}
				clientsMu.Unlock()
			}
		}
	}
}

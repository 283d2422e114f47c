package websocket

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// UpgradeRequired rejects plain HTTP requests on the websocket route.
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// ServeDashboard keeps an admin dashboard connection registered with the
// hub until it drops. The JWT middleware has already vetted the client.
func ServeDashboard() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		token, ok := conn.Locals("user").(*jwt.Token)
		if !ok {
			conn.Close()
			return
		}
		claims := token.Claims.(jwt.MapClaims)
		userID, err := uuid.Parse(claims["user_id"].(string))
		if err != nil {
			conn.Close()
			return
		}

		client := &Client{UserID: userID, Conn: conn}
		Register <- client
		defer func() {
			Unregister <- client
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}

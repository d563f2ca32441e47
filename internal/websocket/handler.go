package websocket

import (
	"time"

	fiberws "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Upgrade rejects plain HTTP requests to the websocket route before the
// upgrade handler runs.
func Upgrade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if fiberws.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

// Handler returns the websocket endpoint for GET /api/ws/:tournamentId.
// Each connection registers with the Hub under its tournament and then
// just drains broadcasts; clients reconnect on drop and re-fetch state, so
// the read loop only exists to detect disconnects and answer pings.
func Handler(hub *Hub) fiber.Handler {
	return fiberws.New(func(conn *fiberws.Conn) {
		client := &Client{
			TournamentID: conn.Params("tournamentId"),
			Send:         make(chan []byte, 64),
		}
		hub.Register(client)

		done := make(chan struct{})
		go func() {
			defer close(done)
			conn.SetReadDeadline(time.Now().Add(pongWait))
			conn.SetPongHandler(func(string) error {
				return conn.SetReadDeadline(time.Now().Add(pongWait))
			})
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(pingPeriod)
		defer func() {
			ticker.Stop()
			hub.Unregister(client)
			conn.Close()
		}()

		for {
			select {
			case data, ok := <-client.Send:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if !ok {
					conn.WriteMessage(fiberws.CloseMessage, nil)
					return
				}
				if err := conn.WriteMessage(fiberws.TextMessage, data); err != nil {
					return
				}
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(fiberws.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	})
}

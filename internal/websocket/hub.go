// Package websocket implements the live-update channel: a Hub that fans
// score-change notifications out to every spectator watching a tournament.
// Delivery is best effort with at-most-once semantics per change; clients
// always re-fetch authoritative state over HTTP rather than trusting the
// push payload, so no ordering or delivery guarantee is needed.
package websocket

// Client is one connected spectator. The Hub pushes outgoing messages onto
// Send; the connection's writer goroutine drains it.
type Client struct {
	TournamentID string
	Send         chan []byte
}

// Message is a payload to broadcast to everyone watching one tournament.
type Message struct {
	TournamentID string
	Data         []byte
}

// Hub tracks active connections grouped by tournament ID. Registration,
// unregistration, and broadcast all flow through channels processed by a
// single Run goroutine, so the clients map is only ever touched from that
// goroutine and needs no locking.
type Hub struct {
	clients map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
}

// NewHub creates an empty Hub. The broadcast channel is buffered so score
// handlers don't block while the Hub is busy; register/unregister are
// synchronous.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the Hub's event loop; call it in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if h.clients[client.TournamentID] == nil {
				h.clients[client.TournamentID] = make(map[*Client]bool)
			}
			h.clients[client.TournamentID][client] = true

		case client := <-h.unregister:
			if clients, ok := h.clients[client.TournamentID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.Send)
					if len(clients) == 0 {
						delete(h.clients, client.TournamentID)
					}
				}
			}

		case msg := <-h.broadcast:
			clients := h.clients[msg.TournamentID]
			for client := range clients {
				select {
				case client.Send <- msg.Data:
				// A full buffer means the client is too slow; drop it
				// rather than stalling the broadcast for everyone else.
				default:
					delete(clients, client)
					close(client.Send)
				}
			}
			if len(clients) == 0 {
				delete(h.clients, msg.TournamentID)
			}
		}
	}
}

// BroadcastToTournament sends data to every client watching the tournament.
// Handlers call this after a score mutation commits.
func (h *Hub) BroadcastToTournament(tournamentID string, data []byte) {
	h.broadcast <- &Message{TournamentID: tournamentID, Data: data}
}

// Register adds a client so it starts receiving broadcasts.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client when its connection closes.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

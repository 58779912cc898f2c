package ws

import (
	"sync"
)

// Registry tracks which live sessions are joined to which room. It is the
// single source of truth for fan-out targets: broadcast delivery iterates its
// membership and nothing else.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]map[string]*Client // roomID -> sessionID -> client
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]map[string]*Client),
	}
}

// Join adds the client's session to roomID, creating the room entry if
// absent. A session is in at most one room, so any previous membership is
// dropped first. Joining the same room twice is a no-op.
func (r *Registry) Join(roomID string, client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeLocked(client.SessionID)

	if _, ok := r.rooms[roomID]; !ok {
		r.rooms[roomID] = make(map[string]*Client)
	}
	r.rooms[roomID][client.SessionID] = client
}

// Leave removes the client's session from every room it appears in. No-op if
// the session is not present anywhere.
func (r *Registry) Leave(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeLocked(client.SessionID)
}

func (r *Registry) removeLocked(sessionID string) {
	for roomID, members := range r.rooms {
		if _, ok := members[sessionID]; ok {
			delete(members, sessionID)
			if len(members) == 0 {
				delete(r.rooms, roomID)
			}
		}
	}
}

// Members returns a snapshot of the clients currently joined to roomID.
func (r *Registry) Members(roomID string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.rooms[roomID]
	clients := make([]*Client, 0, len(members))
	for _, client := range members {
		clients = append(clients, client)
	}
	return clients
}

// Count returns how many sessions are joined to roomID.
func (r *Registry) Count(roomID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rooms[roomID])
}

// Room returns the room the session is currently joined to, if any.
func (r *Registry) Room(sessionID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for roomID, members := range r.rooms {
		if _, ok := members[sessionID]; ok {
			return roomID, true
		}
	}
	return "", false
}

package runtime

import (
	"line-chat/contract"
	"line-chat/domain"
	"sort"
	"sync"

	"github.com/samber/lo"
)

// Ensure *Registry implements the contract.IRegistry interface at compile time.
var _ contract.IRegistry = (*Registry)(nil)

// Registry maps every connected client to its outbound connection.
// Broadcasters work on snapshots so no lock is held during network writes.
type Registry struct {
	mu      sync.RWMutex
	clients map[domain.ClientID]contract.Connection
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[domain.ClientID]contract.Connection),
	}
}

// Add inserts the connection unconditionally, the caller owns id uniqueness.
func (r *Registry) Add(id domain.ClientID, conn contract.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[id] = conn
}

// Remove deletes the client if present. Removing an unknown id is a no-op.
func (r *Registry) Remove(id domain.ClientID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
}

// Snapshot returns a point-in-time copy ordered by client id.
func (r *Registry) Snapshot() []contract.RegistryEntry {
	r.mu.RLock()
	entries := lo.MapToSlice(r.clients, func(id domain.ClientID, conn contract.Connection) contract.RegistryEntry {
		return contract.RegistryEntry{ID: id, Conn: conn}
	})
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	return entries
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

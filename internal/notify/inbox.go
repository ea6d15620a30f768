package notify

import (
	"sort"
	"sync"
)

// Inbox guarda el estado del permiso y las notificaciones visibles.
type Inbox struct {
	mu sync.RWMutex

	permission Permission
	requested  bool
	items      map[string]Notification
}

func NewInbox(initial Permission) *Inbox {
	return &Inbox{
		permission: initial,
		items:      map[string]Notification{},
	}
}

func (b *Inbox) Permission() Permission {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.permission
}

// Requested indica que hay un pedido de permiso sin responder.
func (b *Inbox) Requested() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.requested
}

func (b *Inbox) SetPermission(p Permission) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.permission = p
	if p != PermissionDefault {
		b.requested = false
	}
}

// markRequested informa si el pedido quedó pendiente recién ahora.
func (b *Inbox) markRequested() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.permission != PermissionDefault || b.requested {
		return false
	}
	b.requested = true
	return true
}

func (b *Inbox) Put(n Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items[n.Key] = n
}

// Ack descarta la notificación; false si no estaba visible.
func (b *Inbox) Ack(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.items[key]; !ok {
		return false
	}
	delete(b.items, key)
	return true
}

// List devuelve las visibles, la más reciente primero.
func (b *Inbox) List() []Notification {
	b.mu.RLock()
	out := make([]Notification, 0, len(b.items))
	for _, n := range b.items {
		out = append(out, n)
	}
	b.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].ShownAt.Equal(out[j].ShownAt) {
			return out[i].ShownAt.After(out[j].ShownAt)
		}
		return out[i].Key < out[j].Key
	})
	return out
}

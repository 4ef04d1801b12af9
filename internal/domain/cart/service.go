// internal/domain/cart/service.go
package cart

import (
	"sync"
	"time"

	"github.com/your-org/storefront-client/internal/pkg/apperrors"
)

// Store maintains the ordered collection of cart items for one device
// session. It is an explicit, injectable object rather than a process-wide
// singleton so tests can run independent instances side by side.
type Store struct {
	mu           sync.Mutex
	items        []Item
	defaultPrice int64
	now          func() time.Time
}

// NewStore creates an empty cart store. defaultPrice is applied, in cents,
// when an added item carries no price of its own.
func NewStore(defaultPrice int64) *Store {
	return &Store{
		defaultPrice: defaultPrice,
		now:          time.Now,
	}
}

// Add inserts an item with quantity 1 and the current timestamp. Adding an
// item whose identity key is already present is a no-op: the existing entry
// keeps its original price and added-at time. Items missing any identity
// field are rejected.
func (s *Store) Add(item Item) (*Snapshot, error) {
	if item.ItemID == "" || item.GradeName == "" || item.SubjectName == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidItem,
			"item requires an id, grade name and subject name")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := item.Key()
	for _, existing := range s.items {
		if existing.Key() == key {
			// Already in the cart; the first insertion wins
			return s.snapshotLocked(), nil
		}
	}

	item.Quantity = 1
	if item.Price <= 0 {
		item.Price = s.defaultPrice
	}
	item.AddedAt = s.now().UTC()

	s.items = append(s.items, item)
	return s.snapshotLocked(), nil
}

// Remove deletes the entry matching the identity key. Removing an absent key
// is a no-op, not an error.
func (s *Store) Remove(key Key) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.Key() == key {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return s.snapshotLocked()
}

// Clear empties the cart unconditionally
func (s *Store) Clear() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.snapshotLocked()
}

// Total returns sum(price * quantity) in cents, 0 for an empty cart
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, item := range s.items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// Size returns the number of entries in the cart
func (s *Store) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Snapshot returns an immutable view of the cart in insertion order
func (s *Store) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() *Snapshot {
	items := make([]Item, len(s.items))
	copy(items, s.items)

	var totals Totals
	totals.ItemCount = len(items)
	for _, item := range items {
		totals.TotalQuantity += item.Quantity
		totals.TotalAmount += item.Price * int64(item.Quantity)
	}

	return &Snapshot{
		Items:  items,
		Totals: totals,
	}
}

// Manager hands out one cart store per device session. Carts are not
// persisted across restarts; idle carts are dropped after the configured TTL.
type Manager struct {
	mu           sync.Mutex
	carts        map[string]*cartEntry
	defaultPrice int64
	idleTTL      time.Duration
	now          func() time.Time
}

type cartEntry struct {
	store    *Store
	lastSeen time.Time
}

// NewManager creates a cart manager
func NewManager(defaultPrice int64, idleTTL time.Duration) *Manager {
	return &Manager{
		carts:        make(map[string]*cartEntry),
		defaultPrice: defaultPrice,
		idleTTL:      idleTTL,
		now:          time.Now,
	}
}

// ForDevice returns the cart store for a device, creating it on first use
func (m *Manager) ForDevice(deviceID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweepLocked(now)

	entry, ok := m.carts[deviceID]
	if !ok {
		entry = &cartEntry{store: NewStore(m.defaultPrice)}
		m.carts[deviceID] = entry
	}
	entry.lastSeen = now

	return entry.store
}

// sweepLocked drops carts that have been idle past the TTL
func (m *Manager) sweepLocked(now time.Time) {
	if m.idleTTL <= 0 {
		return
	}
	for id, entry := range m.carts {
		if now.Sub(entry.lastSeen) > m.idleTTL {
			delete(m.carts, id)
		}
	}
}

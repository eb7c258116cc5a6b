// Package store is the data access layer of the contacts app. A Store keeps
// the collection in memory, persists every mutation to its backend and
// notifies subscribers with the full collection after each successful
// change.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/pdxmph/contacts-mvc/internal/contact"
)

// ErrNotFound is returned when a remote mutation targets an unknown contact
var ErrNotFound = errors.New("contact not found")

// Listener receives the full collection after every successful change
type Listener func(contacts []contact.Contact)

// Store defines the operations shared by the local and remote variants
type Store interface {
	// Load (re)reads the collection from the backend and notifies
	Load(ctx context.Context) error

	// List returns a copy of the full ordered collection
	List() []contact.Contact

	// Add creates a contact with a fresh ID and appends it
	Add(ctx context.Context, f contact.Fields) (contact.Contact, error)

	// Edit replaces the fields of the contact with the given ID
	Edit(ctx context.Context, id string, f contact.Fields) error

	// Delete removes the contact with the given ID
	Delete(ctx context.Context, id string) error

	// GetByID looks a contact up in memory, without any I/O
	GetByID(id string) (contact.Contact, bool)

	// Subscribe registers a listener and returns a function removing it
	Subscribe(fn Listener) (unsubscribe func())
}

// collection is the in-memory state and subscriber list shared by both variants
type collection struct {
	mu       sync.RWMutex
	contacts []contact.Contact
	version  uint64

	subMu     sync.Mutex
	nextSub   int
	listeners []subscriber

	// notifyMu serializes delivery; delivered is the newest version sent.
	notifyMu  sync.Mutex
	delivered uint64
}

type subscriber struct {
	id int
	fn Listener
}

func (c *collection) List() []contact.Contact {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.contacts)
}

func (c *collection) GetByID(id string) (contact.Contact, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := contact.Index(c.contacts, id); i >= 0 {
		return c.contacts[i], true
	}
	return contact.Contact{}, false
}

func (c *collection) Subscribe(fn Listener) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	c.nextSub++
	id := c.nextSub
	c.listeners = append(c.listeners, subscriber{id: id, fn: fn})

	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		for i, s := range c.listeners {
			if s.id == id {
				c.listeners = append(c.listeners[:i:i], c.listeners[i+1:]...)
				return
			}
		}
	}
}

// setLocked replaces the collection and returns the version to notify
// with. The caller must hold mu.
func (c *collection) setLocked(contacts []contact.Contact) uint64 {
	c.contacts = contacts
	c.version++
	return c.version
}

// notify calls every listener, in subscription order, with its own copy.
// A snapshot older than one already delivered is dropped, so listeners
// never step back to a stale collection. Listeners must not mutate the
// store.
func (c *collection) notify(version uint64, contacts []contact.Contact) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	if version <= c.delivered {
		return
	}
	c.delivered = version

	c.subMu.Lock()
	listeners := append([]subscriber(nil), c.listeners...)
	c.subMu.Unlock()

	for _, s := range listeners {
		s.fn(clone(contacts))
	}
}

func clone(contacts []contact.Contact) []contact.Contact {
	out := make([]contact.Contact, len(contacts))
	copy(out, contacts)
	return out
}

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pdxmph/contacts-mvc/internal/contact"
	"github.com/pdxmph/contacts-mvc/internal/storage"
)

// DefaultKey is the storage key holding the serialized collection
const DefaultKey = "contacts"

// Local persists the whole collection as one JSON blob under a single key.
// Every mutation rewrites the entire blob.
type Local struct {
	collection
	kv  storage.KV
	key string
}

var _ Store = (*Local)(nil)

// NewLocal creates a local store and loads the blob stored under key.
// A missing key starts an empty collection.
func NewLocal(ctx context.Context, kv storage.KV, key string) (*Local, error) {
	if key == "" {
		key = DefaultKey
	}
	l := &Local{kv: kv, key: key}

	contacts, err := l.read(ctx)
	if err != nil {
		return nil, err
	}
	l.contacts = contacts
	return l, nil
}

// Load re-reads the blob from storage and notifies subscribers
func (l *Local) Load(ctx context.Context) error {
	contacts, err := l.read(ctx)
	if err != nil {
		return err
	}

	l.mu.Lock()
	version := l.setLocked(contacts)
	l.mu.Unlock()

	l.notify(version, contacts)
	return nil
}

// Add appends a new contact and commits
func (l *Local) Add(ctx context.Context, f contact.Fields) (contact.Contact, error) {
	c := contact.New(f)

	l.mu.Lock()
	next := append(clone(l.contacts), c)
	version, err := l.commitLocked(ctx, next)
	l.mu.Unlock()

	if err != nil {
		return contact.Contact{}, err
	}
	l.notify(version, next)
	return c, nil
}

// Edit replaces the fields of a contact and commits. An unknown ID is a
// silent no-op.
func (l *Local) Edit(ctx context.Context, id string, f contact.Fields) error {
	l.mu.Lock()
	i := contact.Index(l.contacts, id)
	if i < 0 {
		l.mu.Unlock()
		return nil
	}
	next := clone(l.contacts)
	next[i] = next[i].WithFields(f)
	version, err := l.commitLocked(ctx, next)
	l.mu.Unlock()

	if err != nil {
		return err
	}
	l.notify(version, next)
	return nil
}

// Delete removes a contact and commits. An unknown ID is a silent no-op.
func (l *Local) Delete(ctx context.Context, id string) error {
	l.mu.Lock()
	i := contact.Index(l.contacts, id)
	if i < 0 {
		l.mu.Unlock()
		return nil
	}
	next := append(clone(l.contacts[:i]), l.contacts[i+1:]...)
	version, err := l.commitLocked(ctx, next)
	l.mu.Unlock()

	if err != nil {
		return err
	}
	l.notify(version, next)
	return nil
}

// commitLocked writes next to storage and, only if that succeeds, makes it
// the current collection. l.mu must be held.
func (l *Local) commitLocked(ctx context.Context, next []contact.Contact) (uint64, error) {
	data, err := json.Marshal(next)
	if err != nil {
		return 0, fmt.Errorf("encoding contacts: %w", err)
	}
	if err := l.kv.Set(ctx, l.key, data); err != nil {
		return 0, fmt.Errorf("saving contacts: %w", err)
	}
	return l.setLocked(next), nil
}

func (l *Local) read(ctx context.Context) ([]contact.Contact, error) {
	data, err := l.kv.Get(ctx, l.key)
	if errors.Is(err, storage.ErrNotFound) {
		return []contact.Contact{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading contacts: %w", err)
	}

	var contacts []contact.Contact
	if err := json.Unmarshal(data, &contacts); err != nil {
		return nil, fmt.Errorf("decoding contacts from %q: %w", l.key, err)
	}
	if contacts == nil {
		contacts = []contact.Contact{}
	}
	return contacts, nil
}

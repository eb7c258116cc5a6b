package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdxmph/contacts-mvc/internal/apiclient"
	"github.com/pdxmph/contacts-mvc/internal/contact"
)

// Client is the subset of the API client the remote store relies on
type Client interface {
	List(ctx context.Context) ([]contact.Contact, error)
	Create(ctx context.Context, c contact.Contact) error
	Update(ctx context.Context, id string, f contact.Fields) error
	Delete(ctx context.Context, id string) error
}

// Remote mirrors the server's collection in memory. Each successful call is
// applied to the mirror directly; the server is only re-read by Load.
type Remote struct {
	collection
	client Client
}

var _ Store = (*Remote)(nil)

// NewRemote creates a remote store. The mirror is empty until Load.
func NewRemote(client Client) *Remote {
	r := &Remote{client: client}
	r.contacts = []contact.Contact{}
	return r
}

// Load fetches the full collection from the server and notifies
func (r *Remote) Load(ctx context.Context) error {
	contacts, err := r.client.List(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	version := r.setLocked(clone(contacts))
	r.mu.Unlock()

	r.notify(version, contacts)
	return nil
}

// Add creates the contact on the server, then appends it to the mirror
func (r *Remote) Add(ctx context.Context, f contact.Fields) (contact.Contact, error) {
	c := contact.New(f)
	if err := r.client.Create(ctx, c); err != nil {
		return contact.Contact{}, err
	}

	r.mu.Lock()
	snapshot := append(clone(r.contacts), c)
	version := r.setLocked(snapshot)
	r.mu.Unlock()

	r.notify(version, snapshot)
	return c, nil
}

// Edit replaces the fields on the server, then in the mirror
func (r *Remote) Edit(ctx context.Context, id string, f contact.Fields) error {
	if err := r.client.Update(ctx, id, f); err != nil {
		return mapNotFound(err)
	}

	r.mu.Lock()
	snapshot := clone(r.contacts)
	if i := contact.Index(snapshot, id); i >= 0 {
		snapshot[i] = snapshot[i].WithFields(f)
	}
	version := r.setLocked(snapshot)
	r.mu.Unlock()

	r.notify(version, snapshot)
	return nil
}

// Delete removes the contact on the server, then from the mirror
func (r *Remote) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, id); err != nil {
		return mapNotFound(err)
	}

	r.mu.Lock()
	snapshot := clone(r.contacts)
	if i := contact.Index(snapshot, id); i >= 0 {
		snapshot = append(snapshot[:i], snapshot[i+1:]...)
	}
	version := r.setLocked(snapshot)
	r.mu.Unlock()

	r.notify(version, snapshot)
	return nil
}

func mapNotFound(err error) error {
	if errors.Is(err, apiclient.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}

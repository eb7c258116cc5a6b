package tui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdxmph/contacts-mvc/internal/contact"
	"github.com/pdxmph/contacts-mvc/internal/store"
)

// contactsChangedMsg carries the latest collection after a store change
type contactsChangedMsg struct {
	contacts []contact.Contact
}

// Controller binds a store to a view. Store operations run as commands;
// change notifications are forwarded to the UI loop as messages.
type Controller struct {
	store        store.Store
	view         *View
	logger       *slog.Logger
	fetchOnStart bool

	mu          sync.Mutex
	latest      []contact.Contact
	changed     chan struct{}
	done        chan struct{}
	closeOnce   sync.Once
	unsubscribe func()
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets where store failures are reported
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithFetchOnStart defers the first render until a Load completes. Used by
// the remote variant, whose mirror starts empty.
func WithFetchOnStart() Option {
	return func(c *Controller) { c.fetchOnStart = true }
}

// NewController wires the view handlers and subscribes to the store
func NewController(s store.Store, v *View, opts ...Option) *Controller {
	c := &Controller{
		store:   s,
		view:    v,
		logger:  slog.Default(),
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	v.OnSave(c.handleSave)
	v.OnDelete(c.handleDelete)
	v.OnEditRequest(c.handleEditRequest)
	v.OnSearch(c.handleSearch)
	v.OnReload(c.handleReload)

	c.unsubscribe = s.Subscribe(c.storeChanged)

	if !c.fetchOnStart {
		v.Render(s.List())
	}
	return c
}

// View returns the bound view
func (c *Controller) View() *View {
	return c.view
}

// Init returns the commands to run when the program starts
func (c *Controller) Init() tea.Cmd {
	if c.fetchOnStart {
		return tea.Batch(c.waitForChange(), c.handleReload())
	}
	return c.waitForChange()
}

// Close unsubscribes from the store and releases the waiting command
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.unsubscribe()
		close(c.done)
	})
}

// storeChanged may run on any goroutine. Only the newest collection is
// kept; bursts collapse into one message.
func (c *Controller) storeChanged(list []contact.Contact) {
	c.mu.Lock()
	c.latest = list
	c.mu.Unlock()

	select {
	case c.changed <- struct{}{}:
	default:
	}
}

// waitForChange blocks until the store reports a change
func (c *Controller) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-c.changed:
		case <-c.done:
			return nil
		}

		c.mu.Lock()
		list := c.latest
		c.mu.Unlock()
		return contactsChangedMsg{contacts: list}
	}
}

// run wraps a store call in a command. Failures are logged only.
func (c *Controller) run(op string, fn func(ctx context.Context) error, attrs ...any) tea.Cmd {
	return func() tea.Msg {
		if err := fn(context.Background()); err != nil {
			c.logger.Error(op+" failed", append(attrs, "err", err)...)
		}
		return nil
	}
}

func (c *Controller) handleSave(id string, f contact.Fields) tea.Cmd {
	if err := f.Validate(); err != nil {
		c.logger.Warn("save rejected", "id", id, "err", err)
		return nil
	}

	if id == "" {
		return c.run("add contact", func(ctx context.Context) error {
			_, err := c.store.Add(ctx, f)
			return err
		})
	}
	return c.run("edit contact", func(ctx context.Context) error {
		return c.store.Edit(ctx, id, f)
	}, "id", id)
}

func (c *Controller) handleDelete(id string) tea.Cmd {
	name := id
	if existing, ok := c.store.GetByID(id); ok {
		name = existing.Name
	}

	c.view.Confirm(fmt.Sprintf("Delete %s?", name), func() tea.Cmd {
		return c.run("delete contact", func(ctx context.Context) error {
			return c.store.Delete(ctx, id)
		}, "id", id)
	})
	return nil
}

func (c *Controller) handleEditRequest(id string) tea.Cmd {
	existing, ok := c.store.GetByID(id)
	if !ok {
		c.logger.Warn("edit requested for unknown contact", "id", id)
		return nil
	}
	return c.view.OpenEditForm(existing)
}

// handleSearch renders the filtered collection directly. Nothing is stored;
// the next change notification replaces it.
func (c *Controller) handleSearch(term string) tea.Cmd {
	c.view.Render(contact.Filter(c.store.List(), term))
	return nil
}

func (c *Controller) handleReload() tea.Cmd {
	return c.run("load contacts", c.store.Load)
}

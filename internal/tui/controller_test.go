package tui

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdxmph/contacts-mvc/internal/api"
	"github.com/pdxmph/contacts-mvc/internal/apiclient"
	"github.com/pdxmph/contacts-mvc/internal/contact"
	"github.com/pdxmph/contacts-mvc/internal/db"
	"github.com/pdxmph/contacts-mvc/internal/logging"
	"github.com/pdxmph/contacts-mvc/internal/storage"
	"github.com/pdxmph/contacts-mvc/internal/store"
)

var ana = contact.Fields{Name: "Ana", Email: "ana@x.com", Phone: "555"}

// flakyKV fails every Set while fail is true
type flakyKV struct {
	storage.KV
	fail bool
}

func (f *flakyKV) Set(ctx context.Context, key string, value []byte) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.KV.Set(ctx, key, value)
}

func newLocalStore(t *testing.T, kv storage.KV) *store.Local {
	t.Helper()
	s, err := store.NewLocal(context.Background(), kv, store.DefaultKey)
	require.NoError(t, err)
	return s
}

func setupController(t *testing.T, opts ...Option) (*Controller, *store.Local, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger, err := logging.New("debug", &logs)
	require.NoError(t, err)

	s := newLocalStore(t, storage.NewMemory())
	c := NewController(s, NewView(), append([]Option{WithLogger(logger)}, opts...)...)
	t.Cleanup(c.Close)
	return c, s, &logs
}

// exec runs a command synchronously, as the program would in a goroutine
func exec(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestController_RendersLocalStoreOnConstruction(t *testing.T) {
	s := newLocalStore(t, storage.NewMemory())
	_, err := s.Add(context.Background(), ana)
	require.NoError(t, err)

	v := NewView()
	c := NewController(s, v, WithLogger(logging.Discard()))
	defer c.Close()

	require.Len(t, v.Contacts(), 1)
	assert.Equal(t, "Ana", v.Contacts()[0].Name)
}

func TestController_SaveRoutesOnID(t *testing.T) {
	c, s, _ := setupController(t)

	exec(c.handleSave("", ana))
	list := s.List()
	require.Len(t, list, 1)
	id := list[0].ID
	assert.NotEmpty(t, id)

	exec(c.handleSave(id, contact.Fields{Name: "Ana B.", Email: "ana@x.com", Phone: "555"}))
	list = s.List()
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, "Ana B.", list[0].Name)
}

func TestController_SaveRejectsInvalidFields(t *testing.T) {
	c, s, logs := setupController(t)

	cmd := c.handleSave("", contact.Fields{Name: "Ana"})
	assert.Nil(t, cmd)
	assert.Empty(t, s.List())
	assert.Contains(t, logs.String(), "save rejected")
}

func TestController_DeleteAsksFirst(t *testing.T) {
	c, s, _ := setupController(t)
	added, err := s.Add(context.Background(), ana)
	require.NoError(t, err)
	v := c.View()

	assert.Nil(t, c.handleDelete(added.ID))
	require.Equal(t, modeConfirm, v.mode)
	assert.Contains(t, v.View(), "Delete Ana?")

	exec(v.Update(runes("n")))
	assert.Len(t, s.List(), 1, "declined delete keeps the contact")

	c.handleDelete(added.ID)
	exec(v.Update(runes("y")))
	assert.Empty(t, s.List())
}

func TestController_EditRequest(t *testing.T) {
	c, s, logs := setupController(t)
	added, err := s.Add(context.Background(), ana)
	require.NoError(t, err)
	v := c.View()

	t.Run("known id opens prefilled form", func(t *testing.T) {
		c.handleEditRequest(added.ID)
		require.Equal(t, modeForm, v.mode)
		assert.Equal(t, added.ID, v.form.id)
		assert.Equal(t, ana, v.form.fields())
		v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	})

	t.Run("unknown id is logged and ignored", func(t *testing.T) {
		assert.Nil(t, c.handleEditRequest("missing"))
		assert.Equal(t, modeList, v.mode)
		assert.Contains(t, logs.String(), "unknown contact")
	})
}

func TestController_SearchDoesNotPersist(t *testing.T) {
	c, s, _ := setupController(t)
	ctx := context.Background()
	for _, f := range []contact.Fields{
		ana,
		{Name: "Ben", Email: "ben@work.org", Phone: "556"},
		{Name: "Cleo", Email: "cleo@x.com", Phone: "557"},
	} {
		_, err := s.Add(ctx, f)
		require.NoError(t, err)
	}
	v := c.View()

	c.handleSearch("work.org")
	require.Len(t, v.Contacts(), 1)
	assert.Equal(t, "Ben", v.Contacts()[0].Name)
	assert.Len(t, s.List(), 3)

	c.handleSearch("zzz")
	assert.True(t, v.Empty())
	assert.Len(t, s.List(), 3)

	c.handleSearch("")
	assert.Len(t, v.Contacts(), 3)
}

func TestController_NotificationsCoalesce(t *testing.T) {
	c, s, _ := setupController(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.Add(ctx, ana)
		require.NoError(t, err)
	}

	msg, ok := exec(c.waitForChange()).(contactsChangedMsg)
	require.True(t, ok)
	assert.Len(t, msg.contacts, 3, "latest collection wins")

	select {
	case <-c.changed:
		t.Fatal("burst should leave a single pending signal")
	default:
	}
}

func TestController_CloseReleasesWaiter(t *testing.T) {
	c, s, _ := setupController(t)
	c.Close()

	assert.Nil(t, exec(c.waitForChange()))

	_, err := s.Add(context.Background(), ana)
	require.NoError(t, err)
	assert.Nil(t, c.latest, "unsubscribed controller sees no changes")
}

func TestController_StoreFailureIsLoggedOnly(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	kv := &flakyKV{KV: storage.NewMemory()}
	s := newLocalStore(t, kv)
	v := NewView()
	c := NewController(s, v, WithLogger(logger))
	defer c.Close()

	kv.fail = true
	assert.Nil(t, exec(c.handleSave("", ana)))

	assert.Contains(t, logs.String(), "add contact failed")
	assert.Contains(t, logs.String(), "disk full")
	assert.Empty(t, s.List())
	assert.True(t, v.Empty())
	assert.Empty(t, c.changed, "failed operations do not notify")
}

func TestController_FetchOnStartWithRemote(t *testing.T) {
	database, err := db.OpenOrCreate(filepath.Join(t.TempDir(), "contacts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	_, err = database.Seed(context.Background())
	require.NoError(t, err)

	srv := httptest.NewServer(api.NewServer(database, api.WithLogger(logging.Discard())))
	t.Cleanup(srv.Close)

	client, err := apiclient.New(srv.URL)
	require.NoError(t, err)

	v := NewView()
	c := NewController(store.NewRemote(client), v,
		WithLogger(logging.Discard()), WithFetchOnStart())
	defer c.Close()

	assert.True(t, v.Empty(), "nothing rendered before the fetch")

	exec(c.handleReload())
	msg, ok := exec(c.waitForChange()).(contactsChangedMsg)
	require.True(t, ok)
	assert.Len(t, msg.contacts, len(db.Fixtures()))
	assert.Equal(t, "Sarah Chen", msg.contacts[0].Name)
}

func TestController_EmptyStateThenAddAgain(t *testing.T) {
	c, s, _ := setupController(t)
	app := NewApp(c)
	v := c.View()
	ctx := context.Background()

	added, err := s.Add(ctx, ana)
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, added.ID))
	app.Update(exec(c.waitForChange()))
	assert.True(t, v.Empty())
	assert.Contains(t, v.View(), "No contacts yet")

	_, err = s.Add(ctx, contact.Fields{Name: "Ben", Email: "ben@x.com", Phone: "556"})
	require.NoError(t, err)
	app.Update(exec(c.waitForChange()))
	assert.False(t, v.Empty())
	assert.Contains(t, v.View(), "[B] Ben")
}

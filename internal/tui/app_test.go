package tui

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdxmph/contacts-mvc/internal/contact"
	"github.com/pdxmph/contacts-mvc/internal/logging"
	"github.com/pdxmph/contacts-mvc/internal/storage"
)

func TestApp_Update_WindowSizeMsg(t *testing.T) {
	c, _, _ := setupController(t)
	app := NewApp(c)

	_, cmd := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Nil(t, cmd)
	assert.Equal(t, 120, c.View().width)
	assert.Equal(t, 40, c.View().height)
}

func TestApp_Update_ContactsChangedClearsSearch(t *testing.T) {
	c, _, _ := setupController(t)
	app := NewApp(c)
	v := c.View()

	v.Update(runes("/"))
	typeInto(v, "zz")
	require.Equal(t, "zz", v.SearchTerm())

	list := []contact.Contact{{ID: "1", Name: "Ana", Email: "ana@x.com", Phone: "555"}}
	_, cmd := app.Update(contactsChangedMsg{contacts: list})

	assert.NotNil(t, cmd, "keeps waiting for the next change")
	assert.Empty(t, v.SearchTerm())
	assert.Equal(t, modeList, v.mode)
	assert.Equal(t, list, v.Contacts())
}

func TestApp_Update_KeyMsg_Q(t *testing.T) {
	c, _, _ := setupController(t)

	_, cmd := NewApp(c).Update(runes("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestApp_Update_CursorBlinkReachesFocusedInput(t *testing.T) {
	c, _, _ := setupController(t)
	app := NewApp(c)
	v := c.View()

	_, cmd := app.Update(textinput.Blink())
	assert.Nil(t, cmd, "no input is focused in the list")

	blink := v.OpenCreateForm()
	require.NotNil(t, blink)
	_, cmd = app.Update(blink())
	assert.NotNil(t, cmd, "form input schedules its next blink")

	v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	v.Update(runes("/"))
	_, cmd = app.Update(textinput.Blink())
	assert.NotNil(t, cmd, "search input schedules its next blink")
}

func waitForText(t *testing.T, tm *teatest.TestModel, text string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte(text))
	}, teatest.WithDuration(3*time.Second), teatest.WithCheckInterval(20*time.Millisecond))
}

// TestApp_Teatest_AddEditDelete drives the full flow through the program loop
func TestApp_Teatest_AddEditDelete(t *testing.T) {
	s := newLocalStore(t, storage.NewMemory())
	c := NewController(s, NewView(), WithLogger(logging.Discard()))
	defer c.Close()

	tm := teatest.NewTestModel(t, NewApp(c), teatest.WithInitialTermSize(100, 30))
	waitForText(t, tm, "No contacts yet")

	// add
	tm.Send(runes("a"))
	tm.Type("Ana")
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Type("ana@x.com")
	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Type("555")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitForText(t, tm, "Contacts (1)")

	list := s.List()
	require.Len(t, list, 1)
	id := list[0].ID
	assert.NotEmpty(t, id)
	assert.Equal(t, contact.Fields{Name: "Ana", Email: "ana@x.com", Phone: "555"}, list[0].Fields())

	// edit
	tm.Send(runes("e"))
	tm.Type(" B.")
	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlS})
	waitForText(t, tm, "[AB]")

	list = s.List()
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, "Ana B.", list[0].Name)

	// delete
	tm.Send(runes("d"))
	waitForText(t, tm, "Delete Ana B.?")
	tm.Send(runes("y"))
	waitForText(t, tm, "Contacts (0)")

	tm.Send(runes("q"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(2*time.Second))

	final := tm.FinalModel(t).(App)
	assert.True(t, final.view.Empty())
	assert.Contains(t, final.View(), "No contacts yet")
	assert.Empty(t, s.List())
}

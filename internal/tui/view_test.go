package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdxmph/contacts-mvc/internal/contact"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// typeInto sends s one rune at a time, like a user typing
func typeInto(v *View, s string) {
	for _, r := range s {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func sampleContacts() []contact.Contact {
	return []contact.Contact{
		{ID: "1", Name: "Ana Lopez", Email: "ana@x.com", Phone: "555-0101"},
		{ID: "2", Name: "Ben Ortiz", Email: "ben@work.org", Phone: "555-0102"},
		{ID: "3", Name: "Cleo", Email: "cleo@x.com", Phone: "555-0103"},
	}
}

type saved struct {
	id     string
	fields contact.Fields
}

func TestView_EmptyState(t *testing.T) {
	v := NewView()
	v.Render(nil)

	out := v.View()
	assert.True(t, v.Empty())
	assert.Contains(t, out, "Contacts (0)")
	assert.Contains(t, out, "No contacts yet")
}

func TestView_RenderShowsBadgeAndFields(t *testing.T) {
	v := NewView()
	v.Render(sampleContacts())

	out := v.View()
	assert.False(t, v.Empty())
	assert.Contains(t, out, "Contacts (3)")
	assert.Contains(t, out, "[AL] Ana Lopez")
	assert.Contains(t, out, "ben@work.org")
	assert.Contains(t, out, "555-0103")
	assert.NotContains(t, out, "No contacts yet")
}

func TestView_RenderIsFullReplace(t *testing.T) {
	v := NewView()
	v.Render(sampleContacts())
	v.Update(runes("j"))
	v.Update(runes("j"))
	require.Equal(t, 2, v.selected)

	v.Render(sampleContacts()[:1])

	out := v.View()
	assert.Contains(t, out, "Ana Lopez")
	assert.NotContains(t, out, "Ben Ortiz")
	assert.NotContains(t, out, "Cleo")
	assert.Equal(t, 0, v.selected, "selection clamps to the new list")
	assert.Len(t, v.Contacts(), 1)

	v.Render(nil)
	assert.True(t, v.Empty())
	assert.Contains(t, v.View(), "No contacts yet")
}

func TestView_RenderCopiesInput(t *testing.T) {
	v := NewView()
	list := sampleContacts()
	v.Render(list)
	list[0].Name = "Changed"

	assert.Equal(t, "Ana Lopez", v.Contacts()[0].Name)
}

func TestView_Navigation(t *testing.T) {
	v := NewView()
	v.Render(sampleContacts())

	v.Update(runes("k"))
	assert.Equal(t, 0, v.selected, "up at top stays put")

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	v.Update(runes("j"))
	v.Update(runes("j"))
	assert.Equal(t, 2, v.selected, "down at bottom stays put")

	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, v.selected)
}

func TestView_EditAndDeleteDelegateSelectedID(t *testing.T) {
	v := NewView()
	v.Render(sampleContacts())

	var editID, deleteID string
	v.OnEditRequest(func(id string) tea.Cmd { editID = id; return nil })
	v.OnDelete(func(id string) tea.Cmd { deleteID = id; return nil })

	v.Update(runes("j"))
	v.Update(runes("e"))
	v.Update(runes("d"))

	assert.Equal(t, "2", editID)
	assert.Equal(t, "2", deleteID)

	editID = ""
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "2", editID, "enter also requests edit")
}

func TestView_EmptyListIgnoresItemKeys(t *testing.T) {
	v := NewView()
	v.Render(nil)

	called := false
	v.OnEditRequest(func(string) tea.Cmd { called = true; return nil })
	v.OnDelete(func(string) tea.Cmd { called = true; return nil })

	v.Update(runes("e"))
	v.Update(runes("d"))
	assert.False(t, called)
}

func TestView_SearchEmitsEveryKeystroke(t *testing.T) {
	v := NewView()
	v.Render(sampleContacts())

	var terms []string
	v.OnSearch(func(term string) tea.Cmd {
		terms = append(terms, term)
		return nil
	})

	v.Update(runes("/"))
	require.Equal(t, modeSearch, v.mode)

	// q and j are search text here, not commands
	typeInto(v, "qj")
	assert.Equal(t, []string{"q", "qj"}, terms)
	assert.Equal(t, "qj", v.SearchTerm())

	v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, []string{"q", "qj", ""}, terms, "esc clears and emits an empty search")
	assert.Equal(t, modeList, v.mode)
	assert.Empty(t, v.SearchTerm())
}

func TestView_SearchEnterKeepsTerm(t *testing.T) {
	v := NewView()
	v.Render(sampleContacts())
	v.OnSearch(func(string) tea.Cmd { return nil })

	v.Update(runes("/"))
	typeInto(v, "ana")
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, modeList, v.mode)
	assert.Equal(t, "ana", v.SearchTerm())
	assert.Contains(t, v.View(), "/ ana", "search box stays visible")

	v.ClearSearch()
	assert.Empty(t, v.SearchTerm())
}

func TestView_CreateFormSubmit(t *testing.T) {
	v := NewView()
	v.Render(nil)

	var got []saved
	v.OnSave(func(id string, f contact.Fields) tea.Cmd {
		got = append(got, saved{id, f})
		return nil
	})

	v.Update(runes("a"))
	require.Equal(t, modeForm, v.mode)
	assert.Contains(t, v.View(), "New Contact")

	typeInto(v, "Ana")
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeInto(v, "ana@x.com")
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeInto(v, "555")
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].id)
	assert.Equal(t, contact.Fields{Name: "Ana", Email: "ana@x.com", Phone: "555"}, got[0].fields)
	assert.Equal(t, modeList, v.mode)
}

func TestView_FormRefusesBlankFields(t *testing.T) {
	v := NewView()

	called := false
	v.OnSave(func(string, contact.Fields) tea.Cmd { called = true; return nil })

	v.OpenCreateForm()
	typeInto(v, "Ana")
	v.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.False(t, called)
	assert.Equal(t, modeForm, v.mode, "form stays open")
	assert.Contains(t, v.form.notice, "email")
	assert.Contains(t, v.View(), "All fields are required")

	// whitespace is blank too
	v.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeInto(v, "   ")
	v.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.False(t, called)
}

func TestView_EditFormCarriesID(t *testing.T) {
	v := NewView()
	c := sampleContacts()[0]

	var got []saved
	v.OnSave(func(id string, f contact.Fields) tea.Cmd {
		got = append(got, saved{id, f})
		return nil
	})

	v.OpenEditForm(c)
	assert.Contains(t, v.View(), "Edit Contact: Ana Lopez")

	typeInto(v, " Jr")
	v.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].id)
	assert.Equal(t, "Ana Lopez Jr", got[0].fields.Name)
	assert.Equal(t, "ana@x.com", got[0].fields.Email)
}

func TestView_FormEscCancels(t *testing.T) {
	v := NewView()
	called := false
	v.OnSave(func(string, contact.Fields) tea.Cmd { called = true; return nil })

	v.OpenCreateForm()
	typeInto(v, "Ana")
	v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, called)
	assert.Equal(t, modeList, v.mode)
}

func TestView_ConfirmOnlyOnY(t *testing.T) {
	v := NewView()
	v.Render(sampleContacts())

	confirmed := 0
	onYes := func() tea.Cmd { confirmed++; return nil }

	v.Confirm("Delete Ana Lopez?", onYes)
	assert.Contains(t, v.View(), "Delete Ana Lopez? (y/n)")

	v.Update(runes("n"))
	assert.Equal(t, 0, confirmed)
	assert.Equal(t, modeList, v.mode)

	v.Confirm("Delete Ana Lopez?", onYes)
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 0, confirmed, "enter is not a confirmation")

	v.Confirm("Delete Ana Lopez?", onYes)
	v.Update(runes("y"))
	assert.Equal(t, 1, confirmed)
	assert.Equal(t, modeList, v.mode)
}

func TestView_QuitKey(t *testing.T) {
	v := NewView()
	cmd := v.Update(runes("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)

	cmd = v.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	_, ok = cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestView_ReloadKey(t *testing.T) {
	v := NewView()
	reloads := 0
	v.OnReload(func() tea.Cmd { reloads++; return nil })

	v.Update(runes("r"))
	assert.Equal(t, 1, reloads)
}

func TestView_HelpFollowsMode(t *testing.T) {
	v := NewView()
	assert.Contains(t, v.View(), "add")

	v.Update(runes("/"))
	assert.Contains(t, v.View(), "clear")
}

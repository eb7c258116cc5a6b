package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdxmph/contacts-mvc/internal/contact"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeForm
	modeConfirm
)

// Handlers the view delegates to. The returned command, if any, is run by
// the program.
type (
	SaveHandler        func(id string, f contact.Fields) tea.Cmd
	DeleteHandler      func(id string) tea.Cmd
	EditRequestHandler func(id string) tea.Cmd
	SearchHandler      func(term string) tea.Cmd
	ReloadHandler      func() tea.Cmd
)

// View renders whatever collection it is handed and turns key presses into
// handler calls. It never reads application data itself.
type View struct {
	contacts []contact.Contact
	selected int
	mode     mode
	width    int
	height   int

	search textinput.Model
	form   form
	prompt string
	onYes  func() tea.Cmd
	help   help.Model
	keys   keyMap

	onSave        SaveHandler
	onDelete      DeleteHandler
	onEditRequest EditRequestHandler
	onSearch      SearchHandler
	onReload      ReloadHandler
}

// NewView creates an empty view
func NewView() *View {
	textStyle, promptStyle, placeholderStyle := inputStyles()

	ti := textinput.New()
	ti.Placeholder = "Search contacts..."
	ti.Width = 30
	ti.CharLimit = 50
	ti.Prompt = "/ "
	ti.TextStyle = textStyle
	ti.PromptStyle = promptStyle
	ti.PlaceholderStyle = placeholderStyle

	return &View{
		width:  80,
		height: 24,
		search: ti,
		help:   help.New(),
		keys:   defaultKeyMap(),
	}
}

// OnSave registers the create/edit submit handler
func (v *View) OnSave(fn SaveHandler) { v.onSave = fn }

// OnDelete registers the delete handler
func (v *View) OnDelete(fn DeleteHandler) { v.onDelete = fn }

// OnEditRequest registers the handler asked to open the edit form
func (v *View) OnEditRequest(fn EditRequestHandler) { v.onEditRequest = fn }

// OnSearch registers the handler called on every search keystroke
func (v *View) OnSearch(fn SearchHandler) { v.onSearch = fn }

// OnReload registers the reload handler
func (v *View) OnReload(fn ReloadHandler) { v.onReload = fn }

// Render replaces the displayed collection wholesale
func (v *View) Render(list []contact.Contact) {
	v.contacts = make([]contact.Contact, len(list))
	copy(v.contacts, list)

	if v.selected >= len(v.contacts) {
		v.selected = len(v.contacts) - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}
}

// Contacts returns the collection currently on screen
func (v *View) Contacts() []contact.Contact {
	out := make([]contact.Contact, len(v.contacts))
	copy(out, v.contacts)
	return out
}

// Empty reports whether the empty state is showing
func (v *View) Empty() bool {
	return len(v.contacts) == 0
}

// SearchTerm returns the text in the search box
func (v *View) SearchTerm() string {
	return v.search.Value()
}

// ClearSearch drops the search term without emitting a search
func (v *View) ClearSearch() {
	v.search.SetValue("")
	if v.mode == modeSearch {
		v.search.Blur()
		v.mode = modeList
	}
}

// OpenCreateForm shows the empty form
func (v *View) OpenCreateForm() tea.Cmd {
	v.form = newForm(nil)
	v.mode = modeForm
	return textinput.Blink
}

// OpenEditForm shows the form prefilled with c
func (v *View) OpenEditForm(c contact.Contact) tea.Cmd {
	v.form = newForm(&c)
	v.mode = modeForm
	return textinput.Blink
}

// Confirm shows a yes/no prompt. onYes runs only if the user presses y.
func (v *View) Confirm(prompt string, onYes func() tea.Cmd) {
	v.prompt = prompt
	v.onYes = onYes
	v.mode = modeConfirm
}

// SetSize records the terminal size
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.help.Width = width
}

func (v *View) current() (contact.Contact, bool) {
	if v.selected < 0 || v.selected >= len(v.contacts) {
		return contact.Contact{}, false
	}
	return v.contacts[v.selected], true
}

// Update handles a key press
func (v *View) Update(msg tea.KeyMsg) tea.Cmd {
	switch v.mode {
	case modeConfirm:
		return v.updateConfirm(msg)
	case modeForm:
		return v.updateForm(msg)
	case modeSearch:
		return v.updateSearch(msg)
	}
	return v.updateList(msg)
}

// UpdateInputs passes a non-key message to the focused text input
func (v *View) UpdateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch v.mode {
	case modeForm:
		i := v.form.focus
		v.form.inputs[i], cmd = v.form.inputs[i].Update(msg)
	case modeSearch:
		v.search, cmd = v.search.Update(msg)
	}
	return cmd
}

func (v *View) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	onYes := v.onYes
	v.mode = modeList
	v.prompt = ""
	v.onYes = nil

	// Any other key cancels
	if key.Matches(msg, v.keys.confirm.Yes) && onYes != nil {
		return onYes()
	}
	return nil
}

func (v *View) updateForm(msg tea.KeyMsg) tea.Cmd {
	result, cmd := v.form.update(msg, v.keys.form)
	switch result {
	case formCancelled:
		v.mode = modeList
		return nil
	case formSubmitted:
		v.mode = modeList
		if v.onSave != nil {
			return v.onSave(v.form.id, v.form.fields())
		}
		return nil
	}
	return cmd
}

func (v *View) updateSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, v.keys.search.Clear):
		v.search.SetValue("")
		v.search.Blur()
		v.mode = modeList
		return v.emitSearch()
	case key.Matches(msg, v.keys.search.Done):
		v.search.Blur()
		v.mode = modeList
		return nil
	}

	before := v.search.Value()
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	if v.search.Value() != before {
		return tea.Batch(cmd, v.emitSearch())
	}
	return cmd
}

func (v *View) emitSearch() tea.Cmd {
	v.selected = 0
	if v.onSearch == nil {
		return nil
	}
	return v.onSearch(v.search.Value())
}

func (v *View) updateList(msg tea.KeyMsg) tea.Cmd {
	keys := v.keys.list

	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Down):
		if v.selected < len(v.contacts)-1 {
			v.selected++
		}
	case key.Matches(msg, keys.Up):
		if v.selected > 0 {
			v.selected--
		}
	case key.Matches(msg, keys.Add):
		return v.OpenCreateForm()
	case key.Matches(msg, keys.Edit):
		if c, ok := v.current(); ok && v.onEditRequest != nil {
			return v.onEditRequest(c.ID)
		}
	case key.Matches(msg, keys.Delete):
		if c, ok := v.current(); ok && v.onDelete != nil {
			return v.onDelete(c.ID)
		}
	case key.Matches(msg, keys.Search):
		v.mode = modeSearch
		return v.search.Focus()
	case key.Matches(msg, keys.Reload):
		if v.onReload != nil {
			return v.onReload()
		}
	}
	return nil
}

// View renders the screen
func (v *View) View() string {
	switch v.mode {
	case modeForm:
		return v.center(v.form.view())
	case modeConfirm:
		return v.center(v.renderConfirm())
	}

	var lines []string
	lines = append(lines, headerStyle.Render(fmt.Sprintf("Contacts (%d)", len(v.contacts))))

	if v.mode == modeSearch || v.search.Value() != "" {
		lines = append(lines, v.search.View())
	}
	lines = append(lines, strings.Repeat("─", max(v.width-2, 10)))

	if len(v.contacts) == 0 {
		lines = append(lines, "", emptyStyle.Render("No contacts yet"), "")
	} else {
		lines = append(lines, v.renderList()...)
	}

	lines = append(lines, "", v.help.View(v.keys.helpBindings(v.mode)))
	return strings.Join(lines, "\n")
}

// renderList renders the visible window of contact lines
func (v *View) renderList() []string {
	// header, search, rule, blank and help lines
	visibleHeight := v.height - 5
	if visibleHeight < 1 {
		visibleHeight = 1
	}
	startIdx := 0
	if v.selected >= visibleHeight {
		startIdx = v.selected - visibleHeight + 1
	}

	var lines []string
	for i := startIdx; i < len(v.contacts) && i < startIdx+visibleHeight; i++ {
		c := v.contacts[i]
		line := fmt.Sprintf("%s %s  %s  %s",
			badgeStyle.Render("["+contact.Initials(c.Name)+"]"),
			c.Name,
			labelStyle.Render(c.Email),
			labelStyle.Render(c.Phone))

		if i == v.selected {
			line = selectedStyle.Render(line) + labelStyle.Render("  e edit · d delete")
		}
		lines = append(lines, line)
	}
	return lines
}

// renderConfirm renders the confirmation prompt
func (v *View) renderConfirm() string {
	width := 50
	height := 5

	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(v.prompt + " (y/n)")

	return confirmBoxStyle.
		Width(width).
		Height(height).
		Render(content)
}

// center places a box in the middle of the screen
func (v *View) center(box string) string {
	return lipgloss.NewStyle().
		Width(v.width).
		Height(v.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(box)
}

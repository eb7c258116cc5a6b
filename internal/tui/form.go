package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdxmph/contacts-mvc/internal/contact"
)

// Form field indices
const (
	fieldName = iota
	fieldEmail
	fieldPhone
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name:   ",
	"Email:  ",
	"Phone:  ",
}

// form is the modal used for both create and edit. An empty id means create.
type form struct {
	id     string
	title  string
	inputs [fieldCount]textinput.Model
	focus  int
	notice string
}

type formResult int

const (
	formPending formResult = iota
	formSubmitted
	formCancelled
)

func newForm(c *contact.Contact) form {
	placeholders := [fieldCount]string{"Full name", "name@example.com", "555-0100"}
	textStyle, promptStyle, placeholderStyle := inputStyles()

	f := form{title: "New Contact"}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 100
		ti.Width = 40
		ti.Prompt = "> "
		ti.TextStyle = textStyle
		ti.PromptStyle = promptStyle
		ti.PlaceholderStyle = placeholderStyle
		f.inputs[i] = ti
	}

	if c != nil {
		f.id = c.ID
		f.title = fmt.Sprintf("Edit Contact: %s", c.Name)
		f.inputs[fieldName].SetValue(c.Name)
		f.inputs[fieldEmail].SetValue(c.Email)
		f.inputs[fieldPhone].SetValue(c.Phone)
	}

	f.inputs[fieldName].Focus()
	return f
}

// fields returns the current input values
func (f form) fields() contact.Fields {
	return contact.Fields{
		Name:  strings.TrimSpace(f.inputs[fieldName].Value()),
		Email: strings.TrimSpace(f.inputs[fieldEmail].Value()),
		Phone: strings.TrimSpace(f.inputs[fieldPhone].Value()),
	}
}

func (f *form) setFocus(i int) tea.Cmd {
	if i < 0 || i >= fieldCount {
		return nil
	}
	f.inputs[f.focus].Blur()
	f.focus = i
	return f.inputs[f.focus].Focus()
}

// submit refuses while any field is blank and leaves a notice instead
func (f *form) submit() formResult {
	if err := f.fields().Validate(); err != nil {
		f.notice = fmt.Sprintf("All fields are required (%v)", err)
		return formPending
	}
	f.notice = ""
	return formSubmitted
}

func (f *form) update(msg tea.KeyMsg, keys formKeys) (formResult, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Cancel):
		return formCancelled, nil
	case key.Matches(msg, keys.Save):
		return f.submit(), nil
	case key.Matches(msg, keys.Submit):
		if f.focus == fieldCount-1 {
			return f.submit(), nil
		}
		return formPending, f.setFocus(f.focus + 1)
	case key.Matches(msg, keys.Next):
		return formPending, f.setFocus(f.focus + 1)
	case key.Matches(msg, keys.Prev):
		return formPending, f.setFocus(f.focus - 1)
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return formPending, cmd
}

func (f form) view() string {
	var lines []string
	lines = append(lines, headerStyle.Render(f.title))
	lines = append(lines, strings.Repeat("─", 40))
	lines = append(lines, "")

	for i, label := range fieldLabels {
		var fieldView string
		if i == f.focus {
			fieldView = label + f.inputs[i].View()
		} else {
			value := f.inputs[i].Value()
			if value == "" {
				value = labelStyle.Render(f.inputs[i].Placeholder)
			}
			fieldView = label + "  " + value
		}
		lines = append(lines, fieldView)
		lines = append(lines, "")
	}

	if f.notice != "" {
		lines = append(lines, noticeStyle.Render(f.notice))
	}

	return borderStyle.
		Padding(1).
		Width(60).
		Render(strings.Join(lines, "\n"))
}

package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// App is the tea.Model driving the contact manager
type App struct {
	controller *Controller
	view       *View
}

// NewApp creates the program model around a controller
func NewApp(c *Controller) App {
	return App{controller: c, view: c.View()}
}

// Init starts listening for store changes
func (a App) Init() tea.Cmd {
	return a.controller.Init()
}

// Update handles messages
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.view.SetSize(msg.Width, msg.Height)
		return a, nil

	case contactsChangedMsg:
		// A change discards any search in progress
		a.view.ClearSearch()
		a.view.Render(msg.contacts)
		return a, a.controller.waitForChange()

	case tea.KeyMsg:
		return a, a.view.Update(msg)
	}
	// Cursor blinks and the like belong to the focused input
	return a, a.view.UpdateInputs(msg)
}

// View renders the screen
func (a App) View() string {
	return a.view.View()
}

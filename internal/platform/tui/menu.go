package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// MenuItem is one selectable difficulty mode.
type MenuItem struct {
	Preset      config.DifficultyPreset
	Title       string
	Description string
	Best        int
}

var menuItems = []MenuItem{
	{Preset: config.DifficultyFixed, Title: "Classic", Description: "constant speed"},
	{Preset: config.DifficultyEasy, Title: "Easy", Description: "speeds up with score"},
	{Preset: config.DifficultyNormal, Title: "Normal", Description: "starts faster"},
	{Preset: config.DifficultyHard, Title: "Hard", Description: "starts much faster"},
}

// MenuKeyMap defines the mode menu key bindings.
type MenuKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Scoreboard key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scoreboard, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Scoreboard: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuModel lets the player pick a difficulty mode.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	keys           MenuKeyMap
	help           help.Model
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel creates the mode menu. Best scores come from store when set.
func NewMenuModel(store *storage.Store, width int) MenuModel {
	items := make([]MenuItem, len(menuItems))
	copy(items, menuItems)
	if store != nil {
		for i := range items {
			if best, err := store.HighScore(string(items[i].Preset)); err == nil {
				items[i].Best = best
			}
		}
	}
	h := help.New()
	h.Width = width
	return MenuModel{
		items: items,
		width: width,
		keys:  DefaultMenuKeyMap(),
		help:  h,
	}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		case key.Matches(msg, m.keys.Scoreboard):
			m.openScoreboard = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render("B L O C K F A L L"))
	b.WriteString("\n\n")
	b.WriteString("Select a mode\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %-8s %-22s", item.Title, item.Description)
		if item.Best > 0 {
			line += fmt.Sprintf(" best %d", item.Best)
		}
		if i == m.cursor {
			line = activeStyle.Render("> " + strings.TrimPrefix(line, "  "))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	b.WriteString("\n")

	block := lipgloss.NewStyle().Align(lipgloss.Left).Render(b.String())
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, block)
}

// Selected returns the selected item, or nil if none was chosen.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting reports whether the user asked to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard reports whether the user asked for the score table.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// RunModeMenu shows the mode menu until a mode is chosen or the user quits.
// It returns false when the user quit.
func RunModeMenu(store *storage.Store, width, height int) (config.DifficultyPreset, bool, error) {
	for {
		p := tea.NewProgram(NewMenuModel(store, width), tea.WithAltScreen())
		final, err := p.Run()
		if err != nil {
			return "", false, err
		}
		m, ok := final.(MenuModel)
		if !ok || m.IsQuitting() {
			return "", false, nil
		}
		if m.WantsScoreboard() {
			if err := RunScoreboard(store, width, height); err != nil {
				return "", false, err
			}
			continue
		}
		if sel := m.Selected(); sel != nil {
			return sel.Preset, true, nil
		}
		return "", false, nil
	}
}

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/games/blockfall"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// Game is the contract between the platform and a game.
type Game interface {
	ID() string
	Mode() string
	Reset(cfg core.RuntimeConfig)
	Resize(w, h int)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
	Revision() uint64
	Snapshot() blockfall.Snapshot
}

// Publisher receives snapshots for spectators.
type Publisher interface {
	Publish(sessionID string, v any)
	Close(sessionID string)
}

// Options configures a Model.
type Options struct {
	Store     *storage.Store // optional score storage
	Player    string
	SessionID string
	Publisher Publisher // optional spectator feed
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model that runs one game.
type Model struct {
	game       Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	lastRev    uint64
	published  bool
	quitting   bool
	scoreSaved bool
}

// NewModel creates a model for the game.
func NewModel(game Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, screenHeight(cfg.ScreenH)),
		opts:       opts,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       h,
		inputFrame: core.NewInputFrame(),
	}
}

// screenHeight leaves one row for the help footer.
func screenHeight(h int) int {
	return max(h-1, 1)
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(core.RuntimeConfig{
		ScreenW:  m.screen.Width(),
		ScreenH:  m.screen.Height(),
		TickRate: m.config.TickRate,
		Seed:     m.config.Seed,
	})
	return tickCmd(m.config.TickRate)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}
	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		m.finish()
		return m, tea.Quit
	}
	m.inputFrame.Set(action)
	return m, nil
}

// handleResize re-lays out the game. The session keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, screenHeight(msg.Height))
	m.game.Resize(m.screen.Width(), m.screen.Height())
	m.help.Width = msg.Width
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()

	prev := m.gameState
	m.gameState = result.State
	if prev.GameOver && !m.gameState.GameOver {
		m.scoreSaved = false
	}
	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	m.publish()
	return m, tickCmd(m.config.TickRate)
}

func (m *Model) saveScore() {
	if m.opts.Store == nil || m.gameState.Score <= 0 {
		return
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.opts.Store.SaveScore(m.game.Mode(), m.opts.Player, m.gameState.Score, m.gameState.Lines)
}

// publish forwards a snapshot when the game changed since the last one.
func (m *Model) publish() {
	if m.opts.Publisher == nil {
		return
	}
	rev := m.game.Revision()
	if m.published && rev == m.lastRev {
		return
	}
	m.lastRev = rev
	m.published = true
	m.opts.Publisher.Publish(m.opts.SessionID, m.game.Snapshot())
}

// finish saves an unfinished game's score on quit and closes the feed.
func (m *Model) finish() {
	if m.gameState.Started && !m.gameState.GameOver {
		m.saveScore()
	}
	if m.opts.Publisher != nil {
		m.opts.Publisher.Close(m.opts.SessionID)
	}
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".blockfall", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the game and the help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// GameState returns the state after the last step.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// Run starts a local Bubble Tea program for the game.
func Run(game Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

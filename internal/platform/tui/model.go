package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/shuttle-run/internal/core"
	"github.com/vovakirdan/shuttle-run/internal/games/shuttle"
	"github.com/vovakirdan/shuttle-run/internal/session"
	"github.com/vovakirdan/shuttle-run/internal/storage"
)

// helpHeight is the number of rows kept below the play field for the help bar.
const helpHeight = 1

// Model is the Bubble Tea model running one Shuttle Run game.
type Model struct {
	game       *shuttle.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       KeyMap
	help       help.Model
	showHelp   bool
	logger     *log.Logger
	quitting   bool
}

// NewModel creates a model for the given game. The game is reset with cfg on
// Init.
func NewModel(game *shuttle.Game, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	h := help.New()
	h.Width = cfg.ScreenW

	fieldH := core.Max(1, cfg.ScreenH-helpHeight)
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, fieldH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultKeyMap(),
		help:       h,
		showHelp:   true,
		logger:     logger,
	}
}

// RecordRuns saves every finished run of game to store.
func RecordRuns(game *shuttle.Game, store *storage.Store, logger *log.Logger) {
	if store == nil {
		return
	}
	game.OnResults(func(r session.ResultsReady, colorIndex int) {
		id, err := store.SaveRun(storage.Run{
			Score:      r.Score,
			ColorIndex: colorIndex,
			Color:      string(r.Color),
			NewBest:    r.IsNewBest,
		})
		if err != nil {
			logger.Warn("could not save run", "error", err)
			return
		}
		logger.Debug("run saved", "run_id", id, "score", r.Score)
	})
}

// Init starts the session and the tick loop.
func (m Model) Init() tea.Cmd {
	cfg := m.config
	cfg.ScreenH = m.screen.Height()
	m.game.Reset(cfg)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
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
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize adapts the play field without restarting the run.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	fieldH := core.Max(1, msg.Height-helpHeight)

	m.screen.Resize(msg.Width, fieldH)
	m.game.Resize(msg.Width, fieldH)
	m.help.Width = msg.Width

	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	for _, cue := range m.game.TakeCues() {
		m.logger.Debug("sound cue", "cue", cue)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// State returns the game state as of the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	view := RenderScreen(m.screen, m.game.AccentColor())

	if m.showHelp {
		helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		view += "\n" + helpStyle.Render(m.help.View(m.keys))
	}
	return view
}

// Run starts the Bubble Tea program for the given game.
func Run(game *shuttle.Game, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(game, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

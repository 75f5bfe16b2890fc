package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snakeboy/internal/config"
	"github.com/vovakirdan/snakeboy/internal/core"
	"github.com/vovakirdan/snakeboy/internal/games/snake"
	"github.com/vovakirdan/snakeboy/internal/storage"
)

// Options configures a game screen.
type Options struct {
	Config    config.SnakeConfig
	Store     *storage.Store // Optional; nil keeps scores in memory
	Logger    *log.Logger
	Audio     snake.Audio
	Renderers []snake.Renderer   // Extra snapshot consumers, e.g. spectators
	Clock     snake.Clock        // Defaults to the wall clock
	Mode      snake.Mode
	Runtime   core.RuntimeConfig // Screen size, frame rate and seed; zero fields take defaults
}

// frameSink keeps the latest snapshot for View.
type frameSink struct {
	last snake.Snapshot
	has  bool
}

func (f *frameSink) Render(s snake.Snapshot) {
	f.last = s
	f.has = true
}

// Model is the Bubble Tea model for one Snake Boy session.
type Model struct {
	game   *snake.Game
	input  *snake.DirectionQueue
	sink   *frameSink
	store  *storage.Store
	logger *log.Logger

	keys   KeyMap
	help   help.Model
	konami *Konami
	frame  *core.InputFrame // Actions since the last frame, applied in order

	screen *core.Screen
	draw   DrawOptions
	fps    int
	width  int
	height int

	runSaved bool // Whether the current game over has been recorded
	quitting bool
}

// NewModel creates a session and the model driving it.
func NewModel(opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rt := opts.Runtime
	def := core.DefaultConfig()
	if rt.ScreenW <= 0 || rt.ScreenH <= 0 {
		rt.ScreenW, rt.ScreenH = def.ScreenW, def.ScreenH
	}
	if rt.FrameRate <= 0 {
		rt.FrameRate = def.FrameRate
	}
	input := &snake.DirectionQueue{}
	sink := &frameSink{}

	renderers := snake.MultiRenderer{sink}
	renderers = append(renderers, opts.Renderers...)

	var store snake.HighScoreStore
	if opts.Store != nil {
		store = opts.Store
	}
	game, err := snake.New(opts.Config, snake.Options{
		Input:    input,
		Renderer: renderers,
		Audio:    opts.Audio,
		Store:    store,
		Logger:   logger,
		Clock:    opts.Clock,
		Seed:     rt.Seed,
		Mode:     opts.Mode,
	})
	if err != nil {
		return Model{}, err
	}

	frame := core.NewInputFrame()
	h := help.New()
	h.Width = rt.ScreenW

	m := Model{
		game:   game,
		input:  input,
		sink:   sink,
		store:  opts.Store,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   h,
		konami: &Konami{},
		frame:  &frame,
		draw: DrawOptions{
			CellWidth: opts.Config.Display.CellWidth,
			ShowGrid:  opts.Config.Display.ShowGrid,
		},
		fps:    rt.FrameRate,
		width:  rt.ScreenW,
		height: rt.ScreenH,
	}
	m.screen = core.NewScreen(m.width, m.playHeight())
	return m, nil
}

// Game returns the session the model drives.
func (m Model) Game() *snake.Game { return m.game }

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.fps)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.screen.Resize(m.width, m.playHeight())
		return m, nil

	case FrameMsg:
		m.applyInput()
		m.game.Advance()
		m.recordRun()
		return m, frameCmd(m.fps)
	}

	return m, nil
}

// handleKey records a key press for the next frame. Help and quit act at once.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		m.screen.Resize(m.width, m.playHeight())
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		return m, tea.Quit
	}
	m.frame.Set(action)
	if m.konami.Feed(action) {
		m.frame.Set(core.ActionCheat)
	}
	return m, nil
}

// applyInput hands the frame's actions to the game in the order they arrived.
func (m Model) applyInput() {
	for _, action := range m.frame.Actions {
		m.apply(action)
	}
	m.frame.Clear()
}

func (m Model) apply(action core.Action) {
	if dir, ok := directionFor(action); ok {
		m.input.Push(dir)
		return
	}

	switch action {
	case core.ActionCheat:
		m.game.ActivateCheat()
	case core.ActionStart:
		m.game.StartPause()
	case core.ActionPause:
		m.game.TogglePause()
	case core.ActionSelect:
		m.game.CycleMode()
	case core.ActionA:
		m.game.ActivateSpeedBoost()
	case core.ActionB:
		m.game.ActivateShield()
	case core.ActionReset:
		m.game.Reset()
	}
}

// recordRun saves a finished run to the history once per game over.
func (m *Model) recordRun() {
	if m.game.Status() != snake.StatusGameOver {
		m.runSaved = false
		return
	}
	if m.runSaved {
		return
	}
	m.runSaved = true
	if m.store == nil || m.game.Score() == 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.Mode().String(), m.game.Score(), m.game.Level()); err != nil {
		m.logger.Warn("could not record run", "err", err)
	}
}

// playHeight is the screen height left after the help bar.
func (m Model) playHeight() int {
	rows := 1
	if m.help.ShowAll {
		for _, group := range m.keys.FullHelp() {
			rows = max(rows, len(group))
		}
	}
	return max(1, m.height-rows)
}

// View renders the current frame and the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.sink.last
	if !m.sink.has {
		snap = m.game.Snapshot()
	}
	DrawSnapshot(m.screen, snap, m.draw)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

func directionFor(a core.Action) (snake.Direction, bool) {
	switch a {
	case core.ActionUp:
		return snake.DirUp, true
	case core.ActionDown:
		return snake.DirDown, true
	case core.ActionLeft:
		return snake.DirLeft, true
	case core.ActionRight:
		return snake.DirRight, true
	}
	return 0, false
}

// Run starts the Bubble Tea program for the given model and blocks until
// the player quits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	start := time.Now()
	_, err := p.Run()
	m.logger.Info("session closed", "played", time.Since(start).Round(time.Second), "high", m.game.HighScore())
	return err
}

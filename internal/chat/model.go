package chat

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/adamavenir/mention/internal/core"
	"github.com/adamavenir/mention/internal/db"
	"github.com/adamavenir/mention/internal/types"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

// Options configure chat.
type Options struct {
	DB              *sql.DB
	Username        string
	Users           []types.User
	UsersFile       string
	Watch           bool
	SuggestionLimit int
	ShowPreview     bool
	ShowDebug       bool
	Prefill         string
	Last            int
}

// Run starts the chat UI.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithMouseCellMotion())
	_, err = program.Run()
	model.Close()
	return err
}

// Model implements the mention input UI.
type Model struct {
	db             *sql.DB
	username       string
	input          textinput.Model
	tracker        *core.MentionTracker
	state          core.MentionState
	lastInputValue string
	lastInputPos   int
	messages       []types.Message
	lastLimit      int
	status         string
	statusIsError  bool
	width          int
	height         int
	showPreview    bool
	showDebug      bool
	zoneManager    *zone.Manager
	usersFile      string
	watcher        *usersWatcher
	now            func() time.Time
}

// NewModel creates a chat model over the user directory.
func NewModel(opts Options) (*Model, error) {
	if opts.Last <= 0 {
		opts.Last = 10
	}

	var messages []types.Message
	if opts.DB != nil {
		loaded, err := db.GetMessages(opts.DB, opts.Last)
		if err != nil {
			return nil, fmt.Errorf("load history: %w", err)
		}
		messages = loaded
	}

	model := &Model{
		db:          opts.DB,
		username:    opts.Username,
		input:       newInputModel(),
		tracker:     core.NewMentionTracker(opts.Users, opts.SuggestionLimit),
		messages:    messages,
		lastLimit:   opts.Last,
		showPreview: opts.ShowPreview,
		showDebug:   opts.ShowDebug,
		zoneManager: zone.New(),
		usersFile:   opts.UsersFile,
		now:         time.Now,
	}

	if opts.Watch && opts.UsersFile != "" {
		watcher, err := newUsersWatcher(opts.UsersFile)
		if err != nil {
			return nil, fmt.Errorf("watch users file: %w", err)
		}
		model.watcher = watcher
	}

	if opts.Prefill != "" {
		model.input.SetValue(opts.Prefill)
		model.input.CursorEnd()
		model.syncInput()
	}
	log.Printf("mention: chat started with %d users", len(opts.Users))
	return model, nil
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.waitCmd())
	}
	return tea.Batch(cmds...)
}

func (m *Model) Close() {
	if m.watcher != nil {
		_ = m.watcher.Close()
	}
	if m.zoneManager != nil {
		m.zoneManager.Close()
	}
}

// State exposes the current mention state.
func (m *Model) State() core.MentionState {
	return m.state
}

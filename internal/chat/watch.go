package chat

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/adamavenir/mention/internal/db"
	"github.com/adamavenir/mention/internal/types"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

const usersReloadDebounce = 200 * time.Millisecond

// usersReloadedMsg delivers a fresh user directory read from the users file.
type usersReloadedMsg struct {
	users []types.User
	err   error
}

// usersWatcher reloads the users file whenever it changes on disk.
type usersWatcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	reloads   chan usersReloadedMsg
	done      chan struct{}
}

func newUsersWatcher(path string) (*usersWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Editors often replace files on save, so watch the directory.
	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		_ = fsWatcher.Close()
		return nil, err
	}
	w := &usersWatcher{
		fsWatcher: fsWatcher,
		path:      abs,
		reloads:   make(chan usersReloadedMsg, 1),
		done:      make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *usersWatcher) run() {
	var pending <-chan time.Time
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(usersReloadDebounce)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.send(usersReloadedMsg{err: fmt.Errorf("watch users file: %w", err)})
		case <-pending:
			pending = nil
			users, err := db.ReadUsersFile(w.path)
			w.send(usersReloadedMsg{users: users, err: err})
		}
	}
}

// send keeps only the newest reload when the UI falls behind.
func (w *usersWatcher) send(msg usersReloadedMsg) {
	select {
	case <-w.reloads:
	default:
	}
	select {
	case w.reloads <- msg:
	case <-w.done:
	}
}

func (w *usersWatcher) waitCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-w.reloads:
			return msg
		case <-w.done:
			return nil
		}
	}
}

func (w *usersWatcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
	}
	close(w.done)
	return w.fsWatcher.Close()
}

func (m *Model) handleUsersReloadedMsg(msg usersReloadedMsg) (tea.Model, tea.Cmd) {
	var next tea.Cmd
	if m.watcher != nil {
		next = m.watcher.waitCmd()
	}
	if msg.err != nil {
		log.Printf("mention: reload users: %v", msg.err)
		m.setError(msg.err)
		return m, next
	}
	m.state = m.tracker.SetUsers(m.state, msg.users)
	m.setStatus(fmt.Sprintf("Reloaded %d users.", len(msg.users)))
	m.logState("users reloaded")
	return m, next
}

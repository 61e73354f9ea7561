package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/dirplay/internal/playback"
	"github.com/olivier-w/dirplay/internal/session"
	"github.com/olivier-w/dirplay/internal/watch"
	zlog "github.com/rs/zerolog/log"
)

// DefaultPollInterval is how often the end of a track is checked for.
const DefaultPollInterval = 50 * time.Millisecond

// Rows used by everything except the listing.
const chromeRows = 9

// Options configures the TUI.
type Options struct {
	PollInterval time.Duration
	// Watcher, when set, follows the browsed directory and reloads the
	// listing on change.
	Watcher *watch.Watcher
}

// Model is the Bubbletea model for the dirplay TUI.
type Model struct {
	session  *session.Session
	keys     keyMap
	help     help.Model
	interval time.Duration
	watcher  *watch.Watcher
	dir      string // directory the watcher and window title follow
	width    int
	height   int
	quitting bool
}

// New creates a Model driving s.
func New(s *session.Session, opts Options) Model {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	m := Model{
		session:  s,
		keys:     defaultKeys,
		help:     help.New(),
		interval: opts.PollInterval,
		watcher:  opts.Watcher,
	}
	m.followDir()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.interval), waitForChange(m.watcher), tea.SetWindowTitle(windowTitle(m.dir)))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, ok := m.keys.command(msg)
		if !ok {
			return m, nil
		}
		if m.session.Dispatch(cmd) {
			m.quitting = true
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
		if m.followDir() {
			return m, tea.SetWindowTitle(windowTitle(m.dir))
		}
		return m, nil

	case tickMsg:
		m.session.Tick()
		return m, tickCmd(m.interval)

	case dirChangedMsg:
		m.session.Reload()
		return m, waitForChange(m.watcher)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// followDir reports whether the browsed directory changed since the last
// call, and points the watcher at it.
func (m *Model) followDir() bool {
	dir := m.session.Nav().Path()
	if dir == m.dir {
		return false
	}
	m.dir = dir
	if m.watcher != nil {
		if err := m.watcher.Watch(dir); err != nil {
			zlog.Warn().Err(err).Str("dir", dir).Msg("cannot watch directory")
		}
	}
	return true
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w := m.width
	if w < 30 {
		w = 80
	}
	rows := 20
	if m.height > 0 {
		rows = max(m.height-chromeRows, 3)
	}

	n := m.session.Nav()
	ctl := m.session.Playback()

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + headerStyle.Render("dirplay") + "  " + titleStyle.Render(truncate(n.Path(), w-13)) + "\n")
	b.WriteString("\n")

	entries := n.Listing()
	selected, _ := n.Selected()
	if n.Len() == 0 {
		b.WriteString("  " + emptyStyle.Render("(empty)") + "\n")
	} else {
		start, end := visibleRange(selected, len(entries), rows)
		for i := start; i < end; i++ {
			b.WriteString("  " + renderEntry(entries[i], i == selected, w-2) + "\n")
		}
	}
	b.WriteString("\n")

	nowPlaying, _ := ctl.NowPlaying()
	elapsed, total := ctl.Position(), ctl.Duration()
	b.WriteString("  " + renderStatus(ctl.State(), nowPlaying, elapsed, total, n.Mode(), w-2) + "\n")
	if ctl.State() != playback.StateIdle {
		b.WriteString("  " + timeStyle.Render(renderProgressBar(elapsed.Seconds(), total.Seconds(), w-4)) + "\n")
	}
	if msg := m.session.StatusMessage(); msg != "" {
		b.WriteString("  " + messageStyle.Render(truncate(msg, w-2)) + "\n")
	}
	b.WriteString("\n")
	b.WriteString("  " + m.help.View(m.keys) + "\n")

	return b.String()
}

func windowTitle(dir string) string {
	if dir == "" {
		return "dirplay"
	}
	return "dirplay: " + dir
}

package preview

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/mssjo/katelistings-go/highlighting"
)

// Model is a bubbletea pager over the fully-rendered lines of a
// highlighting job. It holds no reference to the job itself: by the time
// a Model exists, highlighting has already happened and every line is
// plain lipgloss-styled text ready to print.
type Model struct {
	lines  []string
	offset int
	width  int
	height int
}

// NewModel renders src through lang, wrapping the resulting lines in a
// Model ready to run.
func NewModel(src io.Reader, lang *highlighting.Language) (*Model, error) {
	e := newLineEmitter()

	if err := lang.Highlight(src, e); err != nil {
		return nil, err
	}

	width, height := 80, 24

	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}

	return &Model{lines: e.lines, width: width, height: height}, nil
}

// Init satisfies tea.Model; the pager needs no startup command.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles scrolling keys, window resizes, and quit.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.scroll(-1)
		case "down", "j":
			m.scroll(1)
		case "pgup":
			m.scroll(-m.pageSize())
		case "pgdown", " ":
			m.scroll(m.pageSize())
		case "home", "g":
			m.offset = 0
		case "end", "G":
			m.offset = m.maxOffset()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampOffset()
	}

	return m, nil
}

// View renders the currently-visible window of lines.
func (m *Model) View() tea.View {
	v := tea.NewView(m.visibleText())
	v.AltScreen = true

	return v
}

// visibleText renders the lines currently in the viewport, one per line,
// with a trailing newline after each.
func (m *Model) visibleText() string {
	end := m.offset + m.pageSize()
	if end > len(m.lines) {
		end = len(m.lines)
	}

	var b strings.Builder

	for _, line := range m.lines[m.offset:end] {
		fmt.Fprintln(&b, line)
	}

	return b.String()
}

// pageSize is the number of source lines visible at once, reserving one
// row for a status line a future revision might add.
func (m *Model) pageSize() int {
	if m.height <= 1 {
		return 1
	}

	return m.height - 1
}

func (m *Model) maxOffset() int {
	max := len(m.lines) - m.pageSize()
	if max < 0 {
		return 0
	}

	return max
}

func (m *Model) scroll(delta int) {
	m.offset += delta
	m.clampOffset()
}

func (m *Model) clampOffset() {
	if m.offset < 0 {
		m.offset = 0
	}

	if max := m.maxOffset(); m.offset > max {
		m.offset = max
	}
}

// Package tui implements the interactive history browser.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.design/x/clipboard"
)

// UIMode is the browser's modal state.
type UIMode int

const (
	NormalMode UIMode = iota
	SearchMode
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)
)

type flashExpiredMsg struct{}

// BrowserModel is a scrollable, filterable list over one history
// category's entries.
type BrowserModel struct {
	Title   string
	Entries []string

	Width  int
	Height int

	Cursor int
	Offset int
	Mode   UIMode

	SearchInput string
	Filter      string
	filtered    []int // indices into Entries, nil when no filter is active

	FlashMessage string
}

// NewBrowserModel creates a browser over the given entries. Entries are
// shown in the order provided; callers pass recall order for command and
// search history.
func NewBrowserModel(title string, entries []string) BrowserModel {
	return BrowserModel{
		Title:   title,
		Entries: entries,
		Width:   80,
		Height:  24,
	}
}

// Init implements tea.Model.
func (m BrowserModel) Init() tea.Cmd {
	return nil
}

// visible returns the indices of entries matching the active filter.
func (m *BrowserModel) visible() []int {
	if m.Filter == "" {
		indices := make([]int, len(m.Entries))
		for i := range indices {
			indices[i] = i
		}
		return indices
	}
	if m.filtered == nil {
		needle := strings.ToLower(m.Filter)
		for i, e := range m.Entries {
			if strings.Contains(strings.ToLower(e), needle) {
				m.filtered = append(m.filtered, i)
			}
		}
	}
	return m.filtered
}

func (m *BrowserModel) setFilter(filter string) {
	m.Filter = filter
	m.filtered = nil
	m.Cursor = 0
	m.Offset = 0
}

// Update implements tea.Model.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil
	case flashExpiredMsg:
		m.FlashMessage = ""
		return m, nil
	case tea.KeyMsg:
		if m.Mode == SearchMode {
			return m.updateSearch(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m BrowserModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visible()

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "j", "down":
		if m.Cursor < len(visible)-1 {
			m.Cursor++
		}
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "g":
		m.Cursor = 0
	case "G":
		if len(visible) > 0 {
			m.Cursor = len(visible) - 1
		}
	case "/":
		m.Mode = SearchMode
		m.SearchInput = m.Filter
	case "y", "enter":
		if len(visible) == 0 {
			return m, nil
		}
		entry := m.Entries[visible[m.Cursor]]
		if err := clipboard.Init(); err != nil {
			return m.flash(fmt.Sprintf("Error initializing clipboard: %v", err))
		}
		clipboard.Write(clipboard.FmtText, []byte(entry))
		return m.flash(fmt.Sprintf("Copied %d bytes to clipboard", len(entry)))
	}

	m.clampScroll(len(visible))
	return m, nil
}

func (m BrowserModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.Mode = NormalMode
		m.setFilter(m.SearchInput)
	case "esc":
		m.Mode = NormalMode
		m.SearchInput = ""
	case "backspace":
		if len(m.SearchInput) > 0 {
			m.SearchInput = m.SearchInput[:len(m.SearchInput)-1]
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.SearchInput += string(msg.Runes)
		}
	}
	return m, nil
}

func (m BrowserModel) flash(text string) (tea.Model, tea.Cmd) {
	m.FlashMessage = text
	return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return flashExpiredMsg{}
	})
}

func (m *BrowserModel) listHeight() int {
	// Title and status rows.
	h := m.Height - 2
	if h < 1 {
		h = 1
	}
	return h
}

func (m *BrowserModel) clampScroll(visible int) {
	if m.Cursor >= visible {
		m.Cursor = visible - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	height := m.listHeight()
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+height {
		m.Offset = m.Cursor - height + 1
	}
}

// View implements tea.Model.
func (m BrowserModel) View() string {
	visible := m.visible()

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.Title))
	b.WriteString("\n")

	height := m.listHeight()
	for row := 0; row < height; row++ {
		i := m.Offset + row
		if i < len(visible) {
			line := truncate(m.Entries[visible[i]], m.Width-2)
			if i == m.Cursor {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(statusStyle.Render(m.statusLine(len(visible))))
	return b.String()
}

func (m *BrowserModel) statusLine(visible int) string {
	if m.Mode == SearchMode {
		return "/" + m.SearchInput
	}
	if m.FlashMessage != "" {
		return m.FlashMessage
	}
	status := fmt.Sprintf("%d/%d", m.Cursor+1, visible)
	if visible == 0 {
		status = "empty"
	}
	if m.Filter != "" {
		status += fmt.Sprintf("  filter: %q", m.Filter)
	}
	return status + dimStyle.Render("  j/k move  / filter  y copy  q quit")
}

func truncate(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if width <= 3 || len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}

// Run launches the browser in the alternate screen.
func Run(title string, entries []string) error {
	p := tea.NewProgram(NewBrowserModel(title, entries), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

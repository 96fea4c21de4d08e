package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	pkgtypes "github.com/inforexx/rbackup/pkg/types"
)

const (
	pairListHeight = 10
	pairMinWidth   = 60
	pairMaxWidth   = 120
	colWidthName   = 18
)

// PairModel represents the bubbletea model for pair selection
type PairModel struct {
	pairs        []pkgtypes.Pair
	filtered     []pkgtypes.Pair
	cursor       int
	offset       int // for scrolling
	search       string
	selected     *pkgtypes.Pair
	quitting     bool
	cancelled    bool
	termWidth    int
	contentWidth int // width inside the box (excluding borders)
	pathWidth    int // width of each of the source/target columns
}

// NewPairModel creates a new pair selector model
func NewPairModel(pairs []pkgtypes.Pair) PairModel {
	m := PairModel{
		pairs:     pairs,
		filtered:  pairs,
		termWidth: 80, // default
	}
	m.calculateWidths()
	return m
}

func (m *PairModel) calculateWidths() {
	m.contentWidth = m.termWidth - 2
	if m.contentWidth < pairMinWidth {
		m.contentWidth = pairMinWidth
	}
	if m.contentWidth > pairMaxWidth {
		m.contentWidth = pairMaxWidth
	}

	// cursor(3) + Name + spacing(2) + Source + spacing(2) + Target
	available := m.contentWidth - 3 - colWidthName - 4
	m.pathWidth = available / 2
	if m.pathWidth < 12 {
		m.pathWidth = 12
	}
}

// Init implements tea.Model
func (m PairModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model
func (m PairModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.calculateWidths()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			m.cancelled = true
			return m, tea.Quit

		case tea.KeyEnter:
			if len(m.filtered) > 0 {
				m.selected = &m.filtered[m.cursor]
				m.quitting = true
				return m, tea.Quit
			}

		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}

		case tea.KeyDown:
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				if m.cursor >= m.offset+pairListHeight {
					m.offset = m.cursor - pairListHeight + 1
				}
			}

		case tea.KeyBackspace:
			if len(m.search) > 0 {
				m.search = m.search[:len(m.search)-1]
				m.filterPairs()
			}

		case tea.KeyRunes:
			m.search += string(msg.Runes)
			m.filterPairs()
		}
	}

	return m, nil
}

// filterPairs filters the pairs based on the search query
func (m *PairModel) filterPairs() {
	if m.search == "" {
		m.filtered = m.pairs
	} else {
		query := strings.ToLower(m.search)
		m.filtered = nil
		for _, p := range m.pairs {
			if strings.Contains(strings.ToLower(p.Name), query) ||
				strings.Contains(strings.ToLower(p.Source), query) ||
				strings.Contains(strings.ToLower(p.Target), query) {
				m.filtered = append(m.filtered, p)
			}
		}
	}
	// Reset cursor if out of bounds
	if m.cursor >= len(m.filtered) {
		if len(m.filtered) > 0 {
			m.cursor = len(m.filtered) - 1
		} else {
			m.cursor = 0
		}
	}
	m.offset = 0
}

// View implements tea.Model
func (m PairModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	w := m.contentWidth

	// Top border
	sb.WriteString(BorderStyle.Render(TopLeft))
	sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w)))
	sb.WriteString(BorderStyle.Render(TopRight))
	sb.WriteString("\n")

	// Search input
	searchLine := " > " + m.search
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString(PathStyle.Render(padRight(searchLine, w)))
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")

	// Empty line after search
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString(strings.Repeat(" ", w))
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")

	// Pair list
	visibleEnd := m.offset + pairListHeight
	if visibleEnd > len(m.filtered) {
		visibleEnd = len(m.filtered)
	}

	for i := m.offset; i < visibleEnd; i++ {
		sb.WriteString(m.renderPairRow(i))
	}

	// Fill remaining lines if list is short
	for i := len(m.filtered); i < m.offset+pairListHeight; i++ {
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString(strings.Repeat(" ", w))
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString("\n")
	}

	// Bottom border
	sb.WriteString(BorderStyle.Render(BottomLeft))
	sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w)))
	sb.WriteString(BorderStyle.Render(BottomRight))
	sb.WriteString("\n")

	// Status bar
	sb.WriteString(m.renderStatusBar())

	return sb.String()
}

func (m PairModel) renderPairRow(idx int) string {
	var sb strings.Builder
	p := m.filtered[idx]
	w := m.contentWidth

	sb.WriteString(BorderStyle.Render(Vertical))

	var line strings.Builder
	plainWidth := 0

	// Cursor indicator (3 chars)
	if idx == m.cursor {
		line.WriteString(" > ")
	} else {
		line.WriteString("   ")
	}
	plainWidth += 3

	// Name column
	line.WriteString(ChangedStyle.Render(padRight(p.Name, colWidthName)))
	line.WriteString("  ")
	plainWidth += colWidthName + 2

	// Source column
	line.WriteString(PathStyle.Render(padRight(p.Source, m.pathWidth)))
	line.WriteString("  ")
	plainWidth += m.pathWidth + 2

	// Target column
	line.WriteString(PathStyle.Render(padRight(p.Target, m.pathWidth)))
	plainWidth += m.pathWidth

	// Pad to fill width
	if plainWidth < w {
		line.WriteString(strings.Repeat(" ", w-plainWidth))
	}

	sb.WriteString(line.String())
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")

	return sb.String()
}

func (m PairModel) renderStatusBar() string {
	var sb strings.Builder
	w := m.contentWidth + 2 // include border width for status bar

	countInfo := fmt.Sprintf("  %d/%d pairs", len(m.filtered), len(m.pairs))
	hintsPlain := "[Enter:select] [Esc:cancel]"

	countWidth := runewidth.StringWidth(countInfo)
	hintsWidth := runewidth.StringWidth(hintsPlain)
	padding := w - countWidth - hintsWidth

	sb.WriteString(countInfo)
	if padding > 0 {
		sb.WriteString(strings.Repeat(" ", padding))
	}
	sb.WriteString(HintStyle.Render(hintsPlain))
	sb.WriteString("\n")

	return sb.String()
}

// SelectPair displays an interactive selector for configured pairs
// and returns the selected pair
func SelectPair(pairs []pkgtypes.Pair) (*pkgtypes.Pair, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no pairs available")
	}

	m := NewPairModel(pairs)
	p := tea.NewProgram(m)

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(PairModel)
	if result.cancelled {
		return nil, fmt.Errorf("selection cancelled")
	}

	return result.selected, nil
}

package cli

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/raphaelgruber/shiftcrack/internal/cipher"
	"github.com/raphaelgruber/shiftcrack/internal/recovery"
)

const (
	defaultPickerRows = 15
	previewWidth      = 72
)

// Theme holds the color scheme for the key picker.
type Theme struct {
	Cursor   lipgloss.Color
	Shift    lipgloss.Color
	Selected lipgloss.Color
	Hint     lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Cursor:   lipgloss.Color("#5FAFD7"), // light blue
	Shift:    lipgloss.Color("#FFAF00"), // amber
	Selected: lipgloss.Color("#00D787"), // green
	Hint:     lipgloss.Color("#6C6C6C"), // dim gray
}

func (t Theme) cursorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Cursor).Bold(true)
}

func (t Theme) shiftStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Shift)
}

func (t Theme) selectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Selected).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

type pickerKeys struct {
	Up     key.Binding
	Down   key.Binding
	PgUp   key.Binding
	PgDown key.Binding
	Home   key.Binding
	End    key.Binding
	Choose key.Binding
	Quit   key.Binding
}

var defaultPickerKeys = pickerKeys{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	PgUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PgDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "page down")),
	Home:   key.NewBinding(key.WithKeys("home", "g")),
	End:    key.NewBinding(key.WithKeys("end", "G")),
	Choose: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "give up")),
}

// pickerModel is the bubbletea model for choosing a key among all
// candidate decryptions.
type pickerModel struct {
	candidates []recovery.Candidate
	keys       pickerKeys
	theme      Theme
	cursor     int
	offset     int
	rows       int
	chosen     *int
	quitting   bool
}

func newPickerModel(candidates []recovery.Candidate) pickerModel {
	return pickerModel{
		candidates: candidates,
		keys:       defaultPickerKeys,
		theme:      defaultTheme,
		rows:       defaultPickerRows,
	}
}

// Init returns no initial command.
func (m pickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and returns the updated model.
func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Header and footer take four lines.
		m.rows = max(msg.Height-4, 1)
		m.scroll()

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Choose):
			if len(m.candidates) > 0 {
				shift := m.candidates[m.cursor].Shift
				m.chosen = &shift
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.move(-1)
		case key.Matches(msg, m.keys.Down):
			m.move(1)
		case key.Matches(msg, m.keys.PgUp):
			m.move(-m.rows)
		case key.Matches(msg, m.keys.PgDown):
			m.move(m.rows)
		case key.Matches(msg, m.keys.Home):
			m.move(-len(m.candidates))
		case key.Matches(msg, m.keys.End):
			m.move(len(m.candidates))
		}
	}

	return m, nil
}

func (m *pickerModel) move(delta int) {
	if len(m.candidates) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.candidates)-1)
	m.scroll()
}

// scroll keeps the cursor inside the visible window.
func (m *pickerModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.rows {
		m.offset = m.cursor - m.rows + 1
	}
}

// View renders the candidate list.
func (m pickerModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m pickerModel) renderContent() string {
	if m.chosen != nil {
		return m.theme.selectedStyle().Render(fmt.Sprintf("✓ Shift %d chosen", *m.chosen)) + "\n"
	}
	if m.quitting {
		return m.theme.hintStyle().Render("No shift chosen.") + "\n"
	}

	var b strings.Builder
	b.WriteString("Which decryption reads correctly?\n\n")

	end := min(m.offset+m.rows, len(m.candidates))
	for i := m.offset; i < end; i++ {
		c := m.candidates[i]
		shift := m.theme.shiftStyle().Render(fmt.Sprintf("%+3d", c.Shift))
		line := fmt.Sprintf("%s  %s", shift, preview(c.Text, previewWidth))
		if i == m.cursor {
			b.WriteString(m.theme.cursorStyle().Render("› ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteByte('\n')
	}

	hint := fmt.Sprintf("%d/%d  ↑/↓ move • enter choose • q give up", m.cursor+1, len(m.candidates))
	b.WriteString(m.theme.hintStyle().Render(hint))
	b.WriteByte('\n')
	return b.String()
}

// preview flattens text to one line of at most width runes.
func preview(text string, width int) string {
	flat := strings.Join(strings.Fields(text), " ")
	runes := []rune(flat)
	if len(runes) <= width {
		return flat
	}
	return string(runes[:width-1]) + "…"
}

// tuiSelector lets the user pick a key in a full-screen list.
type tuiSelector struct{}

// Select runs the picker and returns the chosen shift, or nil when the user
// quit without choosing.
func (tuiSelector) Select(ctx context.Context, candidates []recovery.Candidate) (*int, error) {
	p := tea.NewProgram(newPickerModel(candidates), tea.WithContext(ctx))

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("picker UI error: %w", err)
	}

	m, ok := finalModel.(pickerModel)
	if !ok || m.chosen == nil {
		return nil, nil
	}
	if !cipher.ValidShift(*m.chosen) {
		return nil, nil
	}
	return m.chosen, nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/bitfield/internal/span"
	"github.com/wippyai/bitfield/record"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	bitOnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	bitOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateBrowse modelState = iota
	stateEdit
)

type interactiveModel struct {
	err      error
	rec      *record.Record
	fields   []record.Field
	input    textinput.Model
	selected int
	state    modelState
}

func newInteractiveModel(r *record.Record) *interactiveModel {
	return &interactiveModel{
		rec:    r,
		fields: r.Layout().Fields(),
		state:  stateBrowse,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.state == stateEdit {
		switch key.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			m.state = stateBrowse
			return m, nil
		case "enter":
			m.err = m.apply(m.input.Value())
			if m.err == nil {
				m.state = stateBrowse
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.fields)-1 {
			m.selected++
		}
	case "enter", "e":
		f := m.fields[m.selected]
		ti := textinput.New()
		ti.Prompt = f.Name + " = "
		ti.Placeholder = f.Spec.String()
		ti.Width = 40
		ti.Focus()
		m.input = ti
		m.err = nil
		m.state = stateEdit
	}
	return m, nil
}

func (m *interactiveModel) apply(text string) error {
	f := m.fields[m.selected]
	v, err := parseValue(f.Spec, strings.TrimSpace(text))
	if err != nil {
		return err
	}
	return m.rec.Set(f.Name, v)
}

func (m *interactiveModel) View() string {
	var b strings.Builder
	l := m.rec.Layout()

	b.WriteString(titleStyle.Render("bitview"))
	fmt.Fprintf(&b, " %s, %d bits\n\n", l.Name(), l.Bits())

	for i, f := range m.fields {
		line := fmt.Sprintf("%-12s %s @%d  %s",
			f.Name, typeStyle.Render(f.Spec.String()), f.Offset, m.value(f))
		if i == m.selected {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + fieldStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.grid())
	b.WriteString("\n")

	if m.state == stateEdit {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.state == stateEdit {
		b.WriteString(helpStyle.Render("enter apply • esc cancel"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ select • enter edit • q quit"))
	}
	return b.String()
}

func (m *interactiveModel) value(f record.Field) string {
	v, err := m.rec.Get(f.Name)
	if err != nil {
		return errorStyle.Render(err.Error())
	}
	return fmt.Sprint(v)
}

// grid draws one row per byte, bit 7 first, highlighting the selected
// field's bits.
func (m *interactiveModel) grid() string {
	f := m.fields[m.selected]
	s := span.Of(f.Offset, f.Bits())
	buf := m.rec.Bytes()

	var b strings.Builder
	for i, by := range buf {
		fmt.Fprintf(&b, "%3d  ", i)
		mask := s.Mask(i)
		for bit := 7; bit >= 0; bit-- {
			c := "0"
			if by&(1<<bit) != 0 {
				c = "1"
			}
			if mask&(1<<bit) != 0 {
				b.WriteString(bitOnStyle.Render(c))
			} else {
				b.WriteString(bitOffStyle.Render(c))
			}
		}
		fmt.Fprintf(&b, "  %02x\n", by)
	}
	return b.String()
}

func runInteractive(layout *record.Layout, hexData string) error {
	buf, err := initialBytes(layout, hexData)
	if err != nil {
		return err
	}
	r, err := layout.FromBytes(buf)
	if err != nil {
		return err
	}
	p := tea.NewProgram(newInteractiveModel(r), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

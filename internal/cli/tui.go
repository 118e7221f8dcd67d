package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ethan-kaseff/seating-chart/pkg/seating"
	"github.com/ethan-kaseff/seating-chart/pkg/seating/arrange"
)

var (
	confirmKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	confirmDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ResizeConfirmModel - Floor resize confirmation
// =============================================================================

// ResizeConfirmModel is the bubbletea model shown when an arrangement
// proposes a different floor size. It asks a single yes/no question.
type ResizeConfirmModel struct {
	Current  [2]float64
	Proposal arrange.Proposal
	Accepted bool
	Answered bool
}

// NewResizeConfirmModel creates a resize confirmation model.
func NewResizeConfirmModel(currentWidth, currentHeight float64, p arrange.Proposal) ResizeConfirmModel {
	return ResizeConfirmModel{
		Current:  [2]float64{currentWidth, currentHeight},
		Proposal: p,
	}
}

func (m ResizeConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ResizeConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "y", "Y", "enter":
			m.Accepted = true
			m.Answered = true
			return m, tea.Quit
		case "n", "N", "q", "ctrl+c", "esc":
			m.Accepted = false
			m.Answered = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ResizeConfirmModel) View() string {
	var b strings.Builder

	if m.Proposal.TooSmall {
		b.WriteString(StyleWarning.Render("The arrangement does not fit the current floor."))
	} else {
		b.WriteString(StyleTitle.Render("The floor is larger than the arrangement needs."))
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  current:  %s\n", StyleValue.Render(floorDims(m.Current[0], m.Current[1]))))
	b.WriteString(fmt.Sprintf("  proposed: %s\n", StyleHighlight.Render(floorDims(m.Proposal.Width, m.Proposal.Height))))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Resize the floor? %s/%s ",
		confirmKeyStyle.Render("y"), confirmKeyStyle.Render("n")))
	b.WriteString(confirmDimStyle.Render("(esc to keep current size)"))
	b.WriteString("\n")

	return b.String()
}

// floorDims formats a floor size in feet and pixels.
func floorDims(w, h float64) string {
	return fmt.Sprintf("%.0f x %.0f ft (%.0f x %.0f px)",
		w/seating.PixelsPerFoot, h/seating.PixelsPerFoot, w, h)
}

// confirmResize runs the resize prompt and reports the user's answer.
// Any terminal error counts as a decline.
func confirmResize(currentWidth, currentHeight float64, p arrange.Proposal) bool {
	m := NewResizeConfirmModel(currentWidth, currentHeight, p)
	prog := tea.NewProgram(m)
	finalModel, err := prog.Run()
	if err != nil {
		return false
	}
	fm, ok := finalModel.(ResizeConfirmModel)
	return ok && fm.Answered && fm.Accepted
}

// =============================================================================
// PickerModel - Interactive item selection
// =============================================================================

// PickerItem is one selectable row in a picker list.
type PickerItem struct {
	ID       string
	Title    string
	Detail   string
	Disabled bool
}

// PickerModel is the bubbletea model for selecting one item from a list.
type PickerModel struct {
	Prompt   string
	Items    []PickerItem
	Cursor   int
	Selected *PickerItem
	Height   int
	Offset   int
}

// NewPickerModel creates a picker over the given items.
func NewPickerModel(prompt string, items []PickerItem) PickerModel {
	return PickerModel{
		Prompt: prompt,
		Items:  items,
		Height: 12,
	}
}

func (m PickerModel) Init() tea.Cmd {
	return nil
}

func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			item := m.Items[m.Cursor]
			if item.Disabled {
				return m, nil
			}
			m.Selected = &item
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Prompt))
	b.WriteString("\n")
	b.WriteString(confirmDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Items) {
		end = len(m.Items)
	}

	for i := m.Offset; i < end; i++ {
		item := m.Items[i]
		cursor := "  "
		style := pickerNormalStyle
		switch {
		case item.Disabled:
			style = confirmDimStyle
		case i == m.Cursor:
			cursor = "> "
			style = pickerSelectedStyle
		}
		line := item.Title
		if item.Detail != "" {
			line += "  " + confirmDimStyle.Render(item.Detail)
		}
		b.WriteString(cursor + style.Render(line) + "\n")
	}

	return b.String()
}

var (
	pickerSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	pickerNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
)

// pick runs a picker and returns the chosen item, or false when the user
// quit without selecting.
func pick(prompt string, items []PickerItem) (PickerItem, bool) {
	prog := tea.NewProgram(NewPickerModel(prompt, items))
	finalModel, err := prog.Run()
	if err != nil {
		return PickerItem{}, false
	}
	fm, ok := finalModel.(PickerModel)
	if !ok || fm.Selected == nil {
		return PickerItem{}, false
	}
	return *fm.Selected, true
}

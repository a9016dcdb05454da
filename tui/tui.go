// Package tui is the interactive terminal front-end: a live preview
// of the diagram, an instruction box, and the edit session wiring.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"inkling/core"
	"inkling/editor"
	"inkling/export"
	"inkling/preview"
	"inkling/scene"
	"inkling/selection"
)

// mode is the TUI input mode.
type mode int

const (
	modeNormal mode = iota
	modeInstruct
	modeGenerate
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	selStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("117"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Model is the bubbletea model for the editor TUI.
type Model struct {
	session  *editor.Session
	scene    scene.Scene
	filename string

	mode     mode
	input    textarea.Model
	selected int // index into shape list; -1 selects everything
	busy     bool
	status   string
	errMsg   string
	width    int
	height   int
}

// New creates the TUI model.
func New(session *editor.Session, sc scene.Scene, filename string) Model {
	input := textarea.New()
	input.Placeholder = "Describe the change..."
	input.SetHeight(3)
	input.CharLimit = 0

	return Model{
		session:  session,
		scene:    sc,
		filename: filename,
		selected: -1,
		input:    input,
		status:   "ready",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// editDoneMsg delivers the result of an edit or generation.
type editDoneMsg struct {
	explanation string
	success     bool
	errText     string
}

func (m *Model) shapeIDs() []string {
	var ids []string
	for _, el := range core.Shapes(m.scene.GetElements()) {
		ids = append(ids, el.ID)
	}
	return ids
}

func (m *Model) selectionIDs() []string {
	ids := m.shapeIDs()
	if m.selected < 0 || m.selected >= len(ids) {
		return nil // empty selection edits the whole diagram
	}
	return ids[m.selected : m.selected+1]
}

func (m *Model) runEdit(instruction string) tea.Cmd {
	selected := m.selectionIDs()
	return func() tea.Msg {
		diff := m.session.Edit(context.Background(), instruction, selected)
		return editDoneMsg{explanation: diff.Explanation, success: diff.Success, errText: diff.Error}
	}
}

func (m *Model) runGenerate(description string) tea.Cmd {
	return func() tea.Msg {
		diff := m.session.Generate(context.Background(), description)
		return editDoneMsg{explanation: diff.Explanation, success: diff.Success, errText: diff.Error}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(msg.Width - 4)
		return m, nil

	case editDoneMsg:
		m.busy = false
		if msg.success {
			m.status = msg.explanation
			m.errMsg = ""
		} else {
			m.errMsg = msg.errText
		}
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeNormal {
			return m.updateNormal(msg)
		}
		return m.updateInput(msg)
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "i":
		if !m.busy {
			m.mode = modeInstruct
			m.input.Reset()
			m.input.Focus()
		}

	case "g":
		if !m.busy {
			m.mode = modeGenerate
			m.input.Reset()
			m.input.Focus()
		}

	case "tab":
		ids := m.shapeIDs()
		if len(ids) > 0 {
			m.selected++
			if m.selected >= len(ids) {
				m.selected = -1
			}
		}

	case "u":
		if m.session.Undo() {
			m.status = "undid last edit"
			m.errMsg = ""
		} else {
			m.status = "nothing to undo"
		}

	case "c":
		exporter := export.NewJSONExporter()
		if text, err := exporter.Export(m.scene.GetElements()); err == nil {
			if err := clipboard.WriteAll(text); err != nil {
				m.errMsg = fmt.Sprintf("clipboard: %v", err)
			} else {
				m.status = "copied diagram JSON to clipboard"
			}
		}

	case "s":
		if m.filename == "" {
			m.errMsg = "no filename; start with a file argument to save"
			break
		}
		if err := scene.Save(m.filename, m.scene.GetElements()); err != nil {
			m.errMsg = err.Error()
		} else {
			m.status = "saved " + m.filename
		}
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.input.Blur()
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		m.busy = true
		m.status = "thinking..."
		m.errMsg = ""
		submitted := m.mode
		m.mode = modeNormal
		m.input.Blur()
		if submitted == modeGenerate {
			return m, m.runGenerate(text)
		}
		return m, m.runEdit(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder

	title := "inkling"
	if m.filename != "" {
		title += " — " + m.filename
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")

	if canvas := preview.Render(m.scene.GetElements()); canvas != "" {
		sb.WriteString(canvas)
		sb.WriteString("\n")
	} else {
		sb.WriteString(helpStyle.Render("(empty diagram — press g to generate one)"))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(selStyle.Render("selection: " + m.selectionSummary()))
	sb.WriteString("\n")

	if m.errMsg != "" {
		sb.WriteString(errorStyle.Render(m.errMsg))
	} else {
		sb.WriteString(statusStyle.Render(m.status))
	}
	sb.WriteString("\n")

	switch m.mode {
	case modeInstruct:
		sb.WriteString("\nInstruction (enter to send, esc to cancel):\n")
		sb.WriteString(m.input.View())
	case modeGenerate:
		sb.WriteString("\nDescribe the diagram (enter to send, esc to cancel):\n")
		sb.WriteString(m.input.View())
	default:
		sb.WriteString(helpStyle.Render("\ni instruct · g generate · tab select · u undo · c copy · s save · q quit"))
	}
	return sb.String()
}

func (m Model) selectionSummary() string {
	ids := m.selectionIDs()
	if ids == nil {
		return "whole diagram"
	}
	ctx := selection.Build(ids, m.scene.GetElements())
	return ctx.Description
}

// Run starts the TUI event loop.
func Run(session *editor.Session, sc scene.Scene, filename string) error {
	p := tea.NewProgram(New(session, sc, filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

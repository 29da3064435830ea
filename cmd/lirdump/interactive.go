package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lumenlang/lumen-ir/index"
	"github.com/lumenlang/lumen-ir/lir"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	offsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browseModel struct {
	err      error
	tbl      *index.Table
	filename string
	filter   textinput.Model
	visible  []lir.IndexEntry
	detail   string
	selected int
	state    browseState
}

type browseState int

const (
	stateBrowse browseState = iota
	stateDetail
)

func newBrowseModel(filename string) *browseModel {
	filter := textinput.New()
	filter.Placeholder = "filter"
	filter.Prompt = "/ "
	filter.Width = 40

	return &browseModel{
		filename: filename,
		filter:   filter,
		state:    stateBrowse,
	}
}

type loadedMsg struct {
	err error
	tbl *index.Table
}

func (m *browseModel) Init() tea.Cmd {
	return m.loadStream
}

func (m *browseModel) loadStream() tea.Msg {
	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	tbl, err := index.Read(data)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{tbl: tbl}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state == stateBrowse && !m.filter.Focused() {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateBrowse && !m.filter.Focused() && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateBrowse && !m.filter.Focused() && m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "/":
			if m.state == stateBrowse && !m.filter.Focused() {
				m.filter.Focus()
				return m, textinput.Blink
			}

		case "enter":
			switch m.state {
			case stateBrowse:
				if m.filter.Focused() {
					m.filter.Blur()
				} else if m.selected < len(m.visible) {
					m.openDetail(m.visible[m.selected])
				}
			case stateDetail:
				m.state = stateBrowse
				m.detail = ""
			}

		case "esc":
			switch m.state {
			case stateBrowse:
				if m.filter.Focused() {
					m.filter.Blur()
					m.filter.SetValue("")
					m.applyFilter()
				}
			case stateDetail:
				m.state = stateBrowse
				m.detail = ""
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.tbl = msg.tbl
		m.applyFilter()
	}

	if m.state == stateBrowse && m.filter.Focused() {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.applyFilter()
		return m, cmd
	}

	return m, nil
}

func (m *browseModel) applyFilter() {
	if m.tbl == nil {
		return
	}
	needle := strings.ToLower(m.filter.Value())
	m.visible = m.visible[:0]
	for _, e := range m.tbl.Entries() {
		if needle == "" || strings.Contains(strings.ToLower(e.Name.String()), needle) {
			m.visible = append(m.visible, e)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = 0
	}
}

func (m *browseModel) openDetail(e lir.IndexEntry) {
	defn, err := m.tbl.DecodeAt(e.Offset)
	if err != nil {
		m.detail = errorStyle.Render(fmt.Sprintf("Error: %v", err))
	} else {
		m.detail = bodyStyle.Render(renderDefn(defn))
	}
	m.state = stateDetail
}

func (m *browseModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.tbl == nil {
		return "Loading stream..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("IR Browser"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	fmt.Fprintf(&b, " (%d definitions)\n\n", m.tbl.Len())

	switch m.state {
	case stateBrowse:
		if m.filter.Focused() || m.filter.Value() != "" {
			b.WriteString(m.filter.View())
			b.WriteString("\n\n")
		}
		for i, e := range m.visible {
			line := offsetStyle.Render(fmt.Sprintf("%8d  ", e.Offset)) + nameStyle.Render(e.Name.String())
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + e.Name.String()))
				b.WriteString(offsetStyle.Render(fmt.Sprintf("  @%d", e.Offset)))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter decode • / filter • q quit"))

	case stateDetail:
		b.WriteString(m.detail)
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter/esc back"))
	}

	return b.String()
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newBrowseModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Package tui provides interactive terminal UI components.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Member09/scaling-laws/internal/sources"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// SelectionAction represents the user's action in the selection UI.
type SelectionAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone SelectionAction = iota
	// ActionSelected indicates the user selected a source.
	ActionSelected
	// ActionStopped indicates the user quit without selecting.
	ActionStopped
)

// SelectionResult holds the result of a TUI selection.
type SelectionResult struct {
	Action    SelectionAction
	Selection *sources.Spec
}

type sourceItem struct {
	sources.Spec
}

func (i sourceItem) Title() string {
	return strings.ToUpper(i.Name)
}

func (i sourceItem) FilterValue() string {
	return i.Name
}

func (i sourceItem) Description() string {
	files := make([]string, len(i.Outputs))
	for n, out := range i.Outputs {
		files[n] = out.File
	}
	return strings.Join(files, ", ")
}

type itemStyles struct {
	normal      lipgloss.Style
	selected    lipgloss.Style
	nameStyle   lipgloss.Style
	detailStyle lipgloss.Style
}

func newItemStyles() itemStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return itemStyles{
		normal:   container,
		selected: selected,
		nameStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		detailStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
	}
}

type sourceDelegate struct {
	styles itemStyles
}

func newDelegate() sourceDelegate {
	return sourceDelegate{styles: newItemStyles()}
}

func (d sourceDelegate) Height() int                         { return 4 }
func (d sourceDelegate) Spacing() int                        { return 1 }
func (d sourceDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d sourceDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	src, ok := item.(sourceItem)
	if !ok {
		return
	}

	nameLine := d.styles.nameStyle.Render(src.Title())
	datasetLine := d.styles.detailStyle.Render(formatCandidates(src.Spec, m.Width()-4))
	outputLine := d.styles.detailStyle.Render(truncate(src.Description(), m.Width()-4))

	content := lipgloss.JoinVertical(lipgloss.Left, nameLine, datasetLine, outputLine)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

type model struct {
	list   list.Model
	result SelectionResult
}

func newModel(items []sourceItem) *model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	delegate := newDelegate()
	l := list.New(listItems, delegate, defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &model{
		list: l,
		result: SelectionResult{
			Action: ActionNone,
		},
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(sourceItem); ok {
				spec := selected.Spec
				m.result = SelectionResult{
					Action:    ActionSelected,
					Selection: &spec,
				}
				return m, tea.Quit
			}
		case "ctrl+c", "q", "esc":
			m.result = SelectionResult{Action: ActionStopped}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	header := headerStyle.Render("Select a source to collect")
	listView := m.list.View()
	help := helpStyle.Render("Up/Down navigate | Enter collect | q quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, listView, help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// SelectSource presents an interactive picker over the available sources.
func SelectSource(specs []sources.Spec) (SelectionResult, error) {
	if len(specs) == 0 {
		return SelectionResult{Action: ActionStopped}, nil
	}

	items := make([]sourceItem, len(specs))
	for i, spec := range specs {
		items[i] = sourceItem{Spec: spec}
	}
	m := newModel(items)
	finalModel, err := runProgram(m)
	if err != nil {
		return SelectionResult{}, err
	}

	if typed, ok := finalModel.(*model); ok {
		return typed.result, nil
	}

	return SelectionResult{}, fmt.Errorf("unexpected program result")
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 || len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}

// formatCandidates lists the provider identifiers in preference order
func formatCandidates(spec sources.Spec, availableWidth int) string {
	parts := make([]string, len(spec.Candidates))
	for i, cand := range spec.Candidates {
		if cand.Config != "" {
			parts[i] = cand.Dataset + "/" + cand.Config
		} else {
			parts[i] = cand.Dataset
		}
	}

	line := strings.Join(parts, " | ")
	if availableWidth > 0 && len(line) > availableWidth {
		line = truncate(line, availableWidth)
	}

	return line
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"orthoconserve/internal/export"
)

// Colors for modern design
var (
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	secondaryColor = lipgloss.Color("#10B981") // Green
	accentColor    = lipgloss.Color("#F59E0B") // Amber
	surfaceColor   = lipgloss.Color("#1F2937") // Dark gray
	textColor      = lipgloss.Color("#F3F4F6") // Light gray
	mutedColor     = lipgloss.Color("#9CA3AF") // Muted gray
	borderColor    = lipgloss.Color("#374151") // Border gray
)

// Styles
var (
	containerStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Align(lipgloss.Center)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(surfaceColor).
			Padding(0, 1)

	sequenceStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(lipgloss.Color("#111827")).
			Padding(1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor)

	// coverage styles: single-copy groups vs groups carrying paralogs
	singleCopyStyle = lipgloss.NewStyle().Foreground(secondaryColor).Bold(true)
	paralogStyle    = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
)

type listItem struct {
	summary export.Summary
}

func (i listItem) FilterValue() string {
	return i.summary.OrthogroupID
}

func (i listItem) Title() string {
	return i.summary.OrthogroupID
}

func (i listItem) Description() string {
	// Metadata line shown below the title in the selector list
	style := singleCopyStyle
	if i.summary.MemberCount > len(i.summary.Species) {
		style = paralogStyle
	}
	coverage := style.Render(fmt.Sprintf("%d species", len(i.summary.Species)))
	return fmt.Sprintf("Members: %d    Coverage: %s", i.summary.MemberCount, coverage)
}

type mode int

const (
	modeMembers mode = iota
	modeSpecies
	modeHeaders
)

func (m mode) String() string {
	switch m {
	case modeMembers:
		return "Members"
	case modeSpecies:
		return "Species"
	case modeHeaders:
		return "FASTA headers"
	default:
		return "Unknown"
	}
}

type model struct {
	list          list.Model
	summaries     []export.Summary
	currentMode   mode
	showHelp      bool
	width         int
	height        int
	totalGroups   int
	selectedIndex int
}

func initialModel(summaries []export.Summary) model {
	items := make([]list.Item, len(summaries))
	for i, s := range summaries {
		items[i] = listItem{summary: s}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Conserved Orthogroups"
	l.SetShowStatusBar(false)
	l.SetShowPagination(true)
	l.SetFilteringEnabled(true)

	return model{
		list:        l,
		summaries:   summaries,
		currentMode: modeMembers,
		totalGroups: len(summaries),
	}
}

// cycleMode advances members -> species -> headers -> members.
func (m model) cycleMode() model {
	m.currentMode = (m.currentMode + 1) % 3
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// left panel takes 1/3 of the width
		m.list.SetWidth(msg.Width / 3)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "h":
			m.showHelp = !m.showHelp
			return m, nil

		case "tab":
			return m.cycleMode(), nil

		case "1":
			m.currentMode = modeMembers
			return m, nil

		case "2":
			m.currentMode = modeSpecies
			return m, nil

		case "3":
			m.currentMode = modeHeaders
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.selectedIndex = m.list.Index()
	return m, cmd
}

func (m model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpModal()
	}

	main := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderLeftPanel(),
		m.renderRightPanel(),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		main,
		m.renderStatusBar(),
	)
}

func (m model) renderLeftPanel() string {
	return containerStyle.
		Width(m.width/3 - 2).
		Height(m.height - 4).
		Render(m.list.View())
}

func (m model) renderRightPanel() string {
	rightWidth := (m.width * 2) / 3

	if len(m.summaries) == 0 {
		return containerStyle.
			Width(rightWidth - 2).
			Height(m.height - 4).
			Render("No conserved orthogroups in summary")
	}

	selectedItem := m.list.SelectedItem()
	if selectedItem == nil {
		return containerStyle.
			Width(rightWidth - 2).
			Height(m.height - 4).
			Render("No orthogroup selected")
	}

	s := selectedItem.(listItem).summary

	header := titleStyle.Render(fmt.Sprintf("%s - %d members across %d species",
		s.OrthogroupID, s.MemberCount, len(s.Species)))

	label := lipgloss.NewStyle().Foreground(mutedColor)
	var copyNote string
	if s.MemberCount > len(s.Species) {
		copyNote = paralogStyle.Render("contains paralogs")
	} else {
		copyNote = singleCopyStyle.Render("single copy per species")
	}
	metaStr := label.Render("Copy number: ") + copyNote

	var content string
	switch m.currentMode {
	case modeMembers:
		content = m.renderBlock(memberLines(s), "Members")
	case modeSpecies:
		content = m.renderBlock(s.Species, "Species represented")
	case modeHeaders:
		content = m.renderBlock(headerLines(s), "Export FASTA headers")
	}

	panelContent := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		metaStr,
		"",
		content,
	)

	return containerStyle.
		Width(rightWidth - 2).
		Height(m.height - 4).
		Render(panelContent)
}

// memberLines renders one "species  protein  length" line per member.
func memberLines(s export.Summary) []string {
	lines := make([]string, 0, len(s.Members))
	for _, mb := range s.Members {
		lines = append(lines, fmt.Sprintf("%-28s %-20s %4d aa", mb.Species, mb.ProteinID, mb.Length))
	}
	return lines
}

func headerLines(s export.Summary) []string {
	lines := make([]string, 0, len(s.Members))
	for _, mb := range s.Members {
		lines = append(lines, ">"+mb.Header)
	}
	return lines
}

func (m model) renderBlock(lines []string, title string) string {
	if len(lines) == 0 {
		return lipgloss.NewStyle().
			Foreground(mutedColor).
			Render(fmt.Sprintf("No %s available", strings.ToLower(title)))
	}

	titleStr := lipgloss.NewStyle().
		Foreground(accentColor).
		Bold(true).
		Render(title + ":")

	body := sequenceStyle.
		Width(m.width*2/3 - 6).
		Render(strings.Join(lines, "\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStr,
		"",
		body,
	)
}

func (m model) renderStatusBar() string {
	leftInfo := fmt.Sprintf("%d/%d orthogroups", m.selectedIndex+1, m.totalGroups)
	centerInfo := fmt.Sprintf("Mode: %s", m.currentMode.String())
	rightInfo := "Press 'h' for help, 'q' to quit"

	totalUsed := len(leftInfo) + len(centerInfo) + len(rightInfo)
	spacing := m.width - totalUsed - 6

	var statusContent string
	if spacing > 0 {
		leftSpacing := spacing / 2
		rightSpacing := spacing - leftSpacing
		statusContent = leftInfo +
			strings.Repeat(" ", leftSpacing) +
			centerInfo +
			strings.Repeat(" ", rightSpacing) +
			rightInfo
	} else {
		// fallback for narrow terminals
		statusContent = fmt.Sprintf("%s | %s", leftInfo, centerInfo)
	}

	return statusBarStyle.
		Width(m.width).
		Render(statusContent)
}

func (m model) renderHelpModal() string {
	helpContent := `Conserved Orthogroups Browser - Help

Navigation:
  up/down, j/k  Navigate list
  /             Filter orthogroups
  Enter         Select orthogroup

View Modes:
  1             Show members
  2             Show species represented
  3             Show export FASTA headers
  Tab           Cycle modes

General:
  h             Toggle this help
  q, Ctrl+C     Quit application

Current Mode: ` + m.currentMode.String() + `
Total Orthogroups: ` + fmt.Sprintf("%d", m.totalGroups) + `
`

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(primaryColor).
		Padding(1, 2).
		Background(surfaceColor).
		Foreground(textColor).
		Width(60).
		Align(lipgloss.Center)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(helpContent),
	)
}

func main() {
	summaryPath := flag.String("summary", "output/conserved_summary.json", "path to the summary JSON written by the pipeline")
	flag.Parse()

	summaries, err := export.ReadSummary(*summaryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load summary: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(initialModel(summaries), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v", err)
		os.Exit(1)
	}
}

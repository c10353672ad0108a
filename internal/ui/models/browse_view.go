package models

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fenilsonani/relink/internal/scanner"
	"github.com/fenilsonani/relink/internal/ui/styles"
	"github.com/fenilsonani/relink/pkg/utils"
)

// BrowseModel is a read-only browser over the duplicate groups a scan
// produced: a group list on the left, the selected group's members on the
// right. It never mutates the filesystem.
type BrowseModel struct {
	groups   []scanner.DuplicateGroup
	cursor   int
	detail   viewport.Model
	width    int
	height   int
	ready    bool
}

// NewBrowseModel creates a browse model over the given groups
func NewBrowseModel(groups []scanner.DuplicateGroup) *BrowseModel {
	return &BrowseModel{
		groups: groups,
	}
}

// Init initializes the browse view
func (m *BrowseModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detail = viewport.New(msg.Width/2, msg.Height-6)
			m.ready = true
		} else {
			m.detail.Width = msg.Width / 2
			m.detail.Height = msg.Height - 6
		}
		m.refreshDetail()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.refreshDetail()
			}
		case "down", "j":
			if m.cursor < len(m.groups)-1 {
				m.cursor++
				m.refreshDetail()
			}
		case "pgup":
			m.detail.HalfViewUp()
		case "pgdown":
			m.detail.HalfViewDown()
		}
	}

	return m, nil
}

// refreshDetail rebuilds the right-hand pane for the selected group
func (m *BrowseModel) refreshDetail() {
	if !m.ready || len(m.groups) == 0 {
		return
	}

	g := m.groups[m.cursor]
	var b strings.Builder

	fmt.Fprintf(&b, "fingerprint %s\n\n", g.Hash[:16])
	b.WriteString(styles.MasterStyle.Render("keep  "+g.Master) + "\n")
	for _, dup := range g.Duplicates {
		b.WriteString(styles.FilePathStyle.Render("dup   "+dup) + "\n")
	}
	fmt.Fprintf(&b, "\n%s per file, %s recoverable\n",
		utils.FormatBytes(g.Size), utils.FormatBytes(g.WastedBytes()))

	m.detail.SetContent(b.String())
}

// View renders the browse view
func (m *BrowseModel) View() string {
	if len(m.groups) == 0 {
		return styles.TitleStyle.Render("relink browse") + "\n\nNo duplicate groups found.\n"
	}
	if !m.ready {
		return "loading..."
	}

	var list strings.Builder
	visible := m.height - 6
	if visible < 1 {
		visible = 1
	}
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}

	for i := start; i < len(m.groups) && i < start+visible; i++ {
		g := m.groups[i]
		line := fmt.Sprintf("%d× %s  %s",
			len(g.Duplicates)+1,
			utils.FormatBytes(g.Size),
			truncate(g.Master, m.width/2-16))
		if i == m.cursor {
			line = styles.SelectedStyle.Render("› " + line)
		} else {
			line = "  " + line
		}
		list.WriteString(line + "\n")
	}

	title := styles.TitleStyle.Render(fmt.Sprintf("relink browse (%d groups)", len(m.groups)))
	help := styles.HelpStyle.Render("↑/↓ select group · pgup/pgdn scroll · q quit")

	panes := lipgloss.JoinHorizontal(lipgloss.Top, list.String(), styles.PanelStyle.Render(m.detail.View()))
	return title + "\n" + panes + "\n" + help
}

func truncate(s string, max int) string {
	if max < 4 || len(s) <= max {
		return s
	}
	return "..." + s[len(s)-(max-3):]
}

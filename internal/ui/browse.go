package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fenilsonani/relink/internal/scanner"
	"github.com/fenilsonani/relink/internal/ui/models"
)

// RunBrowse starts the read-only duplicate group browser
func RunBrowse(groups []scanner.DuplicateGroup) error {
	m := models.NewBrowseModel(groups)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running browse mode: %w", err)
	}

	return nil
}

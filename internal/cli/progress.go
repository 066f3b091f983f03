package cli

import (
	"fmt"
	"path/filepath"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/raphaelgruber/ctxkeep-go/internal/adapter"
)

// Theme holds the color scheme for styled CLI output.
type Theme struct {
	Status  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

// Style functions for dynamic theming
func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) completedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// fileDoneMsg reports one finished file from the import workers.
type fileDoneMsg struct {
	done  int
	total int
	file  string
}

// importDoneMsg carries the final result.
type importDoneMsg struct {
	result *adapter.ImportResult
	err    error
}

// importProgressModel is the bubbletea model for a running import.
type importProgressModel struct {
	progress progress.Model
	theme    Theme

	done     int
	total    int
	current  string
	finished bool
	quitting bool
	result   *adapter.ImportResult
	err      error
}

func newImportProgressModel() importProgressModel {
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)
	return importProgressModel{
		progress: prog,
		theme:    defaultTheme,
	}
}

// Init returns the initial command.
func (m importProgressModel) Init() tea.Cmd {
	return m.progress.Init()
}

// Update handles messages and returns the updated model.
func (m importProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case fileDoneMsg:
		m.done = msg.done
		m.total = msg.total
		m.current = msg.file
		return m, nil

	case importDoneMsg:
		m.finished = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit

	case progress.FrameMsg:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress display.
func (m importProgressModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m importProgressModel) renderContent() string {
	if m.finished {
		return m.finalView()
	}

	if m.total == 0 {
		return "Scanning files...\n"
	}

	pct := float64(m.done) / float64(m.total)
	status := m.theme.statusStyle().Render("[importing]")
	counts := fmt.Sprintf("%d/%d files", m.done, m.total)
	hint := m.theme.hintStyle().Render(filepath.Base(m.current))

	return fmt.Sprintf("%s %s %s\n%s\n", status, m.progress.ViewAs(pct), counts, hint)
}

// finalView renders the completion message.
func (m importProgressModel) finalView() string {
	if m.err != nil {
		return m.theme.errorStyle().Render(fmt.Sprintf("\n✗ Import failed: %s\n", m.err))
	}
	if m.result == nil {
		return m.theme.completedStyle().Render("✓ Completed\n")
	}

	r := m.result
	output := m.theme.completedStyle().Render("✓ Completed") + "\n\n"
	output += fmt.Sprintf("  Files processed: %d\n", r.FilesProcessed)
	output += fmt.Sprintf("  Entries added:   %d\n", r.EntriesAdded)
	if len(r.Errors) > 0 {
		output += m.theme.errorStyle().Render(fmt.Sprintf("\nWarnings (%d):\n", len(r.Errors)))
		for _, e := range r.Errors {
			output += fmt.Sprintf("  • %s\n", e)
		}
	}
	return output
}

// RunImportProgress drives run under an interactive progress UI. The run
// callback receives a progress function to forward to the import workers and
// executes on its own goroutine.
func RunImportProgress(run func(report func(done, total int, file string)) (*adapter.ImportResult, error)) (*adapter.ImportResult, error) {
	model := newImportProgressModel()
	p := tea.NewProgram(model)

	go func() {
		result, err := run(func(done, total int, file string) {
			p.Send(fileDoneMsg{done: done, total: total, file: file})
		})
		p.Send(importDoneMsg{result: result, err: err})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress UI error: %w", err)
	}

	m, ok := finalModel.(importProgressModel)
	if !ok {
		return nil, nil
	}
	if m.quitting {
		return nil, fmt.Errorf("import cancelled")
	}
	return m.result, m.err
}

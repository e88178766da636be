package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowgrid/pkg/media"
	"github.com/matzehuels/flowgrid/pkg/pipeline"
	"github.com/matzehuels/flowgrid/pkg/wall"
)

// previewCommand creates the preview command for interactive terminal preview.
func (c *CLI) previewCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "preview [gallery.toml]",
		Short: "Preview a layout in the terminal",
		Long: `Preview a layout in the terminal.

The preview renders each element as a colored block, scaled to the
terminal window. Resizing the window reflows the layout: the optimizer
reruns against the new frame and the pyramid of rows adapts.

Keys: q to quit, f to toggle the fallback warning detail.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			m := newPreviewModel(runner, args[0])
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable probe caching")
	return cmd
}

// Block palette, cycled per element.
var previewColors = []lipgloss.Color{
	lipgloss.Color("31"), lipgloss.Color("67"), lipgloss.Color("97"),
	lipgloss.Color("132"), lipgloss.Color("167"), lipgloss.Color("173"),
	lipgloss.Color("108"), lipgloss.Color("66"),
}

// previewModel is the bubbletea model for the layout preview.
type previewModel struct {
	runner   *pipeline.Runner
	manifest string

	width    int
	height   int
	result   *pipeline.Result
	err      error
	showInfo bool
}

func newPreviewModel(runner *pipeline.Runner, manifest string) previewModel {
	return previewModel{
		runner:   runner,
		manifest: manifest,
		showInfo: true,
	}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "f":
			m.showInfo = !m.showInfo
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.reflow()
	}
	return m, nil
}

// reflow reruns the pipeline against the current terminal frame.
// Terminal cells are roughly twice as tall as wide, so the frame height
// is doubled to keep aspect ratios plausible.
func (m *previewModel) reflow() {
	frameW := float64(m.width)
	frameH := float64(m.height-3) * 2
	if frameW <= 0 || frameH <= 0 {
		return
	}

	// Logging would garble the alt screen, so the reflow runs silent.
	opts := pipeline.Options{
		Manifest: m.manifest,
		Width:    frameW,
		Height:   frameH,
		Formats:  []string{pipeline.FormatJSON},
		Logger:   log.New(io.Discard),
	}
	opts.SetSpacing(1)

	result, err := m.runner.Execute(context.Background(), opts)
	m.result, m.err = result, err
}

func (m previewModel) View() string {
	if m.err != nil {
		return "\n " + styleIconError.Render(iconError) + " " + m.err.Error() + "\n\n " + StyleDim.Render("q to quit")
	}
	if m.result == nil {
		return "\n " + StyleDim.Render("waiting for window size...")
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderWall())
	return b.String()
}

func (m previewModel) renderHeader() string {
	name := filepath.Base(m.manifest)
	header := StyleTitle.Render(name) + StyleDim.Render(fmt.Sprintf(
		"  %d elements · %d rows · height %.0f",
		m.result.Stats.ElementCount, m.result.Stats.RowCount, m.result.Height))

	if m.result.Fallback && m.showInfo {
		header += "  " + StyleWarning.Render("(fallback: nothing fits)")
	}
	return header
}

// renderWall draws each row of blocks with lipgloss, stacking rows
// vertically and centering the whole group.
func (m previewModel) renderWall() string {
	blocks := m.result.Wall.Blocks()
	if len(blocks) == 0 {
		return StyleDim.Render(" empty layout")
	}

	cellH := int(m.result.Height / 2)
	if cellH < 1 {
		cellH = 1
	}

	color := 0
	rows := make([]string, 0, len(m.result.Wall.Rows))
	for _, row := range m.result.Wall.Rows {
		cells := make([]string, 0, len(row)*2)
		for i, blk := range row {
			if i > 0 {
				cells = append(cells, " ")
			}
			cells = append(cells, m.renderBlock(blk, cellH, previewColors[color%len(previewColors)]))
			color++
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	grid := lipgloss.JoinVertical(lipgloss.Center, rows...)
	return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, grid)
}

func (m previewModel) renderBlock(blk wall.Block, cellH int, color lipgloss.Color) string {
	w := int(blk.Width())
	if w < 1 {
		w = 1
	}

	label := ""
	if it, ok := blk.Element.(*media.Item); ok {
		label = filepath.Base(it.Source())
		if len(label) > w {
			label = label[:w]
		}
	}

	return lipgloss.NewStyle().
		Width(w).
		Height(cellH).
		Align(lipgloss.Center, lipgloss.Center).
		Background(color).
		Foreground(colorWhite).
		Render(label)
}

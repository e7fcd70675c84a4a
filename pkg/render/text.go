package render

import (
	"data-visualizer/internal/domain"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cockroachdb/errors"
)

// cell size in pixels when mapping the configured dimensions onto a terminal grid
const (
	pixelsPerColumn = 10
	pixelsPerRow    = 20
	maxColumns      = 120
	maxRows         = 40
)

// TextStyles are the lipgloss styles of the terminal preview.
type TextStyles struct {
	Title  lipgloss.Style
	Frame  lipgloss.Style
	Marker lipgloss.Style
	Axis   lipgloss.Style
}

func DefaultTextStyles() TextStyles {
	return TextStyles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("243")),
		Marker: lipgloss.NewStyle().
			Foreground(lipgloss.Color("75")),
		Axis: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
	}
}

// TextRenderer draws a character grid preview for terminals.
type TextRenderer struct {
	styles TextStyles
}

func NewTextRenderer(styles TextStyles) *TextRenderer {
	return &TextRenderer{styles: styles}
}

func markerFor(t domain.VisualizationType) rune {
	switch t {
	case domain.BarChart:
		return '█'
	case domain.ScatterPlot:
		return 'o'
	default:
		return '•'
	}
}

func clampIndex(i, n int) int {
	return min(n-1, max(0, i))
}

func (r *TextRenderer) Render(w io.Writer, vis *domain.Visualization) error {
	opts := vis.Options()
	if opts.Width() <= 0 || opts.Height() <= 0 {
		return errors.Wrapf(domain.ErrInvalidDimensions, "%dx%d", opts.Width(), opts.Height())
	}

	cols := min(maxColumns, max(10, opts.Width()/pixelsPerColumn))
	rows := min(maxRows, max(5, opts.Height()/pixelsPerRow))

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}

	bounds := vis.Bounds()
	if !bounds.Empty {
		xs := linearScale{domain: xExtent(bounds), rng: [2]int{0, cols - 1}}
		ys := linearScale{domain: valueExtent(bounds, YAxisTight, vis.Type()), rng: [2]int{rows - 1, 0}}
		marker := markerFor(vis.Type())

		for _, p := range vis.Points() {
			col := clampIndex(xs.scale(p.X), cols)
			row := clampIndex(ys.scale(p.Y), rows)
			if vis.Type() == domain.BarChart {
				base := clampIndex(ys.scale(ys.clamp(0)), rows)
				lo, hi := min(row, base), max(row, base)
				for y := lo; y <= hi; y++ {
					grid[y][col] = marker
				}
				continue
			}
			grid[row][col] = marker
		}
	}

	lines := make([]string, rows)
	for i, line := range grid {
		lines[i] = r.styles.Marker.Render(string(line))
	}
	body := strings.Join(lines, "\n")

	caption := vis.Type().String()
	if !bounds.Empty {
		caption += " x[" + formatValue(bounds.MinX, 3) + ", " + formatValue(bounds.MaxX, 3) +
			"] y[" + formatValue(bounds.MinY, 3) + ", " + formatValue(bounds.MaxY, 3) + "]"
	} else {
		caption += " (no data)"
	}

	parts := []string{}
	if title := opts.Title(); title != "" {
		parts = append(parts, r.styles.Title.Render(title))
	}
	parts = append(parts, r.styles.Frame.Render(body), r.styles.Axis.Render(caption))

	_, err := io.WriteString(w, lipgloss.JoinVertical(lipgloss.Left, parts...)+"\n")
	return err
}

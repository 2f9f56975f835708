package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/doeshing/ghask/internal/domain"
	"github.com/doeshing/ghask/internal/ports"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	infoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	narrationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
)

// maxCellWidth keeps single wide values (URLs, long descriptions) from
// blowing up the whole column.
const maxCellWidth = 60

// ConsoleRenderer prints tables and status lines to the terminal. With the
// csv output format each table is additionally written to a file under
// exports/.
type ConsoleRenderer struct {
	out       io.Writer
	format    string
	exportDir string
}

// NewRenderer builds a renderer writing to out. format is one of the
// domain.OutputFormat values.
func NewRenderer(out io.Writer, format string) *ConsoleRenderer {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleRenderer{out: out, format: format, exportDir: "exports"}
}

// Table renders a table to the console, exporting it to CSV first when that
// output format is configured.
func (r *ConsoleRenderer) Table(table domain.Table) {
	if r.format == domain.OutputFormatCSV {
		if path, err := r.exportCSV(table); err != nil {
			r.Warn("CSV export failed: " + err.Error())
		} else {
			r.Info("Exported to " + path)
		}
	}

	fmt.Fprintln(r.out, titleStyle.Render(table.Title))

	widths := columnWidths(table)
	fmt.Fprintln(r.out, headerStyle.Render(formatRow(table.Columns, widths)))
	fmt.Fprintln(r.out, separator(widths))
	for _, row := range table.Rows {
		fmt.Fprintln(r.out, formatRow(row, widths))
	}
	fmt.Fprintln(r.out)
}

// Info prints an informational status line.
func (r *ConsoleRenderer) Info(msg string) {
	fmt.Fprintln(r.out, infoStyle.Render(msg))
}

// Warn prints a warning line.
func (r *ConsoleRenderer) Warn(msg string) {
	fmt.Fprintln(r.out, warnStyle.Render("Warning: "+msg))
}

// Error prints an error line.
func (r *ConsoleRenderer) Error(msg string) {
	fmt.Fprintln(r.out, errorStyle.Render("Error: "+msg))
}

// Narration prints the generated summary.
func (r *ConsoleRenderer) Narration(msg string) {
	fmt.Fprintln(r.out, narrationStyle.Render("Response: "+msg))
}

func (r *ConsoleRenderer) exportCSV(table domain.Table) (string, error) {
	if err := os.MkdirAll(r.exportDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s-%s.csv", slugify(table.Title), time.Now().Format("20060102-150405"))
	path := filepath.Join(r.exportDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(table.Columns); err != nil {
		return "", err
	}
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return path, w.Error()
}

func columnWidths(table domain.Table) []int {
	widths := make([]int, len(table.Columns))
	for i, col := range table.Columns {
		widths[i] = len(col)
	}
	for _, row := range table.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := len(clip(cell)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = clip(cells[i])
		}
		parts[i] = cell + strings.Repeat(" ", widths[i]-len(cell))
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

func separator(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("-", w)
	}
	return strings.Join(parts, "  ")
}

func clip(cell string) string {
	cell = strings.ReplaceAll(cell, "\n", " ")
	if len(cell) > maxCellWidth {
		return cell[:maxCellWidth-3] + "..."
	}
	return cell
}

func slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '/', r == '\'':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

var _ ports.Renderer = (*ConsoleRenderer)(nil)

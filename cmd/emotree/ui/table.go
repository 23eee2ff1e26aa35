package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ReportTable is a titled, column-aligned listing of journal data.
type ReportTable struct {
	title   string
	columns []string
	rows    [][]string
}

func NewReportTable(title string, columns ...string) *ReportTable {
	return &ReportTable{title: title, columns: columns}
}

// AddRow appends a row; missing cells render blank and extra cells are dropped.
func (t *ReportTable) AddRow(cells ...string) {
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

func (t *ReportTable) widths() []int {
	w := make([]int, len(t.columns))
	for i, c := range t.columns {
		w[i] = lipgloss.Width(c)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			w[i] = max(w[i], lipgloss.Width(cell))
		}
	}
	return w
}

// View renders the table, or "" when it has no rows.
func (t *ReportTable) View(styles Styles) string {
	if len(t.rows) == 0 {
		return ""
	}
	widths := t.widths()
	sep := styles.Muted.Render("|")
	line := func(style lipgloss.Style, cells []string) string {
		out := make([]string, len(cells))
		for i, cell := range cells {
			out[i] = style.Width(widths[i] + 2).Render(cell)
		}
		return strings.Join(out, sep) + "\n"
	}

	var sb strings.Builder
	if t.title != "" {
		sb.WriteString(styles.Title.Render(t.title) + "\n")
	}
	sb.WriteString(line(styles.Bold.Padding(0, 1), t.columns))
	for _, row := range t.rows {
		sb.WriteString(line(styles.Body.Padding(0, 1), row))
	}
	return sb.String()
}

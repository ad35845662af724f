package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/ga-relay/pkg/models/domain"
	"github.com/mattn/go-runewidth"
)

type TableConfig struct {
	MaxColumnWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		MaxColumnWidth: 40,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
	width  *runewidth.Condition
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	// Ambiguous width runes such as "é" count as one cell regardless of the locale.
	width := runewidth.NewCondition()
	width.EastAsianWidth = false

	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
		width:  width,
	}
}

const tableTemplate = `{{if .Title}}{{.Title}}
{{end}}{{separator}}
{{formatRow .Columns}}
{{separator}}
{{range .Rows}}{{formatRow .}}
{{end}}{{separator}}
`

// Handle prints a table with one fixed width column per header. Widths are measured in
// terminal cells, and cells wider than the configured maximum are truncated.
func (c *Reporter) Handle(title string, table domain.Table) error {
	widths := c.columnWidths(table)

	funcMap := template.FuncMap{
		"formatRow": func(cells []string) string {
			parts := make([]string, len(widths))
			for i, w := range widths {
				cell := ""
				if i < len(cells) {
					cell = c.truncate(cells[i], w)
				}
				parts[i] = " " + c.width.FillRight(cell, w) + " "
			}
			return "|" + strings.Join(parts, "|") + "|"
		},
		"separator": func() string {
			parts := make([]string, len(widths))
			for i, w := range widths {
				parts[i] = strings.Repeat("-", w+2)
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
	}

	t, err := template.New("table").Funcs(funcMap).Parse(tableTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, struct {
		Title string
		domain.Table
	}{Title: title, Table: table})
}

// Message prints a single line, used for the no-data outcome.
func (c *Reporter) Message(msg string) error {
	_, err := fmt.Fprintln(c.writer, msg)
	return err
}

// JSON prints v indented.
func (c *Reporter) JSON(v any) error {
	enc := json.NewEncoder(c.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *Reporter) columnWidths(table domain.Table) []int {
	widths := make([]int, len(table.Columns))
	for i, col := range table.Columns {
		widths[i] = c.width.StringWidth(col)
	}
	for _, row := range table.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := c.width.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if c.config.MaxColumnWidth > 0 && widths[i] > c.config.MaxColumnWidth {
			widths[i] = c.config.MaxColumnWidth
		}
	}
	return widths
}

func (c *Reporter) truncate(s string, width int) string {
	if width <= 3 {
		return c.width.Truncate(s, width, "")
	}
	return c.width.Truncate(s, width, "...")
}

package pipeline

import (
	"regexp"
	"strings"
)

// Column alignments derived from separator colons.
const (
	alignLeft   = "left"
	alignCenter = "center"
	alignRight  = "right"
)

// minTableColumns is the narrowest table rendered; narrower candidates stay text.
const minTableColumns = 2

// separatorCellPattern is one separator cell: colons, dashes and spaces with
// at least one dash, the same cells parseTable accepts.
const separatorCellPattern = `[ \t]*[ :\-]*-[ :\-]*`

var (
	// Header line, separator line with at least two cells, then body lines
	// that start with a pipe. Validation of the cells happens afterwards.
	tableBlock = regexp.MustCompile(
		`(?m)^\|[^\n]*\n\|` + separatorCellPattern + `(?:\|` + separatorCellPattern + `)+[ \t]*\|?[ \t]*(?:\n|$)(?:\|[^\n]*(?:\n|$))*`,
	)

	separatorCell = regexp.MustCompile(`^[ :\-]+$`)
)

// table is the model of one matched block.
type table struct {
	header []string
	aligns []string
	rows   [][]string
}

// formatTables renders GitHub-style pipe tables. Candidates that fail
// validation are returned verbatim instead of being partially rendered.
func formatTables(content string) string {
	if !strings.Contains(content, "|") {
		return content
	}
	return tableBlock.ReplaceAllStringFunc(content, func(block string) string {
		trailingNewline := strings.HasSuffix(block, "\n")
		t, ok := parseTable(strings.TrimSuffix(block, "\n"))
		if !ok {
			return block
		}
		out := t.render()
		if trailingNewline {
			out += "\n"
		}
		return out
	})
}

// parseTable validates a candidate block and builds its model.
func parseTable(block string) (table, bool) {
	lines := strings.Split(block, "\n")
	if len(lines) < 2 {
		return table{}, false
	}

	header := splitRow(lines[0])
	separators := splitRow(lines[1])
	if len(header) < minTableColumns || len(separators) != len(header) {
		return table{}, false
	}

	aligns := make([]string, len(separators))
	for i, sep := range separators {
		if !separatorCell.MatchString(sep) || !strings.Contains(sep, "-") {
			return table{}, false
		}
		aligns[i] = columnAlign(sep)
	}

	t := table{header: header, aligns: aligns}
	for _, line := range lines[2:] {
		if !strings.HasPrefix(strings.TrimSpace(line), "|") {
			continue
		}
		t.rows = append(t.rows, splitRow(line))
	}
	return t, true
}

// splitRow strips the outer pipes and splits a row into trimmed cells.
func splitRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	cells := strings.Split(line, "|")
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

// columnAlign reads the colons of a separator cell: both sides center,
// trailing only right, anything else left.
func columnAlign(sep string) string {
	s := strings.ReplaceAll(sep, " ", "")
	left := strings.HasPrefix(s, ":")
	right := strings.HasSuffix(s, ":")
	switch {
	case left && right:
		return alignCenter
	case right:
		return alignRight
	default:
		return alignLeft
	}
}

// alignClass returns the class for column i; extra body cells align left.
func (t table) alignClass(i int) string {
	if i < len(t.aligns) {
		return "md-align-" + t.aligns[i]
	}
	return "md-align-" + alignLeft
}

func (t table) render() string {
	var b strings.Builder
	b.WriteString(`<table class="md-table"><thead><tr class="md-table__row md-table__row--head">`)
	for i, h := range t.header {
		b.WriteString(`<th class="md-table__head-cell `)
		b.WriteString(t.alignClass(i))
		b.WriteString(`">`)
		b.WriteString(h)
		b.WriteString(`</th>`)
	}
	b.WriteString(`</tr></thead><tbody>`)
	for _, row := range t.rows {
		b.WriteString(`<tr class="md-table__row">`)
		for i, c := range row {
			b.WriteString(`<td class="md-table__cell `)
			b.WriteString(t.alignClass(i))
			b.WriteString(`">`)
			b.WriteString(c)
			b.WriteString(`</td>`)
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

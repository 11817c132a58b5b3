package inventory

import (
	"fmt"
	"regexp"
	"strings"
)

// Placeholder names produced by the automatic header pass for blank header
// cells, and by positional fallbacks.
const (
	genericHeaderPrefix = "__EMPTY"
	positionalPrefix    = "Coluna"
)

// ThreeColumnHeader is the fixed convention assumed for keyword-less
// three-column sheets.
var ThreeColumnHeader = []string{"Código", "Nome", "Quantidade"}

// headerKeywords mark a raw first row as a header row.
var headerKeywords = []string{"nome", "descri", "código", "codigo", "cod", "qtd", "quant", "name", "description", "code", "qty", "quantity"}

var genericHeaderPattern = regexp.MustCompile(`^(__EMPTY(_\d+)?|Coluna \d+|Column\s*\d+)$`)

// IsGenericHeader reports whether name is a placeholder rather than a real
// column name.
func IsGenericHeader(name string) bool {
	return genericHeaderPattern.MatchString(strings.TrimSpace(name))
}

// AutoRows performs the automatic header pass: the first non-blank row is
// the header, blank header cells get generic names, duplicates get numeric
// suffixes, blank data rows are skipped and short rows default to "".
func AutoRows(grid [][]string) []*Row {
	start := firstNonBlank(grid)
	if start < 0 {
		return nil
	}
	width := gridWidth(grid)
	header := make([]string, width)
	empties := 0
	for i := range header {
		name := strings.TrimSpace(cell(grid[start], i))
		if name == "" {
			name = genericHeaderPrefix
			if empties > 0 {
				name = fmt.Sprintf("%s_%d", genericHeaderPrefix, empties)
			}
			empties++
		}
		header[i] = name
	}
	return buildRows(dedupe(header), grid[start+1:])
}

// Recover normalizes a raw grid into rows, never failing. The automatic
// pass is kept when it yields rows with real column names; otherwise a
// keyword header row, the fixed three-column convention, or positional
// names are tried in that order.
func Recover(grid [][]string) []*Row {
	auto := AutoRows(grid)
	if len(auto) > 0 && !hasGenericKeys(auto) {
		return auto
	}
	start := firstNonBlank(grid)
	if start < 0 {
		return nil
	}
	grid = grid[start:]
	width := gridWidth(grid)

	if looksLikeHeader(grid[0]) {
		header := make([]string, width)
		for i := range header {
			name := strings.TrimSpace(cell(grid[0], i))
			if name == "" {
				name = positionalName(i)
			}
			header[i] = name
		}
		return buildRows(dedupe(header), grid[1:])
	}
	if width == len(ThreeColumnHeader) {
		return buildRows(ThreeColumnHeader, grid)
	}
	header := make([]string, width)
	for i := range header {
		header[i] = positionalName(i)
	}
	return buildRows(header, grid)
}

func hasGenericKeys(rows []*Row) bool {
	for _, r := range rows {
		for _, k := range r.keys {
			if IsGenericHeader(k) {
				return true
			}
		}
	}
	return false
}

func looksLikeHeader(cells []string) bool {
	for _, c := range cells {
		text := strings.ToLower(strings.TrimSpace(c))
		if text == "" {
			continue
		}
		for _, kw := range headerKeywords {
			if strings.Contains(text, kw) {
				return true
			}
		}
	}
	return false
}

func buildRows(header []string, data [][]string) []*Row {
	var rows []*Row
	for _, raw := range data {
		if isBlank(raw) {
			continue
		}
		row := &Row{}
		for i, name := range header {
			row.Set(name, parseCell(cell(raw, i)))
		}
		rows = append(rows, row)
	}
	return rows
}

// parseCell converts numeric cell text to a number, except zero-padded
// codes such as "007" which stay text.
func parseCell(text string) any {
	t := strings.TrimSpace(text)
	if len(t) > 1 && t[0] == '0' && t[1] >= '0' && t[1] <= '9' {
		return text
	}
	return ParseValue(text)
}

// dedupe suffixes repeated names with _1, _2, ... skipping any suffix that
// is already taken by another column.
func dedupe(header []string) []string {
	taken := make(map[string]bool, len(header))
	for _, name := range header {
		taken[name] = true
	}
	used := make(map[string]bool, len(header))
	next := make(map[string]int, len(header))
	out := make([]string, len(header))
	for i, name := range header {
		if used[name] {
			n := next[name]
			candidate := name
			for {
				n++
				candidate = fmt.Sprintf("%s_%d", name, n)
				if !taken[candidate] && !used[candidate] {
					break
				}
			}
			next[name] = n
			name = candidate
		}
		used[name] = true
		out[i] = name
	}
	return out
}

func positionalName(i int) string {
	return fmt.Sprintf("%s %d", positionalPrefix, i+1)
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func gridWidth(grid [][]string) int {
	width := 0
	for _, r := range grid {
		if len(r) > width {
			width = len(r)
		}
	}
	return width
}

func firstNonBlank(grid [][]string) int {
	for i, r := range grid {
		if !isBlank(r) {
			return i
		}
	}
	return -1
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

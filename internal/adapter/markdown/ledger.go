package markdown

import (
	"strings"

	"github.com/matynz/danger/internal/domain"
)

// headingKinds maps rendered section headings back to violation kinds.
// The Resolved section is deliberately absent: struck-through entries are
// historical and must not re-enter the ledger.
var headingKinds = map[string]domain.Kind{
	"Errors":   domain.KindError,
	"Warnings": domain.KindWarning,
	"Messages": domain.KindMessage,
}

// ParseLedger recovers the violation ledger from a previously rendered
// comment body. The second return value is false when the body contains no
// parseable violation section — a normal outcome for a first-ever comment,
// not an error.
//
// Parsing is structural: a kind heading opens a section, the table's
// separator row arms row collection, and every following table row
// contributes its second cell. Anything that does not match is skipped, so
// a hand-edited or truncated body degrades to an empty ledger.
func ParseLedger(body string) (domain.Ledger, bool) {
	ledger := domain.Ledger{}
	found := false

	var currentKind domain.Kind
	inSection := false
	rowsArmed := false

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)

		if heading, ok := strings.CutPrefix(line, "#### "); ok {
			kind, known := headingKinds[strings.TrimSpace(heading)]
			inSection = known
			rowsArmed = false
			if known {
				currentKind = kind
			}
			continue
		}

		if !inSection {
			continue
		}

		if isSeparatorRow(line) {
			rowsArmed = true
			continue
		}

		if !rowsArmed || !strings.HasPrefix(line, "|") {
			continue
		}

		violation, ok := secondCell(line)
		if !ok {
			continue
		}

		ledger[currentKind] = append(ledger[currentKind], unescapeCell(violation))
		found = true
	}

	return ledger, found
}

// isSeparatorRow matches the `|---|---|` row between a table header and its
// body.
func isSeparatorRow(line string) bool {
	if !strings.HasPrefix(line, "|") {
		return false
	}
	trimmed := strings.Trim(line, "| ")
	if trimmed == "" {
		return false
	}
	for _, r := range trimmed {
		if r != '-' && r != '|' && r != ' ' && r != ':' {
			return false
		}
	}
	return true
}

// secondCell extracts the violation text from a `| emoji | text |` row.
func secondCell(line string) (string, bool) {
	cells := splitCells(line)
	if len(cells) < 2 {
		return "", false
	}
	return cells[1], true
}

// splitCells splits a table row on unescaped pipes and trims each cell.
func splitCells(line string) []string {
	line = strings.Trim(line, "|")

	var cells []string
	var cell strings.Builder
	escaped := false
	for _, r := range line {
		switch {
		case escaped:
			if r != '|' {
				cell.WriteRune('\\')
			}
			cell.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
		case r == '|':
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteRune(r)
		}
	}
	if escaped {
		cell.WriteRune('\\')
	}
	cells = append(cells, strings.TrimSpace(cell.String()))
	return cells
}

func unescapeCell(text string) string {
	text = strings.ReplaceAll(text, "<br>", "\n")
	return text
}

// Package markdown renders report comment bodies and parses them back.
// The rendered body is the de facto wire format shared across runs: the
// marker identifies the comment as machine-generated for a danger ID, and
// the violation tables are the ledger a later run recovers.
package markdown

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/matynz/danger/internal/domain"
)

// markerTemplate is the HTML comment identifying a report comment for a
// specific danger ID. Matching is an exact, case-sensitive substring check;
// it is the sole mechanism distinguishing this bot's comments from human
// ones and from other danger configurations on the same PR.
const markerTemplate = "<!-- generated_by_%s -->"

const (
	errorEmoji    = "🚫"
	warningEmoji  = "⚠️"
	messageEmoji  = "📖"
	resolvedEmoji = "✅"
)

// Marker returns the signature embedded in comment bodies for dangerID.
func Marker(dangerID string) string {
	return fmt.Sprintf(markerTemplate, dangerID)
}

// ContainsMarker reports whether body carries the signature for dangerID.
func ContainsMarker(body, dangerID string) bool {
	return strings.Contains(body, Marker(dangerID))
}

// Renderer builds report comment bodies.
type Renderer struct {
	caser cases.Caser
}

// NewRenderer creates a comment renderer.
func NewRenderer() *Renderer {
	return &Renderer{caser: cases.Title(language.English)}
}

// Render produces a complete comment body from the current findings and the
// previous run's ledger. Violations present in the ledger but absent from
// the current findings are rendered struck through in a Resolved section so
// authors can see progress. Render is pure: it performs no I/O.
func (r *Renderer) Render(findings domain.Findings, previous domain.Ledger, dangerID string) string {
	var sb strings.Builder

	r.renderTable(&sb, domain.KindError, errorEmoji, findings.Errors)
	r.renderTable(&sb, domain.KindWarning, warningEmoji, findings.Warnings)
	r.renderTable(&sb, domain.KindMessage, messageEmoji, findings.Messages)

	for _, note := range findings.Markdowns {
		sb.WriteString(note)
		sb.WriteString("\n\n")
	}

	r.renderResolved(&sb, findings, previous)

	sb.WriteString("Generated by :no_entry_sign: danger\n")
	sb.WriteString(Marker(dangerID))
	sb.WriteString("\n")

	return sb.String()
}

// renderTable writes one violation table under a kind heading. The heading
// and table shape must stay in sync with ParseLedger.
func (r *Renderer) renderTable(sb *strings.Builder, kind domain.Kind, emoji string, violations []string) {
	if len(violations) == 0 {
		return
	}

	sb.WriteString(fmt.Sprintf("#### %s\n\n", headingFor(r.caser, kind)))
	sb.WriteString(fmt.Sprintf("| %s | %s |\n", emoji, countLabel(r.caser, kind, len(violations))))
	sb.WriteString("|---|---|\n")
	for _, violation := range violations {
		sb.WriteString(fmt.Sprintf("| %s | %s |\n", emoji, escapeCell(violation)))
	}
	sb.WriteString("\n")
}

// renderResolved writes the struck-through list of previously reported
// violations that no longer appear in the current findings.
func (r *Renderer) renderResolved(sb *strings.Builder, findings domain.Findings, previous domain.Ledger) {
	resolved := resolvedViolations(findings, previous)
	if len(resolved) == 0 {
		return
	}

	sb.WriteString("#### Resolved\n\n")
	sb.WriteString(fmt.Sprintf("| %s | Resolved |\n", resolvedEmoji))
	sb.WriteString("|---|---|\n")
	for _, violation := range resolved {
		sb.WriteString(fmt.Sprintf("| %s | ~~%s~~ |\n", resolvedEmoji, escapeCell(violation)))
	}
	sb.WriteString("\n")
}

// resolvedViolations returns ledger entries absent from the current run,
// in ledger order, errors first.
func resolvedViolations(findings domain.Findings, previous domain.Ledger) []string {
	var resolved []string
	for _, kind := range []domain.Kind{domain.KindError, domain.KindWarning, domain.KindMessage} {
		current := currentFor(findings, kind)
		seen := make(map[string]bool, len(current))
		for _, violation := range current {
			seen[violation] = true
		}
		for _, violation := range previous[kind] {
			if !seen[violation] {
				resolved = append(resolved, violation)
			}
		}
	}
	return resolved
}

func currentFor(findings domain.Findings, kind domain.Kind) []string {
	switch kind {
	case domain.KindError:
		return findings.Errors
	case domain.KindWarning:
		return findings.Warnings
	case domain.KindMessage:
		return findings.Messages
	default:
		return nil
	}
}

func headingFor(caser cases.Caser, kind domain.Kind) string {
	return caser.String(string(kind) + "s")
}

func countLabel(caser cases.Caser, kind domain.Kind, count int) string {
	noun := string(kind)
	if count != 1 {
		noun += "s"
	}
	return fmt.Sprintf("%d %s", count, caser.String(noun))
}

// escapeCell keeps violation text from breaking table structure. Pipes are
// the only character that would split a cell; newlines become <br>.
func escapeCell(text string) string {
	text = strings.ReplaceAll(text, "|", "\\|")
	text = strings.ReplaceAll(text, "\n", "<br>")
	return text
}

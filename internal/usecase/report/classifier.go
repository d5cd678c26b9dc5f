package report

import (
	"github.com/matynz/danger/internal/adapter/markdown"
	"github.com/matynz/danger/internal/domain"
)

// GeneratedByDanger filters comments down to those this bot posted under
// dangerID, preserving order. A comment qualifies iff its body contains the
// exact marker for dangerID; author account identity is deliberately not
// consulted, so multiple configurations sharing one bot account never
// clobber one another.
func GeneratedByDanger(comments []domain.Comment, dangerID string) []domain.Comment {
	var generated []domain.Comment
	for _, comment := range comments {
		if markdown.ContainsMarker(comment.Body, dangerID) {
			generated = append(generated, comment)
		}
	}
	return generated
}

// PreviousViolations recovers the violation ledger from a prior report
// comment body. A body without a parseable ledger yields an empty ledger —
// the normal state for a first-ever comment.
func PreviousViolations(body string) domain.Ledger {
	ledger, ok := markdown.ParseLedger(body)
	if !ok {
		return domain.Ledger{}
	}
	return ledger
}

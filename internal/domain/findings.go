package domain

// Kind identifies the category of a reported violation.
type Kind string

const (
	KindError    Kind = "error"
	KindWarning  Kind = "warning"
	KindMessage  Kind = "message"
	KindMarkdown Kind = "markdown"
)

// Findings is the full output of one review run: the four ordered violation
// lists a Dangerfile-style run can produce. It is an immutable input to
// reconciliation; violations have no identity beyond their text.
type Findings struct {
	Errors    []string `json:"errors"`
	Warnings  []string `json:"warnings"`
	Messages  []string `json:"messages"`
	Markdowns []string `json:"markdowns"`
}

// IsEmpty reports whether the run produced no violations of any kind.
func (f Findings) IsEmpty() bool {
	return len(f.Errors) == 0 && len(f.Warnings) == 0 &&
		len(f.Messages) == 0 && len(f.Markdowns) == 0
}

// ErrorCount returns the number of error violations.
func (f Findings) ErrorCount() int {
	return len(f.Errors)
}

// WarningCount returns the number of warning violations.
func (f Findings) WarningCount() int {
	return len(f.Warnings)
}

// WithoutIgnored returns a copy of the findings with every error, warning,
// and message whose text appears in ignored removed. Markdown notes are kept
// as-is: they are free-form blocks and carry no single-line identity an
// ignore directive could name.
func (f Findings) WithoutIgnored(ignored []string) Findings {
	if len(ignored) == 0 {
		return f
	}
	silenced := make(map[string]bool, len(ignored))
	for _, msg := range ignored {
		silenced[msg] = true
	}
	return Findings{
		Errors:    dropSilenced(f.Errors, silenced),
		Warnings:  dropSilenced(f.Warnings, silenced),
		Messages:  dropSilenced(f.Messages, silenced),
		Markdowns: f.Markdowns,
	}
}

func dropSilenced(violations []string, silenced map[string]bool) []string {
	if len(violations) == 0 {
		return violations
	}
	kept := make([]string, 0, len(violations))
	for _, v := range violations {
		if silenced[v] {
			continue
		}
		kept = append(kept, v)
	}
	return kept
}

// Ledger maps violation kinds to the messages recovered from a previously
// posted report comment. It is rebuilt from the remote comment body on every
// run and discarded after rendering.
type Ledger map[Kind][]string

// IsEmpty reports whether no prior violations were recovered.
func (l Ledger) IsEmpty() bool {
	for _, violations := range l {
		if len(violations) > 0 {
			return false
		}
	}
	return true
}

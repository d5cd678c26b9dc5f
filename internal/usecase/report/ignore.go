package report

import "regexp"

// ignoreDirectivePattern matches author suppression directives in a PR
// description, e.g. `> danger: ignore "Some warning"`. Whitespace around
// the colon and the ignore keyword is arbitrary; matching is
// case-insensitive.
var ignoreDirectivePattern = regexp.MustCompile(`(?i)>\s*danger\s*:\s*ignore\s*"([^"]*)"`)

// ParseIgnoredViolations extracts every quoted token from danger-ignore
// directives in the PR description. Tokens are returned in encounter order
// with duplicates retained; callers treat the result as a set. An empty or
// absent description yields an empty list, not an error.
func ParseIgnoredViolations(description string) []string {
	matches := ignoreDirectivePattern.FindAllStringSubmatch(description, -1)

	ignored := make([]string, 0, len(matches))
	for _, match := range matches {
		ignored = append(ignored, match[1])
	}
	return ignored
}

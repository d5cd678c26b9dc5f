package markdown_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matynz/danger/internal/adapter/markdown"
	"github.com/matynz/danger/internal/domain"
)

func TestMarker(t *testing.T) {
	assert.Equal(t, "<!-- generated_by_danger -->", markdown.Marker("danger"))
	assert.Equal(t, "<!-- generated_by_danger-lint -->", markdown.Marker("danger-lint"))
}

func TestContainsMarkerIsExact(t *testing.T) {
	body := "report\n<!-- generated_by_danger -->"

	assert.True(t, markdown.ContainsMarker(body, "danger"))
	assert.False(t, markdown.ContainsMarker(body, "danger-lint"))
	assert.False(t, markdown.ContainsMarker(strings.ToUpper(body), "danger"))
}

func TestRenderAllSections(t *testing.T) {
	findings := domain.Findings{
		Errors:    []string{"Broken build"},
		Warnings:  []string{"Missing tests", "Large diff"},
		Messages:  []string{"Thanks for the PR"},
		Markdowns: []string{"## Coverage\n\nUnchanged at 81%."},
	}

	body := markdown.NewRenderer().Render(findings, domain.Ledger{}, "danger")

	assert.Contains(t, body, "#### Errors")
	assert.Contains(t, body, "| 🚫 | 1 Error |")
	assert.Contains(t, body, "| 🚫 | Broken build |")
	assert.Contains(t, body, "#### Warnings")
	assert.Contains(t, body, "| ⚠️ | 2 Warnings |")
	assert.Contains(t, body, "#### Messages")
	assert.Contains(t, body, "| 📖 | Thanks for the PR |")

	// Markdown notes pass through verbatim, outside any table.
	assert.Contains(t, body, "## Coverage\n\nUnchanged at 81%.")

	assert.Contains(t, body, "Generated by :no_entry_sign: danger")
	assert.True(t, strings.Contains(body, markdown.Marker("danger")))
}

func TestRenderSkipsEmptySections(t *testing.T) {
	findings := domain.Findings{Warnings: []string{"Missing tests"}}

	body := markdown.NewRenderer().Render(findings, domain.Ledger{}, "danger")

	assert.NotContains(t, body, "#### Errors")
	assert.Contains(t, body, "#### Warnings")
	assert.NotContains(t, body, "#### Messages")
	assert.NotContains(t, body, "#### Resolved")
}

func TestRenderResolvedSection(t *testing.T) {
	previous := domain.Ledger{
		domain.KindError:   {"Broken build", "Flaky test"},
		domain.KindWarning: {"Missing tests"},
	}
	findings := domain.Findings{Errors: []string{"Flaky test"}}

	body := markdown.NewRenderer().Render(findings, previous, "danger")

	assert.Contains(t, body, "#### Resolved")
	assert.Contains(t, body, "| ✅ | ~~Broken build~~ |")
	assert.Contains(t, body, "| ✅ | ~~Missing tests~~ |")
	assert.NotContains(t, body, "~~Flaky test~~")
}

func TestRenderParseRoundTrip(t *testing.T) {
	findings := domain.Findings{
		Errors:   []string{"Broken build", "pipe | in message"},
		Warnings: []string{"multi\nline warning"},
		Messages: []string{"plain message"},
	}

	body := markdown.NewRenderer().Render(findings, domain.Ledger{}, "danger")
	ledger, ok := markdown.ParseLedger(body)

	require.True(t, ok)
	assert.Equal(t, []string{"Broken build", "pipe | in message"}, ledger[domain.KindError])
	assert.Equal(t, []string{"multi\nline warning"}, ledger[domain.KindWarning])
	assert.Equal(t, []string{"plain message"}, ledger[domain.KindMessage])
}

func TestResolvedEntriesDoNotReenterLedger(t *testing.T) {
	previous := domain.Ledger{domain.KindError: {"Broken build"}}
	body := markdown.NewRenderer().Render(domain.Findings{}, previous, "danger")
	require.Contains(t, body, "~~Broken build~~")

	ledger, ok := markdown.ParseLedger(body)

	assert.False(t, ok)
	assert.Empty(t, ledger[domain.KindError])
}

package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matynz/danger/internal/adapter/markdown"
	"github.com/matynz/danger/internal/domain"
)

func TestParseLedgerFromHandWrittenBody(t *testing.T) {
	body := `#### Errors

| 🚫 | 2 Errors |
|---|---|
| 🚫 | Broken build |
| 🚫 | Lint failed |

#### Warnings

| ⚠️ | 1 Warning |
|---|---|
| ⚠️ | Missing tests |

Generated by :no_entry_sign: danger
<!-- generated_by_danger -->`

	ledger, ok := markdown.ParseLedger(body)

	require.True(t, ok)
	assert.Equal(t, []string{"Broken build", "Lint failed"}, ledger[domain.KindError])
	assert.Equal(t, []string{"Missing tests"}, ledger[domain.KindWarning])
	assert.Empty(t, ledger[domain.KindMessage])
}

func TestParseLedgerUnknownBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: ""},
		{name: "plain prose", body: "Looks good to me!"},
		{name: "heading without table", body: "#### Errors\n\nnothing tabular here"},
		{name: "table without heading", body: "| 🚫 | 1 Error |\n|---|---|\n| 🚫 | orphan |"},
		{name: "unknown heading", body: "#### Notes\n\n| x | y |\n|---|---|\n| x | stray |"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger, ok := markdown.ParseLedger(tt.body)

			assert.False(t, ok)
			assert.True(t, ledger.IsEmpty())
		})
	}
}

func TestParseLedgerSkipsHeaderRow(t *testing.T) {
	body := "#### Errors\n\n| 🚫 | 1 Error |\n|---|---|\n| 🚫 | Broken build |\n"

	ledger, ok := markdown.ParseLedger(body)

	require.True(t, ok)
	// Only the row after the separator counts; "1 Error" is the header.
	assert.Equal(t, []string{"Broken build"}, ledger[domain.KindError])
}

func TestParseLedgerUnescapesCells(t *testing.T) {
	body := "#### Warnings\n\n| ⚠️ | 1 Warning |\n|---|---|\n| ⚠️ | first\\|second<br>third |\n"

	ledger, ok := markdown.ParseLedger(body)

	require.True(t, ok)
	require.Len(t, ledger[domain.KindWarning], 1)
	assert.Equal(t, "first|second\nthird", ledger[domain.KindWarning][0])
}

func TestParseLedgerTruncatedTable(t *testing.T) {
	// A body cut mid-table still yields the rows that survived.
	body := "#### Errors\n\n| 🚫 | 3 Errors |\n|---|---|\n| 🚫 | first |\n| 🚫 | seco"

	ledger, ok := markdown.ParseLedger(body)

	require.True(t, ok)
	assert.Equal(t, []string{"first", "seco"}, ledger[domain.KindError])
}

func TestParseLedgerRowMissingSecondCell(t *testing.T) {
	body := "#### Errors\n\n| 🚫 | 2 Errors |\n|---|---|\n| 🚫 | first |\n| 🚫 "

	ledger, ok := markdown.ParseLedger(body)

	require.True(t, ok)
	assert.Equal(t, []string{"first"}, ledger[domain.KindError])
}

func TestParseLedgerIgnoresResolvedSection(t *testing.T) {
	body := `#### Errors

| 🚫 | 1 Error |
|---|---|
| 🚫 | still broken |

#### Resolved

| ✅ | Resolved |
|---|---|
| ✅ | ~~old problem~~ |
`

	ledger, ok := markdown.ParseLedger(body)

	require.True(t, ok)
	assert.Equal(t, []string{"still broken"}, ledger[domain.KindError])
	assert.Empty(t, ledger[domain.KindWarning])
	assert.Empty(t, ledger[domain.KindMessage])
}

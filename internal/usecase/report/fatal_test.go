package report_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matynz/danger/internal/usecase/report"
)

func TestFatalError(t *testing.T) {
	err := report.NewFatalError("Found %d errors and I don't have write access to the PR.", 2)

	assert.Equal(t, "Found 2 errors and I don't have write access to the PR.", err.Error())
	assert.True(t, report.IsFatal(err))
}

func TestIsFatalOnWrappedError(t *testing.T) {
	err := fmt.Errorf("publish: %w", report.NewFatalError("boom"))
	assert.True(t, report.IsFatal(err))
}

func TestIsFatalOnOrdinaryError(t *testing.T) {
	assert.False(t, report.IsFatal(errors.New("boom")))
	assert.False(t, report.IsFatal(nil))
}

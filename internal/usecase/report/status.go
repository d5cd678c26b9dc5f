package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/matynz/danger/internal/adapter/httpclient"
	"github.com/matynz/danger/internal/domain"
)

// statusContextPrefix namespaces the commit status so independent danger
// configurations produce distinct checks on the same commit.
const statusContextPrefix = "danger/"

// StatusClient is the commit-status surface the submitter drives.
type StatusClient interface {
	CreateCommitStatus(ctx context.Context, owner, repo, sha string, outcome domain.StatusOutcome, statusContext string) error
}

// Submitter reports the run's outcome as a commit status, with a fallback
// path for tokens that cannot write statuses.
type Submitter struct {
	client StatusClient
	out    io.Writer
}

// NewSubmitter creates a status submitter. out is the non-API channel
// (normally stdout) used when a status cannot be written but the run has
// nothing to fail over.
func NewSubmitter(client StatusClient, out io.Writer) *Submitter {
	return &Submitter{client: client, out: out}
}

// OutcomeFor derives the commit status from the run's findings: success iff
// the error count is zero, regardless of warnings, messages, or markdown
// notes.
func OutcomeFor(findings domain.Findings, detailsURL string) domain.StatusOutcome {
	state := domain.StatusSuccess
	if findings.ErrorCount() > 0 {
		state = domain.StatusFailure
	}
	return domain.StatusOutcome{
		State:       state,
		Description: GenerateDescription(findings),
		TargetURL:   detailsURL,
	}
}

// GenerateDescription builds the short human summary shown next to the
// status check.
func GenerateDescription(findings domain.Findings) string {
	var parts []string
	if n := findings.ErrorCount(); n > 0 {
		parts = append(parts, pluralize(n, "error"))
	}
	if n := findings.WarningCount(); n > 0 {
		parts = append(parts, pluralize(n, "warning"))
	}
	if len(parts) == 0 {
		return "All green."
	}
	return strings.Join(parts, ", ")
}

// Submit reports the outcome for the PR's head commit.
//
// A missing head sha is a fatal configuration error: the run's own metadata
// fetch is broken and retrying cannot fix it.
//
// A permission failure on the status write is an expected operating mode
// (read-only tokens on forks and public repos). When the run found no
// errors the failure is swallowed and the outcome goes to the fallback
// writer instead; when the run has errors the build must still fail
// visibly, with a message that tells private-repo owners to grant write
// access and public-repo users the plain failure count.
func (s *Submitter) Submit(ctx context.Context, findings domain.Findings, pr domain.PullRequest, detailsURL, dangerID string) error {
	if pr.HeadSHA == "" {
		return NewFatalError("Couldn't find a commit sha to report a status against, cannot submit a PR status.")
	}

	outcome := OutcomeFor(findings, detailsURL)

	err := s.client.CreateCommitStatus(ctx, pr.Owner, pr.Repo, pr.HeadSHA, outcome, statusContextPrefix+dangerID)
	if err == nil {
		return nil
	}

	if !isNoWriteAccess(err) {
		return err
	}

	if findings.ErrorCount() == 0 {
		// The outcome still has to be visible somewhere.
		fmt.Fprintln(s.out, outcome.Description)
		return nil
	}

	count := pluralize(findings.ErrorCount(), "error")
	if pr.Private {
		return NewFatalError("Danger has failed this build. Found %s and I don't have write access to the PR to set a PR status.", count)
	}
	return NewFatalError("Danger has failed this build. Found %s.", count)
}

// isNoWriteAccess reports whether the status write failed for lack of
// permission. GitHub answers 403 for tokens it recognizes and 404 for
// private resources it hides entirely, so both map to this condition.
func isNoWriteAccess(err error) bool {
	var apiErr *httpclient.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Type == httpclient.ErrTypePermission || apiErr.Type == httpclient.ErrTypeNotFound
}

func pluralize(count int, noun string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, noun)
	}
	return fmt.Sprintf("%d %ss", count, noun)
}

// Package report reconciles a review run's findings with the pull request's
// remote state: one up-to-date report comment and one commit status per
// danger ID, idempotent across repeated runs on the same commit.
package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/matynz/danger/internal/adapter/httpclient"
	"github.com/matynz/danger/internal/domain"
)

// APIClient is the full transport surface the orchestrator depends on.
type APIClient interface {
	CommentClient
	StatusClient
	GetPullRequest(ctx context.Context, owner, repo string, pullNumber int) (domain.PullRequest, error)
	ListComments(ctx context.Context, owner, repo string, pullNumber int) ([]domain.Comment, error)
}

// Logger receives structured progress events. Implementations must tolerate
// nil field maps.
type Logger interface {
	LogInfo(ctx context.Context, message string, fields map[string]interface{})
}

// Target names the pull request a run reconciles against.
type Target struct {
	Owner      string
	Repo       string
	PullNumber int
}

// Orchestrator composes the scanner, classifier, reconciler, and status
// submitter into the single publish operation invoked once per review run.
// It holds no state across runs; invoking Publish twice in one run would
// double-post.
type Orchestrator struct {
	client     APIClient
	reconciler *Reconciler
	status     *Submitter
	logger     Logger
	opts       Options
}

// OrchestratorDeps captures the collaborators for the orchestrator.
type OrchestratorDeps struct {
	Client   APIClient
	Renderer Renderer
	StatusW  *Submitter
	Logger   Logger
	Options  Options
}

// NewOrchestrator wires an orchestrator from its dependencies.
func NewOrchestrator(deps OrchestratorDeps) *Orchestrator {
	return &Orchestrator{
		client:     deps.Client,
		reconciler: NewReconciler(deps.Client, deps.Renderer),
		status:     deps.StatusW,
		logger:     deps.Logger,
		opts:       deps.Options,
	}
}

// Publish runs one full reconciliation pass: fetch PR metadata, drop
// author-silenced violations, converge the report comment, then submit the
// commit status pointing at whichever comment mutation occurred.
//
// Fatal conditions (missing head sha, unreportable failures, a PR that
// moved) surface as *FatalError; any other transport failure propagates
// unwrapped and unretried.
func (o *Orchestrator) Publish(ctx context.Context, target Target, findings domain.Findings, dangerID string) error {
	pr, err := o.client.GetPullRequest(ctx, target.Owner, target.Repo, target.PullNumber)
	if err != nil {
		var apiErr *httpclient.Error
		if errors.As(err, &apiErr) && apiErr.Type == httpclient.ErrTypeNotFound {
			return NewFatalError("Couldn't find the pull request %s/%s#%d. The repository may have moved or been renamed.",
				target.Owner, target.Repo, target.PullNumber)
		}
		return fmt.Errorf("fetch pull request: %w", err)
	}

	ignored := ParseIgnoredViolations(pr.Description)
	filtered := findings.WithoutIgnored(ignored)

	o.logInfo(ctx, "publishing results", map[string]interface{}{
		"danger_id": dangerID,
		"errors":    filtered.ErrorCount(),
		"warnings":  filtered.WarningCount(),
		"ignored":   len(ignored),
	})

	comments, err := o.client.ListComments(ctx, target.Owner, target.Repo, target.PullNumber)
	if err != nil {
		return fmt.Errorf("list comments: %w", err)
	}

	result, err := o.reconciler.Reconcile(ctx, pr, comments, filtered, dangerID, o.opts)
	if err != nil {
		return err
	}

	o.logInfo(ctx, "report comment reconciled", map[string]interface{}{
		"action": result.Action.String(),
		"url":    result.DetailsURL,
	})

	return o.status.Submit(ctx, filtered, pr, result.DetailsURL, dangerID)
}

func (o *Orchestrator) logInfo(ctx context.Context, message string, fields map[string]interface{}) {
	if o.logger == nil {
		return
	}
	o.logger.LogInfo(ctx, message, fields)
}

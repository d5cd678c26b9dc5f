package report

import (
	"context"
	"fmt"

	"github.com/matynz/danger/internal/domain"
)

// CommentClient is the comment-mutation surface the reconciler drives.
// The concrete implementation lives in the GitHub adapter; tests inject
// fakes.
type CommentClient interface {
	CreateComment(ctx context.Context, owner, repo string, pullNumber int, body string) (domain.Comment, error)
	UpdateComment(ctx context.Context, owner, repo string, commentID int64, body string) (domain.Comment, error)
	DeleteComment(ctx context.Context, owner, repo string, commentID int64) error
}

// Renderer produces a comment body from the current findings and the
// previous run's ledger. It must be a pure function of its inputs.
type Renderer interface {
	Render(findings domain.Findings, previous domain.Ledger, dangerID string) string
}

// Action is the mutation a reconciliation pass performed.
type Action int

const (
	// ActionNone means no comment existed and nothing needed posting.
	ActionNone Action = iota

	// ActionDeleted means stale bot comments were removed and nothing replaced them.
	ActionDeleted

	// ActionCreated means a new report comment was posted.
	ActionCreated

	// ActionUpdated means the existing report comment was edited in place.
	ActionUpdated
)

// String returns the action name for logging.
func (a Action) String() string {
	switch a {
	case ActionDeleted:
		return "deleted"
	case ActionCreated:
		return "created"
	case ActionUpdated:
		return "updated"
	default:
		return "none"
	}
}

// Result describes the outcome of one reconciliation pass.
type Result struct {
	// Action is the mutation that executed.
	Action Action

	// DetailsURL is the HTML URL of the surviving comment, empty when the
	// pass deleted or did nothing.
	DetailsURL string

	// CommentID is the ID of the surviving comment, zero when none survives.
	CommentID int64
}

// Options tune comment handling.
type Options struct {
	// NewComment posts a fresh comment instead of editing the existing one.
	// Superseded comments are still deleted afterwards.
	NewComment bool

	// RemovePreviousComments forces a fresh comment and removes every older
	// bot comment once the new one is up.
	RemovePreviousComments bool
}

// Reconciler converges the PR's report comment with the current findings.
type Reconciler struct {
	client   CommentClient
	renderer Renderer
}

// NewReconciler creates a reconciler over the given comment client and
// renderer.
func NewReconciler(client CommentClient, renderer Renderer) *Reconciler {
	return &Reconciler{client: client, renderer: renderer}
}

// Reconcile decides among delete, update, and create, and executes exactly
// one of them:
//
//  1. Delete: the recovered ledger is empty and the run produced nothing —
//     remove any existing bot comments (a no-op when none exist).
//  2. Update: a bot comment exists — render a new body (annotated with the
//     previous ledger) and edit the comment in place.
//  3. Create: no bot comment exists — render and post a new one.
//
// Whatever executed, at most one bot comment for dangerID is left standing;
// comments carrying other danger IDs are never touched.
func (r *Reconciler) Reconcile(ctx context.Context, pr domain.PullRequest, comments []domain.Comment, findings domain.Findings, dangerID string, opts Options) (Result, error) {
	botComments := GeneratedByDanger(comments, dangerID)

	var last *domain.Comment
	if len(botComments) > 0 {
		last = &botComments[len(botComments)-1]
	}

	shouldCreate := last == nil || opts.NewComment || opts.RemovePreviousComments

	previous := domain.Ledger{}
	if !shouldCreate {
		previous = PreviousViolations(last.Body)
	}

	if previous.IsEmpty() && findings.IsEmpty() {
		// Nothing to say and nothing was ever said: leave no stale
		// "all clear" noise behind.
		if err := r.deleteComments(ctx, pr, botComments, 0); err != nil {
			return Result{}, err
		}
		action := ActionNone
		if len(botComments) > 0 {
			action = ActionDeleted
		}
		return Result{Action: action}, nil
	}

	body := r.renderer.Render(findings, previous, dangerID)

	var surviving domain.Comment
	var action Action
	if shouldCreate {
		created, err := r.client.CreateComment(ctx, pr.Owner, pr.Repo, pr.Number, body)
		if err != nil {
			return Result{}, fmt.Errorf("create report comment: %w", err)
		}
		surviving = created
		action = ActionCreated
	} else {
		updated, err := r.client.UpdateComment(ctx, pr.Owner, pr.Repo, last.ID, body)
		if err != nil {
			return Result{}, fmt.Errorf("update report comment: %w", err)
		}
		surviving = updated
		if surviving.ID == 0 {
			surviving.ID = last.ID
		}
		action = ActionUpdated
	}

	// Supersede every other bot comment so the PR never accumulates
	// duplicate reports for the same danger ID.
	if err := r.deleteComments(ctx, pr, botComments, surviving.ID); err != nil {
		return Result{}, err
	}

	return Result{
		Action:     action,
		DetailsURL: surviving.HTMLURL,
		CommentID:  surviving.ID,
	}, nil
}

// deleteComments removes every listed comment except keepID.
func (r *Reconciler) deleteComments(ctx context.Context, pr domain.PullRequest, comments []domain.Comment, keepID int64) error {
	for _, comment := range comments {
		if comment.ID == keepID {
			continue
		}
		if err := r.client.DeleteComment(ctx, pr.Owner, pr.Repo, comment.ID); err != nil {
			return fmt.Errorf("delete stale report comment %d: %w", comment.ID, err)
		}
	}
	return nil
}

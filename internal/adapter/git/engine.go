// Package git manages the local working copy danger leaves behind for diff
// tooling: two branches pinned to the reviewed commit range.
package git

import (
	"context"
	"fmt"

	goGit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

const (
	// BranchBase is the local branch pinned to the PR's base commit.
	BranchBase = "danger_base"

	// BranchHead is the local branch pinned to the PR's head commit.
	BranchHead = "danger_head"
)

// Engine manipulates a local clone backed by go-git.
type Engine struct {
	repoDir string
}

// NewEngine constructs a git engine for the provided repository directory.
func NewEngine(repoDir string) *Engine {
	return &Engine{repoDir: repoDir}
}

// EnsureReviewBranches force-creates danger_base and danger_head at the
// PR's base and head commits so diff-consuming tooling can compare the
// exact reviewed range. Both commits must already be present locally; this
// engine never fetches.
func (e *Engine) EnsureReviewBranches(ctx context.Context, baseSHA, headSHA string) error {
	repo, err := goGit.PlainOpenWithOptions(e.repoDir, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return fmt.Errorf("open repo: %w", err)
	}

	if err := pinBranch(repo, BranchBase, baseSHA); err != nil {
		return err
	}
	return pinBranch(repo, BranchHead, headSHA)
}

// pinBranch points the named branch at sha, creating or moving it.
func pinBranch(repo *goGit.Repository, branch, sha string) error {
	hash := plumbing.NewHash(sha)

	if _, err := repo.CommitObject(hash); err != nil {
		return fmt.Errorf("commit %s for branch %s not present locally (fetch first): %w", sha, branch, err)
	}

	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(branch), hash)
	if err := repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("set branch %s: %w", branch, err)
	}
	return nil
}

// CurrentHead returns the SHA of the checked-out commit.
func (e *Engine) CurrentHead(ctx context.Context) (string, error) {
	repo, err := goGit.PlainOpenWithOptions(e.repoDir, &goGit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repo: %w", err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	return head.Hash().String(), nil
}

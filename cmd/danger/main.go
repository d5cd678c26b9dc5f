package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/matynz/danger/internal/adapter/cli"
	"github.com/matynz/danger/internal/adapter/git"
	githubadapter "github.com/matynz/danger/internal/adapter/github"
	"github.com/matynz/danger/internal/adapter/httpclient"
	"github.com/matynz/danger/internal/adapter/markdown"
	"github.com/matynz/danger/internal/adapter/observability"
	"github.com/matynz/danger/internal/config"
	"github.com/matynz/danger/internal/domain"
	"github.com/matynz/danger/internal/usecase/report"
)

// version is stamped by the build via -ldflags "-X main.version=...".
var version = "v0.0.0"

func main() {
	if err := run(); err != nil {
		log.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	// Create cancellable context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(config.LoaderOptions{
		ConfigPaths: defaultConfigPaths(),
		FileName:    "danger",
		EnvPrefix:   "DANGER",
	})
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	obs := buildObservability(cfg.Observability)

	var publisher cli.Publisher
	token := cfg.GitHub.Token
	if token == "" {
		token = os.Getenv("DANGER_GITHUB_TOKEN")
	}
	if token != "" {
		client := buildGitHubClient(token, cfg, obs)

		var reportLogger report.Logger
		if obs.logger != nil {
			reportLogger = observability.NewReportLogger(obs.logger)
		}

		publisher = report.NewOrchestrator(report.OrchestratorDeps{
			Client:   &apiClientBridge{client: client},
			Renderer: markdown.NewRenderer(),
			StatusW:  report.NewSubmitter(&apiClientBridge{client: client}, os.Stdout),
			Logger:   reportLogger,
			Options: report.Options{
				NewComment:             cfg.Comment.NewComment,
				RemovePreviousComments: cfg.Comment.RemovePreviousComments,
			},
		})
	}

	var branchPinner cli.BranchPinner
	if cfg.Git.RepositoryDir != "" {
		branchPinner = git.NewEngine(cfg.Git.RepositoryDir)
	}

	root := cli.NewRootCommand(cli.Dependencies{
		Publisher:       publisher,
		BranchPinner:    branchPinner,
		DefaultDangerID: cfg.Comment.DangerID,
		Version:         version,
	})

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrVersionRequested) {
			return nil
		}
		if report.IsFatal(err) {
			// Fatal aborts carry their own explanatory text; don't wrap them.
			return err
		}
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}

func defaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "danger"))
	}
	return paths
}

func buildGitHubClient(token string, cfg config.Config, obs observabilityComponents) *githubadapter.Client {
	client := githubadapter.NewClient(token)

	if cfg.GitHub.BaseURL != "" {
		client.SetBaseURL(cfg.GitHub.BaseURL)
	}
	if timeout, err := time.ParseDuration(cfg.HTTP.Timeout); err == nil {
		client.SetTimeout(timeout)
	}
	if cfg.HTTP.MaxRetries > 0 {
		client.SetMaxRetries(cfg.HTTP.MaxRetries)
	}
	if backoff, err := time.ParseDuration(cfg.HTTP.InitialBackoff); err == nil {
		client.SetInitialBackoff(backoff)
	}

	if obs.logger != nil {
		client.SetLogger(obs.logger)
	}
	if obs.metrics != nil {
		client.SetMetrics(obs.metrics)
	}

	return client
}

// observabilityComponents holds shared observability instances
type observabilityComponents struct {
	logger  *httpclient.DefaultLogger
	metrics httpclient.Metrics
}

// buildObservability creates observability components based on configuration
func buildObservability(cfg config.ObservabilityConfig) observabilityComponents {
	var components observabilityComponents

	if cfg.Logging.Enabled {
		logLevel := httpclient.LogLevelInfo
		switch cfg.Logging.Level {
		case "debug":
			logLevel = httpclient.LogLevelDebug
		case "error":
			logLevel = httpclient.LogLevelError
		}

		logFormat := httpclient.LogFormatHuman
		if cfg.Logging.Format == "json" {
			logFormat = httpclient.LogFormatJSON
		}

		components.logger = httpclient.NewDefaultLogger(logLevel, logFormat, cfg.Logging.RedactTokens)
	}

	if cfg.Metrics.Enabled {
		components.metrics = httpclient.NewDefaultMetrics()
	}

	return components
}

// apiClientBridge maps the GitHub adapter onto the report use case's
// domain-typed client interface.
type apiClientBridge struct {
	client *githubadapter.Client
}

// Compile-time interface compliance checks
var _ report.APIClient = (*apiClientBridge)(nil)
var _ cli.BranchPinner = (*git.Engine)(nil)
var _ report.Renderer = (*markdown.Renderer)(nil)

func (b *apiClientBridge) GetPullRequest(ctx context.Context, owner, repo string, pullNumber int) (domain.PullRequest, error) {
	pr, err := b.client.GetPullRequest(ctx, owner, repo, pullNumber)
	if err != nil {
		return domain.PullRequest{}, err
	}
	return domain.PullRequest{
		Owner:       owner,
		Repo:        repo,
		Number:      pr.Number,
		HeadSHA:     pr.Head.SHA,
		BaseSHA:     pr.Base.SHA,
		Description: pr.Body,
		Private:     pr.Base.Repo.Private,
	}, nil
}

func (b *apiClientBridge) ListComments(ctx context.Context, owner, repo string, pullNumber int) ([]domain.Comment, error) {
	comments, err := b.client.ListIssueComments(ctx, owner, repo, pullNumber)
	if err != nil {
		return nil, err
	}
	mapped := make([]domain.Comment, 0, len(comments))
	for _, c := range comments {
		mapped = append(mapped, domain.Comment{
			ID:      c.ID,
			Author:  c.User.Login,
			Body:    c.Body,
			HTMLURL: c.HTMLURL,
		})
	}
	return mapped, nil
}

func (b *apiClientBridge) CreateComment(ctx context.Context, owner, repo string, pullNumber int, body string) (domain.Comment, error) {
	comment, err := b.client.CreateIssueComment(ctx, owner, repo, pullNumber, body)
	if err != nil {
		return domain.Comment{}, err
	}
	return domain.Comment{ID: comment.ID, Author: comment.User.Login, Body: comment.Body, HTMLURL: comment.HTMLURL}, nil
}

func (b *apiClientBridge) UpdateComment(ctx context.Context, owner, repo string, commentID int64, body string) (domain.Comment, error) {
	comment, err := b.client.UpdateIssueComment(ctx, owner, repo, commentID, body)
	if err != nil {
		return domain.Comment{}, err
	}
	return domain.Comment{ID: comment.ID, Author: comment.User.Login, Body: comment.Body, HTMLURL: comment.HTMLURL}, nil
}

func (b *apiClientBridge) DeleteComment(ctx context.Context, owner, repo string, commentID int64) error {
	return b.client.DeleteIssueComment(ctx, owner, repo, commentID)
}

func (b *apiClientBridge) CreateCommitStatus(ctx context.Context, owner, repo, sha string, outcome domain.StatusOutcome, statusContext string) error {
	return b.client.CreateCommitStatus(ctx, owner, repo, sha, githubadapter.CommitStatusRequest{
		State:       string(outcome.State),
		Description: outcome.Description,
		Context:     statusContext,
		TargetURL:   outcome.TargetURL,
	})
}

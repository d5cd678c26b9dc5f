package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matynz/danger/internal/adapter/httpclient"
)

const (
	defaultBaseURL        = "https://api.github.com"
	defaultTimeout        = 30 * time.Second
	defaultMaxRetries     = 3
	defaultInitialBackoff = 2 * time.Second

	// commentsPerPage is the maximum page size GitHub allows for issue comments.
	commentsPerPage = 100

	// maxCommentPages bounds how many pages of comments we fetch when looking
	// for a previous report. 10 pages * 100 per page = 1000 comments max.
	maxCommentPages = 10
)

// Client is an HTTP client for the GitHub Issues and Statuses APIs.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
	retryConf  httpclient.RetryConfig
	logger     httpclient.Logger
	metrics    httpclient.Metrics
}

// NewClient creates a new GitHub API client with the given token.
// The token should be a GitHub personal access token or GITHUB_TOKEN from Actions.
func NewClient(token string) *Client {
	return &Client{
		token:      token,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		retryConf: httpclient.RetryConfig{
			MaxRetries:     defaultMaxRetries,
			InitialBackoff: defaultInitialBackoff,
			MaxBackoff:     32 * time.Second,
			Multiplier:     2.0,
		},
	}
}

// SetBaseURL sets a custom base URL (for testing or GitHub Enterprise).
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// SetTimeout sets the HTTP timeout.
func (c *Client) SetTimeout(timeout time.Duration) {
	c.httpClient.Timeout = timeout
}

// SetMaxRetries sets the maximum number of retry attempts.
func (c *Client) SetMaxRetries(maxRetries int) {
	c.retryConf.MaxRetries = maxRetries
}

// SetInitialBackoff sets the initial backoff duration for retries.
func (c *Client) SetInitialBackoff(backoff time.Duration) {
	c.retryConf.InitialBackoff = backoff
}

// SetLogger wires a structured logger into the client.
func (c *Client) SetLogger(logger httpclient.Logger) {
	c.logger = logger
}

// SetMetrics wires a metrics recorder into the client.
func (c *Client) SetMetrics(metrics httpclient.Metrics) {
	c.metrics = metrics
}

// GetPullRequest fetches pull request metadata.
func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, pullNumber int) (*PullRequestResponse, error) {
	path := fmt.Sprintf("/repos/%s/%s/pulls/%d", owner, repo, pullNumber)

	var pr PullRequestResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &pr); err != nil {
		return nil, err
	}
	return &pr, nil
}

// ListIssueComments fetches all comments on the PR's associated issue,
// oldest first. Pagination is followed until the API returns a short page.
func (c *Client) ListIssueComments(ctx context.Context, owner, repo string, pullNumber int) ([]IssueComment, error) {
	var all []IssueComment

	for page := 1; page <= maxCommentPages; page++ {
		path := fmt.Sprintf("/repos/%s/%s/issues/%d/comments?per_page=%d&page=%d",
			owner, repo, pullNumber, commentsPerPage, page)

		var batch []IssueComment
		if err := c.doJSON(ctx, http.MethodGet, path, nil, &batch); err != nil {
			return nil, err
		}

		all = append(all, batch...)
		if len(batch) < commentsPerPage {
			break
		}
	}

	return all, nil
}

// CreateIssueComment posts a new comment on the PR's associated issue.
func (c *Client) CreateIssueComment(ctx context.Context, owner, repo string, pullNumber int, body string) (*IssueComment, error) {
	path := fmt.Sprintf("/repos/%s/%s/issues/%d/comments", owner, repo, pullNumber)

	payload, err := json.Marshal(CreateCommentRequest{Body: body})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var comment IssueComment
	if err := c.doJSON(ctx, http.MethodPost, path, payload, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateIssueComment replaces the body of an existing issue comment.
func (c *Client) UpdateIssueComment(ctx context.Context, owner, repo string, commentID int64, body string) (*IssueComment, error) {
	path := fmt.Sprintf("/repos/%s/%s/issues/comments/%d", owner, repo, commentID)

	payload, err := json.Marshal(CreateCommentRequest{Body: body})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var comment IssueComment
	if err := c.doJSON(ctx, http.MethodPatch, path, payload, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteIssueComment deletes an issue comment.
func (c *Client) DeleteIssueComment(ctx context.Context, owner, repo string, commentID int64) error {
	path := fmt.Sprintf("/repos/%s/%s/issues/comments/%d", owner, repo, commentID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// CreateCommitStatus submits a commit status for the given SHA.
// Returns a typed permission error when the token lacks write access.
func (c *Client) CreateCommitStatus(ctx context.Context, owner, repo, sha string, status CommitStatusRequest) error {
	path := fmt.Sprintf("/repos/%s/%s/statuses/%s", owner, repo, sha)

	payload, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	return c.doJSON(ctx, http.MethodPost, path, payload, nil)
}

// doJSON executes one API call with retry, logging and metrics, decoding the
// response into out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, payload []byte, out interface{}) error {
	url := c.baseURL + path
	start := time.Now()

	if c.logger != nil {
		c.logger.LogRequest(ctx, httpclient.RequestLog{
			API:       apiName,
			Method:    method,
			Path:      path,
			Timestamp: start,
			Token:     c.token,
		})
	}
	if c.metrics != nil {
		c.metrics.RecordRequest(apiName, method+" "+path)
	}

	var resp *http.Response
	err := httpclient.RetryWithBackoff(ctx, func(ctx context.Context) error {
		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}

		req, reqErr := http.NewRequestWithContext(ctx, method, url, reqBody)
		if reqErr != nil {
			return &httpclient.Error{
				Type:      httpclient.ErrTypeUnknown,
				Message:   reqErr.Error(),
				Retryable: false,
				API:       apiName,
			}
		}

		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/vnd.github+json")
		req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		var callErr error
		resp, callErr = c.httpClient.Do(req)
		if callErr != nil {
			// Could be timeout or network error
			return &httpclient.Error{
				Type:      httpclient.ErrTypeTimeout,
				Message:   callErr.Error(),
				Retryable: true,
				API:       apiName,
			}
		}

		if resp.StatusCode >= 400 {
			bodyBytes, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				return &httpclient.Error{
					Type:       httpclient.ErrTypeUnknown,
					Message:    fmt.Sprintf("HTTP %d (failed to read response: %v)", resp.StatusCode, readErr),
					StatusCode: resp.StatusCode,
					Retryable:  resp.StatusCode >= 500,
					API:        apiName,
				}
			}
			return MapHTTPError(resp.StatusCode, bodyBytes)
		}

		return nil
	}, c.retryConf)

	duration := time.Since(start)

	if err != nil {
		c.observeError(ctx, method, path, start, duration, err)
		return err
	}
	defer resp.Body.Close()

	if c.logger != nil {
		c.logger.LogResponse(ctx, httpclient.ResponseLog{
			API:        apiName,
			Method:     method,
			Path:       path,
			Timestamp:  start,
			Duration:   duration,
			StatusCode: resp.StatusCode,
		})
	}
	if c.metrics != nil {
		c.metrics.RecordDuration(apiName, method+" "+path, duration)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func (c *Client) observeError(ctx context.Context, method, path string, start time.Time, duration time.Duration, err error) {
	var errType httpclient.ErrorType = httpclient.ErrTypeUnknown
	var statusCode int
	retryable := false
	if apiErr, ok := err.(*httpclient.Error); ok {
		errType = apiErr.Type
		statusCode = apiErr.StatusCode
		retryable = apiErr.Retryable
	}

	if c.logger != nil {
		c.logger.LogError(ctx, httpclient.ErrorLog{
			API:        apiName,
			Method:     method,
			Path:       path,
			Timestamp:  start,
			Duration:   duration,
			Error:      err,
			ErrorType:  errType,
			StatusCode: statusCode,
			Retryable:  retryable,
		})
	}
	if c.metrics != nil {
		c.metrics.RecordError(apiName, method+" "+path, errType)
	}
}

package github

// GitHub Issues and Commit Statuses API types.
// See: https://docs.github.com/en/rest/issues/comments
// and: https://docs.github.com/en/rest/commits/statuses

// IssueComment is a comment on a pull request's associated issue.
type IssueComment struct {
	ID      int64  `json:"id"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
	User    User   `json:"user"`
}

// User represents a GitHub user in API responses.
type User struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
	Type  string `json:"type"` // "User" or "Bot"
}

// CreateCommentRequest is the request body for
// POST /repos/{owner}/{repo}/issues/{issue_number}/comments.
type CreateCommentRequest struct {
	Body string `json:"body"`
}

// PullRequestResponse is the subset of
// GET /repos/{owner}/{repo}/pulls/{pull_number} this tool consumes.
type PullRequestResponse struct {
	Number  int    `json:"number"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
	Head    Ref    `json:"head"`
	Base    Ref    `json:"base"`
}

// Ref is one side of a pull request.
type Ref struct {
	SHA  string     `json:"sha"`
	Repo Repository `json:"repo"`
}

// Repository is the repository metadata embedded in a PR ref.
type Repository struct {
	FullName string `json:"full_name"`
	Private  bool   `json:"private"`
}

// CommitStatusRequest is the request body for
// POST /repos/{owner}/{repo}/statuses/{sha}.
type CommitStatusRequest struct {
	// State is one of: error, failure, pending, success.
	State string `json:"state"`

	// Description is a short summary of the status.
	Description string `json:"description"`

	// Context distinguishes this status from other checks on the commit.
	Context string `json:"context"`

	// TargetURL links the status to the report that produced it.
	TargetURL string `json:"target_url,omitempty"`
}

// GitHubErrorResponse represents an error response from the GitHub API.
type GitHubErrorResponse struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url"`
	Errors           []struct {
		Resource string `json:"resource"`
		Field    string `json:"field"`
		Code     string `json:"code"`
		Message  string `json:"message"`
	} `json:"errors,omitempty"`
}

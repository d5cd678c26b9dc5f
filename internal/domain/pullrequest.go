package domain

// PullRequest carries the metadata one reconciliation pass needs. It is
// fetched fresh from the API at the start of a run and never written back.
type PullRequest struct {
	Owner       string
	Repo        string
	Number      int
	HeadSHA     string
	BaseSHA     string
	Description string
	Private     bool
}

// Comment is an issue comment attached to a pull request.
type Comment struct {
	ID      int64
	Author  string
	Body    string
	HTMLURL string
}

// StatusState is the commit-status outcome reported for a run.
type StatusState string

const (
	StatusSuccess StatusState = "success"
	StatusFailure StatusState = "failure"
)

// StatusOutcome is the commit status derived from a run's findings.
type StatusOutcome struct {
	State       StatusState
	Description string
	TargetURL   string
}

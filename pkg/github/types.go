package github

// PullRequest holds the PR properties the merge pipeline consumes.
type PullRequest struct {
	Number    int
	Title     string
	Body      string
	State     string // "open", "closed"
	Merged    bool
	Submitter string
	HTMLURL   string
}

// Commit is one commit on a pull request, in branch order.
type Commit struct {
	SHA     string
	Message string
}

// Review is a submitted pull request review.
type Review struct {
	Reviewer string
	State    string // "APPROVED", "CHANGES_REQUESTED", "COMMENTED", ...
}

// IssueEvent is a label transition on the PR's issue timeline. Only
// labeled/unlabeled events are surfaced.
type IssueEvent struct {
	Actor string
	Event string // "labeled" or "unlabeled"
	Label string
}

// User is a GitHub profile. Name and Email may be empty when the user
// has not made them public.
type User struct {
	Login string
	Name  string
	Email string
}

// MergeResult reports the outcome of a merge call.
type MergeResult struct {
	SHA     string
	Merged  bool
	Message string
}

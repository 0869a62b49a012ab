// Package merge implements the squash-merge pipeline: gathering pull
// request state, extracting tickets and candidate message lines,
// composing the commit message, and driving the interactive
// edit/confirm loop that gates the merge call.
package merge

import (
	"github.com/sqmerge/sqmerge/pkg/github"
)

// ApprovalLabel marks a PR as approved for integration. The approver
// is the last user to apply it without it being removed afterwards.
const ApprovalLabel = "integration-approval"

// PRContext aggregates everything gathered about a pull request. It is
// built once per invocation, filled additively as each stage completes,
// and discarded at process exit.
type PRContext struct {
	Owner  string
	Repo   string
	Number int

	Submitter string
	Title     string
	Commits   []github.Commit

	// Reviewers holds review-author logins in ascending lexicographic
	// order, never including the submitter.
	Reviewers []string

	// Approver is the login resolved from label events, empty when the
	// PR carries no unrevoked approval. Never the submitter.
	Approver string

	// Tickets maps ticket id to its most recently seen full line;
	// TicketIDs preserves first-seen order for display.
	Tickets   map[string]string
	TicketIDs []string

	// Messages is the ordered, deduplicated sequence of candidate
	// commit-message body lines.
	Messages []string

	// Contacts maps every login referenced above (submitter,
	// reviewers, approver) to its display string.
	Contacts map[string]string

	// LastCommitSHA is the PR head commit, passed to the merge call as
	// its precondition.
	LastCommitSHA string

	// DiffURL links to the PR's file-diff view.
	DiffURL string
}

package merge

import (
	"context"
	"fmt"
	"sort"

	"github.com/sqmerge/sqmerge/pkg/github"
	"github.com/sqmerge/sqmerge/pkg/log"
)

// PRFetcher is the read surface of the GitHub API the gatherer uses.
type PRFetcher interface {
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error)
	ListCommits(ctx context.Context, owner, repo string, number int) ([]github.Commit, error)
	ListReviews(ctx context.Context, owner, repo string, number int) ([]github.Review, error)
	ListLabelEvents(ctx context.Context, owner, repo string, number int) ([]github.IssueEvent, error)
}

// Gatherer fetches and reduces pull request state into a PRContext.
type Gatherer struct {
	client   PRFetcher
	resolver *ContactResolver

	// allLines keeps every commit-message line instead of only
	// ticket-bearing ones.
	allLines bool
}

// NewGatherer creates a gatherer.
func NewGatherer(client PRFetcher, resolver *ContactResolver, allLines bool) *Gatherer {
	return &Gatherer{client: client, resolver: resolver, allLines: allLines}
}

// Gather runs the sequential read pipeline: PR properties, commits,
// reviews, label events, extraction, then the concurrent contact
// resolution. An open PR is a precondition; anything else fails before
// any file is written.
func (g *Gatherer) Gather(ctx context.Context, owner, repo string, number int) (*PRContext, error) {
	pr, err := g.client.GetPullRequest(ctx, owner, repo, number)
	if err != nil {
		return nil, err
	}
	if pr.State != "open" {
		return nil, fmt.Errorf("%s/%s#%d is not open (state %q)", owner, repo, number, pr.State)
	}

	commits, err := g.client.ListCommits(ctx, owner, repo, number)
	if err != nil {
		return nil, err
	}
	if len(commits) == 0 {
		return nil, fmt.Errorf("%s/%s#%d has no commits", owner, repo, number)
	}

	reviews, err := g.client.ListReviews(ctx, owner, repo, number)
	if err != nil {
		return nil, err
	}

	events, err := g.client.ListLabelEvents(ctx, owner, repo, number)
	if err != nil {
		return nil, err
	}

	prc := &PRContext{
		Owner:         owner,
		Repo:          repo,
		Number:        number,
		Submitter:     pr.Submitter,
		Title:         pr.Title,
		Commits:       commits,
		Reviewers:     reviewerLogins(reviews, pr.Submitter),
		Approver:      resolveApprover(events, pr.Submitter),
		LastCommitSHA: commits[len(commits)-1].SHA,
		DiffURL:       fmt.Sprintf("https://github.com/%s/%s/pull/%d/files", owner, repo, number),
	}

	ex := Extract(pr.Title, pr.Body, commits, g.allLines)
	prc.Tickets = ex.Tickets
	prc.TicketIDs = ex.TicketIDs
	prc.Messages = ex.Messages

	logins := append([]string{}, prc.Reviewers...)
	if prc.Approver != "" {
		logins = append(logins, prc.Approver)
	}
	if prc.Submitter != "" {
		logins = append(logins, prc.Submitter)
	}
	contacts, err := g.resolver.Resolve(ctx, dedupe(logins))
	if err != nil {
		return nil, fmt.Errorf("resolving contacts: %w", err)
	}
	prc.Contacts = contacts

	log.Debugw("gathered pull request state",
		"submitter", prc.Submitter,
		"reviewers", prc.Reviewers,
		"approver", prc.Approver,
		"tickets", prc.TicketIDs,
		"head", prc.LastCommitSHA)

	return prc, nil
}

// reviewerLogins reduces reviews to a sorted set of logins, excluding
// the submitter.
func reviewerLogins(reviews []github.Review, submitter string) []string {
	set := make(map[string]bool)
	for _, review := range reviews {
		if review.Reviewer == "" || review.Reviewer == submitter {
			continue
		}
		set[review.Reviewer] = true
	}

	logins := make([]string, 0, len(set))
	for login := range set {
		logins = append(logins, login)
	}
	sort.Strings(logins)
	return logins
}

// resolveApprover replays the label event stream and returns the actor
// of the last approval-label application that was not subsequently
// revoked. The submitter can never approve their own PR.
func resolveApprover(events []github.IssueEvent, submitter string) string {
	approver := ""
	for _, event := range events {
		if event.Label != ApprovalLabel {
			continue
		}
		switch event.Event {
		case "labeled":
			approver = event.Actor
		case "unlabeled":
			approver = ""
		}
	}
	if approver == submitter {
		return ""
	}
	return approver
}

func dedupe(logins []string) []string {
	seen := make(map[string]bool, len(logins))
	out := logins[:0]
	for _, login := range logins {
		if seen[login] {
			continue
		}
		seen[login] = true
		out = append(out, login)
	}
	return out
}

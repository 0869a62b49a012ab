package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v68/github"
)

// GetPullRequest fetches the properties of a single pull request.
func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, number int) (*PullRequest, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch PR: %w", normalizeError(err))
	}

	submitter := ""
	if user := pr.GetUser(); user != nil {
		submitter = user.GetLogin()
	}

	return &PullRequest{
		Number:    pr.GetNumber(),
		Title:     pr.GetTitle(),
		Body:      pr.GetBody(),
		State:     pr.GetState(),
		Merged:    pr.GetMerged(),
		Submitter: submitter,
		HTMLURL:   pr.GetHTMLURL(),
	}, nil
}

// ListCommits fetches the commits on a pull request with pagination,
// preserving the API's oldest-first order.
func (c *Client) ListCommits(ctx context.Context, owner, repo string, number int) ([]Commit, error) {
	opts := &github.ListOptions{PerPage: 100}

	var all []Commit
	for {
		commits, resp, err := c.gh.PullRequests.ListCommits(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch PR commits: %w", normalizeError(err))
		}

		for _, rc := range commits {
			all = append(all, Commit{
				SHA:     rc.GetSHA(),
				Message: rc.GetCommit().GetMessage(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// ListReviews fetches all submitted reviews on a pull request with
// pagination.
func (c *Client) ListReviews(ctx context.Context, owner, repo string, number int) ([]Review, error) {
	opts := &github.ListOptions{PerPage: 100}

	var all []Review
	for {
		reviews, resp, err := c.gh.PullRequests.ListReviews(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch PR reviews: %w", normalizeError(err))
		}

		for _, review := range reviews {
			reviewer := ""
			if user := review.GetUser(); user != nil {
				reviewer = user.GetLogin()
			}
			all = append(all, Review{
				Reviewer: reviewer,
				State:    review.GetState(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// ListLabelEvents fetches the labeled/unlabeled events on a pull
// request's issue timeline with pagination, preserving event order.
// Other event kinds are dropped here so the caller only sees label
// transitions.
func (c *Client) ListLabelEvents(ctx context.Context, owner, repo string, number int) ([]IssueEvent, error) {
	opts := &github.ListOptions{PerPage: 100}

	var all []IssueEvent
	for {
		events, resp, err := c.gh.Issues.ListIssueEvents(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch issue events: %w", normalizeError(err))
		}

		for _, event := range events {
			kind := event.GetEvent()
			if kind != "labeled" && kind != "unlabeled" {
				continue
			}
			actor := ""
			if event.GetActor() != nil {
				actor = event.GetActor().GetLogin()
			}
			all = append(all, IssueEvent{
				Actor: actor,
				Event: kind,
				Label: event.GetLabel().GetName(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// GetUser fetches a user's public profile.
func (c *Client) GetUser(ctx context.Context, login string) (*User, error) {
	user, _, err := c.gh.Users.Get(ctx, login)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", login, normalizeError(err))
	}

	return &User{
		Login: user.GetLogin(),
		Name:  user.GetName(),
		Email: user.GetEmail(),
	}, nil
}

// SquashMerge merges the pull request with the squash method. The sha
// is the expected head commit; GitHub rejects the merge if the branch
// has moved. An accepted call that still reports merged: false is
// surfaced as a MergeRejectedError carrying the API's reason text.
func (c *Client) SquashMerge(ctx context.Context, owner, repo string, number int, sha, title, message string) (*MergeResult, error) {
	opts := &github.PullRequestOptions{
		SHA:         sha,
		MergeMethod: "squash",
		CommitTitle: title,
	}

	result, _, err := c.gh.PullRequests.Merge(ctx, owner, repo, number, message, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to merge PR: %w", normalizeError(err))
	}

	if !result.GetMerged() {
		return nil, &MergeRejectedError{Reason: result.GetMessage()}
	}

	return &MergeResult{
		SHA:     result.GetSHA(),
		Merged:  result.GetMerged(),
		Message: result.GetMessage(),
	}, nil
}

// Command sqmerge squash-merges a GitHub pull request, composing a
// commit message with reviewer and approver attribution and ticket
// references pulled from the PR's commits.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sqmerge/sqmerge/pkg/config"
	"github.com/sqmerge/sqmerge/pkg/github"
	"github.com/sqmerge/sqmerge/pkg/gitrepo"
	"github.com/sqmerge/sqmerge/pkg/log"
	"github.com/sqmerge/sqmerge/pkg/merge"
)

var (
	repoPath string
	verbose  bool
	allLines bool
)

var rootCmd = &cobra.Command{
	Use:   "sqmerge <pr-number>",
	Short: "Squash and merge a GitHub pull request",
	Long: `sqmerge squash-merges an open pull request of the repository named by
the origin remote of a local checkout. It composes a commit message from
the PR title, ticket-bearing commit-message lines, and reviewer/approver
attribution, then opens it in your editor for review before merging.`,
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Usage only helps for argument mistakes; once the pipeline
		// runs, errors stand on their own.
		cmd.SilenceUsage = true
		return run(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.Flags().StringVarP(&repoPath, "repo", "C", ".", "path to the local checkout whose origin remote names the repository")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().BoolVarP(&allLines, "all-lines", "a", false, "include every commit-message line, not only ticket-bearing ones")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if errors.Is(err, merge.ErrAborted) {
			// User-requested abort: non-zero exit, but not an error
			// anyone needs to investigate.
			fmt.Fprintln(os.Stderr, "merge aborted")
		} else {
			fmt.Fprintf(os.Stderr, "sqmerge: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, prArg string) error {
	number, err := strconv.Atoi(prArg)
	if err != nil || number <= 0 {
		return fmt.Errorf("invalid PR number %q", prArg)
	}

	log.Init(log.Config{Verbose: verbose})
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	owner, repo, err := gitrepo.Origin(repoPath)
	if err != nil {
		return err
	}
	log.Debugw("resolved repository", "owner", owner, "repo", repo, "user", cfg.User)

	client, err := github.NewClient(cfg.Token)
	if err != nil {
		return err
	}

	resolver := merge.NewContactResolver(client, cfg.EmailOverrides)
	gatherer := merge.NewGatherer(client, resolver, allLines)
	prc, err := gatherer.Gather(ctx, owner, repo, number)
	if err != nil {
		return err
	}

	reviewerContacts := make(map[string]string, len(prc.Reviewers))
	for _, login := range prc.Reviewers {
		reviewerContacts[login] = prc.Contacts[login]
	}
	approverContact := ""
	if prc.Approver != "" {
		approverContact = prc.Contacts[prc.Approver]
	}

	content := merge.Compose(merge.ComposeInput{
		Title:     prc.Title,
		Number:    prc.Number,
		Messages:  prc.Messages,
		Reviewers: reviewerContacts,
		Approver:  approverContact,
	})

	scratchPath, err := merge.WriteScratch(content)
	if err != nil {
		return err
	}
	defer os.Remove(scratchPath)

	loop := &merge.Loop{
		Editor:   merge.ExecEditor{BuildArgv: cfg.EditorCommand},
		Prompter: merge.NewStdinPrompter(),
		Out:      os.Stdout,
	}
	outcome, err := loop.Run(prc, scratchPath)
	if err != nil {
		return err
	}

	result, err := client.SquashMerge(ctx, owner, repo, number, prc.LastCommitSHA, outcome.Title, outcome.Body)
	if err != nil {
		return err
	}

	fmt.Printf("merged %s/%s#%d as %s\n", owner, repo, number, result.SHA)
	return nil
}

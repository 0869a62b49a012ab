package merge

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sqmerge/sqmerge/pkg/log"
)

// ErrAborted is returned when the user quits the acceptance loop. It
// is a normal termination path: the process exits non-zero without the
// merge endpoint ever being called.
var ErrAborted = errors.New("merge aborted")

// EditorRunner invokes the external editor on the scratch file. The
// editor's exit status alone gates re-parsing.
type EditorRunner interface {
	Edit(path string) error
}

// Prompter asks the user one question and returns the raw answer. An
// error (closed input stream included) aborts the loop.
type Prompter interface {
	Ask(prompt string) (string, error)
}

// Outcome is the accepted commit message.
type Outcome struct {
	Title string
	Body  string
}

// Loop drives the edit, re-parse, confirm cycle over the scratch file.
// The loop exclusively owns the file for its lifetime; nobody else
// writes to it.
type Loop struct {
	Editor   EditorRunner
	Prompter Prompter
	Out      io.Writer
}

type loopState int

const (
	stateEditing loopState = iota
	stateAwaitingAnswer
	stateAccepted
	stateAborted
)

// Run executes the acceptance loop until the user accepts or aborts.
// The editor is always invoked before the first prompt so a freshly
// generated message can be tweaked before the first accept/reject
// decision. Editor failure and scratch re-read failure are fatal.
func (l *Loop) Run(prc *PRContext, scratchPath string) (Outcome, error) {
	state := stateEditing
	var title, body string

	for {
		switch state {
		case stateEditing:
			if err := l.Editor.Edit(scratchPath); err != nil {
				return Outcome{}, fmt.Errorf("editor failed: %w", err)
			}
			data, err := os.ReadFile(scratchPath)
			if err != nil {
				return Outcome{}, fmt.Errorf("reading scratch file back: %w", err)
			}
			title, body = parseMessage(string(data))
			l.present(prc, title, body)
			state = stateAwaitingAnswer

		case stateAwaitingAnswer:
			answer, err := l.Prompter.Ask("Merge? [y]es, [e]dit, [q]uit: ")
			if err != nil {
				log.Debugf("prompt failed: %v", err)
				state = stateAborted
				continue
			}
			switch strings.ToLower(strings.TrimSpace(answer)) {
			case "y", "yes":
				state = stateAccepted
			case "e", "edit":
				state = stateEditing
			case "q", "quit":
				state = stateAborted
			default:
				fmt.Fprintf(l.Out, "unrecognized answer %q\n", answer)
			}

		case stateAccepted:
			return Outcome{Title: title, Body: body}, nil

		case stateAborted:
			return Outcome{}, ErrAborted
		}
	}
}

// present shows the current message plus the context needed to judge
// it: the commits being squashed, the diff link, and any tickets
// collected so far.
func (l *Loop) present(prc *PRContext, title, body string) {
	fmt.Fprintf(l.Out, "\n%s/%s#%d squash merge\n\n", prc.Owner, prc.Repo, prc.Number)
	fmt.Fprintf(l.Out, "title: %s\n\n", title)

	// One trailing newline would render as a misleading blank line.
	fmt.Fprintln(l.Out, strings.TrimSuffix(body, "\n"))
	fmt.Fprintln(l.Out)

	fmt.Fprintf(l.Out, "%d commit(s):\n", len(prc.Commits))
	for _, commit := range prc.Commits {
		fmt.Fprintf(l.Out, "  %s %s\n", commit.SHA, subjectLine(commit.Message))
	}
	fmt.Fprintf(l.Out, "diff: %s\n", prc.DiffURL)
	if len(prc.TicketIDs) > 0 {
		fmt.Fprintf(l.Out, "tickets: %s\n", strings.Join(prc.TicketIDs, ", "))
	}
}

// subjectLine returns the first line of a commit message.
func subjectLine(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		return message[:idx]
	}
	return message
}

package merge

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// ComposeInput carries everything the composer needs to produce the
// initial commit message.
type ComposeInput struct {
	Title    string
	Number   int
	Messages []string

	// Reviewers maps login to contact string. Output lines are ordered
	// by login, not by contact, for determinism.
	Reviewers map[string]string

	// Approver is a contact string; empty means no approval line.
	Approver string
}

// Compose assembles the canonical commit-message text. The header line
// carries the PR number suffix that ties the squashed commit back to
// its PR.
func Compose(in ComposeInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (#%d)\n\n", in.Title, in.Number)

	messages := in.Messages
	if len(messages) > 0 && messages[0] == in.Title {
		messages = messages[1:]
	}
	for len(messages) > 0 && messages[0] == "" {
		messages = messages[1:]
	}
	if len(messages) > 0 {
		b.WriteString(strings.Join(messages, "\n"))
		b.WriteString("\n")
	}

	logins := make([]string, 0, len(in.Reviewers))
	for login := range in.Reviewers {
		logins = append(logins, login)
	}
	sort.Strings(logins)
	for _, login := range logins {
		fmt.Fprintf(&b, "Reviewed by: %s\n", in.Reviewers[login])
	}

	if in.Approver != "" {
		fmt.Fprintf(&b, "Approved by: %s\n", in.Approver)
	}

	return b.String()
}

// WriteScratch persists the message to a newly allocated scratch file
// and returns its path. The file is flushed and closed before the path
// is returned so the editor sees a complete file. The caller owns the
// file and must remove it on every exit path.
func WriteScratch(content string) (string, error) {
	f, err := os.CreateTemp("", "sqmerge-*.txt")
	if err != nil {
		return "", fmt.Errorf("creating scratch file: %w", err)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing scratch file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("closing scratch file: %w", err)
	}

	return f.Name(), nil
}

// parseMessage splits commit-message text into title and body: the
// first line is the title, exactly one blank separator line after it
// is skipped, and everything else is the body.
func parseMessage(content string) (title, body string) {
	lines := strings.Split(content, "\n")
	title = lines[0]

	rest := lines[1:]
	if len(rest) > 0 && rest[0] == "" {
		rest = rest[1:]
	}
	body = strings.Join(rest, "\n")
	return title, body
}

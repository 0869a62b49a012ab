package merge

import (
	"regexp"
	"strings"

	"github.com/sqmerge/sqmerge/pkg/github"
)

// Ticket-bearing lines start with an identifier followed by a space.
// The project-key form is checked first; a line that could satisfy
// both patterns is classified as a project-key ticket.
var (
	projectTicketPattern   = regexp.MustCompile(`^[A-Z]+-[0-9]+ `)
	crossRepoTicketPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+/[A-Za-z0-9_-]+#[0-9]+ `)
)

// Extraction is the result of scanning a PR's text for tickets and
// candidate commit-message lines.
type Extraction struct {
	// Tickets maps ticket id to the full line it was last seen on.
	// Later occurrences in scan order overwrite earlier ones.
	Tickets map[string]string

	// TicketIDs preserves first-seen insertion order of the ids.
	TicketIDs []string

	// Messages is the ordered, deduplicated sequence of commit-message
	// lines to offer for the final body.
	Messages []string
}

// Extract scans the PR title, the free-text description, and every
// commit message, in that order, with commits oldest-first as the API
// returns them. Title and description lines only contribute tickets;
// commit lines also feed the message sequence. When allLines is false
// only ticket-bearing commit lines are kept.
func Extract(title, description string, commits []github.Commit, allLines bool) Extraction {
	ex := Extraction{Tickets: make(map[string]string)}
	seen := make(map[string]bool)

	record := func(line string) bool {
		id := ticketID(line)
		if id == "" {
			return false
		}
		if _, known := ex.Tickets[id]; !known {
			ex.TicketIDs = append(ex.TicketIDs, id)
		}
		ex.Tickets[id] = line
		return true
	}

	record(strings.TrimSpace(title))
	for _, line := range strings.Split(description, "\n") {
		record(strings.TrimSpace(line))
	}

	for _, commit := range commits {
		for _, line := range strings.Split(commit.Message, "\n") {
			trimmed := strings.TrimSpace(line)
			qualifies := record(trimmed)
			if !qualifies && !allLines {
				continue
			}
			if seen[trimmed] {
				continue
			}
			seen[trimmed] = true
			ex.Messages = append(ex.Messages, trimmed)
		}
	}

	// A PR title mechanically duplicated as the first commit subject
	// shows up as two identical leading entries; keep only one.
	if len(ex.Messages) >= 2 && ex.Messages[0] == ex.Messages[1] {
		ex.Messages = ex.Messages[1:]
	}

	return ex
}

// ticketID returns the ticket identifier a line starts with, or ""
// when the line is not ticket-bearing.
func ticketID(line string) string {
	if m := projectTicketPattern.FindString(line); m != "" {
		return strings.TrimSuffix(m, " ")
	}
	if m := crossRepoTicketPattern.FindString(line); m != "" {
		return strings.TrimSuffix(m, " ")
	}
	return ""
}

package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

// newTestClient starts an httptest server with the given mux and
// returns a Client pointed at it.
func newTestClient(t *testing.T, mux *http.ServeMux) *Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := NewClient("",
		WithBaseURL(server.URL),
		WithHTTPClient(server.Client()),
	)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestGetPullRequest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/pulls/5", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"number": 5,
			"title": "JOYENT-1 fix thing",
			"body": "some description",
			"state": "open",
			"user": {"login": "sam"},
			"html_url": "https://github.com/acme/widgets/pull/5"
		}`)
	})

	pr, err := newTestClient(t, mux).GetPullRequest(context.Background(), "acme", "widgets", 5)
	if err != nil {
		t.Fatalf("GetPullRequest() error = %v", err)
	}

	want := &PullRequest{
		Number:    5,
		Title:     "JOYENT-1 fix thing",
		Body:      "some description",
		State:     "open",
		Submitter: "sam",
		HTMLURL:   "https://github.com/acme/widgets/pull/5",
	}
	if !reflect.DeepEqual(pr, want) {
		t.Errorf("GetPullRequest() = %+v, want %+v", pr, want)
	}
}

func TestGetPullRequest_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/pulls/5", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	})

	_, err := newTestClient(t, mux).GetPullRequest(context.Background(), "acme", "widgets", 5)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("GetPullRequest() error = %v, want APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
}

func TestListCommits_Pagination(t *testing.T) {
	mux := http.NewServeMux()
	var serverURL string
	mux.HandleFunc("/repos/acme/widgets/pulls/5/commits", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			fmt.Fprint(w, `[{"sha": "bbb", "commit": {"message": "add test"}}]`)
			return
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/repos/acme/widgets/pulls/5/commits?page=2>; rel="next"`, serverURL))
		fmt.Fprint(w, `[{"sha": "aaa", "commit": {"message": "JOYENT-1 fix thing"}}]`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	serverURL = server.URL

	client, err := NewClient("", WithBaseURL(server.URL), WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	commits, err := client.ListCommits(context.Background(), "acme", "widgets", 5)
	if err != nil {
		t.Fatalf("ListCommits() error = %v", err)
	}

	want := []Commit{
		{SHA: "aaa", Message: "JOYENT-1 fix thing"},
		{SHA: "bbb", Message: "add test"},
	}
	if !reflect.DeepEqual(commits, want) {
		t.Errorf("ListCommits() = %v, want %v", commits, want)
	}
}

func TestListReviews(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/pulls/5/reviews", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"user": {"login": "bob"}, "state": "APPROVED"},
			{"user": {"login": "alice"}, "state": "COMMENTED"}
		]`)
	})

	reviews, err := newTestClient(t, mux).ListReviews(context.Background(), "acme", "widgets", 5)
	if err != nil {
		t.Fatalf("ListReviews() error = %v", err)
	}

	want := []Review{
		{Reviewer: "bob", State: "APPROVED"},
		{Reviewer: "alice", State: "COMMENTED"},
	}
	if !reflect.DeepEqual(reviews, want) {
		t.Errorf("ListReviews() = %v, want %v", reviews, want)
	}
}

func TestListLabelEvents_FiltersOtherKinds(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/issues/5/events", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"event": "labeled", "actor": {"login": "x"}, "label": {"name": "integration-approval"}},
			{"event": "assigned", "actor": {"login": "y"}},
			{"event": "unlabeled", "actor": {"login": "z"}, "label": {"name": "integration-approval"}}
		]`)
	})

	events, err := newTestClient(t, mux).ListLabelEvents(context.Background(), "acme", "widgets", 5)
	if err != nil {
		t.Fatalf("ListLabelEvents() error = %v", err)
	}

	want := []IssueEvent{
		{Actor: "x", Event: "labeled", Label: "integration-approval"},
		{Actor: "z", Event: "unlabeled", Label: "integration-approval"},
	}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("ListLabelEvents() = %v, want %v", events, want)
	}
}

func TestGetUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/alice", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"login": "alice", "name": "Alice A", "email": "alice@example.com"}`)
	})

	user, err := newTestClient(t, mux).GetUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}

	want := &User{Login: "alice", Name: "Alice A", Email: "alice@example.com"}
	if !reflect.DeepEqual(user, want) {
		t.Errorf("GetUser() = %+v, want %+v", user, want)
	}
}

func TestSquashMerge(t *testing.T) {
	var gotBody map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/pulls/5/merge", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding merge request body: %v", err)
		}
		fmt.Fprint(w, `{"sha": "merged123", "merged": true, "message": "Pull Request successfully merged"}`)
	})

	result, err := newTestClient(t, mux).SquashMerge(context.Background(), "acme", "widgets", 5,
		"head456", "JOYENT-1 fix thing (#5)", "Reviewed by: Bob <b@example.com>\n")
	if err != nil {
		t.Fatalf("SquashMerge() error = %v", err)
	}
	if !result.Merged || result.SHA != "merged123" {
		t.Errorf("SquashMerge() = %+v", result)
	}

	wantBody := map[string]any{
		"merge_method":   "squash",
		"sha":            "head456",
		"commit_title":   "JOYENT-1 fix thing (#5)",
		"commit_message": "Reviewed by: Bob <b@example.com>\n",
	}
	for key, want := range wantBody {
		if gotBody[key] != want {
			t.Errorf("merge request body[%s] = %v, want %v", key, gotBody[key], want)
		}
	}
}

func TestSquashMerge_Rejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widgets/pulls/5/merge", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"merged": false, "message": "Head branch was modified"}`)
	})

	_, err := newTestClient(t, mux).SquashMerge(context.Background(), "acme", "widgets", 5, "head456", "t", "m")
	var rejected *MergeRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("SquashMerge() error = %v, want MergeRejectedError", err)
	}
	if rejected.Reason != "Head branch was modified" {
		t.Errorf("Reason = %q", rejected.Reason)
	}
}

// Package github wraps the go-github SDK with the handful of typed
// operations sqmerge needs: pull request properties, commits, reviews,
// issue label events, user profiles, and the squash merge itself.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

const defaultTimeout = 30 * time.Second

// Client is an authenticated GitHub API client.
type Client struct {
	gh *github.Client
}

// ClientOption configures a Client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// WithBaseURL points the client at a different API endpoint. Used by
// tests to target a local server.
func WithBaseURL(baseURL string) ClientOption {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithHTTPClient supplies a fully custom HTTP client, bypassing the
// oauth2 transport. Used by tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = hc
	}
}

// NewClient creates a GitHub client authenticated with the given
// token.
func NewClient(token string, opts ...ClientOption) (*Client, error) {
	options := clientOptions{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = options.timeout
	}

	gh := github.NewClient(httpClient)
	if options.baseURL != "" {
		base := options.baseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		parsed, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL %q: %w", options.baseURL, err)
		}
		gh.BaseURL = parsed
	}

	return &Client{gh: gh}, nil
}

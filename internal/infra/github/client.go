// Package github provides the GitHub GraphQL client used to list releases and
// resolve commits to pull request descriptions.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v52/github"
	"golang.org/x/oauth2"

	"github.com/runoshun/release-changelog/internal/domain"
)

// Client talks to the GitHub GraphQL API of a single repository.
// Fields are ordered to minimize memory padding.
type Client struct {
	api    *gh.Client
	logger domain.Logger
	repo   domain.Repository
}

// Ensure Client implements the release and pull request ports.
var (
	_ domain.ReleaseSource      = (*Client)(nil)
	_ domain.PullRequestFetcher = (*Client)(nil)
)

// Options configures a Client.
type Options struct {
	HTTPClient *http.Client  // Base transport (default: http.DefaultClient)
	Logger     domain.Logger // Receives per-commit lookup warnings (optional)
	Token      string        // Bearer token
	BaseURL    string        // API base URL (default: https://api.github.com/)
}

// NewClient creates a Client for repo authenticated with opts.Token.
func NewClient(ctx context.Context, repo domain.Repository, opts Options) (*Client, error) {
	if opts.Token == "" {
		return nil, domain.ErrMissingToken
	}
	if repo.Owner == "" || repo.Name == "" {
		return nil, domain.ErrRepositoryNotConfigured
	}

	if opts.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, opts.HTTPClient)
	}
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}))

	api := gh.NewClient(httpClient)
	if opts.BaseURL != "" {
		base, err := parseBaseURL(opts.BaseURL)
		if err != nil {
			return nil, err
		}
		api.BaseURL = base
	}

	logger := opts.Logger
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Client{api: api, repo: repo, logger: logger}, nil
}

// parseBaseURL parses an API base URL, ensuring the trailing slash go-github requires.
func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse github api url %q: %w", raw, err)
	}
	return u, nil
}

// graphqlRequest is the body of a GraphQL POST.
type graphqlRequest struct {
	Variables map[string]any `json:"variables,omitempty"`
	Query     string         `json:"query"`
}

// graphqlResponse is the envelope of a GraphQL reply.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors,omitempty"`
}

type graphqlError struct {
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// alias returns the top-level field below repository the error belongs to, if any.
func (e graphqlError) alias() string {
	if len(e.Path) < 2 {
		return ""
	}
	s, _ := e.Path[1].(string)
	return s
}

func joinErrors(errs []graphqlError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// query posts a GraphQL query and returns the decoded envelope.
// Transport, HTTP status and empty-data failures are returned as errors;
// field-level errors are left to the caller.
func (c *Client) query(ctx context.Context, q string, vars map[string]any) (*graphqlResponse, error) {
	req, err := c.api.NewRequest(http.MethodPost, "graphql", graphqlRequest{Query: q, Variables: vars})
	if err != nil {
		return nil, fmt.Errorf("build graphql request: %w", err)
	}

	var resp graphqlResponse
	if _, err := c.api.Do(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("github graphql request failed: %w", err)
	}
	if len(resp.Data) == 0 || string(resp.Data) == "null" {
		if len(resp.Errors) > 0 {
			return nil, fmt.Errorf("github graphql request failed: %s", joinErrors(resp.Errors))
		}
		return nil, fmt.Errorf("github graphql request failed: empty response")
	}
	return &resp, nil
}

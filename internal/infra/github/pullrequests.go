package github

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

type commitNode struct {
	AssociatedPullRequests struct {
		Nodes []struct {
			Body string `json:"body"`
		} `json:"nodes"`
	} `json:"associatedPullRequests"`
	Oid string `json:"oid"`
}

type commitsData struct {
	Repository map[string]*commitNode `json:"repository"`
}

func commitAlias(oid string) string {
	return "commit_" + oid
}

// pullRequestQuery builds one query that resolves every commit through an alias.
func pullRequestQuery(commits []string) string {
	var b strings.Builder
	b.WriteString("query($owner: String!, $name: String!) {\n  repository(owner: $owner, name: $name) {\n")
	for _, oid := range commits {
		fmt.Fprintf(&b, `    %s: object(oid: %q) {
      ... on Commit {
        oid
        associatedPullRequests(first: 1) {
          nodes {
            body
          }
        }
      }
    }
`, commitAlias(oid), oid)
	}
	b.WriteString("  }\n}")
	return b.String()
}

// FetchPullRequestBodies resolves all commits in a single GraphQL request and
// returns the body of each commit's first associated pull request, in commit order.
//
// Commits without a pull request are dropped. A commit GitHub cannot resolve
// (e.g. one that was never pushed) is logged and skipped instead of failing the batch.
func (c *Client) FetchPullRequestBodies(ctx context.Context, commits []string) ([]string, error) {
	if len(commits) == 0 {
		return nil, nil
	}

	resp, err := c.query(ctx, pullRequestQuery(commits), map[string]any{
		"owner": c.repo.Owner,
		"name":  c.repo.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch pull requests for %d commits: %w", len(commits), err)
	}

	failed := make(map[string]bool)
	for _, e := range resp.Errors {
		alias := e.alias()
		if alias == "" {
			return nil, fmt.Errorf("fetch pull requests: %s", e.Message)
		}
		failed[alias] = true
		c.logger.Warn("github", fmt.Sprintf("skipping %s: %s", strings.TrimPrefix(alias, "commit_"), e.Message))
	}

	var data commitsData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("decode pull requests: %w", err)
	}
	if data.Repository == nil {
		return nil, fmt.Errorf("fetch pull requests: repository %s not found", c.repo)
	}

	bodies := make([]string, 0, len(commits))
	for _, oid := range commits {
		alias := commitAlias(oid)
		node := data.Repository[alias]
		if node == nil {
			if !failed[alias] {
				c.logger.Debug("github", fmt.Sprintf("commit %s not found", oid))
			}
			continue
		}
		if len(node.AssociatedPullRequests.Nodes) == 0 {
			c.logger.Debug("github", fmt.Sprintf("commit %s has no pull request", oid))
			continue
		}
		bodies = append(bodies, node.AssociatedPullRequests.Nodes[0].Body)
	}
	return bodies, nil
}

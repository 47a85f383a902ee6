package github

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/runoshun/release-changelog/internal/domain"
)

const releasesQuery = `query($owner: String!, $name: String!, $first: Int!) {
  repository(owner: $owner, name: $name) {
    releases(first: $first, orderBy: {field: CREATED_AT, direction: DESC}) {
      nodes {
        name
        tag {
          name
        }
      }
    }
  }
}`

type releasesData struct {
	Repository *struct {
		Releases struct {
			Nodes []struct {
				Tag *struct {
					Name string `json:"name"`
				} `json:"tag"`
				Name string `json:"name"`
			} `json:"nodes"`
		} `json:"releases"`
	} `json:"repository"`
}

// ListReleases returns the most recent domain.MaxReleases releases, newest first.
// Releases without a tag are skipped.
func (c *Client) ListReleases(ctx context.Context) ([]domain.Release, error) {
	resp, err := c.query(ctx, releasesQuery, map[string]any{
		"owner": c.repo.Owner,
		"name":  c.repo.Name,
		"first": domain.MaxReleases,
	})
	if err != nil {
		return nil, fmt.Errorf("list releases of %s: %w", c.repo, err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("list releases of %s: %s", c.repo, joinErrors(resp.Errors))
	}

	var data releasesData
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		return nil, fmt.Errorf("decode releases: %w", err)
	}
	if data.Repository == nil {
		return nil, fmt.Errorf("list releases: repository %s not found", c.repo)
	}

	nodes := data.Repository.Releases.Nodes
	releases := make([]domain.Release, 0, len(nodes))
	for _, n := range nodes {
		if n.Tag == nil {
			continue
		}
		releases = append(releases, domain.Release{Name: n.Name, Version: n.Tag.Name})
	}
	return releases, nil
}

package domain

import (
	"fmt"
	"strings"
)

// Repository identifies a GitHub repository.
type Repository struct {
	Owner string
	Name  string
}

// String returns "owner/name".
func (r Repository) String() string {
	return r.Owner + "/" + r.Name
}

// ParseRepository parses "owner/name" as used by GITHUB_REPOSITORY.
func ParseRepository(s string) (Repository, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Repository{}, fmt.Errorf("%w: %q is not owner/name", ErrRepositoryNotConfigured, s)
	}
	return Repository{Owner: owner, Name: name}, nil
}

// RepositoryFromRemoteURL extracts owner and name from a git remote URL.
// Supported forms:
//
//	https://github.com/owner/name.git
//	ssh://git@github.com/owner/name.git
//	git@github.com:owner/name.git
func RepositoryFromRemoteURL(url string) (Repository, error) {
	u := strings.TrimSpace(url)
	u = strings.TrimSuffix(u, "/")
	u = strings.TrimSuffix(u, ".git")

	var path string
	if i := strings.Index(u, "://"); i >= 0 {
		rest := u[i+3:]
		j := strings.Index(rest, "/")
		if j < 0 {
			return Repository{}, fmt.Errorf("%w: cannot parse remote url %q", ErrRepositoryNotConfigured, url)
		}
		path = rest[j+1:]
	} else if i := strings.Index(u, ":"); i >= 0 {
		// scp-like syntax: git@host:owner/name
		path = u[i+1:]
	} else {
		return Repository{}, fmt.Errorf("%w: cannot parse remote url %q", ErrRepositoryNotConfigured, url)
	}

	parts := strings.Split(path, "/")
	if len(parts) < 2 {
		return Repository{}, fmt.Errorf("%w: cannot parse remote url %q", ErrRepositoryNotConfigured, url)
	}
	owner, name := parts[len(parts)-2], parts[len(parts)-1]
	if owner == "" || name == "" {
		return Repository{}, fmt.Errorf("%w: cannot parse remote url %q", ErrRepositoryNotConfigured, url)
	}
	return Repository{Owner: owner, Name: name}, nil
}

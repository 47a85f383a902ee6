package domain

import "errors"

// Domain errors.
var (
	ErrInvalidVersion          = errors.New("invalid version")
	ErrEmptyVersion            = errors.New("current version cannot be empty")
	ErrEmptyChannel            = errors.New("channel cannot be empty")
	ErrMissingToken            = errors.New("github token is not set (use GH_TOKEN or GITHUB_TOKEN)")
	ErrRepositoryNotConfigured = errors.New("github repository is not configured")
	ErrPreviousReleaseNotFound = errors.New("unable to find last release prior to the given release")
	ErrNotGitRepository        = errors.New("not a git repository (or any of the parent directories)")
	ErrUnknownFormat           = errors.New("unknown output format")
	ErrUnknownBackend          = errors.New("unknown git backend")
	ErrConfigExists            = errors.New("config file already exists")
)

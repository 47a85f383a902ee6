package app

import (
	"context"
	"fmt"
	"os"

	"github.com/runoshun/release-changelog/internal/domain"
	"github.com/runoshun/release-changelog/internal/usecase"
)

// GenerateChangelog builds the changelog of currentVersion on channel for the
// repository containing the working directory, authenticating with authToken.
// Configuration files and the environment still supply everything else.
func GenerateChangelog(ctx context.Context, authToken, currentVersion, channel string) (*domain.Changelog, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	c, err := New(cwd)
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.Close() }()

	if authToken != "" {
		c.AppConfig.Token = authToken
	}
	return c.GenerateChangelog(ctx, currentVersion, channel)
}

// GenerateChangelog runs the changelog pipeline with the container's ports.
func (c *Container) GenerateChangelog(ctx context.Context, currentVersion, channel string) (*domain.Changelog, error) {
	uc, err := c.GenerateChangelogUseCase(ctx)
	if err != nil {
		return nil, err
	}
	out, err := uc.Execute(ctx, usecase.GenerateChangelogInput{
		CurrentVersion: currentVersion,
		Channel:        channel,
	})
	if err != nil {
		return nil, err
	}
	return out.Changelog, nil
}

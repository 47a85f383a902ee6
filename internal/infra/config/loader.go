// Package config provides configuration loading functionality.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/release-changelog/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Environment variables read by the loader.
const (
	EnvToken          = "GH_TOKEN"
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvCurrentVersion = "CURRENT_VERSION"
	EnvChannel        = "CHANGELOG_CHANNEL"
	EnvAPIURL         = "GITHUB_API_URL"
	EnvRepository     = "GITHUB_REPOSITORY"
)

// DotEnvFileName is the optional env file read from the repository root.
const DotEnvFileName = ".env"

// Loader loads configuration from TOML files and the environment.
type Loader struct {
	lookupEnv     func(string) (string, bool)
	repoRoot      string // Path to the repository root
	globalConfDir string // Path to global config directory (e.g., ~/.config/release-changelog)
}

// NewLoader creates a new Loader.
func NewLoader(repoRoot string) *Loader {
	return NewLoaderWithGlobalDir(repoRoot, defaultGlobalConfigDir())
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(repoRoot, globalConfDir string) *Loader {
	return &Loader{
		repoRoot:      repoRoot,
		globalConfDir: globalConfDir,
		lookupEnv:     os.LookupEnv,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigDir(configHome)
}

// Load returns the merged configuration.
// Precedence: default <- global <- repo <- .env <- process environment.
func (l *Loader) Load() (*domain.Config, error) {
	cfg := domain.NewDefaultConfig()

	if l.globalConfDir != "" {
		if err := l.mergeFile(cfg, filepath.Join(l.globalConfDir, domain.GlobalConfigFileName)); err != nil {
			return nil, err
		}
	}
	if l.repoRoot != "" {
		if err := l.mergeFile(cfg, filepath.Join(l.repoRoot, domain.ConfigFileName)); err != nil {
			return nil, err
		}
	}

	dotenv, err := l.readDotEnv()
	if err != nil {
		return nil, err
	}
	l.applyEnv(cfg, dotenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile decodes path and merges its values into cfg. A missing file is
// not an error. Keys that do not map to a config field are recorded as warnings.
func (l *Loader) mergeFile(cfg *domain.Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}

	var overlay domain.Config
	if err := toml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	mergeConfigs(cfg, &overlay)
	cfg.Warnings = append(cfg.Warnings, unknownKeys(path, data)...)
	return nil
}

// mergeConfigs copies every value set in overlay onto base.
// Lists replace the base list as a whole.
func mergeConfigs(base, overlay *domain.Config) {
	setString(&base.GitHub.Owner, overlay.GitHub.Owner)
	setString(&base.GitHub.Repo, overlay.GitHub.Repo)
	setString(&base.GitHub.APIURL, overlay.GitHub.APIURL)
	setString(&base.Git.Remote, overlay.Git.Remote)
	setString(&base.Git.Backend, overlay.Git.Backend)
	setString(&base.Changelog.Channel, overlay.Changelog.Channel)
	setString(&base.Changelog.Format, overlay.Changelog.Format)
	setString(&base.Log.Level, overlay.Log.Level)
	setString(&base.Log.File, overlay.Log.File)
	if overlay.Changelog.SingleValueBuckets != nil {
		base.Changelog.SingleValueBuckets = overlay.Changelog.SingleValueBuckets
	}
	if len(overlay.Changelog.Tags) > 0 {
		base.Changelog.Tags = overlay.Changelog.Tags
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// unknownKeys decodes data strictly into a scratch config and reports the
// keys the decoder could not place.
func unknownKeys(path string, data []byte) []string {
	var scratch domain.Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var strict *toml.StrictMissingError
	if err := dec.Decode(&scratch); !errors.As(err, &strict) {
		return nil
	}

	warnings := make([]string, 0, len(strict.Errors))
	for _, e := range strict.Errors {
		warnings = append(warnings, fmt.Sprintf("unknown key in %s: %s", filepath.Base(path), strings.Join(e.Key(), ".")))
	}
	return warnings
}

// readDotEnv reads the repository .env file. The file is optional.
func (l *Loader) readDotEnv() (map[string]string, error) {
	if l.repoRoot == "" {
		return nil, nil
	}
	path := filepath.Join(l.repoRoot, DotEnvFileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return env, nil
}

// applyEnv overrides cfg with environment variables. The process environment
// wins over values read from .env.
func (l *Loader) applyEnv(cfg *domain.Config, dotenv map[string]string) {
	get := func(key string) string {
		if v, ok := l.lookupEnv(key); ok && v != "" {
			return v
		}
		return dotenv[key]
	}

	if v := get(EnvToken); v != "" {
		cfg.Token = v
	} else if v := get(EnvGitHubToken); v != "" {
		cfg.Token = v
	}
	if v := get(EnvCurrentVersion); v != "" {
		cfg.CurrentVersion = v
	}
	if v := get(EnvChannel); v != "" {
		cfg.Changelog.Channel = v
	}
	if v := get(EnvAPIURL); v != "" {
		cfg.GitHub.APIURL = v
	}
	if v := get(EnvRepository); v != "" {
		repo, err := domain.ParseRepository(v)
		if err != nil {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("ignoring %s: %v", EnvRepository, err))
			return
		}
		cfg.GitHub.Owner = repo.Owner
		cfg.GitHub.Repo = repo.Name
	}
}

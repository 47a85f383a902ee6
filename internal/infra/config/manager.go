package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/release-changelog/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	repoRoot      string // Path to repository root
	globalConfDir string // Path to global config directory (e.g., ~/.config/release-changelog)
}

// NewManager creates a new Manager.
func NewManager(repoRoot string) *Manager {
	return NewManagerWithGlobalDir(repoRoot, defaultGlobalConfigDir())
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(repoRoot, globalConfDir string) *Manager {
	return &Manager{
		repoRoot:      repoRoot,
		globalConfDir: globalConfDir,
	}
}

// GetRepoConfigInfo returns information about the repository config file.
func (m *Manager) GetRepoConfigInfo() domain.ConfigInfo {
	if m.repoRoot == "" {
		return domain.ConfigInfo{}
	}
	return getConfigInfo(filepath.Join(m.repoRoot, domain.ConfigFileName))
}

// GetGlobalConfigInfo returns information about the global config file.
func (m *Manager) GetGlobalConfigInfo() domain.ConfigInfo {
	if m.globalConfDir == "" {
		return domain.ConfigInfo{}
	}
	return getConfigInfo(filepath.Join(m.globalConfDir, domain.GlobalConfigFileName))
}

func getConfigInfo(path string) domain.ConfigInfo {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{Path: path}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// InitRepoConfig creates a repository config file with the default template.
func (m *Manager) InitRepoConfig() error {
	if m.repoRoot == "" {
		return domain.ErrNotGitRepository
	}
	return initConfig(filepath.Join(m.repoRoot, domain.ConfigFileName))
}

// InitGlobalConfig creates a global config file with the default template.
func (m *Manager) InitGlobalConfig() error {
	if m.globalConfDir == "" {
		return errors.New("global config directory not available")
	}
	if err := os.MkdirAll(m.globalConfDir, 0o700); err != nil {
		return err
	}
	return initConfig(filepath.Join(m.globalConfDir, domain.GlobalConfigFileName))
}

func initConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", domain.ErrConfigExists, path)
	}
	content, err := Template()
	if err != nil {
		return err
	}
	return os.WriteFile(path, content, 0o600)
}

// templateHeader is prepended to generated config files.
const templateHeader = `# release-changelog configuration
#
# Environment variables override these values:
#   GH_TOKEN / GITHUB_TOKEN, CURRENT_VERSION, CHANGELOG_CHANNEL,
#   GITHUB_API_URL, GITHUB_REPOSITORY (owner/name)

`

// Template returns the default configuration with the tag registry spelled out.
func Template() ([]byte, error) {
	cfg := domain.NewDefaultConfig()
	cfg.Changelog.Tags = domain.DefaultTagRules()
	body, err := Marshal(cfg)
	if err != nil {
		return nil, err
	}
	return append([]byte(templateHeader), body...), nil
}

// Marshal encodes cfg as TOML. Secrets and runtime-only fields are omitted.
func Marshal(cfg *domain.Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

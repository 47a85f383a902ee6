package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/release-changelog/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GetRepoConfigInfo(t *testing.T) {
	t.Run("returns info when file exists", func(t *testing.T) {
		repoRoot := t.TempDir()
		content := "[changelog]\nchannel = \"beta\"\n"
		writeFile(t, filepath.Join(repoRoot, domain.ConfigFileName), content)

		info := NewManagerWithGlobalDir(repoRoot, "").GetRepoConfigInfo()

		assert.Equal(t, filepath.Join(repoRoot, domain.ConfigFileName), info.Path)
		assert.Equal(t, content, info.Content)
		assert.True(t, info.Exists)
	})

	t.Run("returns info when file does not exist", func(t *testing.T) {
		repoRoot := t.TempDir()

		info := NewManagerWithGlobalDir(repoRoot, "").GetRepoConfigInfo()

		assert.Equal(t, filepath.Join(repoRoot, domain.ConfigFileName), info.Path)
		assert.Empty(t, info.Content)
		assert.False(t, info.Exists)
	})
}

func TestManager_GetGlobalConfigInfo_NoDir(t *testing.T) {
	info := NewManagerWithGlobalDir(t.TempDir(), "").GetGlobalConfigInfo()

	assert.Empty(t, info.Path)
	assert.False(t, info.Exists)
}

func TestManager_InitRepoConfig(t *testing.T) {
	repoRoot := t.TempDir()
	manager := NewManagerWithGlobalDir(repoRoot, "")

	require.NoError(t, manager.InitRepoConfig())

	// The generated file loads cleanly and yields the defaults.
	cfg, err := newTestLoader(repoRoot, "", nil).Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Warnings)
	assert.Equal(t, domain.DefaultTagRules(), cfg.Changelog.Tags)
	assert.Equal(t, domain.DefaultChannel, cfg.Changelog.Channel)

	err = manager.InitRepoConfig()
	require.ErrorIs(t, err, domain.ErrConfigExists)
}

func TestManager_InitGlobalConfig(t *testing.T) {
	globalDir := filepath.Join(t.TempDir(), "nested", "release-changelog")
	manager := NewManagerWithGlobalDir("", globalDir)

	require.NoError(t, manager.InitGlobalConfig())

	info := manager.GetGlobalConfigInfo()
	assert.True(t, info.Exists)
	assert.Contains(t, info.Content, "CHANGELOG-NEW-FEATURE")

	_, err := os.Stat(filepath.Join(globalDir, domain.GlobalConfigFileName))
	require.NoError(t, err)
}

func TestManager_InitRepoConfig_NoRepo(t *testing.T) {
	err := NewManagerWithGlobalDir("", t.TempDir()).InitRepoConfig()

	require.ErrorIs(t, err, domain.ErrNotGitRepository)
}

func TestMarshal_OmitsSecrets(t *testing.T) {
	cfg := domain.NewDefaultConfig()
	cfg.Token = "secret-token"
	cfg.CurrentVersion = "v0.2022.04.11.09.09.stable_02"
	cfg.Warnings = []string{"warning"}

	data, err := Marshal(cfg)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "secret-token")
	assert.NotContains(t, string(data), "stable_02")

	var decoded domain.Config
	require.NoError(t, toml.Unmarshal(data, &decoded))
	assert.Equal(t, cfg.Changelog.Channel, decoded.Changelog.Channel)
	assert.Equal(t, cfg.Git.Backend, decoded.Git.Backend)
}

package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/release-changelog/internal/domain"
)

func sampleChangelog() *domain.Changelog {
	return domain.DefaultExtractor().Extract([]string{
		"CHANGELOG-NEW-FEATURE: Search bar\nCHANGELOG-BUG-FIX: Crash on start\nCHANGELOG-IMAGE: img-1",
		"CHANGELOG-NEW: Dark mode",
	})
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sampleChangelog()))

	assert.JSONEq(t, `{
		"newFeatures": ["Search bar", "Dark mode"],
		"improvements": null,
		"bugFixes": ["Crash on start"],
		"images": ["img-1"]
	}`, buf.String())
	assert.Regexp(t, `^\{\n  "newFeatures"`, buf.String())
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAML(&buf, sampleChangelog()))

	var decoded map[string][]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, []string{"Search bar", "Dark mode"}, decoded["newFeatures"])
	assert.Nil(t, decoded["improvements"])
	assert.Contains(t, buf.String(), "improvements: null")

	// Bucket order is preserved.
	out := buf.String()
	assert.Less(t, bytes.Index([]byte(out), []byte("newFeatures")), bytes.Index([]byte(out), []byte("bugFixes")))
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleChangelog()))

	out := buf.String()
	assert.Contains(t, out, "New Features")
	assert.Contains(t, out, "• Search bar")
	assert.Contains(t, out, "• Dark mode")
	assert.Contains(t, out, "Bug Fixes")
	assert.Contains(t, out, "Images")
	assert.NotContains(t, out, "Improvements", "absent buckets are skipped")
}

func TestText_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, domain.DefaultExtractor().Empty()))

	assert.Contains(t, buf.String(), "No changelog entries.")
}

func TestChangelog_Formats(t *testing.T) {
	tests := []struct {
		name   string
		format string
		check  func(t *testing.T, out string)
	}{
		{"default is json", "", func(t *testing.T, out string) { assert.True(t, json.Valid([]byte(out))) }},
		{"json", domain.FormatJSON, func(t *testing.T, out string) { assert.True(t, json.Valid([]byte(out))) }},
		{"yaml", domain.FormatYAML, func(t *testing.T, out string) { assert.Contains(t, out, "newFeatures:") }},
		{"text", domain.FormatText, func(t *testing.T, out string) { assert.Contains(t, out, "New Features") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Changelog(&buf, sampleChangelog(), tt.format))
			tt.check(t, buf.String())
		})
	}
}

func TestChangelog_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Changelog(&buf, sampleChangelog(), "xml")

	require.ErrorIs(t, err, domain.ErrUnknownFormat)
}

func TestHeading(t *testing.T) {
	assert.Equal(t, "Bug Fixes", Heading(domain.BucketBugFixes))
	assert.Equal(t, "teamsSpecific", Heading("teamsSpecific"))
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joyanlabs/logocrop/pkg/logo"
)

func defaultConfig() *Config {
	c := &Config{}
	c.setDefaultValues()
	return c
}

func TestBuiltinProfiles(t *testing.T) {
	c := defaultConfig()
	assert.Equal(t, "padded", c.DefaultProfile)

	tests := []struct {
		name    string
		rule    logo.Rule
		margin  float64
		padding float64
		square  bool
	}{
		{"padded", logo.RuleNearWhite, 0, 0.08, true},
		{"tight", logo.RuleNearWhiteOrBlack, 0.05, 0.05, false},
		{"bordered", logo.RuleNearWhiteOrBlack, 0.05, 0.10, true},
		{"analyze", logo.RuleAlphaAware, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := c.Profile(tt.name)
			require.NoError(t, err)

			opts, err := p.Options()
			require.NoError(t, err)
			assert.Equal(t, tt.rule, opts.Rule)
			assert.Equal(t, tt.margin, opts.BorderMargin)
			assert.Equal(t, tt.padding, opts.Padding)
			assert.Equal(t, tt.square, opts.Square)
		})
	}
}

func TestProfileLookupUnknown(t *testing.T) {
	c := defaultConfig()
	_, err := c.Profile("banner")
	assert.Error(t, err)
}

func TestProfileOptionsValidation(t *testing.T) {
	_, err := Profile{Rule: "fuzzy"}.Options()
	assert.Error(t, err)

	_, err = Profile{Rule: "near-white", Padding: -0.1}.Options()
	assert.Error(t, err)
}

func TestLoadFromFileMergesOverDefaults(t *testing.T) {
	c := defaultConfig()

	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"default_profile": "tight",
		"profiles": {
			"padded": {"rule": "near-white", "padding": 0.12, "square": true},
			"wide": {"rule": "alpha-aware", "padding": 0.2}
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	require.NoError(t, c.loadFromFile(path))

	assert.Equal(t, "tight", c.DefaultProfile)

	// Override replaces the built-in by name.
	p, err := c.Profile("padded")
	require.NoError(t, err)
	assert.Equal(t, 0.12, p.Padding)

	// New profiles are added, untouched built-ins remain.
	_, err = c.Profile("wide")
	assert.NoError(t, err)
	_, err = c.Profile("bordered")
	assert.NoError(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	c := defaultConfig()
	c.DefaultProfile = "tight"
	c.Profiles["wide"] = Profile{Rule: "alpha-aware", Padding: 0.2}

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, c.saveToFile(path))

	loaded := defaultConfig()
	require.NoError(t, loaded.loadFromFile(path))

	assert.Equal(t, "tight", loaded.DefaultProfile)
	p, err := loaded.Profile("wide")
	require.NoError(t, err)
	assert.Equal(t, 0.2, p.Padding)
}

func TestLoadFromFileMissing(t *testing.T) {
	c := defaultConfig()
	err := c.loadFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, "padded", c.DefaultProfile)
}

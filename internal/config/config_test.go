package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chmouel/lazyuntrack/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.True(t, cfg.AutoRefresh)
	assert.True(t, cfg.ShowIcons)
	assert.Equal(t, DefaultMaxDepth, cfg.MaxDepth)
	assert.Empty(t, cfg.Skip)
	assert.Empty(t, cfg.HeaderTemplate)
	assert.Empty(t, cfg.CommandTemplate)
	assert.Empty(t, cfg.DebugLog)
}

func TestNormalizeList(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected []string
	}{
		{name: "nil input", input: nil, expected: nil},
		{name: "empty string", input: "", expected: nil},
		{name: "whitespace only string", input: "   ", expected: nil},
		{name: "single string", input: "/repos/vendored", expected: []string{"/repos/vendored"}},
		{name: "trimmed string", input: "  /repos/vendored  ", expected: []string{"/repos/vendored"}},
		{
			name:     "list with empty elements",
			input:    []any{"/a", "", nil, "/b"},
			expected: []string{"/a", "/b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeList(tt.input))
		})
	}
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		name       string
		input      any
		defaultVal bool
		expected   bool
	}{
		{name: "nil keeps default", input: nil, defaultVal: true, expected: true},
		{name: "bool false", input: false, defaultVal: true, expected: false},
		{name: "int non-zero", input: 42, defaultVal: false, expected: true},
		{name: "string yes", input: "yes", defaultVal: false, expected: true},
		{name: "string off", input: "off", defaultVal: true, expected: false},
		{name: "string uppercase", input: "TRUE", defaultVal: false, expected: true},
		{name: "invalid string keeps default", input: "invalid", defaultVal: true, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, coerceBool(tt.input, tt.defaultVal))
		})
	}
}

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		name       string
		input      any
		defaultVal int
		expected   int
	}{
		{name: "nil keeps default", input: nil, defaultVal: 8, expected: 8},
		{name: "int value", input: 3, defaultVal: 8, expected: 3},
		{name: "bool keeps default", input: true, defaultVal: 8, expected: 8},
		{name: "string number", input: "  4 ", defaultVal: 8, expected: 4},
		{name: "invalid string keeps default", input: "abc", defaultVal: 8, expected: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, coerceInt(tt.input, tt.defaultVal))
		})
	}
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name     string
		data     map[string]any
		validate func(*testing.T, *AppConfig)
	}{
		{
			name: "empty config keeps defaults",
			data: map[string]any{},
			validate: func(t *testing.T, cfg *AppConfig) {
				assert.True(t, cfg.AutoRefresh)
				assert.True(t, cfg.ShowIcons)
				assert.Equal(t, DefaultMaxDepth, cfg.MaxDepth)
			},
		},
		{
			name: "theme normalized",
			data: map[string]any{"theme": "  NORD  "},
			validate: func(t *testing.T, cfg *AppConfig) {
				assert.Equal(t, theme.NordName, cfg.Theme)
			},
		},
		{
			name: "unknown theme ignored",
			data: map[string]any{"theme": "hotdog-stand"},
			validate: func(t *testing.T, cfg *AppConfig) {
				assert.Empty(t, cfg.Theme)
			},
		},
		{
			name: "auto_refresh off",
			data: map[string]any{"auto_refresh": "off"},
			validate: func(t *testing.T, cfg *AppConfig) {
				assert.False(t, cfg.AutoRefresh)
			},
		},
		{
			name: "icons alias",
			data: map[string]any{"icons": false},
			validate: func(t *testing.T, cfg *AppConfig) {
				assert.False(t, cfg.ShowIcons)
			},
		},
		{
			name: "max_depth",
			data: map[string]any{"max_depth": 2},
			validate: func(t *testing.T, cfg *AppConfig) {
				assert.Equal(t, 2, cfg.MaxDepth)
			},
		},
		{
			name: "max_depth below one falls back to default",
			data: map[string]any{"max_depth": -5},
			validate: func(t *testing.T, cfg *AppConfig) {
				assert.Equal(t, DefaultMaxDepth, cfg.MaxDepth)
			},
		},
		{
			name: "skip list cleaned",
			data: map[string]any{"skip": []any{"/repos/vendor/", "", "/repos/third_party"}},
			validate: func(t *testing.T, cfg *AppConfig) {
				assert.Equal(t, []string{"/repos/vendor", "/repos/third_party"}, cfg.Skip)
			},
		},
		{
			name: "templates",
			data: map[string]any{
				"header_template":  "## {root}",
				"command_template": "git rm -r --cached {file}",
			},
			validate: func(t *testing.T, cfg *AppConfig) {
				assert.Equal(t, "## {root}", cfg.HeaderTemplate)
				assert.Equal(t, "git rm -r --cached {file}", cfg.CommandTemplate)
			},
		},
		{
			name: "blank template ignored",
			data: map[string]any{"command_template": "   "},
			validate: func(t *testing.T, cfg *AppConfig) {
				assert.Empty(t, cfg.CommandTemplate)
			},
		},
		{
			name: "debug_log",
			data: map[string]any{"debug_log": "/tmp/debug.log"},
			validate: func(t *testing.T, cfg *AppConfig) {
				assert.Equal(t, "/tmp/debug.log", cfg.DebugLog)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			parseConfig(tt.data, cfg)
			tt.validate(t, cfg)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("no config file returns defaults", func(t *testing.T) {
		tmpDir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", tmpDir)
		t.Setenv("XDG_STATE_HOME", tmpDir)

		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.NotNil(t, cfg)
		assert.True(t, cfg.AutoRefresh)
		assert.Equal(t, filepath.Join(tmpDir, "lazyuntrack"), cfg.StateDir)
		assert.NotEmpty(t, cfg.Theme)
	})

	t.Run("valid config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", tmpDir)
		t.Setenv("XDG_STATE_HOME", tmpDir)
		configDir := filepath.Join(tmpDir, "lazyuntrack")
		configPath := filepath.Join(configDir, "config.yaml")

		yamlContent := `theme: gruvbox-dark
auto_refresh: false
show_icons: false
max_depth: 3
skip:
  - /repos/vendor
command_template: "git rm -rf --cached {file}"
`
		require.NoError(t, os.MkdirAll(configDir, 0o750))
		require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0o600))

		cfg, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, theme.GruvboxDarkName, cfg.Theme)
		assert.False(t, cfg.AutoRefresh)
		assert.False(t, cfg.ShowIcons)
		assert.Equal(t, 3, cfg.MaxDepth)
		assert.Equal(t, []string{"/repos/vendor"}, cfg.Skip)
		assert.Equal(t, "git rm -rf --cached {file}", cfg.CommandTemplate)
	})

	t.Run("explicit path outside config dir rejected", func(t *testing.T) {
		tmpDir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", tmpDir)

		_, err := LoadConfig("/etc/passwd")
		require.Error(t, err)
	})

	t.Run("invalid YAML returns defaults", func(t *testing.T) {
		tmpDir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", tmpDir)
		configDir := filepath.Join(tmpDir, "lazyuntrack")
		configPath := filepath.Join(configDir, "config.yaml")

		require.NoError(t, os.MkdirAll(configDir, 0o750))
		require.NoError(t, os.WriteFile(configPath, []byte("invalid: [[["), 0o600))

		cfg, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.NotNil(t, cfg)
		assert.True(t, cfg.AutoRefresh)
	})
}

func TestNormalizeThemeName(t *testing.T) {
	assert.Equal(t, theme.DraculaName, NormalizeThemeName("Dracula"))
	assert.Equal(t, theme.CatppuccinMochaName, NormalizeThemeName(" catppuccin-mocha "))
	assert.Empty(t, NormalizeThemeName("no-such-theme"))
}

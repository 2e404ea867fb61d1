// Package config loads application and repository configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chmouel/lazyuntrack/internal/theme"
	"github.com/chmouel/lazyuntrack/internal/utils"
	"gopkg.in/yaml.v3"
)

// AppConfig defines the global lazyuntrack configuration options.
type AppConfig struct {
	Theme           string   // Theme name: see AvailableThemes in internal/theme
	AutoRefresh     bool     // Rescan when watched ignore files or indexes change (default: true)
	ShowIcons       bool     // Render Nerd Font icons in the file tree (default: true)
	MaxDepth        int      // Directory depth limit when searching for nested repositories
	Skip            []string // Repository roots (absolute or ~-prefixed) excluded from scans
	HeaderTemplate  string   // Preview header per repository, placeholder: {root}
	CommandTemplate string   // Preview line per file, placeholder: {file}
	StateDir        string   // Where untrack history is kept
	DebugLog        string   // Debug log path, empty disables
}

// IconsEnabled reports whether Nerd Font icons should render.
func (c *AppConfig) IconsEnabled() bool {
	return c != nil && c.ShowIcons
}

// DefaultMaxDepth bounds the repository discovery walk.
const DefaultMaxDepth = 8

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Theme:       "",
		AutoRefresh: true,
		ShowIcons:   true,
		MaxDepth:    DefaultMaxDepth,
	}
}

// normalizeList converts a YAML scalar or sequence into a list of strings.
func normalizeList(value any) []string {
	if value == nil {
		return nil
	}

	switch v := value.(type) {
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return nil
		}
		return []string{text}
	case []any:
		var items []string
		for _, item := range v {
			if item == nil {
				continue
			}
			text := strings.TrimSpace(fmt.Sprintf("%v", item))
			if text != "" {
				items = append(items, text)
			}
		}
		return items
	}
	return nil
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

func coerceInt(value any, defaultVal int) int {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return defaultVal
	case int:
		return v
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return defaultVal
		}
		if i, err := strconv.Atoi(text); err == nil {
			return i
		}
	}
	return defaultVal
}

// parseConfig applies the loosely-typed YAML map onto cfg. Unknown keys are
// ignored so newer config files keep working with older binaries.
func parseConfig(data map[string]any, cfg *AppConfig) {
	if themeName, ok := data["theme"].(string); ok {
		if normalized := NormalizeThemeName(themeName); normalized != "" {
			cfg.Theme = normalized
		}
	}

	cfg.AutoRefresh = coerceBool(data["auto_refresh"], cfg.AutoRefresh)
	if _, ok := data["show_icons"]; ok {
		cfg.ShowIcons = coerceBool(data["show_icons"], cfg.ShowIcons)
	} else if _, ok := data["icons"]; ok {
		cfg.ShowIcons = coerceBool(data["icons"], cfg.ShowIcons)
	}

	cfg.MaxDepth = coerceInt(data["max_depth"], cfg.MaxDepth)
	if cfg.MaxDepth < 1 {
		cfg.MaxDepth = DefaultMaxDepth
	}

	if _, ok := data["skip"]; ok {
		skip := normalizeList(data["skip"])
		expanded := make([]string, 0, len(skip))
		for _, entry := range skip {
			if path, err := utils.ExpandPath(entry); err == nil {
				expanded = append(expanded, filepath.Clean(path))
			}
		}
		cfg.Skip = expanded
	}

	if header, ok := data["header_template"].(string); ok {
		header = strings.TrimSpace(header)
		if header != "" {
			cfg.HeaderTemplate = header
		}
	}
	if command, ok := data["command_template"].(string); ok {
		command = strings.TrimSpace(command)
		if command != "" {
			cfg.CommandTemplate = command
		}
	}

	if stateDir, ok := data["state_dir"].(string); ok {
		stateDir = strings.TrimSpace(stateDir)
		if stateDir != "" {
			if expanded, err := utils.ExpandPath(stateDir); err == nil {
				cfg.StateDir = expanded
			}
		}
	}

	if debugLog, ok := data["debug_log"].(string); ok {
		debugLog = strings.TrimSpace(debugLog)
		if debugLog != "" {
			cfg.DebugLog = debugLog
		}
	}
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

func getStateDir() string {
	if xdgStateHome := os.Getenv("XDG_STATE_HOME"); xdgStateHome != "" {
		return xdgStateHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state")
}

// DefaultStateDir returns where history files live when state_dir is unset.
func DefaultStateDir() string {
	return filepath.Join(getStateDir(), "lazyuntrack")
}

// LoadConfig reads the application configuration from a YAML file.
func LoadConfig(configPath string) (*AppConfig, error) {
	configBase := filepath.Clean(filepath.Join(getConfigDir(), "lazyuntrack"))

	var paths []string

	if configPath != "" {
		expanded, err := utils.ExpandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		absPath, err := filepath.Abs(expanded)
		if err != nil {
			return DefaultConfig(), err
		}
		if !utils.IsPathWithin(configBase, absPath) {
			return DefaultConfig(), fmt.Errorf("config path must reside inside %s", configBase)
		}
		paths = []string{absPath}
	} else {
		paths = []string{
			filepath.Join(configBase, "config.yaml"),
			filepath.Join(configBase, "config.yml"),
		}
	}

	cfg := DefaultConfig()

	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		// #nosec G304 -- path is constrained to the config directory after validation
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var yamlData map[string]any
		if err := yaml.Unmarshal(data, &yamlData); err != nil {
			return DefaultConfig(), nil
		}

		parseConfig(yamlData, cfg)
		break
	}

	if cfg.StateDir == "" {
		cfg.StateDir = DefaultStateDir()
	}

	if cfg.Theme == "" {
		detected, err := theme.DetectBackground(500 * time.Millisecond)
		if err == nil {
			cfg.Theme = detected
		} else {
			cfg.Theme = theme.DefaultDark()
		}
	}

	return cfg, nil
}

// NormalizeThemeName returns the canonical theme name if it is supported.
func NormalizeThemeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, known := range theme.AvailableThemes() {
		if name == known {
			return name
		}
	}
	return ""
}

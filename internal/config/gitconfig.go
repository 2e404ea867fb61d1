package config

import (
	"fmt"
	"os/exec"
	"strings"
)

// gitConfigMock allows tests to mock git config output.
var gitConfigMock func(args []string, repoPath string) (string, error)

// runGitConfig executes git config and returns raw output.
func runGitConfig(args []string, repoPath string) (string, error) {
	if gitConfigMock != nil {
		return gitConfigMock(args, repoPath)
	}

	cmd := exec.Command("git", args...)
	if repoPath != "" {
		cmd.Dir = repoPath
	}

	output, err := cmd.Output()
	if err != nil {
		// git config returns exit code 1 when no key matches (not an error)
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
			return "", nil
		}
		return "", err
	}
	return string(output), nil
}

// parseGitConfigOutput parses git config output into a multi-value map.
// Input format: "lu.theme nord\nlu.skip /path/to/repo\n"
func parseGitConfigOutput(output string) map[string][]string {
	configMap := make(map[string][]string)
	if output == "" {
		return configMap
	}

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}

		// SplitN with 2 keeps values containing spaces intact
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimPrefix(parts[0], "lu.")
		configMap[key] = append(configMap[key], parts[1])
	}

	return configMap
}

// toParseConfigMap converts multi-value git config data into the loose map
// parseConfig expects.
func toParseConfigMap(gitCfg map[string][]string) map[string]any {
	result := make(map[string]any)

	for key, values := range gitCfg {
		if len(values) == 0 {
			continue
		}

		// Multi-value keys (e.g. skip) become []any for parseConfig
		if len(values) > 1 {
			anySlice := make([]any, len(values))
			for i, v := range values {
				anySlice[i] = v
			}
			result[key] = anySlice
			continue
		}

		result[key] = values[0]
	}

	return result
}

func loadGitConfig(globalOnly bool, repoPath string) (map[string]any, error) {
	args := []string{"config", "--get-regexp", "^lu\\."}

	if globalOnly {
		args = append(args, "--global")
	} else {
		args = append(args, "--local")
	}

	output, err := runGitConfig(args, repoPath)
	if err != nil {
		return nil, err
	}
	if output == "" {
		return map[string]any{}, nil
	}

	return toParseConfigMap(parseGitConfigOutput(output)), nil
}

// MergeGitConfig overlays lu.* git config values onto cfg: global keys first,
// then the local keys of repoPath when it points inside a repository. Lookup
// failures are ignored; git config is optional.
func (c *AppConfig) MergeGitConfig(repoPath string) {
	if global, err := loadGitConfig(true, ""); err == nil && len(global) > 0 {
		parseConfig(global, c)
	}
	if repoPath == "" {
		return
	}
	if local, err := loadGitConfig(false, repoPath); err == nil && len(local) > 0 {
		parseConfig(local, c)
	}
}

// ApplyCLIOverrides applies --config=lu.key=value pairs onto cfg.
func (c *AppConfig) ApplyCLIOverrides(overrides []string) error {
	if len(overrides) == 0 {
		return nil
	}

	result := make(map[string]any)
	for _, override := range overrides {
		parts := strings.SplitN(override, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid config override: %q, expected format: lu.key=value", override)
		}

		fullKey := parts[0]
		if !strings.HasPrefix(fullKey, "lu.") {
			return fmt.Errorf("config override key must start with 'lu.': %q", fullKey)
		}
		key := strings.TrimPrefix(fullKey, "lu.")
		if key == "" {
			return fmt.Errorf("empty config key in override: %q", override)
		}

		// Repeated keys accumulate into a list
		switch existing := result[key].(type) {
		case nil:
			result[key] = parts[1]
		case string:
			result[key] = []any{existing, parts[1]}
		case []any:
			result[key] = append(existing, parts[1])
		}
	}

	parseConfig(result, c)
	return nil
}

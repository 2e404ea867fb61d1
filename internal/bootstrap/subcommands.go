package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chmouel/lazyuntrack/internal/config"
	"github.com/chmouel/lazyuntrack/internal/git"
	"github.com/chmouel/lazyuntrack/internal/utils"
)

// resolveRoot turns the --root flag into an absolute project root, defaulting
// to the current directory.
func resolveRoot(rootFlag string) (string, error) {
	if rootFlag == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to resolve current directory: %w", err)
		}
		return cwd, nil
	}

	expanded, err := utils.ExpandPath(rootFlag)
	if err != nil {
		return "", fmt.Errorf("error expanding root: %w", err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("error resolving root: %w", err)
	}
	return abs, nil
}

// loadCLIConfig loads the configuration the way both the TUI and the
// subcommands see it: YAML file, then lu.* git config for the project root,
// then CLI overrides on top.
func loadCLIConfig(configFileFlag, root string, configOverrides []string) (*config.AppConfig, error) {
	cfg, err := config.LoadConfig(configFileFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	cfg.MergeGitConfig(root)

	if len(configOverrides) > 0 {
		if err := cfg.ApplyCLIOverrides(configOverrides); err != nil {
			return nil, fmt.Errorf("error applying config overrides: %w", err)
		}
	}

	if cfg.StateDir == "" {
		cfg.StateDir = config.DefaultStateDir()
	}

	return cfg, nil
}

// newCLIGitService creates a git service wired to stderr notifications.
func newCLIGitService() *git.Service {
	return git.NewService(cliNotify, cliNotifyOnce)
}

// cliNotify is a notification callback for git operations in CLI mode.
func cliNotify(message, severity string) {
	if severity == "error" {
		fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		return
	}
	fmt.Fprintf(os.Stderr, "%s\n", message)
}

// cliNotifyOnce is a notification callback for git operations that should only fire once.
func cliNotifyOnce(_, message, severity string) {
	cliNotify(message, severity)
}

package bootstrap

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chmouel/lazyuntrack/internal/config"
	"github.com/chmouel/lazyuntrack/internal/git"
	urfavecli "github.com/urfave/cli/v3"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	orig := os.Stdout
	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = writer

	fn()

	_ = writer.Close()
	os.Stdout = orig

	out, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return string(out)
}

// stubCommandSeams replaces root resolution and config loading so command
// tests never touch the real environment.
func stubCommandSeams(t *testing.T, cfg *config.AppConfig) {
	t.Helper()

	origResolve := resolveRootFunc
	origLoad := loadCLIConfigFunc
	resolveRootFunc = func(rootFlag string) (string, error) {
		if rootFlag == "" {
			return "/project", nil
		}
		return rootFlag, nil
	}
	loadCLIConfigFunc = func(_, _ string, _ []string) (*config.AppConfig, error) {
		return cfg, nil
	}
	t.Cleanup(func() {
		resolveRootFunc = origResolve
		loadCLIConfigFunc = origLoad
	})
}

func testRootCommand(commands ...*urfavecli.Command) *urfavecli.Command {
	return &urfavecli.Command{
		Name:     "lazyuntrack",
		Flags:    globalFlags(),
		Commands: commands,
	}
}

func TestOutputAllFlags(t *testing.T) {
	out := captureStdout(t, func() {
		// Create a mock command with flags
		cmd := &urfavecli.Command{
			Flags: globalFlags(),
		}
		outputAllFlags(cmd)
	})

	// Verify expected flags are present
	expectedFlags := []string{"--root", "--debug-log", "--theme", "--no-tui", "--config-file", "--config"}
	for _, flag := range expectedFlags {
		if !strings.Contains(out, flag) {
			t.Errorf("expected flag %q in output, got %q", flag, out)
		}
	}
}

func TestOutputSubcommandFlagsFiltered(t *testing.T) {
	out := captureStdout(t, func() {
		outputSubcommandFlagsFiltered(listCommand(), "--fl")
	})

	if !strings.Contains(out, "--flat") {
		t.Errorf("expected --flat in output, got %q", out)
	}
	if strings.Contains(out, "--json") {
		t.Errorf("expected --json to be filtered out, got %q", out)
	}
}

func TestApplyThemeConfig(t *testing.T) {
	tests := []struct {
		name        string
		themeName   string
		expectError bool
	}{
		{name: "valid theme", themeName: "dracula", expectError: false},
		{name: "valid theme uppercase", themeName: "DRACULA", expectError: false},
		{name: "invalid theme", themeName: "nonexistent-theme", expectError: true},
		{name: "empty theme", themeName: "", expectError: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()

			err := applyThemeConfig(cfg, tt.themeName)
			if tt.expectError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.expectError && tt.themeName != "" && cfg.Theme == "" {
				t.Error("expected theme to be set")
			}
		})
	}
}

func TestResolveRoot(t *testing.T) {
	t.Run("empty defaults to cwd", func(t *testing.T) {
		cwd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get cwd: %v", err)
		}
		got, err := resolveRoot("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != cwd {
			t.Fatalf("root = %q, want %q", got, cwd)
		}
	})

	t.Run("relative path becomes absolute", func(t *testing.T) {
		got, err := resolveRoot("sub")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !filepath.IsAbs(got) {
			t.Fatalf("expected absolute path, got %q", got)
		}
		if filepath.Base(got) != "sub" {
			t.Fatalf("expected path ending in sub, got %q", got)
		}
	})
}

func TestLoadCLIConfig(t *testing.T) {
	t.Run("load default config", func(t *testing.T) {
		cfg, err := loadCLIConfig("", "", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg == nil {
			t.Fatal("expected config to be non-nil")
		}
		if cfg.StateDir == "" {
			t.Error("expected state dir to be set")
		}
	})

	t.Run("apply config overrides", func(t *testing.T) {
		overrides := []string{"lu.theme=nord"}
		cfg, err := loadCLIConfig("", "", overrides)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Theme != "nord" {
			t.Errorf("expected theme to be nord, got %q", cfg.Theme)
		}
	})

	t.Run("invalid override", func(t *testing.T) {
		_, err := loadCLIConfig("", "", []string{"theme=nord"})
		if err == nil {
			t.Fatal("expected error for override without lu. prefix")
		}
	})
}

func TestConfigureDebugLog(t *testing.T) {
	cfg := config.DefaultConfig()
	logPath := filepath.Join(t.TempDir(), "debug.log")

	configureDebugLog(logPath, cfg)
	if cfg.DebugLog != logPath {
		t.Fatalf("expected DebugLog %q, got %q", logPath, cfg.DebugLog)
	}
	if _, err := os.Stat(logPath); err != nil {
		t.Fatalf("expected log file to be created: %v", err)
	}
}

func TestNewCLIGitService(t *testing.T) {
	svc := newCLIGitService()
	if svc == nil {
		t.Fatal("expected service to be non-nil")
	}
}

func TestListCommandFlagValidation(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.StateDir = t.TempDir()
	stubCommandSeams(t, cfg)

	origList := listFunc
	t.Cleanup(func() { listFunc = origList })

	t.Run("flat and json are exclusive", func(t *testing.T) {
		called := false
		listFunc = func(_ context.Context, _ *config.AppConfig, _ string, _, _ bool, _, _ io.Writer) error {
			called = true
			return nil
		}

		root := testRootCommand(listCommand())
		err := root.Run(context.Background(), []string{"lazyuntrack", "list", "--flat", "--json"})
		if err == nil || !strings.Contains(err.Error(), "mutually exclusive") {
			t.Fatalf("expected mutual exclusion error, got %v", err)
		}
		if called {
			t.Error("expected list operation not to run")
		}
	})

	t.Run("flat flag is forwarded", func(t *testing.T) {
		var gotFlat, gotJSON bool
		listFunc = func(_ context.Context, _ *config.AppConfig, _ string, flat, jsonOutput bool, _, _ io.Writer) error {
			gotFlat, gotJSON = flat, jsonOutput
			return nil
		}

		root := testRootCommand(listCommand())
		if err := root.Run(context.Background(), []string{"lazyuntrack", "list", "--flat"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !gotFlat || gotJSON {
			t.Fatalf("expected flat=true json=false, got flat=%v json=%v", gotFlat, gotJSON)
		}
	})
}

func TestListCommandSeesGlobalRoot(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.StateDir = t.TempDir()
	stubCommandSeams(t, cfg)

	origList := listFunc
	t.Cleanup(func() { listFunc = origList })

	gotRoot := ""
	listFunc = func(_ context.Context, _ *config.AppConfig, root string, _, _ bool, _, _ io.Writer) error {
		gotRoot = root
		return nil
	}

	root := testRootCommand(listCommand())
	if err := root.Run(context.Background(), []string{"lazyuntrack", "--root", "/elsewhere", "list"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotRoot != "/elsewhere" {
		t.Fatalf("expected root /elsewhere, got %q", gotRoot)
	}
}

func TestScriptCommandRepoFlag(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.StateDir = t.TempDir()
	stubCommandSeams(t, cfg)

	origScript := scriptFunc
	t.Cleanup(func() { scriptFunc = origScript })

	gotRepo := ""
	scriptFunc = func(_ context.Context, _ *config.AppConfig, _ string, repoFilter string, _, _ io.Writer) error {
		gotRepo = repoFilter
		return nil
	}

	root := testRootCommand(scriptCommand())
	if err := root.Run(context.Background(), []string{"lazyuntrack", "script", "--repo", "api"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotRepo != "api" {
		t.Fatalf("expected repo filter api, got %q", gotRepo)
	}
}

func TestUntrackCommandForwardsArgs(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.StateDir = t.TempDir()
	stubCommandSeams(t, cfg)

	origUntrack := untrackFunc
	t.Cleanup(func() { untrackFunc = origUntrack })

	var gotPaths []string
	gotYes := false
	untrackFunc = func(_ context.Context, _ *git.Service, _ *config.AppConfig, _ string, paths []string, yes bool) error {
		gotPaths = paths
		gotYes = yes
		return nil
	}

	root := testRootCommand(untrackCommand())
	if err := root.Run(context.Background(), []string{"lazyuntrack", "untrack", "--yes", "build/out.log", ".env"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gotYes {
		t.Error("expected yes to be forwarded")
	}
	if len(gotPaths) != 2 || gotPaths[0] != "build/out.log" || gotPaths[1] != ".env" {
		t.Fatalf("unexpected paths: %v", gotPaths)
	}
}

func TestHistoryCommandJSONFlag(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.StateDir = t.TempDir()
	stubCommandSeams(t, cfg)

	origHistory := historyFunc
	t.Cleanup(func() { historyFunc = origHistory })

	gotJSON := false
	historyFunc = func(_ *config.AppConfig, _ string, jsonOutput bool, _, _ io.Writer) error {
		gotJSON = jsonOutput
		return nil
	}

	root := testRootCommand(historyCommand())
	if err := root.Run(context.Background(), []string{"lazyuntrack", "history", "--json"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gotJSON {
		t.Error("expected json flag to be forwarded")
	}
}

func TestCompletionCommand(t *testing.T) {
	t.Run("requires shell argument", func(t *testing.T) {
		root := testRootCommand(completionCommand())
		err := root.Run(context.Background(), []string{"lazyuntrack", "completion"})
		if err == nil || !strings.Contains(err.Error(), "usage:") {
			t.Fatalf("expected usage error, got %v", err)
		}
	})

	t.Run("bash script", func(t *testing.T) {
		root := testRootCommand(completionCommand())
		out := captureStdout(t, func() {
			if err := root.Run(context.Background(), []string{"lazyuntrack", "completion", "bash"}); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
		if !strings.Contains(out, "complete -F _lazyuntrack lazyuntrack") {
			t.Fatalf("expected bash completion script, got %q", out)
		}
	})

	t.Run("unsupported shell", func(t *testing.T) {
		root := testRootCommand(completionCommand())
		err := root.Run(context.Background(), []string{"lazyuntrack", "completion", "tcsh"})
		if err == nil || !strings.Contains(err.Error(), "unsupported shell") {
			t.Fatalf("expected unsupported shell error, got %v", err)
		}
	})
}

package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazyuntrack/internal/app"
	"github.com/chmouel/lazyuntrack/internal/buildinfo"
	"github.com/chmouel/lazyuntrack/internal/config"
	"github.com/chmouel/lazyuntrack/internal/log"
	"github.com/chmouel/lazyuntrack/internal/utils"
	urfavecli "github.com/urfave/cli/v3"
	"golang.org/x/term"
)

var isTerminalFunc = term.IsTerminal

// Run builds the lazyuntrack command tree and executes it.
func Run(ctx context.Context, args []string) error {
	buildinfo.Enrich()

	rootCmd := &urfavecli.Command{
		Name:                  "lazyuntrack",
		Usage:                 "Find and untrack git-tracked files that ignore rules match",
		Version:               buildinfo.Version(),
		EnableShellCompletion: true,

		Flags: globalFlags(),

		Commands: []*urfavecli.Command{
			listCommand(),
			scriptCommand(),
			untrackCommand(),
			historyCommand(),
			versionCommand(),
			completionCommand(),
		},

		Action: runRoot,

		ShellComplete: completeRootFlags,
	}

	return rootCmd.Run(ctx, args)
}

// runRoot is the default action. It opens the TUI when stdout is a terminal
// and falls back to the flat listing otherwise.
func runRoot(ctx context.Context, cmd *urfavecli.Command) error {
	root, err := resolveRootFunc(cmd.String("root"))
	if err != nil {
		return err
	}

	cfg, err := loadCLIConfigFunc(cmd.String("config-file"), root, cmd.StringSlice("config"))
	if err != nil {
		return err
	}
	configureDebugLog(cmd.String("debug-log"), cfg)

	if err := applyThemeConfig(cfg, cmd.String("theme")); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		_ = log.Close()
		return err
	}

	if cmd.Bool("no-tui") || !isTerminalFunc(int(os.Stdout.Fd())) {
		defer func() {
			_ = log.Close()
		}()
		return listFunc(ctx, cfg, root, false, false, os.Stdout, os.Stderr)
	}

	// Any leftover arguments seed the tree filter.
	initialFilter := strings.Join(cmd.Args().Slice(), " ")

	model := app.NewModel(cfg, root, initialFilter)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	_, err = p.Run()
	model.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		_ = log.Close()
		return err
	}

	if err := log.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing debug log: %v\n", err)
	}

	return nil
}

// configureDebugLog points the debug log at the flag value, falling back to
// the config value. With neither set, buffered records are discarded.
func configureDebugLog(debugLogFlag string, cfg *config.AppConfig) {
	path := debugLogFlag
	if path == "" {
		path = cfg.DebugLog
	}
	if path == "" {
		// No debug log configured, discard any buffered logs
		_ = log.SetFile("")
		return
	}

	expanded, err := utils.ExpandPath(path)
	if err == nil {
		path = expanded
	}
	if err := log.SetFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", path, err)
		return
	}
	cfg.DebugLog = path
}

// applyThemeConfig applies theme configuration from the command line flag.
func applyThemeConfig(cfg *config.AppConfig, themeName string) error {
	if themeName == "" {
		return nil
	}

	normalized := config.NormalizeThemeName(themeName)
	if normalized == "" {
		return fmt.Errorf("unknown theme %q", themeName)
	}

	cfg.Theme = normalized
	return nil
}

// outputAllFlags prints all visible global flags in completion format.
func outputAllFlags(cmd *urfavecli.Command) {
	outputSubcommandFlags(cmd)
}

// completeRootFlags provides completion for the root command, offering
// subcommand names and global flags.
func completeRootFlags(_ context.Context, cmd *urfavecli.Command) {
	args := os.Args
	argsLen := len(args)
	lastArg := ""
	if argsLen > 1 {
		lastArg = args[argsLen-2]
	}

	if strings.HasPrefix(lastArg, "-") {
		outputSubcommandFlagsFiltered(cmd, lastArg)
		return
	}

	for _, sub := range cmd.Commands {
		if sub.Hidden {
			continue
		}
		fmt.Printf("%s:%s\n", sub.Name, sub.Usage)
	}
	outputAllFlags(cmd)
}

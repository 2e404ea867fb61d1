package bootstrap

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/chmouel/lazyuntrack/internal/buildinfo"
	"github.com/chmouel/lazyuntrack/internal/cli"
	"github.com/chmouel/lazyuntrack/internal/completion"
	"github.com/chmouel/lazyuntrack/internal/config"
	"github.com/chmouel/lazyuntrack/internal/git"
	"github.com/chmouel/lazyuntrack/internal/log"
	appiCli "github.com/urfave/cli/v3"
)

type untrackFuncType func(ctx context.Context, gitSvc *git.Service, cfg *config.AppConfig, root string, paths []string, yes bool) error

var (
	loadCLIConfigFunc                    = loadCLIConfig
	resolveRootFunc                      = resolveRoot
	newCLIGitServiceFunc                 = newCLIGitService
	listFunc                             = cli.List
	scriptFunc                           = cli.Script
	historyFunc                          = cli.History
	untrackFunc          untrackFuncType = func(ctx context.Context, gitSvc *git.Service, cfg *config.AppConfig, root string, paths []string, yes bool) error {
		return cli.UntrackFromStdio(ctx, gitSvc, cfg, root, paths, yes)
	}
)

// handleSubcommandCompletion checks if completion is being requested and outputs flags.
// Returns true if completion was handled, false otherwise.
func handleSubcommandCompletion(cmd *appiCli.Command) bool {
	if !slices.Contains(os.Args, "--generate-shell-completion") {
		return false
	}
	outputSubcommandFlags(cmd)
	return true
}

// outputSubcommandFlags prints all visible flags for a subcommand in completion format.
func outputSubcommandFlags(cmd *appiCli.Command) {
	for _, flag := range cmd.Flags {
		if bf, ok := flag.(*appiCli.BoolFlag); ok && bf.Hidden {
			continue
		}
		if sf, ok := flag.(*appiCli.StringFlag); ok && sf.Hidden {
			continue
		}
		name := flag.Names()[0]
		usage := ""
		if df, ok := flag.(appiCli.DocGenerationFlag); ok {
			usage = df.GetUsage()
		}
		prefix := "--"
		if len(name) == 1 {
			prefix = "-"
		}
		if usage != "" {
			fmt.Printf("%s%s:%s\n", prefix, name, usage)
		} else {
			fmt.Printf("%s%s\n", prefix, name)
		}
	}
}

// subcommandShellComplete handles shell completion for subcommands.
// It handles the "--" case by outputting all flags, and filters flags for partial matches.
func subcommandShellComplete(_ context.Context, cmd *appiCli.Command) {
	args := os.Args
	argsLen := len(args)
	lastArg := ""
	if argsLen > 1 {
		lastArg = args[argsLen-2]
	}

	// Handle the "--" case by outputting all flags
	if lastArg == "--" {
		outputSubcommandFlags(cmd)
		return
	}

	// Handle partial flag matches (e.g., --f<TAB>)
	if strings.HasPrefix(lastArg, "-") {
		outputSubcommandFlagsFiltered(cmd, lastArg)
		return
	}

	// Default: output all flags
	outputSubcommandFlags(cmd)
}

// outputSubcommandFlagsFiltered prints flags matching the given prefix.
func outputSubcommandFlagsFiltered(cmd *appiCli.Command, prefix string) {
	for _, flag := range cmd.Flags {
		if bf, ok := flag.(*appiCli.BoolFlag); ok && bf.Hidden {
			continue
		}
		if sf, ok := flag.(*appiCli.StringFlag); ok && sf.Hidden {
			continue
		}
		name := flag.Names()[0]
		usage := ""
		if df, ok := flag.(appiCli.DocGenerationFlag); ok {
			usage = df.GetUsage()
		}
		flagPrefix := "--"
		if len(name) == 1 {
			flagPrefix = "-"
		}
		fullFlag := flagPrefix + name
		if !strings.HasPrefix(fullFlag, prefix) {
			continue
		}
		if usage != "" {
			fmt.Printf("%s:%s\n", fullFlag, usage)
		} else {
			fmt.Printf("%s\n", fullFlag)
		}
	}
}

// listCommand returns the list subcommand definition.
func listCommand() *appiCli.Command {
	return &appiCli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List tracked-but-ignored files",
		Action: func(ctx context.Context, cmd *appiCli.Command) error {
			if handleSubcommandCompletion(cmd) {
				return nil
			}
			return handleListAction(ctx, cmd)
		},
		ShellComplete: subcommandShellComplete,
		Flags: []appiCli.Flag{
			&appiCli.BoolFlag{
				Name:    "flat",
				Aliases: []string{"f"},
				Usage:   "Output paths only (one per line, suitable for scripting)",
			},
			&appiCli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
		},
	}
}

func validateListFlags(cmd *appiCli.Command) error {
	if cmd.Bool("flat") && cmd.Bool("json") {
		return fmt.Errorf("--flat and --json are mutually exclusive")
	}
	return nil
}

// handleListAction handles the list subcommand action.
func handleListAction(ctx context.Context, cmd *appiCli.Command) error {
	defer func() {
		_ = log.Close()
	}()
	if err := validateListFlags(cmd); err != nil {
		return err
	}

	root, err := resolveRootFunc(cmd.String("root"))
	if err != nil {
		return err
	}
	cfg, err := loadCLIConfigFunc(cmd.String("config-file"), root, cmd.StringSlice("config"))
	if err != nil {
		return err
	}
	configureDebugLog(cmd.String("debug-log"), cfg)

	return listFunc(ctx, cfg, root, cmd.Bool("flat"), cmd.Bool("json"), os.Stdout, os.Stderr)
}

// scriptCommand returns the script subcommand definition.
func scriptCommand() *appiCli.Command {
	return &appiCli.Command{
		Name:  "script",
		Usage: "Print the untrack command script without running it",
		Action: func(ctx context.Context, cmd *appiCli.Command) error {
			if handleSubcommandCompletion(cmd) {
				return nil
			}
			return handleScriptAction(ctx, cmd)
		},
		ShellComplete: subcommandShellComplete,
		Flags: []appiCli.Flag{
			&appiCli.StringFlag{
				Name:    "repo",
				Aliases: []string{"R"},
				Usage:   "Limit output to one repository (path or name)",
			},
		},
	}
}

// handleScriptAction handles the script subcommand action.
func handleScriptAction(ctx context.Context, cmd *appiCli.Command) error {
	defer func() {
		_ = log.Close()
	}()

	root, err := resolveRootFunc(cmd.String("root"))
	if err != nil {
		return err
	}
	cfg, err := loadCLIConfigFunc(cmd.String("config-file"), root, cmd.StringSlice("config"))
	if err != nil {
		return err
	}
	configureDebugLog(cmd.String("debug-log"), cfg)

	return scriptFunc(ctx, cfg, root, cmd.String("repo"), os.Stdout, os.Stderr)
}

// untrackCommand returns the untrack subcommand definition.
func untrackCommand() *appiCli.Command {
	return &appiCli.Command{
		Name:      "untrack",
		Usage:     "Remove tracked-but-ignored files from their index",
		ArgsUsage: "[path ...]",
		Action: func(ctx context.Context, cmd *appiCli.Command) error {
			if handleSubcommandCompletion(cmd) {
				return nil
			}
			return handleUntrackAction(ctx, cmd)
		},
		ShellComplete: subcommandShellComplete,
		Flags: []appiCli.Flag{
			&appiCli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation prompt",
			},
		},
	}
}

// handleUntrackAction handles the untrack subcommand action.
func handleUntrackAction(ctx context.Context, cmd *appiCli.Command) error {
	defer func() {
		_ = log.Close()
	}()

	root, err := resolveRootFunc(cmd.String("root"))
	if err != nil {
		return err
	}
	cfg, err := loadCLIConfigFunc(cmd.String("config-file"), root, cmd.StringSlice("config"))
	if err != nil {
		return err
	}
	configureDebugLog(cmd.String("debug-log"), cfg)

	gitSvc := newCLIGitServiceFunc()
	return untrackFunc(ctx, gitSvc, cfg, root, cmd.Args().Slice(), cmd.Bool("yes"))
}

// historyCommand returns the history subcommand definition.
func historyCommand() *appiCli.Command {
	return &appiCli.Command{
		Name:  "history",
		Usage: "Show past untrack runs for this root",
		Action: func(ctx context.Context, cmd *appiCli.Command) error {
			if handleSubcommandCompletion(cmd) {
				return nil
			}
			return handleHistoryAction(ctx, cmd)
		},
		ShellComplete: subcommandShellComplete,
		Flags: []appiCli.Flag{
			&appiCli.BoolFlag{
				Name:  "json",
				Usage: "Output as JSON",
			},
		},
	}
}

// handleHistoryAction handles the history subcommand action.
func handleHistoryAction(_ context.Context, cmd *appiCli.Command) error {
	defer func() {
		_ = log.Close()
	}()

	root, err := resolveRootFunc(cmd.String("root"))
	if err != nil {
		return err
	}
	cfg, err := loadCLIConfigFunc(cmd.String("config-file"), root, cmd.StringSlice("config"))
	if err != nil {
		return err
	}

	return historyFunc(cfg, root, cmd.Bool("json"), os.Stdout, os.Stderr)
}

// versionCommand returns the version subcommand definition.
func versionCommand() *appiCli.Command {
	return &appiCli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(_ context.Context, cmd *appiCli.Command) error {
			if handleSubcommandCompletion(cmd) {
				return nil
			}
			fmt.Printf("lazyuntrack version %s\ncommit: %s\nbuilt at: %s\nbuilt by: %s\n",
				buildinfo.Version(), buildinfo.Commit(), buildinfo.Date(), buildinfo.BuiltBy())
			return nil
		},
		ShellComplete: subcommandShellComplete,
	}
}

// completionCommand returns the completion subcommand definition.
func completionCommand() *appiCli.Command {
	return &appiCli.Command{
		Name:      "completion",
		Usage:     "Generate shell completion scripts",
		ArgsUsage: "<bash|zsh>",
		Action: func(_ context.Context, cmd *appiCli.Command) error {
			if cmd.NArg() == 0 {
				return fmt.Errorf("usage: lazyuntrack completion <bash|zsh>")
			}
			script, err := completion.Script(cmd.Args().Get(0))
			if err != nil {
				return err
			}
			_, _ = os.Stdout.WriteString(script)
			return nil
		},
	}
}

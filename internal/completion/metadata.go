package completion

import "github.com/chmouel/lazyuntrack/internal/theme"

// FlagInfo contains metadata about a command-line flag for completion generation.
type FlagInfo struct {
	Name        string   // Flag name without dashes
	Description string   // Human-readable description
	HasValue    bool     // true for string flags, false for bool flags
	ValueHint   string   // Hint for value type (e.g., "DIR", "PATH", "NAME")
	Values      []string // Enumerated values for completion (e.g., theme names)
}

// CommandInfo contains metadata about a subcommand for completion generation.
type CommandInfo struct {
	Name        string
	Description string
}

// GetFlags returns metadata for all lazyuntrack global flags.
// This is the single source of truth for shell completion generation.
func GetFlags() []FlagInfo {
	return []FlagInfo{
		{
			Name:        "root",
			Description: "Project root to scan",
			HasValue:    true,
			ValueHint:   "DIR",
		},
		{
			Name:        "debug-log",
			Description: "Path to debug log file",
			HasValue:    true,
			ValueHint:   "PATH",
		},
		{
			Name:        "theme",
			Description: "Override the UI theme",
			HasValue:    true,
			ValueHint:   "NAME",
			Values:      theme.AvailableThemes(),
		},
		{
			Name:        "no-tui",
			Description: "Print the findings instead of opening the interactive view",
			HasValue:    false,
		},
		{
			Name:        "version",
			Description: "Print version information",
			HasValue:    false,
		},
		{
			Name:        "config-file",
			Description: "Path to configuration file",
			HasValue:    true,
			ValueHint:   "FILE",
		},
		{
			Name:        "config",
			Description: "Override config values (lu.key=value)",
			HasValue:    true,
			ValueHint:   "KEY=VALUE",
		},
	}
}

// GetCommands returns metadata for all lazyuntrack subcommands.
func GetCommands() []CommandInfo {
	return []CommandInfo{
		{Name: "list", Description: "List tracked-but-ignored files"},
		{Name: "script", Description: "Print the untrack command script without running it"},
		{Name: "untrack", Description: "Remove tracked-but-ignored files from their index"},
		{Name: "history", Description: "Show past untrack runs for this root"},
		{Name: "version", Description: "Print version information"},
		{Name: "completion", Description: "Generate shell completion scripts"},
	}
}

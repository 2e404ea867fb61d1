// Package theme provides theme definitions and management for the TUI.
package theme

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines all colors used in the application UI.
type Theme struct {
	Background lipgloss.Color
	Accent     lipgloss.Color
	AccentFg   lipgloss.Color // Foreground color for text on Accent background
	AccentDim  lipgloss.Color
	Border     lipgloss.Color
	BorderDim  lipgloss.Color
	MutedFg    lipgloss.Color
	TextFg     lipgloss.Color
	SuccessFg  lipgloss.Color
	WarnFg     lipgloss.Color
	ErrorFg    lipgloss.Color
	Cyan       lipgloss.Color
	Pink       lipgloss.Color
	Yellow     lipgloss.Color
}

// Theme names.
const (
	DraculaName         = "dracula"
	DraculaLightName    = "dracula-light"
	SolarizedLightName  = "solarized-light"
	GruvboxDarkName     = "gruvbox-dark"
	GruvboxLightName    = "gruvbox-light"
	NordName            = "nord"
	CatppuccinMochaName = "catppuccin-mocha"
	CatppuccinLatteName = "catppuccin-latte"
)

// Dracula returns the Dracula theme (dark background, vibrant colors).
func Dracula() *Theme {
	return &Theme{
		Background: lipgloss.Color("#282A36"), // Background
		Accent:     lipgloss.Color("#BD93F9"), // Purple (primary accent)
		AccentFg:   lipgloss.Color("#282A36"), // Dark text on accent
		AccentDim:  lipgloss.Color("#44475A"), // Current Line / Selection
		Border:     lipgloss.Color("#6272A4"), // Comment (subtle borders)
		BorderDim:  lipgloss.Color("#44475A"), // Darker borders
		MutedFg:    lipgloss.Color("#6272A4"), // Comment (muted text)
		TextFg:     lipgloss.Color("#F8F8F2"), // Foreground (primary text)
		SuccessFg:  lipgloss.Color("#50FA7B"), // Green (success)
		WarnFg:     lipgloss.Color("#FFB86C"), // Orange (warning)
		ErrorFg:    lipgloss.Color("#FF5555"), // Red (error)
		Cyan:       lipgloss.Color("#8BE9FD"), // Cyan (info/secondary)
		Pink:       lipgloss.Color("#FF79C6"), // Pink (alternative accent)
		Yellow:     lipgloss.Color("#F1FA8C"), // Yellow (alternative highlight)
	}
}

// DraculaLight returns the Dracula theme adapted for light backgrounds.
func DraculaLight() *Theme {
	return &Theme{
		Background: lipgloss.Color("#FFFFFF"),
		Accent:     lipgloss.Color("#c6dbe5"),
		AccentFg:   lipgloss.Color("#24292F"), // Dark text on accent
		AccentDim:  lipgloss.Color("#F3E8FF"),
		Border:     lipgloss.Color("#D0D7DE"),
		BorderDim:  lipgloss.Color("#E8E8E8"),
		MutedFg:    lipgloss.Color("#6E7781"),
		TextFg:     lipgloss.Color("#24292F"),
		SuccessFg:  lipgloss.Color("#059669"),
		WarnFg:     lipgloss.Color("#D97706"),
		ErrorFg:    lipgloss.Color("#DC2626"),
		Cyan:       lipgloss.Color("#0891B2"),
		Pink:       lipgloss.Color("#DB2777"),
		Yellow:     lipgloss.Color("#CA8A04"),
	}
}

// SolarizedLight returns the Solarized light theme.
func SolarizedLight() *Theme {
	return &Theme{
		Background: lipgloss.Color("#FDF6E3"),
		Accent:     lipgloss.Color("#268BD2"),
		AccentFg:   lipgloss.Color("#FDF6E3"), // Light text on accent
		AccentDim:  lipgloss.Color("#EEE8D5"),
		Border:     lipgloss.Color("#93A1A1"),
		BorderDim:  lipgloss.Color("#E4DDC7"),
		MutedFg:    lipgloss.Color("#93A1A1"),
		TextFg:     lipgloss.Color("#073642"),
		SuccessFg:  lipgloss.Color("#859900"),
		WarnFg:     lipgloss.Color("#B58900"),
		ErrorFg:    lipgloss.Color("#DC322F"),
		Cyan:       lipgloss.Color("#2AA198"),
		Pink:       lipgloss.Color("#D33682"),
		Yellow:     lipgloss.Color("#B58900"),
	}
}

// GruvboxDark returns the Gruvbox dark theme.
func GruvboxDark() *Theme {
	return &Theme{
		Background: lipgloss.Color("#282828"),
		Accent:     lipgloss.Color("#FABD2F"),
		AccentFg:   lipgloss.Color("#282828"), // Dark text on yellow accent
		AccentDim:  lipgloss.Color("#3C3836"),
		Border:     lipgloss.Color("#504945"),
		BorderDim:  lipgloss.Color("#3C3836"),
		MutedFg:    lipgloss.Color("#928374"),
		TextFg:     lipgloss.Color("#EBDBB2"),
		SuccessFg:  lipgloss.Color("#B8BB26"),
		WarnFg:     lipgloss.Color("#FABD2F"),
		ErrorFg:    lipgloss.Color("#FB4934"),
		Cyan:       lipgloss.Color("#83A598"),
		Pink:       lipgloss.Color("#D3869B"),
		Yellow:     lipgloss.Color("#FABD2F"),
	}
}

// GruvboxLight returns the Gruvbox light theme.
func GruvboxLight() *Theme {
	return &Theme{
		Background: lipgloss.Color("#FBF1C7"),
		Accent:     lipgloss.Color("#D79921"),
		AccentFg:   lipgloss.Color("#FBF1C7"), // Light text on yellow accent
		AccentDim:  lipgloss.Color("#E0CFA9"),
		Border:     lipgloss.Color("#D5C4A1"),
		BorderDim:  lipgloss.Color("#C0B58A"),
		MutedFg:    lipgloss.Color("#7C6F64"),
		TextFg:     lipgloss.Color("#3C3836"),
		SuccessFg:  lipgloss.Color("#79740E"),
		WarnFg:     lipgloss.Color("#D79921"),
		ErrorFg:    lipgloss.Color("#9D0006"),
		Cyan:       lipgloss.Color("#427B58"),
		Pink:       lipgloss.Color("#B16286"),
		Yellow:     lipgloss.Color("#D79921"),
	}
}

// Nord returns the Nord theme.
func Nord() *Theme {
	return &Theme{
		Background: lipgloss.Color("#2E3440"),
		Accent:     lipgloss.Color("#88C0D0"),
		AccentFg:   lipgloss.Color("#2E3440"), // Dark text on accent
		AccentDim:  lipgloss.Color("#3B4252"),
		Border:     lipgloss.Color("#4C566A"),
		BorderDim:  lipgloss.Color("#434C5E"),
		MutedFg:    lipgloss.Color("#81A1C1"),
		TextFg:     lipgloss.Color("#E5E9F0"),
		SuccessFg:  lipgloss.Color("#A3BE8C"),
		WarnFg:     lipgloss.Color("#EBCB8B"),
		ErrorFg:    lipgloss.Color("#BF616A"),
		Cyan:       lipgloss.Color("#88C0D0"),
		Pink:       lipgloss.Color("#B48EAD"),
		Yellow:     lipgloss.Color("#EBCB8B"),
	}
}

// CatppuccinMocha returns the Catppuccin Mocha theme.
func CatppuccinMocha() *Theme {
	return &Theme{
		Background: lipgloss.Color("#1E1E2E"),
		Accent:     lipgloss.Color("#B4BEFE"),
		AccentFg:   lipgloss.Color("#1E1E2E"), // Dark text on accent
		AccentDim:  lipgloss.Color("#313244"),
		Border:     lipgloss.Color("#45475A"),
		BorderDim:  lipgloss.Color("#313244"),
		MutedFg:    lipgloss.Color("#6C7086"),
		TextFg:     lipgloss.Color("#CDD6F4"),
		SuccessFg:  lipgloss.Color("#A6E3A1"),
		WarnFg:     lipgloss.Color("#F9E2AF"),
		ErrorFg:    lipgloss.Color("#F38BA8"),
		Cyan:       lipgloss.Color("#89DCEB"),
		Pink:       lipgloss.Color("#F5C2E7"),
		Yellow:     lipgloss.Color("#F9E2AF"),
	}
}

// CatppuccinLatte returns the Catppuccin Latte theme.
func CatppuccinLatte() *Theme {
	return &Theme{
		Background: lipgloss.Color("#EFF1F5"),
		Accent:     lipgloss.Color("#1E66F5"), // Blue
		AccentFg:   lipgloss.Color("#FFFFFF"), // White text on accent
		AccentDim:  lipgloss.Color("#CCD0DA"), // Surface0
		Border:     lipgloss.Color("#9CA0B0"), // Overlay0
		BorderDim:  lipgloss.Color("#BCC0CC"), // Surface1
		MutedFg:    lipgloss.Color("#6C6F85"), // Subtext0
		TextFg:     lipgloss.Color("#4C4F69"), // Text
		SuccessFg:  lipgloss.Color("#40A02B"), // Green
		WarnFg:     lipgloss.Color("#DF8E1D"), // Yellow
		ErrorFg:    lipgloss.Color("#D20F39"), // Red
		Cyan:       lipgloss.Color("#04A5E5"), // Sky
		Pink:       lipgloss.Color("#EA76CB"), // Pink
		Yellow:     lipgloss.Color("#DF8E1D"), // Yellow
	}
}

// GetTheme returns a theme by name, or Dracula if not found.
func GetTheme(name string) *Theme {
	switch name {
	case DraculaLightName:
		return DraculaLight()
	case SolarizedLightName:
		return SolarizedLight()
	case GruvboxDarkName:
		return GruvboxDark()
	case GruvboxLightName:
		return GruvboxLight()
	case NordName:
		return Nord()
	case CatppuccinMochaName:
		return CatppuccinMocha()
	case CatppuccinLatteName:
		return CatppuccinLatte()
	default:
		return Dracula()
	}
}

// IsLight returns true if the theme is a light theme.
func IsLight(name string) bool {
	switch name {
	case DraculaLightName, SolarizedLightName, GruvboxLightName, CatppuccinLatteName:
		return true
	default:
		return false
	}
}

// DefaultDark returns the default dark theme name.
func DefaultDark() string {
	return DraculaName
}

// DefaultLight returns the default light theme name.
func DefaultLight() string {
	return DraculaLightName
}

// AvailableThemes returns a list of available theme names.
func AvailableThemes() []string {
	return []string{
		DraculaName,
		DraculaLightName,
		SolarizedLightName,
		GruvboxDarkName,
		GruvboxLightName,
		NordName,
		CatppuccinMochaName,
		CatppuccinLatteName,
	}
}

// DetectBackground picks a default theme name from the terminal background.
// The terminal query can stall on terminals that never answer, hence the
// timeout.
func DetectBackground(timeout time.Duration) (string, error) {
	done := make(chan bool, 1)
	go func() {
		done <- lipgloss.HasDarkBackground()
	}()

	select {
	case dark := <-done:
		if dark {
			return DefaultDark(), nil
		}
		return DefaultLight(), nil
	case <-time.After(timeout):
		return "", fmt.Errorf("terminal background detection timed out after %s", timeout)
	}
}

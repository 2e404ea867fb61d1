package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/lazyuntrack/internal/theme"
)

// HelpScreen renders searchable documentation for the app controls.
type HelpScreen struct {
	Viewport    viewport.Model
	Width       int
	Height      int
	FullText    []string
	SearchInput textinput.Model
	Searching   bool
	SearchQuery string
	Thm         *theme.Theme
	ShowIcons   bool
}

// NewHelpScreen initializes help content with the available screen size.
func NewHelpScreen(maxWidth, maxHeight int, thm *theme.Theme, showIcons bool) *HelpScreen {
	helpTextTemplate := `{{HELP_TITLE}}LazyUntrack Help Guide

**{{HELP_NAV}}Navigation**
- j / {{ARROW_DOWN}}: Move cursor down in the file tree
- k / {{ARROW_UP}}: Move cursor up in the file tree
- g / G: Jump to first / last row
- Tab: Switch focus between tree and preview
- q: Quit application

**{{HELP_SELECTION}}Selection**
- Space: Toggle the selected file, or a directory's whole subtree
- a: Clear the selection (nothing will be untracked)
- A: Select every file found
- {{CHECK_ON}}: File will be untracked
- {{CHECK_PARTIAL}}: Directory with only some files selected
- {{CHECK_OFF}}: File stays tracked

**{{HELP_TREE}}Tree Pane**
- h / {{ARROW_LEFT}}: Collapse the selected directory, or jump to its parent
- l / {{ARROW_RIGHT}}: Expand the selected directory
- Directories with a single child chain are shown compressed (a/b/c)
- Sorting is display-only: directories first, then by name

**{{HELP_PREVIEW}}Preview Pane**
- Shows the exact commands that Enter will run, grouped per repository
- j / k: Scroll (when the preview is focused)
- Ctrl+D / Ctrl+U: Half page down / up
- The script updates after every toggle

**{{HELP_ACTIONS}}Actions**
- Enter: Untrack the selected files (asks for confirmation first)
- i: Inspect which ignore rule matches the selected file (git check-ignore -v)
- R: Limit the scan to a subset of repositories
- r: Rescan the project root
- Untracking runs git rm --cached; files are never deleted from disk

**{{HELP_FILTERING_SEARCH}}Filtering**
- /: Filter tree rows by substring (case-insensitive)
- Enter: Keep the filter and return to the tree
- Esc: Clear the filter
- Toggling through a filtered row still selects the real file

**{{HELP_BACKGROUND_REFRESH}}Background Refresh**
- Configured via auto_refresh in the configuration file
- Watches each repository's index, .gitignore and .git/info/exclude
- Edits debounce into an automatic rescan

**{{HELP_HELP_NAVIGATION}}Help Navigation**
- /: Search help (Enter to apply, Esc to clear)
- q / Esc: Close help
- j / k: Scroll up / down
- Ctrl+D / Ctrl+U: Scroll half page down / up

**{{HELP_SHELL_COMPLETION}}Shell Completion**
Generate completions: lazyuntrack completion <bash|zsh>
For CLI commands, see: lazyuntrack --help

**{{HELP_CONFIGURATION}}Configuration & Overrides**
Configuration is read from multiple sources (in order of precedence):
1. CLI overrides (highest): lazyuntrack --config=lu.key=value
2. Git local config: git config --local lu.key value
3. Git global config: git config --global lu.key value
4. YAML file: ~/.config/lazyuntrack/config.yaml
5. Built-in defaults (lowest)

Example: lazyuntrack --config=lu.theme=nord --config=lu.max_depth=3

Keys: theme, auto_refresh, icons, max_depth, skip, command_template,
header_template, state_dir, debug_log.

**{{HELP_ICON_CONFIGURATION}}Icon Configuration**
- icons: Enable Nerd Font file icons and UI glyphs. Default: true.
- If icons render as placeholder glyphs, set icons: false or install a font patched with Nerd Font.

{{HELP_TIP}}Tip: git rm --cached only rewrites the index.
       Commit the result afterwards to stop tracking the files for good.`

	replacer := strings.NewReplacer(
		"{{HELP_TITLE}}", iconPrefix(UIIconHelpTitle, showIcons),
		"{{HELP_NAV}}", iconPrefix(UIIconNavigation, showIcons),
		"{{HELP_SELECTION}}", iconPrefix(UIIconSelection, showIcons),
		"{{HELP_TREE}}", iconPrefix(UIIconTreePane, showIcons),
		"{{HELP_PREVIEW}}", iconPrefix(UIIconPreviewPane, showIcons),
		"{{HELP_ACTIONS}}", iconPrefix(UIIconActions, showIcons),
		"{{HELP_FILTERING_SEARCH}}", iconPrefix(UIIconFilterSearch, showIcons),
		"{{HELP_BACKGROUND_REFRESH}}", iconPrefix(UIIconBackgroundRefresh, showIcons),
		"{{HELP_HELP_NAVIGATION}}", iconPrefix(UIIconHelpNavigation, showIcons),
		"{{HELP_SHELL_COMPLETION}}", iconPrefix(UIIconShellCompletion, showIcons),
		"{{HELP_CONFIGURATION}}", iconPrefix(UIIconConfiguration, showIcons),
		"{{HELP_ICON_CONFIGURATION}}", iconPrefix(UIIconIconConfiguration, showIcons),
		"{{HELP_TIP}}", iconPrefix(UIIconTip, showIcons),
		"{{CHECK_ON}}", checkboxIndicator(true, showIcons),
		"{{CHECK_OFF}}", checkboxIndicator(false, showIcons),
		"{{CHECK_PARTIAL}}", checkboxPartialIndicator(showIcons),
		"{{ARROW_UP}}", arrowUp(showIcons),
		"{{ARROW_DOWN}}", arrowDown(showIcons),
		"{{ARROW_LEFT}}", arrowLeft(showIcons),
		"{{ARROW_RIGHT}}", arrowRight(showIcons),
	)

	helpText := replacer.Replace(helpTextTemplate)

	width := 80
	height := 30
	if maxWidth > 0 {
		width = minInt(100, maxInt(60, int(float64(maxWidth)*0.75)))
	}
	if maxHeight > 0 {
		height = minInt(40, maxInt(20, int(float64(maxHeight)*0.7)))
	}

	vp := viewport.New(width, maxInt(5, height-3))
	fullLines := strings.Split(helpText, "\n")

	ti := textinput.New()
	ti.Placeholder = "Search help (/ to start, Enter to apply, Esc to clear)"
	ti.CharLimit = 64
	ti.Prompt = "/ "
	ti.SetValue("")
	ti.Blur()
	ti.Width = maxInt(20, width-6)

	hs := &HelpScreen{
		Viewport:    vp,
		Width:       width,
		Height:      height,
		FullText:    fullLines,
		SearchInput: ti,
		Thm:         thm,
		ShowIcons:   showIcons,
	}

	hs.refreshContent()
	return hs
}

// Type returns TypeHelp to identify this screen.
func (s *HelpScreen) Type() Type {
	return TypeHelp
}

// Update handles scrolling and search input for the help screen.
func (s *HelpScreen) Update(msg tea.KeyMsg) (Screen, tea.Cmd) {
	var cmd tea.Cmd
	key := msg.String()

	switch key {
	case "/":
		if !s.Searching {
			s.Searching = true
			s.SearchInput.Focus()
			return s, textinput.Blink
		}
	case "enter":
		if s.Searching {
			s.SearchQuery = strings.TrimSpace(s.SearchInput.Value())
			s.Searching = false
			s.SearchInput.Blur()
			s.refreshContent()
			return s, nil
		}
	case "esc", "ctrl+c":
		// If searching, clear search; otherwise close help
		if s.Searching || s.SearchQuery != "" {
			s.Searching = false
			s.SearchInput.SetValue("")
			s.SearchQuery = ""
			s.SearchInput.Blur()
			s.refreshContent()
			return s, nil
		}
		// Close help screen
		return nil, nil
	case "q":
		// Always close on 'q'
		return nil, nil
	}

	if s.Searching {
		s.SearchInput, cmd = s.SearchInput.Update(msg)
		newQuery := strings.TrimSpace(s.SearchInput.Value())
		if newQuery != s.SearchQuery {
			s.SearchQuery = newQuery
			s.refreshContent()
		}
		return s, cmd
	}

	// Handle viewport scrolling
	switch key {
	case "ctrl+d", " ":
		s.Viewport.HalfPageDown()
		return s, nil
	case "ctrl+u":
		s.Viewport.HalfPageUp()
		return s, nil
	case "j", "down":
		s.Viewport.ScrollDown(1)
		return s, nil
	case "k", "up":
		s.Viewport.ScrollUp(1)
		return s, nil
	}

	s.Viewport, cmd = s.Viewport.Update(msg)
	return s, cmd
}

// refreshContent updates the viewport with styled and filtered content.
func (s *HelpScreen) refreshContent() {
	content := s.renderContent()
	s.Viewport.SetContent(content)
	s.Viewport.GotoTop()
}

// SetSize updates the help screen dimensions (useful on terminal resize).
func (s *HelpScreen) SetSize(maxWidth, maxHeight int) {
	width := 80
	height := 30
	if maxWidth > 0 {
		width = minInt(100, maxInt(60, int(float64(maxWidth)*0.75)))
	}
	if maxHeight > 0 {
		height = minInt(40, maxInt(20, int(float64(maxHeight)*0.7)))
	}
	s.Width = width
	s.Height = height

	// Update viewport size
	// height - 4 for borders/header/footer
	s.Viewport.Width = s.Width - 2
	s.Viewport.Height = maxInt(5, s.Height-4)
}

// renderContent applies styling and search filtering to help text.
func (s *HelpScreen) renderContent() string {
	lines := s.FullText

	// Apply styling to help content
	styledLines := []string{}
	titleStyle := lipgloss.NewStyle().Foreground(s.Thm.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(s.Thm.SuccessFg).Bold(true)

	for _, line := range lines {
		// Style section headers (lines that start with ** and end with **)
		if strings.HasPrefix(line, "**") && strings.HasSuffix(line, "**") {
			header := strings.TrimPrefix(strings.TrimSuffix(line, "**"), "**")
			prefix := disclosureIndicator(false, s.ShowIcons)
			styledLines = append(styledLines, titleStyle.Render(prefix+" "+header))
			continue
		}

		// Style key bindings (lines starting with "- " and containing ": ")
		if strings.HasPrefix(line, "- ") {
			// Split on ": " (colon + space) to handle keys that contain ":"
			parts := strings.SplitN(line, ": ", 2)
			if len(parts) == 2 {
				keys := strings.TrimPrefix(parts[0], "- ")
				description := parts[1]
				styledLine := "  " + keyStyle.Render(keys) + ": " + description
				styledLines = append(styledLines, styledLine)
				continue
			}
		}

		styledLines = append(styledLines, line)
	}

	// Handle search filtering
	if strings.TrimSpace(s.SearchQuery) != "" {
		query := strings.ToLower(strings.TrimSpace(s.SearchQuery))
		highlightStyle := lipgloss.NewStyle().Foreground(s.Thm.AccentFg).Background(s.Thm.Accent).Bold(true)
		filteredLines := []string{}
		for _, line := range styledLines {
			lower := strings.ToLower(line)
			if strings.Contains(lower, query) {
				filteredLines = append(filteredLines, highlightMatches(line, lower, query, highlightStyle))
			}
		}

		if len(filteredLines) == 0 {
			return fmt.Sprintf("No help entries match %q", s.SearchQuery)
		}
		return strings.Join(filteredLines, "\n")
	}

	return strings.Join(styledLines, "\n")
}

// highlightMatches highlights all occurrences of the query in the line.
func highlightMatches(line, lowerLine, lowerQuery string, style lipgloss.Style) string {
	if lowerQuery == "" {
		return line
	}

	var b strings.Builder
	searchFrom := 0
	qLen := len(lowerQuery)

	for {
		idx := strings.Index(lowerLine[searchFrom:], lowerQuery)
		if idx < 0 {
			b.WriteString(line[searchFrom:])
			break
		}
		start := searchFrom + idx
		end := start + qLen
		b.WriteString(line[searchFrom:start])
		b.WriteString(style.Render(line[start:end]))
		searchFrom = end
	}

	return b.String()
}

// View renders the help content and search input inside the viewport.
func (s *HelpScreen) View() string {
	content := s.renderContent()

	// Keep viewport sized to available area (minus header/search lines)
	vHeight := maxInt(5, s.Height-4) // -4 for borders/header/footer
	s.Viewport.Width = s.Width - 2   // -2 for borders
	s.Viewport.Height = vHeight
	s.Viewport.SetContent(content)

	// Enhanced help modal with rounded border
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Thm.Accent).
		Width(s.Width).
		Padding(0)

	titleStyle := lipgloss.NewStyle().
		Foreground(s.Thm.Accent).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(s.Thm.BorderDim).
		Width(s.Width-2).
		Padding(0, 1).
		Render("❓ Help")

	// Search bar styling
	searchView := ""
	if s.Searching || s.SearchQuery != "" {
		searchView = lipgloss.NewStyle().
			Width(s.Width-2).
			Padding(0, 1).
			Render(s.SearchInput.View())

		// Add separator after search
		searchView += "\n" + lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(s.Thm.BorderDim).
			Width(s.Width-2).
			Render("")
	}

	// Footer
	footerStyle := lipgloss.NewStyle().
		Foreground(s.Thm.MutedFg).
		Align(lipgloss.Left).
		Width(s.Width - 2).
		PaddingTop(1)
	footer := footerStyle.Render("j/k: scroll • Ctrl+d/u: page • /: search • esc: close")

	// Viewport styling
	vpStyle := lipgloss.NewStyle().
		Padding(0, 1).
		Width(s.Width - 2)

	body := vpStyle.Render(s.Viewport.View())

	contentBlock := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle,
		searchView,
		body,
		footer,
	)

	return boxStyle.Render(contentBlock)
}

// Helper functions for min/max
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

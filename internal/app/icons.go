package app

import "github.com/chmouel/lazyuntrack/internal/app/services"

// UIIcon identifies a Nerd Font glyph slot used around the interface.
type UIIcon int

// UIIcon constants.
const (
	UIIconHelpTitle UIIcon = iota
	UIIconNavigation
	UIIconSelection
	UIIconTreePane
	UIIconPreviewPane
	UIIconActions
	UIIconFilterSearch
	UIIconBackgroundRefresh
	UIIconHelpNavigation
	UIIconShellCompletion
	UIIconConfiguration
	UIIconIconConfiguration
	UIIconTip
	UIIconRepo
	UIIconWarning
	UIIconFilter
)

// uiIcon returns the glyph for an icon slot.
func uiIcon(icon UIIcon) string {
	switch icon {
	case UIIconHelpTitle:
		return "❓"
	case UIIconNavigation:
		return "󰆾"
	case UIIconSelection:
		return "󰄵"
	case UIIconTreePane:
		return "󰙅"
	case UIIconPreviewPane:
		return "󰈈"
	case UIIconActions:
		return "󱐋"
	case UIIconFilterSearch:
		return ""
	case UIIconBackgroundRefresh:
		return "󰑓"
	case UIIconHelpNavigation:
		return "󰌌"
	case UIIconShellCompletion:
		return ""
	case UIIconConfiguration:
		return ""
	case UIIconIconConfiguration:
		return "󰏘"
	case UIIconTip:
		return "󰛨"
	case UIIconRepo:
		return "󰊢"
	case UIIconWarning:
		return ""
	case UIIconFilter:
		return "󰈲"
	default:
		return ""
	}
}

// iconPrefix returns "glyph " for the slot, or "" when icons are off.
func iconPrefix(icon UIIcon, showIcons bool) string {
	if !showIcons {
		return ""
	}
	return iconWithSpace(uiIcon(icon))
}

const (
	iconCheckOn      = ""
	iconCheckOff     = "󰄱"
	iconCheckPartial = "󰡖"
)

// checkboxGlyph renders the tri-state selection marker for a tree row.
func checkboxGlyph(checkState services.CheckState, showIcons bool) string {
	if showIcons {
		switch checkState {
		case services.CheckAll:
			return iconCheckOn
		case services.CheckSome:
			return iconCheckPartial
		default:
			return iconCheckOff
		}
	}
	switch checkState {
	case services.CheckAll:
		return "[x]"
	case services.CheckSome:
		return "[~]"
	default:
		return "[ ]"
	}
}

// disclosureIndicator marks collapsed or expanded directories.
func disclosureIndicator(collapsed, showIcons bool) string {
	if showIcons {
		if collapsed {
			return "▶"
		}
		return "▼"
	}
	if collapsed {
		return ">"
	}
	return "v"
}

// spinnerFrameSet returns loading screen frames matching the icon setting.
func spinnerFrameSet(iconsEnabled bool) []string {
	if !iconsEnabled {
		return nil
	}
	return []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
}

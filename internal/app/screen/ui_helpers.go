package screen

// UIIcon identifies UI-specific icons.
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
)

type iconProvider interface {
	GetRepoIcon() string
	GetUIIcon(icon UIIcon) string
}

type defaultIconProvider struct{}

func (p *defaultIconProvider) GetRepoIcon() string {
	return ""
}

func (p *defaultIconProvider) GetUIIcon(icon UIIcon) string {
	return ""
}

var currentIconProvider iconProvider = &defaultIconProvider{}

// SetIconProvider sets the global icon provider.
func SetIconProvider(provider iconProvider) {
	currentIconProvider = provider
}

func getIconRepo() string {
	return currentIconProvider.GetRepoIcon()
}

func uiIcon(icon UIIcon) string {
	return currentIconProvider.GetUIIcon(icon)
}

func iconWithSpace(icon string) string {
	if icon == "" {
		return ""
	}
	return icon + " "
}

func iconPrefix(icon UIIcon, showIcons bool) string {
	if !showIcons {
		return ""
	}
	return iconWithSpace(uiIcon(icon))
}

func labelWithIcon(icon UIIcon, label string, showIcons bool) string {
	return iconPrefix(icon, showIcons) + label
}

func repoLabel(label string, showIcons bool) string {
	if !showIcons {
		return label
	}
	return iconWithSpace(getIconRepo()) + label
}

func checkboxIndicator(checked, showIcons bool) string {
	if showIcons {
		if checked {
			return ""
		}
		return "󰄱"
	}
	if checked {
		return "[x]"
	}
	return "[ ]"
}

func checkboxPartialIndicator(showIcons bool) string {
	if showIcons {
		return "󰡖"
	}
	return "[~]"
}

func arrowUp(showIcons bool) string {
	if !showIcons {
		return "Up"
	}
	return "↑"
}

func arrowDown(showIcons bool) string {
	if !showIcons {
		return "Down"
	}
	return "↓"
}

func arrowLeft(showIcons bool) string {
	if !showIcons {
		return "Left"
	}
	return "←"
}

func arrowRight(showIcons bool) string {
	if !showIcons {
		return "Right"
	}
	return "→"
}

func disclosureIndicator(collapsed, showIcons bool) string {
	if !showIcons {
		if collapsed {
			return ">"
		}
		return "v"
	}
	if collapsed {
		return "▶"
	}
	return "▼"
}

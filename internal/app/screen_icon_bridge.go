package app

import "github.com/chmouel/lazyuntrack/internal/app/screen"

// appIconProviderBridge adapts the app's glyph table to the screen package's
// provider interface.
type appIconProviderBridge struct{}

func (b *appIconProviderBridge) GetRepoIcon() string {
	return uiIcon(UIIconRepo)
}

func (b *appIconProviderBridge) GetUIIcon(icon screen.UIIcon) string {
	var appIcon UIIcon
	switch icon {
	case screen.UIIconHelpTitle:
		appIcon = UIIconHelpTitle
	case screen.UIIconNavigation:
		appIcon = UIIconNavigation
	case screen.UIIconSelection:
		appIcon = UIIconSelection
	case screen.UIIconTreePane:
		appIcon = UIIconTreePane
	case screen.UIIconPreviewPane:
		appIcon = UIIconPreviewPane
	case screen.UIIconActions:
		appIcon = UIIconActions
	case screen.UIIconFilterSearch:
		appIcon = UIIconFilterSearch
	case screen.UIIconBackgroundRefresh:
		appIcon = UIIconBackgroundRefresh
	case screen.UIIconHelpNavigation:
		appIcon = UIIconHelpNavigation
	case screen.UIIconShellCompletion:
		appIcon = UIIconShellCompletion
	case screen.UIIconConfiguration:
		appIcon = UIIconConfiguration
	case screen.UIIconIconConfiguration:
		appIcon = UIIconIconConfiguration
	case screen.UIIconTip:
		appIcon = UIIconTip
	case screen.UIIconRepo:
		appIcon = UIIconRepo
	case screen.UIIconWarning:
		appIcon = UIIconWarning
	default:
		return ""
	}
	return uiIcon(appIcon)
}

// init sets up the icon provider bridge for the screen package.
func init() {
	screen.SetIconProvider(&appIconProviderBridge{})
}

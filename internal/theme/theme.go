// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/SEPLEMBER/Oxy-test/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names the renderers look up.
const (
	StyleDefault           = "Default"
	StyleLineNumber        = "LineNumber"
	StyleSelection         = "Selection"
	StyleSearchHighlight   = "SearchHighlight"
	StyleDiffAdded         = "DiffAdded"
	StyleDiffRemoved       = "DiffRemoved"
	StyleDiffFiller        = "DiffFiller"
	StyleDiffHeader        = "DiffHeader"
	StyleStatusBar         = "StatusBar"
	StyleStatusBarModified = "StatusBarModified"
	StyleStatusBarMessage  = "StatusBarMessage"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves name, then the part before its first dot, then
// "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, using base '%s'", t.Name, name, baseName)
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Dark and Light are compiled in and always available.
var (
	Dark  Theme
	Light Theme
)

func init() {
	// Palette shared with the status line
	dkBackground := tcell.NewHexColor(0x2a2f38)
	dkForeground := tcell.NewHexColor(0xc5cdd9)
	dkComment := tcell.NewHexColor(0x5c6370)
	dkYellow := tcell.NewHexColor(0xe5c07b)
	dkGreen := tcell.NewHexColor(0x98c379)
	dkRed := tcell.NewHexColor(0xe06c75)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(dkForeground)
	Dark = Theme{
		Name:   "dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:           base,
			StyleLineNumber:        base.Foreground(dkComment),
			StyleSelection:         base.Reverse(true),
			StyleSearchHighlight:   tcell.StyleDefault.Background(tcell.ColorOrange).Foreground(tcell.ColorBlack),
			StyleDiffAdded:         base.Foreground(dkGreen),
			StyleDiffRemoved:       base.Foreground(dkRed),
			StyleDiffFiller:        base.Foreground(dkComment).Dim(true),
			StyleDiffHeader:        base.Bold(true).Underline(true),
			StyleStatusBar:         tcell.StyleDefault.Background(dkBackground).Foreground(dkForeground),
			StyleStatusBarModified: tcell.StyleDefault.Background(dkBackground).Foreground(dkYellow),
			StyleStatusBarMessage:  tcell.StyleDefault.Background(dkBackground).Foreground(dkForeground).Bold(true),
		},
	}

	ltBackground := tcell.NewHexColor(0xe5e9f0)
	ltForeground := tcell.NewHexColor(0x2e3440)
	ltMuted := tcell.NewHexColor(0x8a8f98)
	ltGreen := tcell.NewHexColor(0x2f7d32)
	ltRed := tcell.NewHexColor(0xb3261e)

	lbase := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(ltForeground)
	Light = Theme{
		Name: "light",
		Styles: map[string]tcell.Style{
			StyleDefault:           lbase,
			StyleLineNumber:        lbase.Foreground(ltMuted),
			StyleSelection:         lbase.Reverse(true),
			StyleSearchHighlight:   tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack),
			StyleDiffAdded:         lbase.Foreground(ltGreen),
			StyleDiffRemoved:       lbase.Foreground(ltRed),
			StyleDiffFiller:        lbase.Foreground(ltMuted),
			StyleDiffHeader:        lbase.Bold(true).Underline(true),
			StyleStatusBar:         tcell.StyleDefault.Background(ltBackground).Foreground(ltForeground),
			StyleStatusBarModified: tcell.StyleDefault.Background(ltBackground).Foreground(ltRed),
			StyleStatusBarMessage:  tcell.StyleDefault.Background(ltBackground).Foreground(ltForeground).Bold(true),
		},
	}
}

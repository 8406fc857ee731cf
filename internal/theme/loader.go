// internal/theme/loader.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/SEPLEMBER/Oxy-test/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// TomlStyleDef is one style in a theme file. Unset fields inherit from the
// theme's Default style.
type TomlStyleDef struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
	Dim       *bool   `toml:"dim"`
}

// TomlDiffColors is the [diff] shorthand: foreground colors of the diff
// viewer rows, applied over the Default style.
type TomlDiffColors struct {
	Added   *string `toml:"added"`
	Removed *string `toml:"removed"`
	Filler  *string `toml:"filler"`
	Header  *string `toml:"header"`
}

// TomlTheme is the layout of a theme file.
//
//	name = "Ocean"
//	extends = "dark"       # start from a built-in theme
//	[diff]
//	added = "#a3be8c"
//	[styles.StatusBar]
//	bg = "#343d46"
type TomlTheme struct {
	Name    string                  `toml:"name"`
	IsDark  *bool                   `toml:"is_dark"`
	Extends string                  `toml:"extends"`
	Diff    TomlDiffColors          `toml:"diff"`
	Styles  map[string]TomlStyleDef `toml:"styles"`
}

// knownStyles are the names renderers look up; others only warn.
var knownStyles = map[string]bool{
	StyleDefault: true, StyleLineNumber: true, StyleSelection: true,
	StyleSearchHighlight: true, StyleDiffAdded: true, StyleDiffRemoved: true,
	StyleDiffFiller: true, StyleDiffHeader: true, StyleStatusBar: true,
	StyleStatusBarModified: true, StyleStatusBarMessage: true,
}

// LoadThemeFromFile parses a TOML theme file. A file without a name is
// named after the file.
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file '%s': %w", filePath, err)
	}
	fallback := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	th, err := parseTheme(string(data), fallback)
	if err != nil {
		return nil, fmt.Errorf("theme file '%s': %w", filePath, err)
	}
	logger.Debugf("Loaded theme '%s' from '%s'", th.Name, filePath)
	return th, nil
}

// parseTheme builds a theme from TOML source.
func parseTheme(src, fallbackName string) (*Theme, error) {
	var tt TomlTheme
	metadata, err := toml.Decode(src, &tt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Theme '%s': Unrecognized keys: %v", tt.Name, undecoded)
	}
	if tt.Name == "" {
		tt.Name = fallbackName
	}

	theme := &Theme{Name: tt.Name, Styles: make(map[string]tcell.Style)}
	baseStyle := tcell.StyleDefault
	if tt.Extends != "" {
		parent, ok := builtin(tt.Extends)
		if !ok {
			return nil, fmt.Errorf("extends unknown built-in theme '%s'", tt.Extends)
		}
		for name, style := range parent.Styles {
			theme.Styles[name] = style
		}
		theme.IsDark = parent.IsDark
		baseStyle = parent.GetStyle(StyleDefault)
	}
	if tt.IsDark != nil {
		theme.IsDark = *tt.IsDark
	}

	if def, ok := tt.Styles[StyleDefault]; ok {
		style, err := convertTomlStyle(def, baseStyle)
		if err != nil {
			logger.Warnf("Theme '%s': Failed to parse 'Default' style, keeping the inherited one: %v", theme.Name, err)
		} else {
			baseStyle = style
		}
	}
	theme.Styles[StyleDefault] = baseStyle

	applyDiffColors(theme, tt.Diff, baseStyle)

	for name, def := range tt.Styles {
		if name == StyleDefault {
			continue
		}
		if base, _, _ := strings.Cut(name, "."); !knownStyles[base] {
			logger.Warnf("Theme '%s': Style '%s' is not used by any view", theme.Name, name)
		}
		style, err := convertTomlStyle(def, baseStyle)
		if err != nil {
			logger.Warnf("Theme '%s': Failed to parse style '%s', skipping: %v", theme.Name, name, err)
			continue
		}
		theme.Styles[name] = style
	}
	return theme, nil
}

func builtin(name string) (*Theme, bool) {
	switch strings.ToLower(name) {
	case Dark.Name:
		return &Dark, true
	case Light.Name:
		return &Light, true
	}
	return nil, false
}

// applyDiffColors sets the diff row styles named in the [diff] table.
// Explicit [styles.*] entries are applied later and win.
func applyDiffColors(theme *Theme, d TomlDiffColors, base tcell.Style) {
	for _, e := range []struct {
		style string
		color *string
		extra func(tcell.Style) tcell.Style
	}{
		{StyleDiffAdded, d.Added, nil},
		{StyleDiffRemoved, d.Removed, nil},
		{StyleDiffFiller, d.Filler, func(s tcell.Style) tcell.Style { return s.Dim(true) }},
		{StyleDiffHeader, d.Header, func(s tcell.Style) tcell.Style { return s.Bold(true).Underline(true) }},
	} {
		if e.color == nil {
			continue
		}
		c, err := parseColorString(*e.color)
		if err != nil {
			logger.Warnf("Theme '%s': [diff] %s: %v", theme.Name, e.style, err)
			continue
		}
		style := base.Foreground(c)
		if e.extra != nil {
			style = e.extra(style)
		}
		theme.Styles[e.style] = style
	}
}

// convertTomlStyle applies the set fields of def over base.
func convertTomlStyle(def TomlStyleDef, base tcell.Style) (tcell.Style, error) {
	style := base
	if def.Fg != nil {
		color, err := parseColorString(*def.Fg)
		if err != nil {
			return style, fmt.Errorf("invalid foreground color '%s': %w", *def.Fg, err)
		}
		style = style.Foreground(color)
	}
	if def.Bg != nil {
		color, err := parseColorString(*def.Bg)
		if err != nil {
			return style, fmt.Errorf("invalid background color '%s': %w", *def.Bg, err)
		}
		style = style.Background(color)
	}

	for _, attr := range []struct {
		set   *bool
		apply func(tcell.Style, bool) tcell.Style
	}{
		{def.Bold, tcell.Style.Bold},
		{def.Italic, tcell.Style.Italic},
		{def.Underline, func(s tcell.Style, on bool) tcell.Style { return s.Underline(on) }},
		{def.Reverse, tcell.Style.Reverse},
		{def.Dim, tcell.Style.Dim},
	} {
		if attr.set != nil {
			style = attr.apply(style, *attr.set)
		}
	}
	return style, nil
}

// parseColorString accepts "#rrggbb", the W3C color names tcell knows,
// "reset" and "default".
func parseColorString(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "reset":
		return tcell.ColorReset, nil
	case "default":
		return tcell.ColorDefault, nil
	}
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) != 6 {
			return tcell.ColorDefault, fmt.Errorf("invalid hex color format '%s', must be #RRGGBB", s)
		}
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid hex value '%s': %w", s, err)
		}
		return tcell.NewHexColor(int32(val)), nil
	}
	if c, ok := tcell.ColorNames[s]; ok {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color format or name '%s'", s)
}

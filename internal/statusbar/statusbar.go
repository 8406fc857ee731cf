package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/SEPLEMBER/Oxy-test/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleModified  tcell.Style
	StyleMessage   tcell.Style
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleModified:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Bold(true),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// StatusBar is the last screen line: file name, position and summary, or a
// temporary message while one is active.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	filePath   string
	isModified bool
	cursorPos  types.Position
	summary    string

	tempMessage     string
	tempMessageTime time.Time
	now             func() time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config, now: time.Now}
}

// SetFileInfo updates the file path shown in the status bar.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetCursorInfo updates the position shown.
func (sb *StatusBar) SetCursorInfo(pos types.Position) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
}

// SetSummary replaces the summary text, typically from an Aggregator.
func (sb *StatusBar) SetSummary(summary string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.summary = summary
}

// SetTemporaryMessage displays a message for the configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Text returns the line Draw would render and its style, expiring a stale
// temporary message.
func (sb *StatusBar) Text() (string, tcell.Style) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if !sb.tempMessageTime.IsZero() {
		if sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout {
			return sb.tempMessage, sb.config.StyleMessage
		}
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}

	fPath := sb.filePath
	if fPath == "" {
		fPath = "[No Name]"
	}
	text := fmt.Sprintf("%s -- %s", fPath, sb.cursorPos)
	style := sb.config.StyleDefault
	if sb.isModified {
		text = fPath + " [Modified] -- " + sb.cursorPos.String()
		style = sb.config.StyleModified
	}
	if sb.summary != "" {
		text += " -- " + sb.summary
	}
	return text, style
}

// Draw renders the status bar on the last row using visual widths.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1
	text, style := sb.Text()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	gr := uniseg.NewGraphemes(text)
	x := 0
	for gr.Next() {
		w := gr.Width()
		if x+w > width {
			break
		}
		if runes := gr.Runes(); len(runes) > 0 {
			screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += w
	}
}

// internal/plugin/plugin.go
package plugin

import "github.com/SEPLEMBER/Oxy-test/internal/event"

// CommandFunc defines the signature for commands registered by plugins.
type CommandFunc func(args []string) error

// EditorAPI is the part of an editing session plugins may use. Every method
// is safe to call from a plugin goroutine.
type EditorAPI interface {
	// Document
	FilePath() string
	IsModified() bool
	Text() string
	Save() error

	// Events
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// Commands
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// Status line
	SetStatusMessage(format string, args ...interface{})

	// PluginConfig returns a value from the plugin's configuration table.
	PluginConfig(pluginName, key string) (interface{}, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded, to subscribe to
	// events and register commands.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the session closes.
	Shutdown() error
}

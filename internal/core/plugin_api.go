package core

import (
	"fmt"
	"sort"

	"github.com/SEPLEMBER/Oxy-test/internal/event"
	"github.com/SEPLEMBER/Oxy-test/internal/logger"
	"github.com/SEPLEMBER/Oxy-test/internal/plugin"
)

var _ plugin.EditorAPI = (*Editor)(nil)

// DispatchEvent sends an event on the session bus.
func (e *Editor) DispatchEvent(eventType event.Type, data interface{}) {
	e.events.Dispatch(eventType, data)
}

// SubscribeEvent adds handler to the session bus.
func (e *Editor) SubscribeEvent(eventType event.Type, handler event.Handler) {
	e.events.Subscribe(eventType, handler)
}

// RegisterCommand makes a named command available to ExecuteCommand.
func (e *Editor) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	e.lock()
	defer e.unlock()
	if name == "" || cmdFunc == nil {
		return fmt.Errorf("invalid command registration for %q", name)
	}
	if _, exists := e.commands[name]; exists {
		return fmt.Errorf("command %q already registered", name)
	}
	e.commands[name] = cmdFunc
	logger.Debugf("Editor: registered command %q", name)
	return nil
}

// ExecuteCommand runs a registered command. The session lock is not held
// while it runs.
func (e *Editor) ExecuteCommand(name string, args []string) error {
	e.lock()
	cmd, ok := e.commands[name]
	e.unlock()
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	return cmd(args)
}

// Commands lists the registered command names, sorted.
func (e *Editor) Commands() []string {
	e.lock()
	defer e.unlock()
	names := make([]string, 0, len(e.commands))
	for name := range e.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetStatusMessage sets a transient message for the status line.
func (e *Editor) SetStatusMessage(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	e.lock()
	e.statusMessage = msg
	e.unlock()
	logger.Debugf("Editor: status message %q", msg)
}

// StatusMessage returns the last message set by SetStatusMessage.
func (e *Editor) StatusMessage() string {
	e.lock()
	defer e.unlock()
	return e.statusMessage
}

// PluginConfig returns key from the named plugin's configuration table.
func (e *Editor) PluginConfig(pluginName, key string) (interface{}, bool) {
	table, ok := e.pluginConfig[pluginName]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}

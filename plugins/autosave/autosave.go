// Package autosave periodically writes a modified, named document.
package autosave

import (
	"fmt"
	"sync"
	"time"

	"github.com/SEPLEMBER/Oxy-test/internal/logger"
	"github.com/SEPLEMBER/Oxy-test/internal/plugin"
)

var _ plugin.Plugin = (*AutoSave)(nil)

const (
	defaultEnabled  = false
	defaultInterval = 1 * time.Minute
)

// AutoSave runs a saver goroutine while enabled.
type AutoSave struct {
	api plugin.EditorAPI

	mutex    sync.RWMutex
	enabled  bool
	interval time.Duration
	saves    int

	stopChan chan struct{}
	wg       sync.WaitGroup
}

func New() *AutoSave {
	return &AutoSave{
		enabled:  defaultEnabled,
		interval: defaultInterval,
	}
}

func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads "enabled" (bool) and "interval" (duration string) from
// the plugin configuration and registers the "autosave" command.
func (p *AutoSave) Initialize(api plugin.EditorAPI) error {
	p.api = api
	name := p.Name()

	p.mutex.Lock()
	if v, ok := api.PluginConfig(name, "enabled"); ok {
		if b, isBool := v.(bool); isBool {
			p.enabled = b
		} else {
			logger.Warnf("%s: Invalid type for 'enabled' config (%T), using default (%v)", name, v, p.enabled)
		}
	}
	if v, ok := api.PluginConfig(name, "interval"); ok {
		s, isStr := v.(string)
		d, err := time.ParseDuration(s)
		switch {
		case !isStr:
			logger.Warnf("%s: Invalid type for 'interval' config (%T), using default (%v)", name, v, p.interval)
		case err != nil || d <= 0:
			logger.Warnf("%s: Invalid 'interval' config '%s', using default (%v)", name, s, p.interval)
		default:
			p.interval = d
		}
	}
	enabled, interval := p.enabled, p.interval
	p.mutex.Unlock()

	if err := api.RegisterCommand("autosave", p.command); err != nil {
		return fmt.Errorf("failed to register 'autosave' command: %w", err)
	}

	logger.Infof("%s initialized. Enabled: %v, Interval: %v", name, enabled, interval)
	if enabled {
		p.start(interval)
	}
	return nil
}

func (p *AutoSave) Shutdown() error {
	p.stop()
	return nil
}

// Saves returns how many automatic saves succeeded.
func (p *AutoSave) Saves() int {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.saves
}

// command handles "autosave on|off|now".
func (p *AutoSave) command(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: autosave on|off|now")
	}
	switch args[0] {
	case "on":
		p.mutex.Lock()
		p.enabled = true
		interval := p.interval
		p.mutex.Unlock()
		p.start(interval)
	case "off":
		p.mutex.Lock()
		p.enabled = false
		p.mutex.Unlock()
		p.stop()
	case "now":
		p.saveIfModified()
	default:
		return fmt.Errorf("autosave: unknown argument %q", args[0])
	}
	p.api.SetStatusMessage("autosave: %s", args[0])
	return nil
}

func (p *AutoSave) start(interval time.Duration) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	if p.stopChan != nil {
		return
	}
	p.stopChan = make(chan struct{})
	p.wg.Add(1)
	go p.saverLoop(interval, p.stopChan)
	logger.Debugf("%s: Saver goroutine started.", p.Name())
}

func (p *AutoSave) stop() {
	p.mutex.Lock()
	stopChan := p.stopChan
	p.stopChan = nil
	p.mutex.Unlock()

	if stopChan != nil {
		close(stopChan)
		p.wg.Wait()
		logger.Debugf("%s: Saver goroutine stopped.", p.Name())
	}
}

func (p *AutoSave) saverLoop(interval time.Duration, stopChan <-chan struct{}) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.saveIfModified()
		case <-stopChan:
			return
		}
	}
}

func (p *AutoSave) saveIfModified() {
	if !p.api.IsModified() {
		return
	}
	filePath := p.api.FilePath()
	if filePath == "" {
		logger.Debugf("%s: Buffer is modified but has no name, skipping auto-save.", p.Name())
		return
	}

	if err := p.api.Save(); err != nil {
		logger.Errorf("%s: Auto-save failed for '%s': %v", p.Name(), filePath, err)
		return
	}
	p.mutex.Lock()
	p.saves++
	p.mutex.Unlock()
	logger.Infof("%s: Auto-saved '%s'", p.Name(), filePath)
}

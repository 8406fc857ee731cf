// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/SEPLEMBER/Oxy-test/internal/fileio"
	"github.com/SEPLEMBER/Oxy-test/internal/lineending"
	"github.com/SEPLEMBER/Oxy-test/internal/logger"
	"golang.org/x/text/encoding/htmlindex"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Editor EditorConfig  `toml:"editor"`
	Batch  BatchConfig   `toml:"batch"`
	Store  StoreConfig   `toml:"store"`
	Theme  ThemeConfig   `toml:"theme"`
}

// EditorConfig holds document and session settings.
type EditorConfig struct {
	Encoding         string   `toml:"encoding"`    // charset name, e.g. "UTF-8", "windows-1251"
	LineEnding       string   `toml:"line_ending"` // unspecified, unix, windows or mac
	MaxHistory       int      `toml:"max_history"` // -1 keeps every edit
	CaseInsensitive  bool     `toml:"case_insensitive"`
	SystemClipboard  bool     `toml:"system_clipboard"`
	AutoSave         bool     `toml:"autosave"`
	AutoSaveInterval Duration `toml:"autosave_interval"`
	StatusDebounce   Duration `toml:"status_debounce"`
	TabWidth         int      `toml:"tab_width"`
}

// BatchConfig holds directory search/replace settings.
type BatchConfig struct {
	BackupSuffix string   `toml:"backup_suffix"` // empty disables backups
	SkipDirs     []string `toml:"skip_dirs"`
	SkipBinary   bool     `toml:"skip_binary"`
}

// StoreConfig locates the settings database.
type StoreConfig struct {
	Path string `toml:"path"`
}

// ThemeConfig selects the viewer colours.
type ThemeConfig struct {
	Name string `toml:"name"` // built-in theme name
	File string `toml:"file"` // optional TOML theme, overrides Name
}

// Duration is a time.Duration written as "30s" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

var _ fileio.Settings = (*Config)(nil)

// FileEncoding returns the charset used to read and write documents.
func (c *Config) FileEncoding() string {
	return c.Editor.Encoding
}

// LineEndingTarget returns the line ending applied when saving.
func (c *Config) LineEndingTarget() lineending.Target {
	t, _ := lineending.ParseTarget(c.Editor.LineEnding)
	return t
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			Encoding:         DefaultEncoding,
			LineEnding:       DefaultLineEnding,
			MaxHistory:       DefaultMaxHistory,
			SystemClipboard:  SystemClipboard,
			AutoSaveInterval: Duration{DefaultAutoSaveInterval},
			StatusDebounce:   Duration{DefaultStatusDebounce},
			TabWidth:         DefaultTabWidth,
		},
		Batch: BatchConfig{
			BackupSuffix: DefaultBackupSuffix,
			SkipDirs:     []string{".git"},
			SkipBinary:   true,
		},
		Theme: ThemeConfig{Name: DefaultThemeName},
	}
}

// Dir returns the per-user configuration directory, or "" when the platform
// has none.
func Dir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, ConfigDirName)
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
// Keys absent from the file keep the values already in cfg.
func loadFromFile(filePath string, cfg *Config, verbose bool) error {
	_, err := os.Stat(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		if verbose {
			logger.Debugf("Config file not found: %s", filePath)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 && verbose {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	if verbose {
		logger.Infof("Successfully loaded configuration from: %s", filePath)
	}
	return nil
}

// validate resets invalid values to defaults and returns one warning per
// reset. Warnings are returned rather than logged because the logger is
// configured from the result.
func (c *Config) validate() []string {
	defaults := NewDefaultConfig()
	var warnings []string
	reset := func(format string, args ...interface{}) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	if c.Editor.Encoding == "" {
		c.Editor.Encoding = defaults.Editor.Encoding
	} else if _, err := htmlindex.Get(c.Editor.Encoding); err != nil {
		reset("unsupported encoding %q, using %s", c.Editor.Encoding, defaults.Editor.Encoding)
		c.Editor.Encoding = defaults.Editor.Encoding
	}
	if _, err := lineending.ParseTarget(c.Editor.LineEnding); err != nil {
		reset("%v, using %s", err, defaults.Editor.LineEnding)
		c.Editor.LineEnding = defaults.Editor.LineEnding
	}
	if c.Editor.MaxHistory == 0 || c.Editor.MaxHistory < -1 {
		reset("max_history %d is invalid, using %d", c.Editor.MaxHistory, defaults.Editor.MaxHistory)
		c.Editor.MaxHistory = defaults.Editor.MaxHistory
	}
	if c.Editor.AutoSaveInterval.Duration < time.Second {
		c.Editor.AutoSaveInterval = defaults.Editor.AutoSaveInterval
	}
	if c.Editor.StatusDebounce.Duration <= 0 {
		c.Editor.StatusDebounce = defaults.Editor.StatusDebounce
	}
	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Theme.Name == "" {
		c.Theme.Name = defaults.Theme.Name
	}
	if c.Store.Path == "" {
		if dir := Dir(); dir != "" {
			c.Store.Path = filepath.Join(dir, DefaultDBFileName)
		}
	}
	return warnings
}

// Load builds a configuration from defaults, the file at configFilePath (the
// per-user config.toml when empty) and any flags that were set. The returned
// warnings describe values that were reset.
func Load(configFilePath string, flags *Flags) (*Config, []string, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		if dir := Dir(); dir != "" {
			effectivePath = filepath.Join(dir, DefaultConfigFileName)
		}
	}

	var err error
	if effectivePath != "" {
		err = loadFromFile(effectivePath, cfg, false)
	}
	if flags != nil {
		flags.ApplyOverrides(cfg, false)
	}
	return cfg, cfg.validate(), err
}

// LoadConfig loads the process-wide configuration once, typically from main.
// A config file error is returned alongside a usable default configuration.
func LoadConfig(configFilePath string, flags *Flags) (*Config, []string, error) {
	var warnings []string
	loadOnce.Do(func() {
		loadedConfig, warnings, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, warnings, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}

// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/SEPLEMBER/Oxy-test/internal/logger"
)

// Flags holds values parsed from command-line flags.
// Use pointers to distinguish between unset flags and zero-value flags.
type Flags struct {
	set *flag.FlagSet

	ConfigFilePath  *string
	Version         *bool
	LogLevel        *string
	LogFilePath     *string
	Encoding        *string
	LineEnding      *string
	MaxHistory      *int
	StorePath       *string
	Theme           *string
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string
	EnableFiles     *string
	DisableFiles    *string
	DebugLog        *bool
	SystemClipboard *bool
	NoBackup        *bool
}

// DefineFlags sets up the command-line flags on fs, or on the process-wide
// flag set when fs is nil.
func (f *Flags) DefineFlags(fs *flag.FlagSet) {
	if fs == nil {
		fs = flag.CommandLine
	}
	f.set = fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", ConfigDirName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.Encoding = fs.String("encoding", "", "Charset for reading and writing files - Overrides config file")
	f.LineEnding = fs.String("line-ending", "", "Line ending applied on save (unspecified, unix, windows, mac) - Overrides config file")
	f.MaxHistory = fs.Int("max-history", 0, "Undo steps kept per document, -1 for unlimited - Overrides config file")
	f.StorePath = fs.String("db", "", "Path to the settings database - Overrides config file")
	f.Theme = fs.String("theme", "", "Viewer theme name - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.EnableFiles = fs.String("log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.DisableFiles = fs.String("log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")
	f.DebugLog = fs.Bool("debug-log", false, "Enable verbose debug logging for the logger filtering system")
	f.SystemClipboard = fs.Bool("system-clipboard", false, "Use the system clipboard instead of an internal register")
	f.NoBackup = fs.Bool("no-backup", false, "Do not write backup files during batch replace")
}

// ParseFlags defines and parses the flags on the process-wide flag set.
// It returns the remaining non-flag arguments (the command and its operands).
func (f *Flags) ParseFlags() []string {
	f.DefineFlags(nil)
	flag.Parse()
	return flag.Args()
}

// ApplyOverrides updates the Config struct with values from flags *if* they were set.
func (f *Flags) ApplyOverrides(cfg *Config, verbose bool) {
	if f.set == nil {
		return
	}
	// Visit only processes flags that were actually set
	f.set.Visit(func(fl *flag.Flag) {
		if verbose {
			logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		}
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath // Empty string is valid
		case "encoding":
			if *f.Encoding != "" {
				cfg.Editor.Encoding = *f.Encoding
			}
		case "line-ending":
			cfg.Editor.LineEnding = *f.LineEnding
		case "max-history":
			cfg.Editor.MaxHistory = *f.MaxHistory
		case "db":
			if *f.StorePath != "" {
				cfg.Store.Path = *f.StorePath
			}
		case "theme":
			if *f.Theme != "" {
				cfg.Theme.Name = *f.Theme
				cfg.Theme.File = ""
			}
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		case "no-backup":
			if *f.NoBackup {
				cfg.Batch.BackupSuffix = ""
			}
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		}
	})
}

// splitCommaList splits a comma-separated list, dropping empty items.
func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

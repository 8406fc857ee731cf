package config

import "time"

// Base application details
const AppName = "oxy"
const ConfigDirName = "oxy"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml"
const DefaultDBFileName = "oxy.db"
const DefaultLogFileName = "oxy.log"

// Documents
const DefaultEncoding = "UTF-8"
const DefaultLineEnding = "unspecified"
const DefaultMaxHistory = 100

// Session
const SystemClipboard = true
const DefaultAutoSaveInterval = 30 * time.Second
const DefaultStatusDebounce = 200 * time.Millisecond

// Batch
const DefaultBackupSuffix = ".bak"

// Viewer
const DefaultTabWidth = 4
const MessageTimeout = 4 * time.Second
const DefaultThemeName = "dark"

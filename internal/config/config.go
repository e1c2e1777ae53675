// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/softtab/internal/logger"
	"github.com/bethropolis/softtab/internal/types"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Editor EditorConfig  `toml:"editor"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth int `toml:"tab_width"`
	// InsertSpaces false means indentation is made of literal tabs.
	InsertSpaces bool `toml:"insert_spaces"`
	// DetectIndentation lets a loaded file override InsertSpaces.
	DetectIndentation bool `toml:"detect_indentation"`
	ScrollOff         int  `toml:"scroll_off"`
	SystemClipboard   bool `toml:"system_clipboard"`
	StatusBarHeight   int  `toml:"status_bar_height"`
}

// Indent returns the indentation context these settings describe.
func (e EditorConfig) Indent() types.IndentContext {
	return types.IndentContext{TabWidth: e.TabWidth, UseLiteralTabs: !e.InsertSpaces}
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: DefaultLogFileName,
		},
		Editor: EditorConfig{
			TabWidth:          DefaultTabWidth,
			InsertSpaces:      DefaultInsertSpaces,
			DetectIndentation: DefaultDetectIndentation,
			ScrollOff:         DefaultScrollOff,
			SystemClipboard:   SystemClipboard,
			StatusBarHeight:   StatusBarHeight,
		},
	}
}

// DefaultPath is the config file used when no -config flag is given.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName), nil
}

// loadFromFile decodes a TOML file. A missing file yields an empty config
// and no error.
func loadFromFile(filePath string) (*Config, toml.MetaData, error) {
	cfg := &Config{}
	metadata, err := toml.DecodeFile(filePath, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, toml.MetaData{}, nil
	}
	if err != nil {
		return cfg, metadata, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	return cfg, metadata, nil
}

// merge copies the settings the file actually defines over c.
func (c *Config) merge(fileCfg *Config, md toml.MetaData) {
	if md.IsDefined("logger") {
		if fileCfg.Logger.LogLevel != "" {
			c.Logger.LogLevel = fileCfg.Logger.LogLevel
		}
		if md.IsDefined("logger", "log_file") {
			c.Logger.LogFilePath = fileCfg.Logger.LogFilePath
		}
		c.Logger.EnabledTags = fileCfg.Logger.EnabledTags
		c.Logger.DisabledTags = fileCfg.Logger.DisabledTags
		c.Logger.EnabledPackages = fileCfg.Logger.EnabledPackages
		c.Logger.DisabledPackages = fileCfg.Logger.DisabledPackages
		c.Logger.EnabledFiles = fileCfg.Logger.EnabledFiles
		c.Logger.DisabledFiles = fileCfg.Logger.DisabledFiles
		c.Logger.DebugFilter = fileCfg.Logger.DebugFilter
	}

	if fileCfg.Editor.TabWidth > 0 {
		c.Editor.TabWidth = fileCfg.Editor.TabWidth
	}
	if md.IsDefined("editor", "scroll_off") {
		c.Editor.ScrollOff = fileCfg.Editor.ScrollOff
	}
	if fileCfg.Editor.StatusBarHeight > 0 {
		c.Editor.StatusBarHeight = fileCfg.Editor.StatusBarHeight
	}
	// booleans default to true, so only an explicit key may clear them
	if md.IsDefined("editor", "insert_spaces") {
		c.Editor.InsertSpaces = fileCfg.Editor.InsertSpaces
	}
	if md.IsDefined("editor", "detect_indentation") {
		c.Editor.DetectIndentation = fileCfg.Editor.DetectIndentation
	}
	if md.IsDefined("editor", "system_clipboard") {
		c.Editor.SystemClipboard = fileCfg.Editor.SystemClipboard
	}
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 {
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// Load builds a configuration from defaults, the file at configFilePath (or
// the default location when empty) and the flags that were set.
// The returned config is always usable; a non-nil error reports a file that
// could not be parsed.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		if p, err := DefaultPath(); err == nil {
			effectivePath = p
		}
	}

	var fileErr error
	if effectivePath != "" {
		fileCfg, md, err := loadFromFile(effectivePath)
		if err != nil {
			fileErr = err
		} else {
			cfg.merge(fileCfg, md)
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, fileErr
}

// LoadConfig loads the process-wide configuration once; later calls return
// the first result. It should be called from main before logger.Init.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}

package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func parseFlags(t *testing.T, args ...string) *Flags {
	t.Helper()
	f := &Flags{}
	_, err := f.ParseFlags(flag.NewFlagSet("test", flag.ContinueOnError), args)
	require.NoError(t, err)
	return f
}

func TestDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"), nil)
	require.NoError(t, err)
	require.Equal(t, NewDefaultConfig(), cfg)
	require.False(t, cfg.Editor.Indent().UseLiteralTabs)
}

func TestFileValues(t *testing.T) {
	path := writeConfig(t, `
[editor]
tab_width = 2
insert_spaces = false
scroll_off = 0

[logger]
log_level = "debug"
log_file = "-"
disabled_tags = ["event"]
debug_filter = true
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	require.Equal(t, 2, cfg.Editor.TabWidth)
	require.False(t, cfg.Editor.InsertSpaces)
	require.True(t, cfg.Editor.Indent().UseLiteralTabs)
	require.Equal(t, 0, cfg.Editor.ScrollOff)
	require.True(t, cfg.Editor.DetectIndentation)
	require.True(t, cfg.Editor.SystemClipboard)
	require.Equal(t, "debug", cfg.Logger.LogLevel)
	require.Equal(t, "-", cfg.Logger.LogFilePath)
	require.Equal(t, []string{"event"}, cfg.Logger.DisabledTags)
	require.True(t, cfg.Logger.DebugFilter)
}

func TestAbsentBooleanKeepsDefault(t *testing.T) {
	path := writeConfig(t, "[editor]\ntab_width = 8\n")
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.True(t, cfg.Editor.InsertSpaces)
	require.Equal(t, 8, cfg.Editor.Indent().TabWidth)
}

func TestInvalidValuesAreReset(t *testing.T) {
	path := writeConfig(t, "[editor]\ntab_width = -3\nscroll_off = -1\n")
	cfg, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, DefaultTabWidth, cfg.Editor.TabWidth)
	require.Equal(t, DefaultScrollOff, cfg.Editor.ScrollOff)
}

func TestMalformedFileStillReturnsDefaults(t *testing.T) {
	path := writeConfig(t, "[editor\ntab_width = ")
	cfg, err := Load(path, nil)
	require.Error(t, err)
	require.Equal(t, DefaultTabWidth, cfg.Editor.TabWidth)
}

func TestFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "[editor]\ntab_width = 2\n")
	flags := parseFlags(t, "-tabwidth", "8", "-literal-tabs", "-log-tags", "cursor, input", "-loglevel", "warn", "-log-debug-filter")

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.Editor.TabWidth)
	require.False(t, cfg.Editor.InsertSpaces)
	require.Equal(t, []string{"cursor", "input"}, cfg.Logger.EnabledTags)
	require.Equal(t, "warn", cfg.Logger.LogLevel)
	require.True(t, cfg.Logger.DebugFilter)
}

func TestUnsetFlagsLeaveFileAlone(t *testing.T) {
	path := writeConfig(t, "[editor]\ntab_width = 2\nsystem_clipboard = false\n")
	cfg, err := Load(path, parseFlags(t))
	require.NoError(t, err)
	require.Equal(t, 2, cfg.Editor.TabWidth)
	require.False(t, cfg.Editor.SystemClipboard)
}

func TestSplitCommaList(t *testing.T) {
	require.Nil(t, splitCommaList(""))
	require.Equal(t, []string{"a", "b"}, splitCommaList(" a, ,b "))
}

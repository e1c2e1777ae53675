package config

import "time"

// Base application details
const AppName = "softtab"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "softtab.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

const DefaultTabWidth = 4
const DefaultScrollOff = 3
const DefaultInsertSpaces = true
const DefaultDetectIndentation = true
const SystemClipboard = true
const Version = "0.1.0"

package config

import "strings"

// AppVersion is the version of the tool, set at build time.
var AppVersion string

// AppName is the name of the tool.
const AppName = "logocrop"

// LogWinSubDir is the sub directory for the log files on windows.
var LogWinSubDir = AppName

// LogSubDir is the sub directory for the log files.
var LogSubDir = "." + strings.ToLower(AppName)

// LogExt is the extension for the log files.
var LogExt = ".log"

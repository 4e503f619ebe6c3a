package config

import "strings"

type LogLevel string

const (
	LogLevelDebug   LogLevel = "DEBUG"
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarning LogLevel = "WARNING"
	LogLevelError   LogLevel = "ERROR"
	LogLevelFatal   LogLevel = "FATAL"
)

func (l LogLevel) String() string {
	return string(l)
}

// Normalize upper cases the level so config files may use any case
func (l LogLevel) Normalize() LogLevel {
	return LogLevel(strings.ToUpper(strings.TrimSpace(string(l))))
}

type LogConfig struct {
	Level LogLevel `mapstructure:"level" default:"INFO"` // log level - debug, info, warning, error, fatal
}

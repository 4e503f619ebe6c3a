package logger

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/odpf/salt/log"
	"github.com/sirupsen/logrus"

	"github.com/odpf/dotnet-fetch/config"
)

type plainFormatter int

func (p *plainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for key := range entry.Data {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		var data string
		for _, key := range keys {
			data += fmt.Sprintf("%s: %v ", key, entry.Data[key])
		}
		return []byte(fmt.Sprintf("%s %s\n", entry.Message, data)), nil
	}
	return []byte(fmt.Sprintf("%s\n", entry.Message)), nil
}

// NewDefaultLogger initializes plain logger
func NewDefaultLogger() log.Logger {
	return newLogger(os.Stdout, config.LogLevelInfo)
}

// NewClientLogger initializes logger based on log configuration, verbose forces debug level
func NewClientLogger(logConfig config.LogConfig, verbose bool) log.Logger {
	return NewClientLoggerWithWriter(os.Stdout, logConfig, verbose)
}

// NewClientLoggerWithWriter is NewClientLogger writing to w
func NewClientLoggerWithWriter(w io.Writer, logConfig config.LogConfig, verbose bool) log.Logger {
	level := logConfig.Level.Normalize()
	if level == "" {
		level = config.LogLevelInfo
	}
	if verbose {
		level = config.LogLevelDebug
	}
	return newLogger(w, level)
}

func newLogger(w io.Writer, level config.LogLevel) log.Logger {
	return log.NewLogrus(
		log.LogrusWithLevel(level.String()),
		log.LogrusWithWriter(w),
		log.LogrusWithFormatter(new(plainFormatter)),
	)
}

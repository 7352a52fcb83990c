// Package logger configures the process-wide logrus logger.
package logger

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Setup applies level and format ("text" or "json") to the standard logrus
// logger and directs it to out.
func Setup(level, format string, out io.Writer) {
	logrus.SetOutput(out)
	logrus.SetLevel(parseLevel(level))
	switch format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	}
}

// WithComponent returns an entry tagged with the component name.
func WithComponent(component string) *logrus.Entry {
	return logrus.WithField("component", component)
}

// WithQueryID tags entry with the id of a query-answering pass.
func WithQueryID(entry *logrus.Entry, id string) *logrus.Entry {
	return entry.WithField("query_id", id)
}

func parseLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

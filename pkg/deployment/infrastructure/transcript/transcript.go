// Package transcript builds the logger that prints the deployment transcript:
// one plain line per phase announcement, command and diagnostic.
package transcript

import (
	"io"

	"github.com/sirupsen/logrus"

	applogger "github.com/tss-calculator/deployhook/pkg/deployment/application/logger"
)

func New(out io.Writer, verbose bool) applogger.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(formatter{})
	logger.SetLevel(logrus.InfoLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return NewLogger(logger)
}

// NewLogger writes the transcript through an existing logrus logger.
func NewLogger(logger logrus.FieldLogger) applogger.Logger {
	return &transcriptLogger{logger: logger}
}

type transcriptLogger struct {
	logger logrus.FieldLogger
}

func (l *transcriptLogger) Debug(message string) {
	l.logger.Debug(message)
}

func (l *transcriptLogger) Info(message string) {
	l.logger.Info(message)
}

func (l *transcriptLogger) Warning(message string) {
	l.logger.Warn(message)
}

type formatter struct{}

func (formatter) Format(entry *logrus.Entry) ([]byte, error) {
	message := entry.Message
	if entry.Level <= logrus.WarnLevel {
		message = "WARNING: " + message
	}
	return []byte(message + "\n"), nil
}

package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/vvka-141/htmlsign/pkg/htmlsign"
)

// prefixFormatter renders entries as a single line with a level prefix.
// Info lines carry no prefix so per-file progress reads like plain output.
type prefixFormatter struct{}

func (prefixFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var prefix string
	switch entry.Level {
	case logrus.DebugLevel, logrus.TraceLevel:
		prefix = "[VERBOSE] "
	case logrus.WarnLevel:
		prefix = "[WARN] "
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		prefix = "[ERROR] "
	}
	return []byte(prefix + entry.Message + "\n"), nil
}

// ConsoleLogger writes log messages to stderr through logrus.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	logger *logrus.Logger
}

// NewConsoleLogger creates a new ConsoleLogger writing to stderr.
// If verbose is true, Verbose() calls will produce output.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewConsoleLoggerWithWriter(os.Stderr, verbose)
}

// NewConsoleLoggerWithWriter creates a ConsoleLogger writing to w.
func NewConsoleLoggerWithWriter(w io.Writer, verbose bool) *ConsoleLogger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(prefixFormatter{})
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return &ConsoleLogger{logger: logger}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if len(args) > 0 {
		l.logger.Debugf(format, args...)
	} else {
		l.logger.Debug(format)
	}
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	if len(args) > 0 {
		l.logger.Infof(format, args...)
	} else {
		l.logger.Info(format)
	}
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	if len(args) > 0 {
		l.logger.Errorf(format, args...)
	} else {
		l.logger.Error(format)
	}
}

var _ htmlsign.Logger = (*ConsoleLogger)(nil)

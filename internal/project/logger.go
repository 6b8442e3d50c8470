package project

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a named logger writing to stderr at the given level
// ("debug", "info", ...).
func NewLogger(name, level string) (*logrus.Logger, error) {
	return NewLoggerTo(os.Stderr, name, level)
}

// NewLoggerTo is NewLogger with a chosen output.
func NewLoggerTo(out io.Writer, name, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log := logrus.New()
	log.Out = out
	log.Level = lvl
	log.ReportCaller = true
	log.Formatter = &CallerTextFormatter{
		Name:          name,
		TextFormatter: logrus.TextFormatter{FullTimestamp: true, DisableQuote: true},
	}
	return log, nil
}

// CallerTextFormatter prefixes each message with the logger name and the
// calling file and line.
type CallerTextFormatter struct {
	Name string
	logrus.TextFormatter
}

// Format renders a single log entry.
func (f *CallerTextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	prefix := f.Name
	if entry.HasCaller() {
		prefix = fmt.Sprintf("%s %s:%d", f.Name, path.Base(entry.Caller.File), entry.Caller.Line)
	}
	e := entry.Dup()
	e.Level = entry.Level
	e.Message = fmt.Sprintf("[%s] %s", prefix, entry.Message)
	e.Caller = nil
	return f.TextFormatter.Format(e)
}

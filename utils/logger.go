package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  = newLogger(os.Stdout, logrus.InfoLevel)
	ErrorLogger = newLogger(os.Stderr, logrus.WarnLevel)
)

func newLogger(out *os.File, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	l.SetLevel(level)
	return l
}

// InitLogger sets the info logger to the given level ("debug", "info", ...).
// The error logger always keeps warnings and above.
func InitLogger(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}

	InfoLogger = newLogger(os.Stdout, lvl)
	ErrorLogger = newLogger(os.Stderr, logrus.WarnLevel)

	if err != nil {
		ErrorLogger.Warnf("Unknown log level %q, using info", level)
	}
}

// Silence sends the info logger to stderr and keeps only errors.
func Silence() {
	InfoLogger.SetOutput(os.Stderr)
	InfoLogger.SetLevel(logrus.ErrorLevel)
}

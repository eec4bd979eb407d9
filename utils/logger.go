package utils

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	InfoLogger  *logrus.Logger
	ErrorLogger *logrus.Logger
)

func InitLogger() {
	InfoLogger = logrus.New()
	ErrorLogger = logrus.New()

	// progress and summaries go to stdout
	InfoLogger.SetOutput(os.Stdout)
	InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	// skipped records and failures go to stderr
	ErrorLogger.SetOutput(os.Stderr)
	ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	InfoLogger.SetLevel(logrus.InfoLevel)
	ErrorLogger.SetLevel(logrus.ErrorLevel)
}

// SetLogLevel applies a textual level such as "debug" to the info logger.
// Unknown levels leave the logger untouched.
func SetLogLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	if InfoLogger == nil {
		InitLogger()
	}
	InfoLogger.SetLevel(lvl)
	return nil
}

// DiscardLogger returns a logger that drops everything, for tests.
func DiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Info returns InfoLogger, or a discarding logger before InitLogger ran.
func Info() logrus.FieldLogger {
	if InfoLogger == nil {
		return DiscardLogger()
	}
	return InfoLogger
}

// Error returns ErrorLogger, or a discarding logger before InitLogger ran.
func Error() logrus.FieldLogger {
	if ErrorLogger == nil {
		return DiscardLogger()
	}
	return ErrorLogger
}

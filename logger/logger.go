package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the application-wide logger instance, configured by Init.
var Log = logrus.New()

// Init configures the global logger. Called once at startup, and from
// TestMain in packages whose tests exercise code paths that log.
func Init() {
	Log.SetFormatter(&logrus.JSONFormatter{})
	Log.SetOutput(os.Stdout)
	Log.SetLevel(logrus.InfoLevel)
}

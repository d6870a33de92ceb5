// Package logger builds the logrus logger shared by the tradebook commands.
package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New returns a text logger writing to w at the given level. An unknown
// level falls back to warn and says so.
func New(w io.Writer, level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.SetLevel(logrus.WarnLevel)
		log.Warnf("invalid log level %q, defaulting to warn", level)
		return log
	}
	log.SetLevel(lvl)
	return log
}

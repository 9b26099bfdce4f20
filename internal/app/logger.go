package app

import "github.com/sirupsen/logrus"

// NewLogger returns a JSON logger at the named level, falling back to info
// when the name is not a logrus level.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

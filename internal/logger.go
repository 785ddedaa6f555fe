package internal

import (
	"io/ioutil"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the JSON logger every function writes to CloudWatch with.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(EnvOr("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// DiscardLogger is handed to adapters under test.
func DiscardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(ioutil.Discard)
	return logger
}


package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds the CLI logger. Level and format come from LOG_LEVEL and
// LOG_FORMAT; output goes to stderr so generated JSON on stdout stays
// clean for piping.
func New() *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	log.SetOutput(os.Stderr)
	return log
}

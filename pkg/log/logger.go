package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// TimestampFormat is used by every text-formatted logger.
const TimestampFormat = "15:04:05.000"

// New creates a text-formatted logger writing to out.
// An unparsable level leaves the logger at info and is returned as an error
// so the caller can decide between warning and failing.
func New(out io.Writer, level string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: TimestampFormat})
	log.SetLevel(logrus.InfoLevel)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return log, err
	}
	log.SetLevel(parsed)
	return log, nil
}

// Component returns an entry tagged with the component field.
func Component(log *logrus.Logger, name string) *logrus.Entry {
	return log.WithField("component", name)
}

package logger

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
)

// Root is the directory daily log files are written under.
var Root = "./logs"

// NewLogger returns a logger for one concern (settlement, webhook, mq, ...)
// that writes to ./logs/<kind>/<kind>.log.<date> and to stdout.
func NewLogger(kind string) *logrus.Logger {
	log := logrus.New()
	logPath := Root + "/" + kind
	_ = os.MkdirAll(logPath, 0755)

	writer, err := rotatelogs.New(
		logPath+"/"+kind+".log.%Y-%m-%d",
		rotatelogs.WithLinkName(logPath+"/"+kind+".log"),
		rotatelogs.WithRotationTime(24*time.Hour),
		rotatelogs.WithMaxAge(7*24*time.Hour),
	)
	if err != nil {
		log.SetOutput(os.Stdout)
		log.WithError(err).Warn("rotatelogs unavailable, logging to stdout only")
	} else {
		log.SetOutput(io.MultiWriter(os.Stdout, writer))
	}

	log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			return f.Function, fmt.Sprintf("%s:%d", f.File, f.Line)
		},
	})
	log.SetLevel(logrus.InfoLevel)
	return log
}

// SetLevel parses lvl and applies it to every logger given. Unknown levels
// leave the loggers untouched.
func SetLevel(lvl string, loggers ...*logrus.Logger) {
	parsed, err := logrus.ParseLevel(lvl)
	if err != nil {
		return
	}
	for _, l := range loggers {
		l.SetLevel(parsed)
	}
}

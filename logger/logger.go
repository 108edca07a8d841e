package logger

import (
	"io"
	"os"
	"path/filepath"

	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New sets up the application logger writing to stdout and a rotated
// log file under logDir.
func New(logDir string, debug bool) (*logrus.Logger, io.Writer, error) {
	if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
		return nil, nil, err
	}

	logFile := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "app.log"),
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}

	out := io.MultiWriter(os.Stdout, logFile)

	log := logrus.New()
	log.SetOutput(out)
	log.SetFormatter(&logrus.JSONFormatter{})
	if debug {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.InfoLevel)
	}

	return log, out, nil
}

// FiberConfig returns the access-log middleware configuration sharing
// the application log writer.
func FiberConfig(out io.Writer) fiberLogger.Config {
	return fiberLogger.Config{
		Output:     out,
		Format:     "${time} | ${status} | ${latency} | ${method} | ${path} | ${error}\n",
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Local",
	}
}

package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

func logLevel() (logrus.Level, error) {
	levelStr, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		if Development() {
			return logrus.DebugLevel, nil
		}
		return logrus.InfoLevel, nil
	}
	return logrus.ParseLevel(levelStr)
}

// SetupLogging configures every given logger the same way: colored text in
// development, JSON otherwise, plus a rotating file when LOG_FILE is set.
func SetupLogging(loggers ...*logrus.Logger) error {
	level, err := logLevel()
	if err != nil {
		return fmt.Errorf("unable to parse LOG_LEVEL: %w", err)
	}

	var formatter logrus.Formatter = &logrus.JSONFormatter{}
	if Development() {
		formatter = &logrus.TextFormatter{ForceColors: true}
	}

	var fileHook logrus.Hook
	if logFile, ok := os.LookupEnv("LOG_FILE"); ok {
		fileHook, err = rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   logFile,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Level:      level,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return fmt.Errorf("unable to create log file hook: %w", err)
		}
	}

	for _, l := range loggers {
		l.SetLevel(level)
		l.SetFormatter(formatter)
		if fileHook != nil {
			l.AddHook(fileHook)
		}
	}
	return nil
}

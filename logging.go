package fleetdispatch

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lifeline-ems/fleet-dispatch/config"
)

// ConfigureLogging sets up console logging and, when a file path is
// configured, a rotated file hook carrying every level.
func ConfigureLogging(cfg config.LoggingConfig) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{ForceColors: true, FullTimestamp: false})
	log.SetOutput(os.Stdout)

	if cfg.FilePath == "" {
		return nil
	}

	logDir := filepath.Dir(cfg.FilePath)
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}

	rotated := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    100,
		MaxBackups: 30,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	fileFmt := &log.TextFormatter{DisableColors: true, FullTimestamp: true}
	log.AddHook(lfshook.NewHook(lfshook.WriterMap{
		log.PanicLevel: rotated,
		log.FatalLevel: rotated,
		log.ErrorLevel: rotated,
		log.WarnLevel:  rotated,
		log.InfoLevel:  rotated,
		log.DebugLevel: rotated,
		log.TraceLevel: rotated,
	}, fileFmt))
	return nil
}

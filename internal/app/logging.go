package app

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogging настраивает формат и уровень логирования. Логи идут в w (stderr),
// чтобы не смешиваться с построчным отчётом генератора в stdout.
func ConfigureLogging(w io.Writer, level string) error {
	log.SetOutput(w)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if level == "" {
		level = "info"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(lvl)
	return nil
}

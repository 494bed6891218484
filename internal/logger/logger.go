// Package logger создает логгеры charmbracelet/log для утилит hanal.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New создает логгер с префиксом, который пишет в stderr на глобальном уровне.
// stdout оставлен для результатов анализа.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportTimestamp: log.GetLevel() == log.DebugLevel,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// Setup настраивает глобальный логгер: уровень по имени ("debug", "info", ...),
// вывод в stderr и метки времени.
func Setup(level string, timestamp bool) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetDefault(log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		ReportTimestamp: timestamp,
		Formatter:       log.TextFormatter,
	}))
	return nil
}

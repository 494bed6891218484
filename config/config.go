/*
Package config - конфигурация утилит hanal в формате TOML.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/steosofficial/hanal/analyzer"
)

// Config - вся конфигурация.
type Config struct {
	Resource ResourceConfig `toml:"resource"`
	Analysis AnalysisConfig `toml:"analysis"`
	Log      LogConfig      `toml:"log"`
}

// ResourceConfig - расположение бинарных ресурсов.
type ResourceConfig struct {
	Dir string `toml:"dir"`
}

// AnalysisConfig - опции анализа по умолчанию.
type AnalysisConfig struct {
	WordMerge int  `toml:"word_merge"`
	AnalBack  bool `toml:"anal_back"`
	Normalize bool `toml:"normalize"`
	TopK      int  `toml:"top_k"`
}

// LogConfig - параметры логирования.
type LogConfig struct {
	Level     string `toml:"level"`
	Timestamp bool   `toml:"timestamp"`
}

// DefaultConfig возвращает конфигурацию по умолчанию.
func DefaultConfig() *Config {
	opts := analyzer.DefaultOptions()
	return &Config{
		Resource: ResourceConfig{Dir: os.Getenv(analyzer.EnvRscDir)},
		Analysis: AnalysisConfig{
			WordMerge: opts.WordMerge,
			AnalBack:  opts.AnalBack,
			Normalize: opts.Normalize,
			TopK:      opts.TopK,
		},
		Log: LogConfig{Level: "info"},
	}
}

// LoadConfig читает конфигурацию из файла. Отсутствующие ключи берутся по умолчанию,
// отсутствующий файл означает конфигурацию по умолчанию.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warnf("Файл конфигурации %s не найден, используются значения по умолчанию", path)
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		log.Warnf("Неизвестный ключ конфигурации %s в %s", key, path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("конфигурация %s: %w", path, err)
	}
	log.Debugf("Конфигурация загружена из %s", path)
	return cfg, nil
}

// SaveConfig записывает конфигурацию в файл, создавая директорию при необходимости.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(file).Encode(cfg); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Options возвращает строку опций анализатора.
func (c *Config) Options() string {
	return analyzer.Options{
		WordMerge: c.Analysis.WordMerge,
		AnalBack:  c.Analysis.AnalBack,
		Normalize: c.Analysis.Normalize,
		TopK:      c.Analysis.TopK,
	}.String()
}

// Validate проверяет опции анализа и уровень логирования.
func (c *Config) Validate() error {
	if _, err := analyzer.ParseOptions(c.Options()); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("уровень логирования: %w", err)
	}
	return nil
}

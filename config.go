package interactive

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk form of a prompt's settings.
//
//	prompt: "> "
//	banner: "Welcome. Press Escape twice to exit."
//	candidates: [status, start, stop]
//	history:
//	  enabled: true
//	  max_entries: 500
//	  file: ~/.myapp_history
type FileConfig struct {
	Prompt     string            `yaml:"prompt"`
	Banner     string            `yaml:"banner"`
	Candidates []string          `yaml:"candidates"`
	History    FileHistoryConfig `yaml:"history"`
}

// FileHistoryConfig is the history section of FileConfig.
type FileHistoryConfig struct {
	Enabled     *bool  `yaml:"enabled"`
	MaxEntries  int    `yaml:"max_entries"`
	File        string `yaml:"file"`
	MaxFileSize int64  `yaml:"max_file_size"`
	MaxBackups  *int   `yaml:"max_backups"`
}

// LoadConfigFile reads a YAML settings file. A missing file yields the zero
// configuration, which leaves every default in place.
func LoadConfigFile(path string) (*FileConfig, error) {
	cfg := &FileConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Options converts the file settings into options for New. Settings that are
// absent from the file produce no option.
func (c *FileConfig) Options() []Option {
	var opts []Option
	if c.Prompt != "" {
		opts = append(opts, WithPrefix(c.Prompt))
	}
	if c.Banner != "" {
		opts = append(opts, WithBanner(c.Banner))
	}
	if len(c.Candidates) > 0 {
		opts = append(opts, WithCandidates(c.Candidates))
	}
	if h := c.History.historyConfig(); h != nil {
		opts = append(opts, WithHistory(h))
	}
	return opts
}

func (h FileHistoryConfig) historyConfig() *HistoryConfig {
	if h == (FileHistoryConfig{}) {
		return nil
	}
	cfg := DefaultHistoryConfig()
	if h.Enabled != nil {
		cfg.Enabled = *h.Enabled
	}
	if h.MaxEntries > 0 {
		cfg.MaxEntries = h.MaxEntries
	}
	if h.MaxFileSize > 0 {
		cfg.MaxFileSize = h.MaxFileSize
	}
	if h.MaxBackups != nil {
		cfg.MaxBackups = *h.MaxBackups
	}
	cfg.File = h.File
	return cfg
}

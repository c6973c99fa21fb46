package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/malonaz/docqa/internal/file"
)

// DefaultPath is where the configuration lives unless DOCQA_CONFIG is set.
const DefaultPath = "~/.config/docqa/config.json"

const envPrefix = "DOCQA"

func defaultConfig() *Config {
	return &Config{
		ServiceURL:     "http://localhost:8000",
		RequestTimeout: 60,
		DebugLog:       "/tmp/docqa-debug.log",

		Chat: &ChatConfig{
			HistorySize: 100,
		},

		Upload: &UploadConfig{
			FileExtensions: []string{".pdf", ".txt", ".md"},
			StartDirectory: "~",
		},
	}
}

// Config holds configuration for the docqa tool.
type Config struct {
	// Base URL of the document-QA service.
	ServiceURL string `json:"service_url"`
	// In seconds. Negative disables the timeout.
	RequestTimeout int    `json:"request_timeout"`
	DebugLog       string `json:"debug_log"`

	Chat   *ChatConfig   `json:"chat"`
	Upload *UploadConfig `json:"upload"`
}

// ChatConfig holds configuration for docqa chat.
type ChatConfig struct {
	// Number of submitted queries kept for recall.
	HistorySize int `json:"history_size"`
}

// UploadConfig holds configuration for document uploads.
type UploadConfig struct {
	// We only upload files with the given extensions.
	FileExtensions []string `json:"file_extensions"`
	// The file picker opens here.
	StartDirectory string `json:"start_directory"`
}

// Timeout returns the HTTP client timeout. Zero means none.
func (c *Config) Timeout() time.Duration {
	if c.RequestTimeout < 0 {
		return 0
	}
	return time.Duration(c.RequestTimeout) * time.Second
}

// Parse a configuration file, creating it with defaults if it does not exist.
// Missing fields are filled from defaults, then DOCQA_* environment variables are applied.
func Parse(path string) (*Config, error) {
	path, err := file.ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}

	if err := initializeIfNotPresent(path); err != nil {
		return nil, errors.Wrap(err, "initializing configuration")
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	config := &Config{}
	if err = json.Unmarshal(bytes, config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling into config")
	}
	if err := mergo.Merge(config, defaultConfig()); err != nil {
		return nil, errors.Wrap(err, "merging defaults")
	}
	if err := config.applyEnvironment(); err != nil {
		return nil, errors.Wrap(err, "applying environment")
	}

	if config.Upload.StartDirectory, err = file.ExpandPath(config.Upload.StartDirectory); err != nil {
		return nil, errors.Wrap(err, "expanding upload start directory")
	}
	if config.DebugLog, err = file.ExpandPath(config.DebugLog); err != nil {
		return nil, errors.Wrap(err, "expanding debug log path")
	}
	return config, nil
}

func (c *Config) applyEnvironment() error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{"service_url", "request_timeout", "debug_log"} {
		if err := v.BindEnv(key); err != nil {
			return errors.Wrapf(err, "binding %s", key)
		}
	}
	if v.IsSet("service_url") {
		c.ServiceURL = v.GetString("service_url")
	}
	if v.IsSet("request_timeout") {
		c.RequestTimeout = v.GetInt("request_timeout")
	}
	if v.IsSet("debug_log") {
		c.DebugLog = v.GetString("debug_log")
	}
	return nil
}

// save a configuration file.
func (c *Config) save(path string) error {
	bytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	if err := os.WriteFile(path, bytes, 0644); err != nil {
		return errors.Wrap(err, "writing file")
	}
	return nil
}

// initializeIfNotPresent initializes a config if it does not exist.
func initializeIfNotPresent(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating folders")
	}
	if err := defaultConfig().save(path); err != nil {
		return errors.Wrap(err, "saving default config")
	}
	return nil
}

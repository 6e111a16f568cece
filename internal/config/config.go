package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/todolist/internal/model"
)

// EnvConfig names the environment variable that overrides the config path.
const EnvConfig = "TODO_CONFIG"

// Config represents the application configuration
type Config struct {
	Theme  string      `yaml:"theme" toml:"theme"`
	Filter string      `yaml:"filter" toml:"filter"`
	Sort   string      `yaml:"sort" toml:"sort"`
	Log    LogConfig   `yaml:"log" toml:"log"`
	Keys   KeyMappings `yaml:"keys" toml:"keys"`
}

// LogConfig controls where diagnostics go. An empty File discards them.
type LogConfig struct {
	File   string `yaml:"file" toml:"file"`
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// KeyMappings binds actions of the interactive list to keys.
type KeyMappings struct {
	Add    string `yaml:"add" toml:"add"`
	Toggle string `yaml:"toggle" toml:"toggle"`
	Delete string `yaml:"delete" toml:"delete"`
	Filter string `yaml:"filter" toml:"filter"`
	Sort   string `yaml:"sort" toml:"sort"`
	Quit   string `yaml:"quit" toml:"quit"`
}

// DefaultKeyMappings returns the stock bindings.
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		Add:    "a",
		Toggle: " ",
		Delete: "d",
		Filter: "f",
		Sort:   "s",
		Quit:   "q",
	}
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the config at path. An empty path is resolved with Path.
// Returns default config if the file doesn't exist.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := Path()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	// Fill in any missing values with defaults
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &c, nil
}

// Path returns the config file location: $TODO_CONFIG, then
// $XDG_CONFIG_HOME/todo/config.yaml, then ~/.config/todo/config.yaml.
func Path() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "todo", "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "todo", "config.yaml"), nil
}

// Validate rejects filter and sort names the model does not know.
func (c *Config) Validate() error {
	if _, err := model.ParseFilter(c.Filter); err != nil {
		return err
	}
	if _, err := model.ParseSort(c.Sort); err != nil {
		return err
	}
	return nil
}

// Modes returns the configured initial filter and sort.
func (c *Config) Modes() (model.Filter, model.Sort, error) {
	f, err := model.ParseFilter(c.Filter)
	if err != nil {
		return model.FilterAll, model.SortAddedDate, err
	}
	s, err := model.ParseSort(c.Sort)
	if err != nil {
		return f, model.SortAddedDate, err
	}
	return f, s, nil
}

func (c *Config) applyDefaults() {
	if c.Theme == "" {
		c.Theme = "classic"
	}
	if c.Filter == "" {
		c.Filter = model.FilterAll.String()
	}
	if c.Sort == "" {
		c.Sort = model.SortAddedDate.String()
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	d := DefaultKeyMappings()
	setDefault(&c.Keys.Add, d.Add)
	setDefault(&c.Keys.Toggle, d.Toggle)
	setDefault(&c.Keys.Delete, d.Delete)
	setDefault(&c.Keys.Filter, d.Filter)
	setDefault(&c.Keys.Sort, d.Sort)
	setDefault(&c.Keys.Quit, d.Quit)
}

func setDefault(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

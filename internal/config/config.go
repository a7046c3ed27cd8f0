// Package config handles parsing and writing of dirmirror configuration files
// (.dirmirror.toml). Every key is optional; command line flags override the
// file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/bolasblack/dirmirror/internal/util"
)

// Config is the mirror configuration.
type Config struct {
	Source    string `toml:"source" json:"source" jsonschema:"description=Folder to mirror from"`
	Replica   string `toml:"replica" json:"replica" jsonschema:"description=Folder kept identical to source"`
	LogFolder string `toml:"log_folder" json:"log_folder" jsonschema:"description=Folder receiving one log file per run"`
	Interval  int    `toml:"interval" json:"interval" jsonschema:"minimum=1,description=Seconds between two synchronization cycles"`
	Watch     bool   `toml:"watch,omitempty" json:"watch,omitempty" jsonschema:"description=Also start a cycle as soon as the source changes"`
	AssumeYes bool   `toml:"assume_yes,omitempty" json:"assume_yes,omitempty" jsonschema:"description=Create missing folders without asking"`
}

// DefaultConfig returns the configuration used when nothing is given.
func DefaultConfig() Config {
	return Config{
		Source:    util.DefaultSourceFolder,
		Replica:   util.DefaultReplicaFolder,
		LogFolder: util.DefaultLogFolder,
		Interval:  util.DefaultIntervalSeconds,
	}
}

// Validate checks the values a run cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.Source == "" {
		errs = append(errs, errors.New("source folder must not be empty"))
	}
	if c.Replica == "" {
		errs = append(errs, errors.New("replica folder must not be empty"))
	}
	if c.LogFolder == "" {
		errs = append(errs, errors.New("log folder must not be empty"))
	}
	if c.Interval <= 0 {
		errs = append(errs, fmt.Errorf("interval must be a positive number of seconds, got %d", c.Interval))
	}
	return errors.Join(errs...)
}

// Expand resolves a leading ~ in every folder path.
func (c *Config) Expand() error {
	for _, p := range []*string{&c.Source, &c.Replica, &c.LogFolder} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("failed to expand %s: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// IntervalDuration returns Interval as a time.Duration.
func (c *Config) IntervalDuration() time.Duration {
	return time.Duration(c.Interval) * time.Second
}

// LoadConfig reads the configuration file at path on top of the defaults.
// Unknown keys are rejected so typos do not go unnoticed.
func LoadConfig(env *util.Env, path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := afero.ReadFile(env.Fs, path)
	if err != nil {
		return Config{}, err
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("failed to parse %s: %s", path, strict.String())
		}
		return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// SchemaComment is the TOML comment that references the JSON Schema for editor autocomplete.
const SchemaComment = "#:schema https://raw.githubusercontent.com/bolasblack/dirmirror/refs/heads/master/dirmirror-config.schema.json\n\n"

// SaveConfig writes the configuration to the given path with schema comment header.
func SaveConfig(env *util.Env, path string, cfg Config) error {
	content, err := GenerateConfig(cfg)
	if err != nil {
		return err
	}
	return afero.WriteFile(env.Fs, path, []byte(content), 0o644)
}

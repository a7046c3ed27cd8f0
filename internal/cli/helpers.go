package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/afero"
	"golang.org/x/term"

	"github.com/bolasblack/dirmirror/internal/config"
	"github.com/bolasblack/dirmirror/internal/preflight"
	"github.com/bolasblack/dirmirror/internal/util"
)

// resolveConfig builds the effective configuration: defaults, then the
// config file, then every flag the user set explicitly. Without an explicit
// path the config file is only read when present in the working directory.
func resolveConfig(env *util.Env, path string, flags config.Config, changed func(name string) bool) (config.Config, error) {
	cfg := config.DefaultConfig()

	if path == "" {
		if ok, _ := afero.Exists(env.Fs, util.ConfigFilename); ok {
			path = util.ConfigFilename
		}
	}
	if path != "" {
		loaded, err := config.LoadConfig(env, path)
		if err != nil {
			if os.IsNotExist(err) {
				return config.Config{}, fmt.Errorf("configuration file not found: %s", path)
			}
			return config.Config{}, err
		}
		cfg = loaded
	}

	if changed("source") {
		cfg.Source = flags.Source
	}
	if changed("replica") {
		cfg.Replica = flags.Replica
	}
	if changed("log-folder") {
		cfg.LogFolder = flags.LogFolder
	}
	if changed("interval") {
		cfg.Interval = flags.Interval
	}
	if changed("watch") {
		cfg.Watch = flags.Watch
	}
	if changed("yes") {
		cfg.AssumeYes = flags.AssumeYes
	}

	if err := cfg.Expand(); err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// folderPrompt decides how missing folders are handled: --yes creates them,
// a terminal asks, anything else declines.
func folderPrompt(assumeYes bool, in *os.File) preflight.PromptFunc {
	if assumeYes {
		return func(string) (bool, error) { return true, nil }
	}
	if !term.IsTerminal(int(in.Fd())) {
		return nil
	}
	return confirmCreate
}

func confirmCreate(path string) (bool, error) {
	create := false
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Folder %s does not exist. Do you want to create it?", path)).
		Affirmative("Create").
		Negative("Exit").
		Value(&create).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return create, err
}

// getCwd returns the current working directory or an error.
func getCwd() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return cwd, nil
}

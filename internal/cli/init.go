// Package cli implements the dirmirror command-line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bolasblack/dirmirror/internal/config"
	"github.com/bolasblack/dirmirror/internal/util"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a dirmirror configuration in the current directory",
	Long: `Create a ` + util.ConfigFilename + ` configuration file in the current directory.

On a terminal the folders and the interval are asked for; otherwise the
defaults are written.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := getCwd()
	if err != nil {
		return err
	}

	env := util.NewOsEnv()
	configPath := filepath.Join(cwd, util.ConfigFilename)

	if _, err := env.Fs.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists: %s", configPath)
	}

	cfg := config.DefaultConfig()
	if term.IsTerminal(int(os.Stdin.Fd())) {
		if err := askConfig(&cfg); err != nil {
			return fmt.Errorf("configuration cancelled: %w", err)
		}
	}

	if err := writeInitConfig(env, configPath, cfg); err != nil {
		return err
	}

	util.ProgressDone(cmd.OutOrStdout(), "Created %s\n", configPath)
	fmt.Fprintln(cmd.OutOrStdout(), "Run 'dirmirror' in this directory to start mirroring.")
	return nil
}

// writeInitConfig validates cfg and writes it to path, refusing to replace
// an existing file.
func writeInitConfig(env *util.Env, path string, cfg config.Config) error {
	if exists, err := afero.Exists(env.Fs, path); err != nil {
		return fmt.Errorf("failed to check %s: %w", path, err)
	} else if exists {
		return fmt.Errorf("configuration file already exists: %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := config.SaveConfig(env, path, cfg); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}
	return nil
}

func askConfig(cfg *config.Config) error {
	interval := strconv.Itoa(cfg.Interval)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Source folder").Value(&cfg.Source),
			huh.NewInput().Title("Replica folder").
				Description("Anything in it that is not in the source gets deleted.").
				Value(&cfg.Replica),
			huh.NewInput().Title("Log folder").Value(&cfg.LogFolder),
			huh.NewInput().Title("Interval in seconds").
				Validate(validateInterval).
				Value(&interval),
			huh.NewConfirm().Title("Also synchronize as soon as the source changes?").
				Value(&cfg.Watch),
		),
	).Run()
	if err != nil {
		return err
	}

	cfg.Interval, _ = strconv.Atoi(interval)
	return nil
}

func validateInterval(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive number of seconds")
	}
	return nil
}

package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/bolasblack/dirmirror/internal/config"
	"github.com/bolasblack/dirmirror/internal/state"
	"github.com/bolasblack/dirmirror/internal/sync"
	"github.com/bolasblack/dirmirror/internal/util"
)

var (
	statusFlags      config.Config
	statusConfigPath string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the latest run recorded in the log folder",
	Long: `Display the run recorded in the log folder: its folders, log file,
interval and the outcome of its last synchronization cycle.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVarP(&statusFlags.LogFolder, "log-folder", "l", util.DefaultLogFolder, "Log folder of the run")
	statusCmd.Flags().StringVarP(&statusConfigPath, "config", "c", "", "Configuration file (default "+util.ConfigFilename+" when present)")
}

func runStatus(cmd *cobra.Command, args []string) error {
	env := util.NewReadonlyOsEnv()

	cfg, err := resolveConfig(env, statusConfigPath, statusFlags, cmd.Flags().Changed)
	if err != nil {
		return err
	}
	return printStatus(cmd.OutOrStdout(), env, cfg.LogFolder)
}

func printStatus(w io.Writer, env *util.Env, logFolder string) error {
	st, err := state.Load(env, logFolder)
	if err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	if st == nil {
		fmt.Fprintf(w, "Status: No run recorded in %s\n", logFolder)
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "Run 'dirmirror' to start mirroring.")
		return nil
	}

	fmt.Fprintf(w, "Run:      %s (pid %d)\n", st.ShortID(), st.PID)
	fmt.Fprintf(w, "Source:   %s\n", st.Source)
	fmt.Fprintf(w, "Replica:  %s\n", st.Replica)
	fmt.Fprintf(w, "Log file: %s\n", st.LogFile)
	interval := (time.Duration(st.IntervalSeconds) * time.Second).String()
	if st.Watch {
		interval += " (watching source)"
	}
	fmt.Fprintf(w, "Interval: %s\n", interval)
	fmt.Fprintf(w, "Started:  %s\n", st.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Cycles:   %d\n", st.Cycles)

	if r := st.LastCycle; r != nil {
		fmt.Fprintln(w, "")
		fmt.Fprintf(w, "Last cycle finished %s\n", r.FinishedAt.Format(time.RFC3339))
		fmt.Fprintf(w, "  Created: %d\n", r.Created)
		fmt.Fprintf(w, "  Deleted: %d\n", r.Deleted)
		fmt.Fprintf(w, "  Updated: %d\n", r.Updated)
		sync.RenderBanner(r, w)
	}
	return nil
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bolasblack/dirmirror/internal/eventlog"
	"github.com/bolasblack/dirmirror/internal/util"
)

var (
	// Version, Commit, and Date are set at build time via ldflags
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// VerboseEnv enables debug diagnostics when set to "true".
const VerboseEnv = "DIRMIRROR_LOG_VERBOSE"

var rootCmd = &cobra.Command{
	Use:   "dirmirror",
	Short: "Dirmirror - keep a replica folder identical to a source folder",
	Long: `Dirmirror (dirmirror) keeps a replica folder identical to a source folder.

Every few seconds the source tree is compared with the replica tree: files and
folders missing from the replica are copied, extra ones are deleted, and files
whose modification time differs are copied again. Every change is printed and
appended to a log file created for the run.`,
	Args:          cobra.NoArgs,
	RunE:          runMirror,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// reportedError marks an error whose message already reached the log.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for documentation generation.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("dirmirror version %s\ncommit: %s\ndate: %s\n", Version, Commit, Date))

	f := rootCmd.Flags()
	f.StringVarP(&mirrorFlags.Source, "source", "s", util.DefaultSourceFolder, "Source folder")
	f.StringVarP(&mirrorFlags.Replica, "replica", "r", util.DefaultReplicaFolder, "Replica folder")
	f.StringVarP(&mirrorFlags.LogFolder, "log-folder", "l", util.DefaultLogFolder, "Folder receiving the log file of the run")
	f.IntVarP(&mirrorFlags.Interval, "interval", "i", util.DefaultIntervalSeconds, "Synchronization interval in seconds")
	f.StringVarP(&mirrorConfigPath, "config", "c", "", "Configuration file (default "+util.ConfigFilename+" when present)")
	f.BoolVarP(&mirrorFlags.Watch, "watch", "w", false, "Also synchronize as soon as the source changes")
	f.BoolVarP(&mirrorFlags.AssumeYes, "yes", "y", false, "Create missing folders without asking")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
}

// newEventLogger configures the standard logrus logger for event lines on
// out and wraps it as the run's event sink.
func newEventLogger(out io.Writer) *eventlog.Logger {
	logger := logrus.StandardLogger()
	logger.SetOutput(out)
	logger.SetFormatter(&eventlog.Formatter{})
	logger.SetLevel(logrus.InfoLevel)
	if strings.EqualFold(os.Getenv(VerboseEnv), "true") {
		logger.SetLevel(logrus.DebugLevel)
	}
	return eventlog.Wrap(logger)
}

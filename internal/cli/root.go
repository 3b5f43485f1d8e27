// Package cli provides the command-line interface for taskdeck.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/gui"
	"github.com/taskdeck/taskdeck/internal/logging"
	"github.com/taskdeck/taskdeck/internal/pathutil"
	"github.com/taskdeck/taskdeck/internal/version"
)

var (
	// Global flags
	storePath string
	verbose   bool
	debug     bool

	// Global logger
	logger *logging.Logger
)

// NewRootCmd creates the root command. Invoked bare, it launches the GUI;
// the subcommands expose the same operations for scripting.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "taskdeck",
		Short: "TaskDeck - desktop front-end for OS scheduled tasks",
		Long: `TaskDeck ` + version.Version + ` - Built: ` + version.BuildTime + `
Create, list, test, and delete operating-system scheduled tasks, keeping a
local JSON mirror of the job definitions.

Run without arguments for the graphical interface, or use the subcommands
(list, save, delete, run) for scripting.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewDefaultCLILogger()
			if verbose || debug {
				logging.SetGlobalLevel(-1) // zerolog.DebugLevel
			}
			if storePath == "" {
				storePath = config.DefaultStorePath()
				if err := config.EnsureDataDirectory(); err != nil {
					logger.Warn().Err(err).Msg("Could not create data directory")
				}
			} else if resolved, err := pathutil.ResolveAbsolutePath(storePath); err == nil {
				storePath = resolved
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return gui.Launch(storePath)
		},
	}

	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Job store path (default: per-user data directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (shows debug messages)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output (same as --verbose)")

	rootCmd.Version = version.Version + " (" + version.BuildTime + ")"

	return rootCmd
}

// Execute runs the CLI.
func Execute() error {
	rootCmd := NewRootCmd()
	AddCommands(rootCmd)
	return rootCmd.Execute()
}

// AddCommands adds all subcommands to the root command.
func AddCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newSaveCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newGUICmd())
}

func newGUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Launch the graphical interface",
		RunE: func(cmd *cobra.Command, args []string) error {
			return gui.Launch(storePath)
		},
	}
}

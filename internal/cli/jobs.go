package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/core"
	"github.com/taskdeck/taskdeck/internal/events"
	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/scheduler"
)

// newEngine wires a CLI engine against the real host shell.
func newEngine() *core.Engine {
	bus := events.NewEventBus(0)
	runner := scheduler.NewSchtasksRunner(scheduler.CmdShellQuoter{})
	return core.NewEngine(storePath, runner, bus, logger)
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the jobs in the local store",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := newEngine()
			defer engine.Stop()

			jobs := engine.Jobs()
			if len(jobs) == 0 {
				fmt.Println("No jobs in store.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTIME\tTRIGGER\tCOMMAND")
			for _, job := range jobs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", job.Name, job.Time, job.Trigger(), job.Command)
			}
			return w.Flush()
		},
	}
}

func newSaveCmd() *cobra.Command {
	var (
		name    string
		timeStr string
		command string
		daily   bool
		days    []string
	)

	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "Save a job and mirror it to the OS scheduler",
		Long: `Save a job into the local store (replacing any job of the same name) and
register it with the OS scheduler. An existing task of that name is deleted
before the new one is created.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := newEngine()
			defer engine.Stop()

			job := models.Job{
				Name:    name,
				Time:    timeStr,
				Command: command,
				Daily:   daily,
				Days:    normalizeDays(days),
			}
			if len(job.Days) > 0 {
				job.Daily = false
			}

			resultCh := engine.Events().Subscribe(events.EventTaskResult)
			if err := engine.SaveJob(job); err != nil {
				return err
			}

			// Wait for the background mirror so its output reaches the user.
			for event := range resultCh {
				result, ok := event.(*events.TaskResultEvent)
				if !ok || result.Action != events.ActionMirror {
					continue
				}
				fmt.Printf("Exit %d:\n%s\n", result.ExitCode, result.Output)
				break
			}
			return nil
		},
	}

	saveCmd.Flags().StringVar(&name, "name", "", "Task name (required)")
	saveCmd.Flags().StringVar(&timeStr, "time", "09:00", "Start time as HH:MM")
	saveCmd.Flags().StringVar(&command, "command", "", "Command to run (required)")
	saveCmd.Flags().BoolVar(&daily, "daily", true, "Run every day")
	saveCmd.Flags().StringSliceVar(&days, "days", nil, "Weekday codes, e.g. MON,WED,FRI (implies --daily=false)")

	return saveCmd
}

func newDeleteCmd() *cobra.Command {
	var yes bool

	deleteCmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a job from the scheduler and the local store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]

			if !yes && !confirm(fmt.Sprintf("Delete task %s?", name)) {
				fmt.Println("Aborted.")
				return nil
			}

			engine := newEngine()
			defer engine.Stop()

			resultCh := engine.Events().Subscribe(events.EventTaskResult)
			if err := engine.DeleteJob(name); err != nil {
				return err
			}

			select {
			case event := <-resultCh:
				if result, ok := event.(*events.TaskResultEvent); ok && result.Output != "" {
					fmt.Println(result.Output)
				}
			default:
			}
			return nil
		},
	}

	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return deleteCmd
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <name>",
		Short: "Test-run a job's command directly, outside the scheduler",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := newEngine()
			defer engine.Stop()

			resultCh := engine.Events().Subscribe(events.EventTaskResult)
			if err := engine.TestRun(args[0]); err != nil {
				return err
			}

			for event := range resultCh {
				result, ok := event.(*events.TaskResultEvent)
				if !ok || result.Action != events.ActionTestRun {
					continue
				}
				fmt.Printf("Exit %d:\n%s", result.ExitCode, result.Output)
				if result.ExitCode != 0 {
					os.Exit(result.ExitCode)
				}
				break
			}
			return nil
		},
	}
}

// normalizeDays upper-cases and trims the given day codes.
func normalizeDays(days []string) []string {
	var out []string
	for _, d := range days {
		d = strings.ToUpper(strings.TrimSpace(d))
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}

// confirm asks a yes/no question on stdin.
func confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(input))
	return answer == "y" || answer == "yes"
}

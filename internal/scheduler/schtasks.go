// Package scheduler wraps the OS task-scheduling utility (schtasks) behind
// a small adapter. Nothing here owns triggering semantics; every operation
// shells out and reports the exit code and combined output verbatim.
package scheduler

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/taskdeck/taskdeck/internal/models"
)

// Result holds the outcome of one external invocation: the process exit
// code and everything it wrote to stdout and stderr, interleaved.
type Result struct {
	ExitCode int
	Output   string
}

// Runner is the adapter contract for the external scheduler. Create, Delete
// and Query register, remove and probe tasks; RunDirect executes a command
// synchronously outside the scheduler for ad-hoc test runs.
//
// A non-zero exit from the external utility is not an error: it is returned
// in the Result for the caller to display. The error return is reserved for
// failures to invoke the host shell at all.
type Runner interface {
	Create(job models.Job) (Result, error)
	Delete(name string) (Result, error)
	Query(name string) (bool, Result, error)
	RunDirect(command string) (Result, error)
}

// ExecFunc runs one command line through the host shell and returns its
// exit code and combined output. Injectable so tests can fake the shell.
type ExecFunc func(cmdline string) (int, string, error)

// SchtasksRunner implements Runner over the Windows schtasks utility.
type SchtasksRunner struct {
	quoter CommandQuoter
	exec   ExecFunc
}

// NewSchtasksRunner returns a Runner invoking the real host shell.
func NewSchtasksRunner(quoter CommandQuoter) *SchtasksRunner {
	return &SchtasksRunner{quoter: quoter, exec: runShell}
}

// NewSchtasksRunnerWithExec returns a Runner with a custom exec function.
func NewSchtasksRunnerWithExec(quoter CommandQuoter, exec ExecFunc) *SchtasksRunner {
	return &SchtasksRunner{quoter: quoter, exec: exec}
}

// Create registers the job with the scheduler, forcing overwrite of any
// pre-existing task of the same name. Daily jobs get a daily trigger;
// non-daily jobs get a comma-joined weekday-list trigger.
func (r *SchtasksRunner) Create(job models.Job) (Result, error) {
	target := r.quoter.Quote(job.Command)

	var cmdline string
	if job.Daily {
		cmdline = fmt.Sprintf(`schtasks /Create /TN "%s" /TR "%s" /SC DAILY /ST %s /F`,
			job.Name, target, job.Time)
	} else {
		days := strings.Join(job.Days, ",")
		cmdline = fmt.Sprintf(`schtasks /Create /TN "%s" /TR "%s" /SC WEEKLY /D %s /ST %s /F`,
			job.Name, target, days, job.Time)
	}

	return r.run(cmdline)
}

// Delete removes the named task, forcing (no confirmation at this layer).
func (r *SchtasksRunner) Delete(name string) (Result, error) {
	return r.run(fmt.Sprintf(`schtasks /Delete /TN "%s" /F`, name))
}

// Query probes whether a task of that name is currently registered.
// Presence is reported via the utility's exit status.
func (r *SchtasksRunner) Query(name string) (bool, Result, error) {
	res, err := r.run(fmt.Sprintf(`schtasks /Query /TN "%s" /V /FO LIST`, name))
	return err == nil && res.ExitCode == 0, res, err
}

// RunDirect executes the quoted command synchronously through the host
// shell, capturing combined stdout and stderr.
func (r *SchtasksRunner) RunDirect(command string) (Result, error) {
	return r.run(r.quoter.Quote(command))
}

func (r *SchtasksRunner) run(cmdline string) (Result, error) {
	code, out, err := r.exec(cmdline)
	return Result{ExitCode: code, Output: out}, err
}

// runShell executes one command line through the host command shell and
// returns its exit code and combined output. A non-zero exit is folded into
// the return values, not treated as a Go error.
func runShell(cmdline string) (int, string, error) {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/C", cmdline)
	} else {
		cmd = exec.Command("sh", "-c", cmdline)
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), string(output), nil
		}
		// The shell itself could not be started.
		return -1, string(output), fmt.Errorf("failed to invoke host shell: %w", err)
	}
	return 0, string(output), nil
}

package scheduler

import (
	"runtime"
	"strings"
	"testing"

	"github.com/taskdeck/taskdeck/internal/models"
)

// fakeExec records command lines and plays back canned results.
type fakeExec struct {
	lines []string
	code  int
	out   string
}

func (f *fakeExec) run(cmdline string) (int, string, error) {
	f.lines = append(f.lines, cmdline)
	return f.code, f.out, nil
}

func TestCreateDailyCommandLine(t *testing.T) {
	fake := &fakeExec{out: "SUCCESS"}
	runner := NewSchtasksRunnerWithExec(CmdShellQuoter{}, fake.run)

	job := models.Job{Name: "backup", Time: "09:00", Command: "backup.bat", Daily: true}
	res, err := runner.Create(job)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if res.ExitCode != 0 || res.Output != "SUCCESS" {
		t.Errorf("Unexpected result: %+v", res)
	}

	want := `schtasks /Create /TN "backup" /TR "backup.bat" /SC DAILY /ST 09:00 /F`
	if len(fake.lines) != 1 || fake.lines[0] != want {
		t.Errorf("Command line = %q, want %q", fake.lines, want)
	}
}

func TestCreateWeeklyCommandLine(t *testing.T) {
	fake := &fakeExec{}
	runner := NewSchtasksRunnerWithExec(CmdShellQuoter{}, fake.run)

	job := models.Job{
		Name:    "report",
		Time:    "18:30",
		Command: "report.exe --weekly out.csv",
		Days:    []string{"MON", "WED", "FRI"},
	}
	if _, err := runner.Create(job); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	want := `schtasks /Create /TN "report" /TR "cmd.exe /c "report.exe --weekly out.csv"" /SC WEEKLY /D MON,WED,FRI /ST 18:30 /F`
	if fake.lines[0] != want {
		t.Errorf("Command line = %q, want %q", fake.lines[0], want)
	}
}

func TestDeleteCommandLine(t *testing.T) {
	fake := &fakeExec{}
	runner := NewSchtasksRunnerWithExec(CmdShellQuoter{}, fake.run)

	if _, err := runner.Delete("backup"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	want := `schtasks /Delete /TN "backup" /F`
	if fake.lines[0] != want {
		t.Errorf("Command line = %q, want %q", fake.lines[0], want)
	}
}

func TestQueryReportsPresenceViaExitStatus(t *testing.T) {
	present := &fakeExec{code: 0, out: "TaskName: \\backup"}
	runner := NewSchtasksRunnerWithExec(CmdShellQuoter{}, present.run)
	exists, _, err := runner.Query("backup")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if !exists {
		t.Error("Expected exists=true for exit code 0")
	}
	if !strings.Contains(present.lines[0], `/Query /TN "backup"`) {
		t.Errorf("Unexpected command line: %q", present.lines[0])
	}

	absent := &fakeExec{code: 1, out: "ERROR: The system cannot find the file specified."}
	runner = NewSchtasksRunnerWithExec(CmdShellQuoter{}, absent.run)
	exists, res, err := runner.Query("missing")
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if exists {
		t.Error("Expected exists=false for non-zero exit code")
	}
	if res.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", res.ExitCode)
	}
}

func TestRunDirectQuotesCommand(t *testing.T) {
	fake := &fakeExec{code: 2, out: "boom"}
	runner := NewSchtasksRunnerWithExec(CmdShellQuoter{}, fake.run)

	res, err := runner.RunDirect("do thing")
	if err != nil {
		t.Fatalf("RunDirect failed: %v", err)
	}
	if fake.lines[0] != `cmd.exe /c "do thing"` {
		t.Errorf("Command line = %q", fake.lines[0])
	}
	// Non-zero exit and its output come back verbatim, never as a Go error.
	if res.ExitCode != 2 || res.Output != "boom" {
		t.Errorf("Result = %+v, want exit 2 output boom", res)
	}
}

func TestRunShellCapturesCombinedOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("exercises the unix shell path")
	}

	code, out, err := runShell("echo to-stdout; echo to-stderr 1>&2")
	if err != nil {
		t.Fatalf("runShell failed: %v", err)
	}
	if code != 0 {
		t.Errorf("Exit code = %d, want 0", code)
	}
	if !strings.Contains(out, "to-stdout") || !strings.Contains(out, "to-stderr") {
		t.Errorf("Combined output missing streams: %q", out)
	}

	code, _, err = runShell("exit 7")
	if err != nil {
		t.Fatalf("runShell failed: %v", err)
	}
	if code != 7 {
		t.Errorf("Exit code = %d, want 7", code)
	}
}

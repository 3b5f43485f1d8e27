package scheduler

import "strings"

// CommandQuoter normalizes a free-text command string into a form safe to
// pass as the run target of the OS scheduler. It is an interface so a
// stricter escaping strategy can be substituted without touching callers.
type CommandQuoter interface {
	Quote(command string) string
}

// CmdShellQuoter is the heuristic quoter matching the schtasks /TR argument
// conventions: a command containing a space is wrapped as `cmd.exe /c "..."`
// unless it is already fully wrapped in double quotes.
//
// Known limitation, kept deliberately: this is not a shell-escaping routine.
// Embedded double quotes, ampersands, and percent signs are passed through
// unescaped, and a command containing an internal `"` will produce a
// malformed invocation.
type CmdShellQuoter struct{}

// Quote implements CommandQuoter.
func (CmdShellQuoter) Quote(command string) string {
	if strings.TrimSpace(command) == "" {
		return command
	}
	if strings.Contains(command, " ") &&
		!(strings.HasPrefix(command, `"`) && strings.HasSuffix(command, `"`)) {
		return `cmd.exe /c "` + command + `"`
	}
	return command
}

package notify

import (
	"testing"

	"github.com/taskdeck/taskdeck/internal/events"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.Enabled {
		t.Error("Expected Enabled to be true by default")
	}
	if !cfg.ShowFailures {
		t.Error("Expected ShowFailures to be true by default")
	}
	if cfg.ShowTestRuns {
		t.Error("Expected ShowTestRuns to be false by default")
	}
}

func TestSetEnabled(t *testing.T) {
	n := NewNotifier(DefaultConfig(), nil)

	if !n.IsEnabled() {
		t.Fatal("Expected notifier to start enabled")
	}

	n.SetEnabled(false)
	if n.IsEnabled() {
		t.Error("Expected notifier to be disabled after SetEnabled(false)")
	}

	// Disabled notifier must not attempt to send (logger is nil, so a
	// send attempt would panic in the error path).
	n.TaskFailed("job", events.ActionMirror, 1)
	n.TestRunFinished("job")
	n.Alert("message")
}

func TestActionLabel(t *testing.T) {
	tests := []struct {
		action   events.TaskAction
		expected string
	}{
		{events.ActionMirror, "Schedule Update"},
		{events.ActionDelete, "Task Removal"},
		{events.ActionTestRun, "Test Run"},
		{events.TaskAction("other"), "Task"},
	}

	for _, tt := range tests {
		if got := actionLabel(tt.action); got != tt.expected {
			t.Errorf("actionLabel(%q) = %q, want %q", tt.action, got, tt.expected)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10c", 10, "exactly10c"},
		{"this is a long string", 10, "this is..."},
		{"", 10, ""},
		{"abc", 3, "abc"},
		{"abcd", 3, "..."},
	}

	for _, tt := range tests {
		result := truncate(tt.input, tt.maxLen)
		if result != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, result, tt.expected)
		}
	}
}

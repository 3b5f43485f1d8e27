// Package notify provides cross-platform desktop notifications for TaskDeck.
// It uses github.com/gen2brain/beeep for cross-platform notification support.
package notify

import (
	"fmt"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/taskdeck/taskdeck/internal/events"
	"github.com/taskdeck/taskdeck/internal/logging"
)

// Notifier handles desktop notifications for background task results.
type Notifier struct {
	logger  *logging.Logger
	enabled bool
	mu      sync.RWMutex
}

// Config holds notification configuration.
type Config struct {
	// Enabled determines if notifications are sent.
	Enabled bool

	// ShowFailures shows notifications when a scheduler call fails.
	ShowFailures bool

	// ShowTestRuns shows notifications when a test run finishes.
	ShowTestRuns bool
}

// DefaultConfig returns the default notification configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		ShowFailures: true,
		ShowTestRuns: false, // The log pane already shows test output
	}
}

// NewNotifier creates a new notifier with the given configuration.
func NewNotifier(cfg *Config, logger *logging.Logger) *Notifier {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	return &Notifier{
		logger:  logger,
		enabled: cfg.Enabled,
	}
}

// SetEnabled enables or disables notifications.
func (n *Notifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// IsEnabled returns whether notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.enabled
}

// TaskFailed sends a notification for a failed background scheduler call.
func (n *Notifier) TaskFailed(jobName string, action events.TaskAction, exitCode int) {
	if !n.IsEnabled() {
		return
	}

	title := fmt.Sprintf("%s Failed", actionLabel(action))
	message := fmt.Sprintf("Task \"%s\" finished with exit code %d.", truncate(jobName, 40), exitCode)

	if err := n.send(title, message); err != nil {
		n.logger.Warn().Err(err).Str("job", jobName).Msg("Failed to send task failure notification")
	}
}

// TestRunFinished sends a notification when a test run completes successfully.
func (n *Notifier) TestRunFinished(jobName string) {
	if !n.IsEnabled() {
		return
	}

	title := "Test Run Complete"
	message := fmt.Sprintf("Task \"%s\" ran successfully.", truncate(jobName, 40))

	if err := n.send(title, message); err != nil {
		n.logger.Warn().Err(err).Str("job", jobName).Msg("Failed to send test run notification")
	}
}

// Alert sends an alert notification (error level).
// This is for critical issues that require user attention.
func (n *Notifier) Alert(message string) {
	if !n.IsEnabled() {
		return
	}

	title := "TaskDeck Alert"

	// Use beeep.Alert which shows a more prominent notification on some platforms
	if err := beeep.Alert(title, message, ""); err != nil {
		// Fall back to regular notify
		if err := n.send(title, message); err != nil {
			n.logger.Error().Err(err).Str("message", message).Msg("Failed to send alert notification")
		}
	}
}

// send is the internal method that actually sends the notification.
func (n *Notifier) send(title, message string) error {
	// beeep.Notify is cross-platform:
	// - Windows: Uses toast notifications
	// - macOS: Uses NSUserNotificationCenter
	// - Linux: Uses D-Bus notifications
	return beeep.Notify(title, message, "")
}

// actionLabel maps a task action to a human-readable notification title prefix.
func actionLabel(action events.TaskAction) string {
	switch action {
	case events.ActionMirror:
		return "Schedule Update"
	case events.ActionDelete:
		return "Task Removal"
	case events.ActionTestRun:
		return "Test Run"
	default:
		return "Task"
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

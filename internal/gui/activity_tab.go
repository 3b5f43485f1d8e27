package gui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/taskdeck/taskdeck/internal/events"
)

// ActivityTab shows a filterable history of log events.
type ActivityTab struct {
	window fyne.Window

	logText     *widget.Entry
	logScroll   *container.Scroll
	levelFilter *widget.Select
	autoScroll  *widget.Check
	clearButton *widget.Button

	logs     []LogEntry
	logsLock sync.RWMutex
	maxLogs  int
}

// LogEntry represents a single log entry
type LogEntry struct {
	Timestamp time.Time
	Level     events.LogLevel
	JobName   string
	Message   string
}

// NewActivityTab creates a new activity tab
func NewActivityTab(window fyne.Window) *ActivityTab {
	return &ActivityTab{
		window:  window,
		logs:    make([]LogEntry, 0, 64),
		maxLogs: 5000,
	}
}

// Seed adds an entry before the tab is built, for events that happened
// during startup (e.g. recovering from a corrupt store).
func (at *ActivityTab) Seed(level events.LogLevel, message string) {
	at.logs = append(at.logs, LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
	})
}

// Build creates the activity tab UI
func (at *ActivityTab) Build() fyne.CanvasObject {
	at.logText = widget.NewMultiLineEntry()
	at.logText.SetPlaceHolder("Activity will appear here...")
	at.logText.Wrapping = fyne.TextWrapWord
	at.logText.Disable() // Read-only

	at.logScroll = container.NewScroll(at.logText)
	at.logScroll.SetMinSize(fyne.NewSize(700, 400))

	at.levelFilter = widget.NewSelect([]string{
		"All Levels",
		"DEBUG",
		"INFO",
		"WARN",
		"ERROR",
	}, func(string) {
		at.refreshDisplay()
	})
	at.levelFilter.SetSelected("All Levels")

	at.autoScroll = widget.NewCheck("Auto-scroll", nil)
	at.autoScroll.SetChecked(true)

	at.clearButton = widget.NewButton("Clear", func() {
		dialog.ShowConfirm("Clear Activity?",
			fmt.Sprintf("This will remove all %d entries.", len(at.logs)),
			func(confirmed bool) {
				if confirmed {
					at.clearLogs()
				}
			},
			at.window,
		)
	})

	filterBar := container.NewBorder(
		nil, nil,
		container.NewHBox(widget.NewLabel("Level:"), at.levelFilter),
		container.NewHBox(at.autoScroll, at.clearButton),
		nil,
	)

	at.refreshDisplay()

	return container.NewBorder(
		container.NewVBox(filterBar, widget.NewSeparator()),
		nil, nil, nil,
		at.logScroll,
	)
}

// AddLog adds a log entry and updates the display.
// Safe to call from any goroutine.
func (at *ActivityTab) AddLog(event *events.LogEvent) {
	at.logsLock.Lock()
	message := event.Message
	if event.Error != nil {
		message = fmt.Sprintf("%s: %v", message, event.Error)
	}
	at.logs = append(at.logs, LogEntry{
		Timestamp: event.Timestamp(),
		Level:     event.Level,
		JobName:   event.JobName,
		Message:   message,
	})
	if len(at.logs) > at.maxLogs {
		at.logs = at.logs[len(at.logs)-at.maxLogs:]
	}
	at.logsLock.Unlock()

	fyne.Do(func() {
		at.refreshDisplay()
		if at.autoScroll.Checked {
			at.logScroll.ScrollToBottom()
		}
	})
}

func (at *ActivityTab) refreshDisplay() {
	at.logsLock.RLock()
	defer at.logsLock.RUnlock()

	var sb strings.Builder
	for _, entry := range at.filterLogs() {
		sb.WriteString(at.formatLogEntry(entry))
		sb.WriteString("\n")
	}
	at.logText.SetText(sb.String())
}

func (at *ActivityTab) filterLogs() []LogEntry {
	levelFilter := at.levelFilter.Selected

	filtered := make([]LogEntry, 0, len(at.logs))
	for _, entry := range at.logs {
		if levelFilter != "All Levels" && entry.Level.String() != levelFilter {
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered
}

func (at *ActivityTab) formatLogEntry(entry LogEntry) string {
	parts := []string{
		entry.Timestamp.Format("15:04:05"),
		entry.Level.String(),
	}
	if entry.JobName != "" {
		parts = append(parts, fmt.Sprintf("[%s]", entry.JobName))
	}
	parts = append(parts, entry.Message)
	return strings.Join(parts, " ")
}

func (at *ActivityTab) clearLogs() {
	at.logsLock.Lock()
	at.logs = at.logs[:0]
	at.logsLock.Unlock()

	at.refreshDisplay()
}

package events

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/taskdeck/taskdeck/internal/constants"
)

// EventType defines the types of events that can be emitted
type EventType string

const (
	// EventTaskResult carries the outcome of one background scheduler or
	// test-run invocation back to the UI goroutine.
	EventTaskResult EventType = "task_result"

	// EventLog carries log messages for the activity pane.
	EventLog EventType = "log"

	// EventJobsChanged signals that the job store was mutated and list
	// views should refresh.
	EventJobsChanged EventType = "jobs_changed"
)

// TaskAction identifies which operation produced a TaskResultEvent.
type TaskAction string

const (
	ActionMirror  TaskAction = "mirror"  // query/delete/create against the scheduler
	ActionDelete  TaskAction = "delete"  // external task removal
	ActionTestRun TaskAction = "testrun" // ad-hoc direct execution
)

// LogLevel defines log severity levels
type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l LogLevel) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Event is the base interface for all events
type Event interface {
	Type() EventType
	Timestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EventType EventType
	Time      time.Time
}

func (e BaseEvent) Type() EventType      { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }

// TaskResultEvent is the typed result of one background external invocation:
// the exit code and the combined output text, reported verbatim.
type TaskResultEvent struct {
	BaseEvent
	JobName  string
	Action   TaskAction
	ExitCode int
	Output   string
}

// LogEvent represents log messages
type LogEvent struct {
	BaseEvent
	Level   LogLevel
	Message string
	JobName string
	Error   error
}

// JobsChangedEvent signals a store mutation.
type JobsChangedEvent struct {
	BaseEvent
}

// EventBus manages event subscriptions and publishing
type EventBus struct {
	subscribers   map[EventType][]chan Event
	mu            sync.RWMutex
	bufferSize    int
	closed        bool
	droppedEvents atomic.Int64 // Count of dropped events due to full buffers
}

// NewEventBus creates a new event bus with specified buffer size
func NewEventBus(bufferSize int) *EventBus {
	if bufferSize <= 0 {
		bufferSize = constants.EventBusDefaultBuffer
	}
	if bufferSize > constants.EventBusMaxBuffer {
		bufferSize = constants.EventBusMaxBuffer
	}
	return &EventBus{
		subscribers: make(map[EventType][]chan Event),
		bufferSize:  bufferSize,
	}
}

// Subscribe creates a subscription to a specific event type
func (eb *EventBus) Subscribe(eventType EventType) <-chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		ch := make(chan Event)
		close(ch)
		return ch
	}

	ch := make(chan Event, eb.bufferSize)
	eb.subscribers[eventType] = append(eb.subscribers[eventType], ch)
	return ch
}

// Publish sends an event to all subscribers. Publishing never blocks;
// an event is dropped for a subscriber whose buffer is full.
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	if eb.closed {
		return
	}

	for _, ch := range eb.subscribers[event.Type()] {
		select {
		case ch <- event:
		default:
			eb.droppedEvents.Add(1)
		}
	}
}

// Unsubscribe removes a subscription channel from a specific event type
// This prevents memory leaks from abandoned subscriptions
func (eb *EventBus) Unsubscribe(eventType EventType, ch <-chan Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return
	}

	subscribers := eb.subscribers[eventType]
	for i, subCh := range subscribers {
		if subCh == ch {
			subscribers[i] = subscribers[len(subscribers)-1]
			eb.subscribers[eventType] = subscribers[:len(subscribers)-1]
			break
		}
	}
}

// Close shuts down the event bus and closes all channels
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if eb.closed {
		return
	}

	eb.closed = true

	for _, channels := range eb.subscribers {
		for _, ch := range channels {
			close(ch)
		}
	}
}

// PublishTaskResult is a convenience method for publishing task results
func (eb *EventBus) PublishTaskResult(jobName string, action TaskAction, exitCode int, output string) {
	eb.Publish(&TaskResultEvent{
		BaseEvent: BaseEvent{
			EventType: EventTaskResult,
			Time:      time.Now(),
		},
		JobName:  jobName,
		Action:   action,
		ExitCode: exitCode,
		Output:   output,
	})
}

// PublishLog is a convenience method for publishing log events
func (eb *EventBus) PublishLog(level LogLevel, message, jobName string, err error) {
	eb.Publish(&LogEvent{
		BaseEvent: BaseEvent{
			EventType: EventLog,
			Time:      time.Now(),
		},
		Level:   level,
		Message: message,
		JobName: jobName,
		Error:   err,
	})
}

// PublishJobsChanged is a convenience method for signalling store mutations
func (eb *EventBus) PublishJobsChanged() {
	eb.Publish(&JobsChangedEvent{
		BaseEvent: BaseEvent{
			EventType: EventJobsChanged,
			Time:      time.Now(),
		},
	})
}

// GetDroppedEventCount returns the total number of events dropped due to full buffers
func (eb *EventBus) GetDroppedEventCount() int64 {
	return eb.droppedEvents.Load()
}

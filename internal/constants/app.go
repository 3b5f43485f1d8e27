package constants

// Application identity
const (
	// AppName is the user-visible application name, also used as the
	// per-user data directory name on Windows (%APPDATA%\TaskDeck).
	AppName = "TaskDeck"

	// AppID is the Fyne application identifier.
	AppID = "io.taskdeck.app"

	// StoreFileName is the name of the persisted job store document.
	StoreFileName = "db.json"
)

// Event bus buffer sizes
const (
	// EventBusDefaultBuffer is the per-subscriber channel buffer.
	// Task results are small and infrequent; this only needs to absorb
	// bursts from overlapping background invocations.
	EventBusDefaultBuffer = 256

	// EventBusMaxBuffer caps the buffer a caller may request.
	EventBusMaxBuffer = 4096
)

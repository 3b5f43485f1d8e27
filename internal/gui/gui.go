// Package gui provides the graphical user interface for taskdeck.
package gui

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"github.com/rs/zerolog"

	"github.com/taskdeck/taskdeck/internal/constants"
	"github.com/taskdeck/taskdeck/internal/core"
	"github.com/taskdeck/taskdeck/internal/events"
	"github.com/taskdeck/taskdeck/internal/logging"
	"github.com/taskdeck/taskdeck/internal/notify"
	"github.com/taskdeck/taskdeck/internal/scheduler"
)

var (
	// guiLogger is the package-level logger for GUI mode
	guiLogger *logging.Logger
)

// Launch starts the GUI application against the job store at storePath.
func Launch(storePath string) error {
	guiLogger = logging.NewLogger("gui")

	// In GUI mode, default to WarnLevel for a cleaner console experience.
	// Set TASKDECK_DEBUG=1 to see debug/info messages.
	if os.Getenv("TASKDECK_DEBUG") != "" {
		logging.SetGlobalLevel(zerolog.DebugLevel)
		guiLogger.Info().Msg("Debug logging enabled via TASKDECK_DEBUG")
	} else {
		logging.SetGlobalLevel(zerolog.WarnLevel)
	}

	// Check for display on Linux
	if runtime.GOOS == "linux" {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			return fmt.Errorf("GUI mode requires a display. No display detected.\n" +
				"DISPLAY and WAYLAND_DISPLAY are not set.\n" +
				"Use the taskdeck subcommands for CLI mode")
		}
	}

	myApp := app.NewWithID(constants.AppID)
	myApp.Settings().SetTheme(&taskdeckTheme{})

	mainWindow := myApp.NewWindow(constants.AppName)
	mainWindow.SetMaster()

	bus := events.NewEventBus(0)
	runner := scheduler.NewSchtasksRunner(scheduler.CmdShellQuoter{})
	engine := core.NewEngine(storePath, runner, bus, guiLogger)

	ui := NewUI(engine, mainWindow)
	ui.Start()

	mainWindow.SetContent(ui.Build())
	mainWindow.Resize(fyne.NewSize(950, 550))
	mainWindow.CenterOnScreen()

	mainWindow.SetOnClosed(func() {
		ui.Stop()
	})

	mainWindow.ShowAndRun()

	return nil
}

// UI represents the main user interface
type UI struct {
	engine      *core.Engine
	window      fyne.Window
	jobsTab     *JobsTab
	activityTab *ActivityTab
	notifier    *notify.Notifier
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewUI creates a new UI instance
func NewUI(engine *core.Engine, window fyne.Window) *UI {
	ctx, cancel := context.WithCancel(context.Background())

	ui := &UI{
		engine:   engine,
		window:   window,
		notifier: notify.NewNotifier(notify.DefaultConfig(), guiLogger),
		ctx:      ctx,
		cancel:   cancel,
	}

	ui.jobsTab = NewJobsTab(engine, window)
	ui.activityTab = NewActivityTab(window)

	if engine.StoreRecovered() {
		ui.activityTab.Seed(events.WarnLevel, "Job store was unreadable; starting with an empty job list")
	}

	return ui
}

// Build creates the UI layout
func (ui *UI) Build() fyne.CanvasObject {
	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon("  Jobs  ", theme.ComputerIcon(), ui.jobsTab.Build()),
		container.NewTabItemWithIcon("  Activity  ", theme.InfoIcon(), ui.activityTab.Build()),
	)
	tabs.SelectIndex(0)
	return tabs
}

// Start begins event monitoring
func (ui *UI) Start() {
	go ui.monitorResults()
	go ui.monitorLogs()
	go ui.monitorJobsChanged()
}

// Stop stops event monitoring and shuts the engine down
func (ui *UI) Stop() {
	ui.cancel()
	ui.engine.Stop()
}

func (ui *UI) monitorResults() {
	ch := ui.engine.Events().Subscribe(events.EventTaskResult)

	// AddResult handles thread safety internally via fyne.Do().
	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return
			}
			result := event.(*events.TaskResultEvent)
			ui.jobsTab.AddResult(result)
			if result.ExitCode != 0 {
				ui.notifier.TaskFailed(result.JobName, result.Action, result.ExitCode)
			}

		case <-ui.ctx.Done():
			return
		}
	}
}

func (ui *UI) monitorLogs() {
	ch := ui.engine.Events().Subscribe(events.EventLog)

	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return
			}
			ui.activityTab.AddLog(event.(*events.LogEvent))

		case <-ui.ctx.Done():
			return
		}
	}
}

func (ui *UI) monitorJobsChanged() {
	ch := ui.engine.Events().Subscribe(events.EventJobsChanged)

	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
			ui.jobsTab.RefreshJobs()

		case <-ui.ctx.Done():
			return
		}
	}
}

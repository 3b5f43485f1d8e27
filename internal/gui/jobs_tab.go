package gui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/taskdeck/taskdeck/internal/constants"
	"github.com/taskdeck/taskdeck/internal/core"
	"github.com/taskdeck/taskdeck/internal/events"
	"github.com/taskdeck/taskdeck/internal/models"
)

// weekdayLabels are the checkbox captions, parallel to models.Weekdays.
var weekdayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// JobsTab manages the job list, the editing form, and the result log pane.
type JobsTab struct {
	engine *core.Engine
	window fyne.Window

	// jobs is the list snapshot backing the list widget. Owned by the UI
	// goroutine; refreshed from the engine on jobs-changed events.
	jobs     []models.Job
	selected int

	jobList      *widget.List
	nameEntry    *widget.Entry
	timeEntry    *widget.Entry
	dailyCheck   *widget.Check
	dayChecks    []*widget.Check
	commandEntry *widget.Entry
	logText      *widget.Entry
	logScroll    *container.Scroll
}

// NewJobsTab creates a new jobs tab
func NewJobsTab(engine *core.Engine, window fyne.Window) *JobsTab {
	return &JobsTab{
		engine:   engine,
		window:   window,
		jobs:     engine.Jobs(),
		selected: -1,
	}
}

// Build creates the jobs tab UI
func (jt *JobsTab) Build() fyne.CanvasObject {
	jt.jobList = widget.NewList(
		func() int {
			return len(jt.jobs)
		},
		func() fyne.CanvasObject {
			name := widget.NewLabel("name")
			name.TextStyle = fyne.TextStyle{Bold: true}
			time := widget.NewLabel("00:00")
			command := widget.NewLabel("command")
			command.Truncation = fyne.TextTruncateEllipsis
			return container.NewBorder(nil, nil, container.NewHBox(name, time), nil, command)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(jt.jobs) {
				return
			}
			job := jt.jobs[id]
			border := obj.(*fyne.Container)
			head := border.Objects[1].(*fyne.Container)
			head.Objects[0].(*widget.Label).SetText(job.Name)
			head.Objects[1].(*widget.Label).SetText(job.Time)
			border.Objects[0].(*widget.Label).SetText(job.Command)
		},
	)
	jt.jobList.OnSelected = func(id widget.ListItemID) {
		jt.onSelectJob(id)
	}
	jt.jobList.OnUnselected = func(id widget.ListItemID) {
		if jt.selected == id {
			jt.selected = -1
		}
	}

	addButton := widget.NewButton("Add New", jt.clearForm)
	deleteButton := widget.NewButton("Delete", jt.onDelete)
	testRunButton := widget.NewButton("Test Run", jt.onTestRun)

	left := container.NewBorder(
		widget.NewLabel("Jobs"),
		container.NewVBox(addButton, deleteButton, testRunButton),
		nil, nil,
		jt.jobList,
	)

	jt.nameEntry = widget.NewEntry()
	jt.timeEntry = widget.NewEntry()
	jt.timeEntry.SetText("09:00")

	jt.dailyCheck = widget.NewCheck("Daily", func(bool) {
		jt.updateModeState()
	})
	jt.dailyCheck.SetChecked(true)

	jt.dayChecks = make([]*widget.Check, len(models.Weekdays))
	dayObjects := make([]fyne.CanvasObject, len(models.Weekdays))
	for i, label := range weekdayLabels {
		check := widget.NewCheck(label, func(bool) {
			jt.updateModeState()
		})
		jt.dayChecks[i] = check
		dayObjects[i] = check
	}

	jt.commandEntry = widget.NewEntry()
	jt.commandEntry.MultiLine = true
	jt.commandEntry.Wrapping = fyne.TextWrapWord
	jt.commandEntry.SetMinRowsVisible(4)

	form := widget.NewForm(
		widget.NewFormItem("Task Name", jt.nameEntry),
		widget.NewFormItem("Time (HH:MM)", jt.timeEntry),
		widget.NewFormItem("", jt.dailyCheck),
		widget.NewFormItem("Days of Week", container.NewGridWithColumns(4, dayObjects...)),
		widget.NewFormItem("Command", jt.commandEntry),
	)

	saveButton := NewPrimaryButton("Save Task", jt.onSave)

	jt.logText = widget.NewMultiLineEntry()
	jt.logText.SetPlaceHolder("Scheduler output will appear here...")
	jt.logText.Wrapping = fyne.TextWrapWord
	jt.logText.Disable() // Read-only
	jt.logScroll = container.NewScroll(jt.logText)
	jt.logScroll.SetMinSize(fyne.NewSize(400, 160))

	right := container.NewBorder(
		container.NewVBox(
			form,
			VerticalSpacer(8),
			container.NewCenter(saveButton),
			VerticalSpacer(8),
		),
		nil, nil, nil,
		jt.logScroll,
	)

	jt.updateModeState()

	split := container.NewHSplit(left, right)
	split.SetOffset(0.35)
	return split
}

// computeModeState derives checkbox enablement from the current toggles:
// daily on disables the per-day selectors; any selected day disables daily;
// neither on leaves both enabled. Clearing the last day while daily is off
// deliberately leaves both off and both enabled; the transient state is
// allowed in the form and rejected by validation on save, rather than
// silently re-checking Daily behind the user's back.
func computeModeState(daily, anyDay bool) (dailyEnabled, daysEnabled bool) {
	if daily {
		return true, false
	}
	if anyDay {
		return false, true
	}
	return true, true
}

func (jt *JobsTab) updateModeState() {
	anyDay := false
	for _, check := range jt.dayChecks {
		if check.Checked {
			anyDay = true
			break
		}
	}

	dailyEnabled, daysEnabled := computeModeState(jt.dailyCheck.Checked, anyDay)
	setCheckEnabled(jt.dailyCheck, dailyEnabled)
	for _, check := range jt.dayChecks {
		setCheckEnabled(check, daysEnabled)
	}
}

func setCheckEnabled(check *widget.Check, enabled bool) {
	if enabled {
		check.Enable()
	} else {
		check.Disable()
	}
}

// clearForm resets the form to the blank state: empty fields, daily on.
func (jt *JobsTab) clearForm() {
	jt.nameEntry.SetText("")
	jt.timeEntry.SetText("09:00")
	jt.dailyCheck.SetChecked(true)
	for _, check := range jt.dayChecks {
		check.SetChecked(false)
	}
	jt.commandEntry.SetText("")
	jt.jobList.UnselectAll()
	jt.selected = -1
	jt.updateModeState()
}

// onSelectJob populates the form from the stored record of the chosen row,
// including reconstructing the day checkboxes from the stored day codes.
func (jt *JobsTab) onSelectJob(id int) {
	if id < 0 || id >= len(jt.jobs) {
		return
	}
	jt.selected = id
	job := jt.jobs[id]

	jt.nameEntry.SetText(job.Name)
	jt.timeEntry.SetText(job.Time)
	jt.dailyCheck.SetChecked(job.Daily)
	for i, code := range models.Weekdays {
		jt.dayChecks[i].SetChecked(job.HasDay(code))
	}
	jt.commandEntry.SetText(job.Command)
	jt.updateModeState()
}

func (jt *JobsTab) formJob() models.Job {
	var days []string
	for i, check := range jt.dayChecks {
		if check.Checked {
			days = append(days, models.Weekdays[i])
		}
	}
	return models.Job{
		Name:    strings.TrimSpace(jt.nameEntry.Text),
		Time:    strings.TrimSpace(jt.timeEntry.Text),
		Command: strings.TrimSpace(jt.commandEntry.Text),
		Daily:   jt.dailyCheck.Checked,
		Days:    days,
	}
}

func (jt *JobsTab) onSave() {
	job := jt.formJob()
	if err := jt.engine.SaveJob(job); err != nil {
		dialog.ShowError(err, jt.window)
		return
	}
	// List refresh arrives via the jobs-changed event; the scheduler result
	// lands in the log pane when the background mirror finishes.
}

func (jt *JobsTab) onDelete() {
	if jt.selected < 0 || jt.selected >= len(jt.jobs) {
		return
	}
	name := jt.jobs[jt.selected].Name

	dialog.ShowConfirm("Confirm",
		fmt.Sprintf("Delete task %s?", name),
		func(confirmed bool) {
			if !confirmed {
				return
			}
			go func() {
				if err := jt.engine.DeleteJob(name); err != nil {
					fyne.Do(func() {
						dialog.ShowError(err, jt.window)
					})
				}
			}()
		},
		jt.window,
	)
}

func (jt *JobsTab) onTestRun() {
	if jt.selected < 0 || jt.selected >= len(jt.jobs) {
		dialog.ShowInformation(constants.AppName, "Select a job to test run", jt.window)
		return
	}
	name := jt.jobs[jt.selected].Name

	job, ok := jt.engine.Find(name)
	if !ok {
		// Stale list selection: the row no longer matches a stored record.
		dialog.ShowError(fmt.Errorf("job %q not found in the store", name), jt.window)
		return
	}

	jt.appendLog(fmt.Sprintf("Running test for %s: %s", name, job.Command))
	if err := jt.engine.TestRun(name); err != nil {
		dialog.ShowError(err, jt.window)
	}
}

// RefreshJobs reloads the list snapshot from the engine. Safe to call from
// any goroutine; widget updates are marshalled through fyne.Do().
func (jt *JobsTab) RefreshJobs() {
	jobs := jt.engine.Jobs()
	fyne.Do(func() {
		jt.jobs = jobs
		if jt.selected >= len(jt.jobs) {
			jt.selected = -1
		}
		jt.jobList.Refresh()
	})
}

// AddResult appends one background invocation result to the log pane.
// Safe to call from any goroutine.
func (jt *JobsTab) AddResult(event *events.TaskResultEvent) {
	var text string
	if event.Action == events.ActionTestRun {
		text = fmt.Sprintf("Exit %d:\n%s", event.ExitCode, event.Output)
	} else {
		text = event.Output
		if strings.TrimSpace(text) == "" {
			text = fmt.Sprintf("Exit %d", event.ExitCode)
		}
	}

	fyne.Do(func() {
		jt.appendLog(text)
	})
}

func (jt *JobsTab) appendLog(line string) {
	jt.logText.SetText(jt.logText.Text + line + "\n")
	jt.logScroll.ScrollToBottom()
}

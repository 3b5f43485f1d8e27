// Package core orchestrates the job store, the scheduler adapter, and the
// event bus. The Engine is the single writer for the in-memory store; the
// GUI and CLI surfaces both drive it.
package core

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/events"
	"github.com/taskdeck/taskdeck/internal/logging"
	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/scheduler"
)

// Engine owns the in-memory job store and coordinates persistence and
// external scheduler calls. External invocations triggered by save and
// test-run run on fire-and-forget goroutines; their results come back as
// TaskResult events on the bus, in completion order.
type Engine struct {
	storePath string
	runner    scheduler.Runner
	eventBus  *events.EventBus
	logger    *logging.Logger

	mu        sync.Mutex
	store     *config.Store
	recovered bool
}

// NewEngine loads the store from storePath and wires the engine together.
// An unavailable or corrupt store document is treated as an empty store;
// the recovery is logged rather than silently swallowed (a missing file on
// first run is only a debug note, a corrupt one is a warning).
func NewEngine(storePath string, runner scheduler.Runner, bus *events.EventBus, logger *logging.Logger) *Engine {
	store, recovered := config.LoadStore(storePath)
	corrupt := false
	if recovered {
		if _, err := os.Stat(storePath); os.IsNotExist(err) {
			logger.Debug().Str("path", storePath).Msg("No job store found, starting empty")
		} else {
			corrupt = true
			logger.Warn().Str("path", storePath).Msg("Job store unreadable or corrupt, recovered with empty store")
			bus.PublishLog(events.WarnLevel, "Job store was unreadable; starting with an empty job list", "", nil)
		}
	}

	return &Engine{
		storePath: storePath,
		runner:    runner,
		eventBus:  bus,
		logger:    logger,
		store:     store,
		recovered: corrupt,
	}
}

// StoreRecovered reports whether the engine started from an empty store
// because the persisted document existed but could not be read. Surfaces
// the recovery to UIs that attach after construction.
func (e *Engine) StoreRecovered() bool {
	return e.recovered
}

// Events returns the engine's event bus.
func (e *Engine) Events() *events.EventBus {
	return e.eventBus
}

// StorePath returns the path of the persisted job store.
func (e *Engine) StorePath() string {
	return e.storePath
}

// Jobs returns a snapshot of the stored jobs in store order.
func (e *Engine) Jobs() []models.Job {
	e.mu.Lock()
	defer e.mu.Unlock()
	jobs := make([]models.Job, len(e.store.Jobs))
	copy(jobs, e.store.Jobs)
	return jobs
}

// Find returns the stored job with the given name, if present.
func (e *Engine) Find(name string) (models.Job, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Find(name)
}

// SaveJob validates the job, upserts it into the store by name, persists,
// and then mirrors it to the OS scheduler on a background goroutine
// (query, conditional delete, create). On validation failure nothing is
// mutated. A persistence failure is returned to the caller; the mirror is
// not attempted in that case.
func (e *Engine) SaveJob(job models.Job) error {
	if errs := job.Validate(); len(errs) > 0 {
		return errors.Join(errs...)
	}

	e.mu.Lock()
	e.store.Upsert(job)
	err := config.SaveStore(e.storePath, e.store)
	e.mu.Unlock()
	if err != nil {
		return err
	}

	e.eventBus.PublishJobsChanged()
	e.logger.Info().Str("job", job.Name).Msg("Job saved")

	go e.mirror(job)
	return nil
}

// mirror registers the job with the OS scheduler: probe for an existing
// task of the same name, delete it if present, then create. The order is
// always delete-then-create. Nothing is rolled back on failure; the result
// text lands in the log for the user to notice drift.
func (e *Engine) mirror(job models.Job) {
	exists, _, err := e.runner.Query(job.Name)
	if err != nil {
		e.publishResult(job.Name, events.ActionMirror, -1, err.Error())
		return
	}

	if exists {
		res, err := e.runner.Delete(job.Name)
		if err != nil {
			e.publishResult(job.Name, events.ActionMirror, -1, err.Error())
			return
		}
		if res.ExitCode != 0 {
			// Create still proceeds; the failed pre-delete is reported.
			e.publishResult(job.Name, events.ActionMirror, res.ExitCode, res.Output)
		}
	}

	res, err := e.runner.Create(job)
	if err != nil {
		e.publishResult(job.Name, events.ActionMirror, -1, err.Error())
		return
	}
	e.publishResult(job.Name, events.ActionMirror, res.ExitCode, res.Output)
}

// DeleteJob removes the task from the OS scheduler and the record from the
// local store. Local removal and persistence proceed regardless of the
// external result: a failed external delete is reported through the log,
// not treated as a reason to keep the local record.
func (e *Engine) DeleteJob(name string) error {
	res, err := e.runner.Delete(name)
	if err != nil {
		e.publishResult(name, events.ActionDelete, -1, err.Error())
	} else {
		e.publishResult(name, events.ActionDelete, res.ExitCode, res.Output)
	}

	e.mu.Lock()
	removed := e.store.Remove(name)
	saveErr := config.SaveStore(e.storePath, e.store)
	e.mu.Unlock()

	if removed {
		e.eventBus.PublishJobsChanged()
		e.logger.Info().Str("job", name).Msg("Job deleted")
	}
	return saveErr
}

// TestRun executes the named job's command directly (outside the scheduler)
// on a background goroutine. A name that does not correspond to a stored
// record is an error and nothing is executed.
func (e *Engine) TestRun(name string) error {
	e.mu.Lock()
	job, ok := e.store.Find(name)
	e.mu.Unlock()
	if !ok {
		return fmt.Errorf("job %q not found in store", name)
	}

	go func() {
		res, err := e.runner.RunDirect(job.Command)
		if err != nil {
			e.publishResult(name, events.ActionTestRun, -1, err.Error())
			return
		}
		e.publishResult(name, events.ActionTestRun, res.ExitCode, res.Output)
	}()
	return nil
}

// Stop shuts down the event bus. In-flight background invocations are not
// cancelled; their results are dropped by the closed bus.
func (e *Engine) Stop() {
	e.eventBus.Close()
}

func (e *Engine) publishResult(jobName string, action events.TaskAction, exitCode int, output string) {
	e.logger.Debug().
		Str("job", jobName).
		Str("action", string(action)).
		Int("exit", exitCode).
		Msg("External invocation finished")
	e.eventBus.PublishTaskResult(jobName, action, exitCode, output)

	level := events.InfoLevel
	if exitCode != 0 {
		level = events.WarnLevel
	}
	e.eventBus.PublishLog(level, fmt.Sprintf("%s finished with exit %d", action, exitCode), jobName, nil)
}

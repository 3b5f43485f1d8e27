// Package models defines the data types shared across taskdeck packages.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Weekdays lists the scheduler day codes in display order.
// The order matches the checkbox row in the GUI (Monday first).
var Weekdays = []string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

// Job is one named scheduled command with a trigger and a start time.
// Name acts as the primary key within the local store and as the task
// name registered with the OS scheduler.
type Job struct {
	Name    string   `json:"name"`
	Time    string   `json:"time"`    // "HH:MM", free text
	Command string   `json:"command"` // arbitrary shell text
	Daily   bool     `json:"daily"`
	Days    []string `json:"days"` // subset of Weekdays; used when Daily is false
}

// UnmarshalJSON reads a job record, defaulting a missing daily key to true.
// Older store documents omit the trigger keys; an absent "daily" means the
// job predates per-day triggers and ran daily.
func (j *Job) UnmarshalJSON(data []byte) error {
	type alias Job
	aux := struct {
		Daily *bool `json:"daily"`
		*alias
	}{alias: (*alias)(j)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Daily == nil {
		j.Daily = true
	} else {
		j.Daily = *aux.Daily
	}
	return nil
}

// Validate returns the presence violations for a job. A well-formed job has
// a non-empty name, a non-empty command, and either Daily set or at least one
// day selected. Time is intentionally not validated beyond what the user
// typed; the OS scheduler is the authority on trigger syntax.
func (j Job) Validate() []error {
	var errs []error
	if strings.TrimSpace(j.Name) == "" {
		errs = append(errs, fmt.Errorf("task name is required"))
	}
	if strings.TrimSpace(j.Command) == "" {
		errs = append(errs, fmt.Errorf("command is required"))
	}
	if !j.Daily && len(j.Days) == 0 {
		errs = append(errs, fmt.Errorf("select at least one day or choose Daily"))
	}
	return errs
}

// HasDay reports whether the given day code is in the job's day list.
func (j Job) HasDay(code string) bool {
	for _, d := range j.Days {
		if d == code {
			return true
		}
	}
	return false
}

// Trigger returns a human-readable description of the job's trigger,
// used by the CLI list output and the GUI job list.
func (j Job) Trigger() string {
	if j.Daily {
		return "daily"
	}
	return strings.Join(j.Days, ",")
}

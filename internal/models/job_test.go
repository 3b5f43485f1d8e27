package models

import (
	"encoding/json"
	"testing"
)

func TestJobValidate(t *testing.T) {
	tests := []struct {
		name     string
		job      Job
		wantErrs int
	}{
		{
			name:     "valid daily job",
			job:      Job{Name: "backup", Time: "09:00", Command: "run.bat", Daily: true},
			wantErrs: 0,
		},
		{
			name:     "valid weekly job",
			job:      Job{Name: "report", Time: "18:30", Command: "report.exe", Days: []string{"MON", "FRI"}},
			wantErrs: 0,
		},
		{
			name:     "daily job with zero days is accepted",
			job:      Job{Name: "sync", Command: "sync.bat", Daily: true, Days: nil},
			wantErrs: 0,
		},
		{
			name:     "empty name rejected",
			job:      Job{Name: "", Command: "run.bat", Daily: true},
			wantErrs: 1,
		},
		{
			name:     "whitespace name rejected",
			job:      Job{Name: "   ", Command: "run.bat", Daily: true},
			wantErrs: 1,
		},
		{
			name:     "empty command rejected",
			job:      Job{Name: "backup", Command: "", Daily: true},
			wantErrs: 1,
		},
		{
			name:     "non-daily with zero days rejected",
			job:      Job{Name: "backup", Command: "run.bat", Daily: false},
			wantErrs: 1,
		},
		{
			name:     "everything missing",
			job:      Job{},
			wantErrs: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.job.Validate()
			if len(errs) != tt.wantErrs {
				t.Errorf("Validate() returned %d errors, want %d: %v", len(errs), tt.wantErrs, errs)
			}
		})
	}
}

func TestJobUnmarshalDailyDefault(t *testing.T) {
	var missing Job
	if err := json.Unmarshal([]byte(`{"name": "legacy", "command": "run.bat"}`), &missing); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !missing.Daily {
		t.Error("Expected missing daily key to default to true")
	}

	var explicit Job
	if err := json.Unmarshal([]byte(`{"name": "report", "daily": false, "days": ["MON"]}`), &explicit); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if explicit.Daily {
		t.Error("Expected explicit daily=false to be preserved")
	}
	if len(explicit.Days) != 1 || explicit.Days[0] != "MON" {
		t.Errorf("Unexpected days: %v", explicit.Days)
	}
}

func TestJobHasDay(t *testing.T) {
	job := Job{Days: []string{"MON", "WED"}}
	if !job.HasDay("MON") {
		t.Error("Expected HasDay(MON) to be true")
	}
	if job.HasDay("SUN") {
		t.Error("Expected HasDay(SUN) to be false")
	}
}

func TestJobTrigger(t *testing.T) {
	daily := Job{Daily: true}
	if got := daily.Trigger(); got != "daily" {
		t.Errorf("Trigger() = %q, want %q", got, "daily")
	}

	weekly := Job{Days: []string{"TUE", "THU"}}
	if got := weekly.Trigger(); got != "TUE,THU" {
		t.Errorf("Trigger() = %q, want %q", got, "TUE,THU")
	}
}

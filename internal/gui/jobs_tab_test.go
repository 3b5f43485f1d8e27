package gui

import "testing"

// TestComputeModeState covers the checkbox mutual-exclusion rule, including
// the transient both-off state reached by clearing days one by one while
// Daily is already off.
func TestComputeModeState(t *testing.T) {
	tests := []struct {
		name             string
		daily            bool
		anyDay           bool
		wantDailyEnabled bool
		wantDaysEnabled  bool
	}{
		{
			name:             "daily on disables day selectors",
			daily:            true,
			anyDay:           false,
			wantDailyEnabled: true,
			wantDaysEnabled:  false,
		},
		{
			name:             "daily on wins even with stale day selection",
			daily:            true,
			anyDay:           true,
			wantDailyEnabled: true,
			wantDaysEnabled:  false,
		},
		{
			name:             "any day on disables daily",
			daily:            false,
			anyDay:           true,
			wantDailyEnabled: false,
			wantDaysEnabled:  true,
		},
		{
			name:             "both off leaves both enabled",
			daily:            false,
			anyDay:           false,
			wantDailyEnabled: true,
			wantDaysEnabled:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dailyEnabled, daysEnabled := computeModeState(tt.daily, tt.anyDay)
			if dailyEnabled != tt.wantDailyEnabled {
				t.Errorf("dailyEnabled = %v, want %v", dailyEnabled, tt.wantDailyEnabled)
			}
			if daysEnabled != tt.wantDaysEnabled {
				t.Errorf("daysEnabled = %v, want %v", daysEnabled, tt.wantDaysEnabled)
			}
		})
	}
}

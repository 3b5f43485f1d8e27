package cli

import (
	"reflect"
	"testing"
)

func TestNormalizeDays(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"upper-cases codes", []string{"mon", "Fri"}, []string{"MON", "FRI"}},
		{"trims whitespace", []string{" MON ", "WED"}, []string{"MON", "WED"}},
		{"drops empty entries", []string{"MON", "", "  "}, []string{"MON"}},
		{"nil stays nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeDays(tt.input); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("normalizeDays(%v) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

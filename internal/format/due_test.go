package format

import (
	"testing"
	"time"
)

func TestDaysUntilDue(t *testing.T) {
	tests := []struct {
		name     string
		due      time.Time
		now      time.Time
		expected int
	}{
		{
			"due today is zero",
			time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 10, 23, 0, 0, 0, time.UTC),
			0,
		},
		{
			"due today early morning stays zero all day",
			time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
			0,
		},
		{
			"due yesterday",
			time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			-1,
		},
		{
			"nine days past due",
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC),
			-9,
		},
		{
			"due tomorrow",
			time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 10, 23, 59, 0, 0, time.UTC),
			1,
		},
		{
			"due in a week",
			time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DaysUntilDue(tt.due, tt.now)
			if got != tt.expected {
				t.Errorf("DaysUntilDue(%v, %v) = %d, want %d", tt.due, tt.now, got, tt.expected)
			}
		})
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	if IsOverdue(time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC), now) {
		t.Error("a bill due today must not be overdue")
	}
	if !IsOverdue(time.Date(2024, 1, 9, 23, 0, 0, 0, time.UTC), now) {
		t.Error("a bill due yesterday must be overdue")
	}
}

func TestCurrentMonth(t *testing.T) {
	got := CurrentMonth(time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC))
	if got != "2024-03" {
		t.Errorf("CurrentMonth = %q, want %q", got, "2024-03")
	}
}

func TestLastDayOfMonth(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		expected int
	}{
		{"january", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), 31},
		{"leap february", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), 29},
		{"non-leap february", time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC), 28},
		{"april", time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC), 30},
		{"december", time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LastDayOfMonth(tt.now)
			if got.Day() != tt.expected {
				t.Errorf("LastDayOfMonth(%v).Day() = %d, want %d", tt.now, got.Day(), tt.expected)
			}
			if got.Month() != tt.now.Month() {
				t.Errorf("LastDayOfMonth(%v) landed in %v", tt.now, got.Month())
			}
		})
	}
}

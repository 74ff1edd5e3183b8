package format

import (
	"testing"
	"time"
)

func TestDateFR(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{"zero time", time.Time{}, ""},
		{"january", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), "2 janvier 2024"},
		{"august", time.Date(2023, 8, 15, 12, 30, 0, 0, time.UTC), "15 août 2023"},
		{"december", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), "31 décembre 2025"},
		{"first of month", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "1 février 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DateFR(tt.input)
			if got != tt.expected {
				t.Errorf("DateFR(%v) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMonthFR(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"january", "2024-01", "janvier 2024"},
		{"december", "2023-12", "décembre 2023"},
		{"no separator", "202401", "202401"},
		{"bad year", "abcd-01", "abcd-01"},
		{"bad month", "2024-13", "2024-13"},
		{"month zero", "2024-00", "2024-00"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthFR(tt.input)
			if got != tt.expected {
				t.Errorf("MonthFR(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRelativeFR(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{"just now", now.Add(-30 * time.Second), "à l'instant"},
		{"minutes", now.Add(-5 * time.Minute), "il y a 5 min"},
		{"hours", now.Add(-3 * time.Hour), "il y a 3 h"},
		{"one day", now.Add(-30 * time.Hour), "il y a 1 jour"},
		{"days", now.Add(-4 * 24 * time.Hour), "il y a 4 jours"},
		{"old falls back to full date", now.Add(-90 * 24 * time.Hour), "17 mars 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RelativeFR(tt.input, now)
			if got != tt.expected {
				t.Errorf("RelativeFR(%v) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestJours(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{0, "0 jours"},
		{1, "1 jour"},
		{2, "2 jours"},
		{9, "9 jours"},
		{-1, "-1 jour"},
	}

	for _, tt := range tests {
		got := Jours(tt.n)
		if got != tt.expected {
			t.Errorf("Jours(%d) = %q, want %q", tt.n, got, tt.expected)
		}
	}
}

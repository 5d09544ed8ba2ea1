package service

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRentalDays(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected int
	}{
		{"three days end exclusive", date(2025, 6, 5), date(2025, 6, 8), 3},
		{"single day", date(2025, 6, 5), date(2025, 6, 6), 1},
		{"across month boundary", date(2025, 6, 28), date(2025, 7, 3), 5},
		{"thirty days", date(2025, 6, 1), date(2025, 7, 1), 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RentalDays(tt.start, tt.end); got != tt.expected {
				t.Errorf("RentalDays(%v, %v) = %d, want %d", tt.start, tt.end, got, tt.expected)
			}
		})
	}
}

func TestRentalDays_TimeOfDayIgnored(t *testing.T) {
	morning := time.Date(2025, 6, 5, 8, 30, 0, 0, time.UTC)
	evening := time.Date(2025, 6, 8, 23, 15, 0, 0, time.UTC)

	if got := RentalDays(morning, evening); got != 3 {
		t.Errorf("expected 3 days regardless of time of day, got %d", got)
	}

	if RentalDays(date(2025, 6, 5), date(2025, 6, 8)) != RentalDays(morning, evening) {
		t.Error("same calendar dates must yield the same duration")
	}
}

func TestTotalPrice(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		days     int
		expected float64
	}{
		{"three days at fifty", 50, 3, 150},
		{"rounding to two decimals", 33.333, 3, 100.00},
		{"zero days", 50, 0, 0},
		{"fractional rate", 49.99, 5, 249.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalPrice(tt.rate, tt.days); got != tt.expected {
				t.Errorf("TotalPrice(%v, %d) = %v, want %v", tt.rate, tt.days, got, tt.expected)
			}
		})
	}
}

func TestTotalPrice_Deterministic(t *testing.T) {
	first := TotalPrice(87.65, 12)
	for i := 0; i < 10; i++ {
		if got := TotalPrice(87.65, 12); got != first {
			t.Fatalf("TotalPrice is not deterministic: %v != %v", got, first)
		}
	}
}

package sanitizer

import (
	"reflect"
	"testing"
)

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"only spaces", "   ", ""},
		{"leading and trailing", "  Ivan Petrov  ", "Ivan Petrov"},
		{"internal runs collapse", "Ivan    Petrov", "Ivan Petrov"},
		{"tabs and newlines", "Ivan\t\nPetrov", "Ivan Petrov"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.expected {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Ivan.Petrov@Example.COM "); got != "ivan.petrov@example.com" {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"e164 passes through", "+359888123456", "+359888123456"},
		{"national number gets region prefix", "0888123456", "+359888123456"},
		{"garbage yields empty", "not-a-phone", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.input); got != tt.expected {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	once := NormalizePhone("0888123456")
	twice := NormalizePhone(once)
	if once != twice {
		t.Errorf("not idempotent: %q != %q", once, twice)
	}
}

func TestNormalizeSlice(t *testing.T) {
	input := []string{" GPS ", "gps", "", "Child Seat", "GPS"}
	got := NormalizeSlice(input, func(s string) string {
		return TrimAndNormalize(s)
	})

	expected := []string{"GPS", "gps", "Child Seat"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("NormalizeSlice = %v, want %v", got, expected)
	}
}

func TestNormalizeMessage(t *testing.T) {
	input := "  Hello,\n\nI would   like to ask about\tavailability.  "
	expected := "Hello,\n\nI would like to ask about availability."
	if got := NormalizeMessage(input); got != expected {
		t.Errorf("NormalizeMessage = %q, want %q", got, expected)
	}
}

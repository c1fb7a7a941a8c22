package intent

import (
	"testing"
	"time"
)

func TestNormalizeDate(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want string
	}{
		{"2025.07.10", "2025-07-10"},
		{"10.07.2025", "2025-07-10"},
		{"2025-07-10", "2025-07-10"},
		{"1.7.2025", "2025-07-01"},
		// Day-month only picks up the current year.
		{"10.07", "2025-07-10"},
		{"5.3", "2025-03-05"},
		// Unparseable values normalize to empty, never an error.
		{"вчера", ""},
		{"32.13.2025", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeDateAt(tt.in, now); got != tt.want {
			t.Errorf("normalizeDateAt(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

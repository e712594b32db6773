package scheduler

import (
	"errors"
	"testing"
)

func TestParseClockTime(t *testing.T) {
	cases := map[string]float64{
		"07:00": 7,
		"09:30": 9.5,
		"00:00": 0,
		"23:59": 23 + 59.0/60,
	}
	for input, want := range cases {
		got, err := ParseClockTime(input)
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		if got != want {
			t.Fatalf("parse %q = %v, want %v", input, got, want)
		}
	}
}

func TestParseClockTimeRejectsMalformed(t *testing.T) {
	for _, input := range []string{"", "7", "7:0:0", "aa:bb", "24:00", "12:60", "-1:00"} {
		if _, err := ParseClockTime(input); !errors.Is(err, ErrInvalidClockTime) {
			t.Fatalf("expected ErrInvalidClockTime for %q, got %v", input, err)
		}
	}
}

func TestFormatClockTimeWraps(t *testing.T) {
	cases := map[float64]string{
		9:     "09:00",
		9.5:   "09:30",
		-1:    "23:00",
		25:    "01:00",
		23.99: "23:59",
		0:     "00:00",
	}
	for input, want := range cases {
		if got := FormatClockTime(input); got != want {
			t.Fatalf("format %v = %q, want %q", input, got, want)
		}
	}
}

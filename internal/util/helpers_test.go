package util

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestClamp(t *testing.T) {
	cases := []struct{ v, lo, hi, want int }{
		{-1, 0, 10, 0},
		{5, 0, 10, 5},
		{14401, 0, 14400, 14400},
	}
	for _, tc := range cases {
		if got := Clamp(tc.v, tc.lo, tc.hi); got != tc.want {
			t.Fatalf("Clamp(%d, %d, %d) = %d, want %d", tc.v, tc.lo, tc.hi, got, tc.want)
		}
	}
}

func TestPtr(t *testing.T) {
	p := Ptr(7)
	if p == nil || *p != 7 {
		t.Fatalf("Ptr(7) = %v", p)
	}
	*p = 8
	if q := Ptr(7); *q != 7 {
		t.Fatalf("Ptr must copy its argument, got %d", *q)
	}
}

func TestLogErrorSkipsNil(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	LogError(logger, "nothing", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output for nil error")
	}
	LogError(logger, "save failed", errors.New("disk full"))
	if !strings.Contains(buf.String(), "disk full") || !strings.Contains(buf.String(), "save failed") {
		t.Fatalf("unexpected log output: %s", buf.String())
	}
}

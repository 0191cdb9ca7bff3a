package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{"seconds only", 45 * time.Second, "45s"},
		{"minutes and seconds", 5*time.Minute + 10*time.Second, "5m10s"},
		{"exact minutes", 3 * time.Minute, "3m0s"},
		{"hours and minutes", time.Hour + 30*time.Minute, "1h30m"},
		{"rounds sub-second", 990 * time.Millisecond, "1s"},
		{"zero", 0, "0s"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatDuration(tc.duration))
		})
	}
}

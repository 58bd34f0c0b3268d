package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"seconds only", 42 * time.Second, "42 seconds"},
		{"one second", time.Second, "1 second"},
		{"minutes", 5 * time.Minute, "5 minutes"},
		{"hours carry minutes", 90 * time.Minute, "1 hour, 30 minutes"},
		{"days carry all", 49*time.Hour + 5*time.Minute, "2 days, 1 hour, 5 minutes"},
		{"exact hour keeps zero minutes", 2 * time.Hour, "2 hours, 0 minutes"},
		{"negative clamps", -time.Minute, "0 seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatUptime(tt.d))
		})
	}
}

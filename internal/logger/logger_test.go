package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// capture redirects log output to a buffer for the duration of the test.
func capture(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestGatedLevels(t *testing.T) {
	tests := []struct {
		name string
		log  func(string, ...any)
		want string
	}{
		{name: "debug", log: Debug, want: "[DEBUG] cached 3 items\n"},
		{name: "info", log: Info, want: "[INFO] cached 3 items\n"},
		{name: "warn", log: Warn, want: "[WARN] cached 3 items\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name+" verbose", func(t *testing.T) {
			buf := capture(t, true)
			tt.log("cached %d items", 3)
			assert.Equal(t, tt.want, buf.String())
		})
		t.Run(tt.name+" quiet", func(t *testing.T) {
			buf := capture(t, false)
			tt.log("cached %d items", 3)
			assert.Empty(t, buf.String())
		})
	}
}

func TestError_AlwaysPrinted(t *testing.T) {
	buf := capture(t, false)

	Error("reload failed: %s", "boom")
	assert.Equal(t, "[ERROR] reload failed: boom\n", buf.String())
}

func TestSection(t *testing.T) {
	buf := capture(t, true)
	Section("Popular Snapshot")
	assert.Equal(t, "\n=== Popular Snapshot ===\n", buf.String())

	buf = capture(t, false)
	Section("Popular Snapshot")
	assert.Empty(t, buf.String())
}

func TestSince(t *testing.T) {
	buf := capture(t, true)

	Since("stats", time.Now().Add(-time.Millisecond))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[DEBUG] stats took "), out)
}

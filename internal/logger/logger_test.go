package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuffer(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})
	return buf
}

func TestLogger_SilentByDefault(t *testing.T) {
	buf := withBuffer(t)

	Debug("debug %s", "msg")
	Info("info %s", "msg")
	Warn("warn %s", "msg")
	Cmd("uci commit network")

	assert.Empty(t, buf.String())
}

func TestLogger_VerbosePrintsLevels(t *testing.T) {
	buf := withBuffer(t)
	SetVerbose(true)

	Debug("debug %s", "msg")
	Info("info %s", "msg")
	Warn("warn %s", "msg")
	Cmd("uci commit network")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] debug msg")
	assert.Contains(t, out, "[INFO] info msg")
	assert.Contains(t, out, "[WARN] warn msg")
	assert.Contains(t, out, "[CMD] uci commit network")
}

func TestLogger_IsVerbose(t *testing.T) {
	t.Cleanup(func() { SetVerbose(false) })

	SetVerbose(true)
	assert.True(t, IsVerbose())
	SetVerbose(false)
	assert.False(t, IsVerbose())
}

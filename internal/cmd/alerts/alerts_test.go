package alerts

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlertString(t *testing.T) {
	assert.Equal(t, "! tab Misc skipped: no header", Warning("tab Misc skipped", errors.New("no header")).String())
	assert.Equal(t, "✓ wrote order.html", Success("wrote order.html").String())
}

func TestWriterPlain(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Write(Warning("location uptown failed", errors.New("timeout")))
	w.Write(Success("done"))

	assert.Equal(t, "! location uptown failed: timeout\n✓ done\n", buf.String())
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "error", LevelError.String())
	assert.Equal(t, "warning", LevelWarning.String())
	assert.Equal(t, "success", LevelSuccess.String())
	assert.Equal(t, "unknown(9)", Level(9).String())
}

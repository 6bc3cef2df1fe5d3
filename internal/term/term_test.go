package term

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haifuri/organize/internal/config"
)

func TestConfigure(t *testing.T) {
	Configure(config.ColorAlways)
	assert.True(t, Enabled())

	Configure(config.ColorNever)
	assert.False(t, Enabled())
}

func TestConfigure_AutoHonorsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	Configure(config.ColorAuto)
	assert.False(t, Enabled())
}

func TestIsTerminal_Nil(t *testing.T) {
	assert.False(t, IsTerminal(nil))
}

func TestShouldPause(t *testing.T) {
	assert.True(t, ShouldPause(config.PauseAlways))
	assert.False(t, ShouldPause(config.PauseNever))
}

func TestPause(t *testing.T) {
	var out bytes.Buffer
	Pause(strings.NewReader("\n"), &out, "Press Enter to exit...")
	assert.Equal(t, "Press Enter to exit...", out.String())

	out.Reset()
	Pause(strings.NewReader(""), &out, "> ")
	assert.Equal(t, "> ", out.String(), "EOF must not block")
}

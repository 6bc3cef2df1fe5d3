// Package term provides color state, terminal detection and the exit pause.
//
// Color output is owned by fatih/color; [Configure] flips its global NoColor
// switch once during startup so every package that prints through it agrees.
package term

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/haifuri/organize/internal/config"
)

// Configure resolves the color mode and sets the global color switch.
// Call once during startup (from [logging.NewLogger]).
func Configure(mode config.ColorMode) {
	color.NoColor = !resolve(mode)
}

// Enabled reports whether ANSI colors are currently active.
func Enabled() bool { return !color.NoColor }

// resolve determines whether colors should be enabled based on the configured
// mode, TTY detection, and the NO_COLOR env var (https://no-color.org).
func resolve(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default: // ColorAuto
		return IsTerminal(os.Stdout) &&
			os.Getenv("NO_COLOR") == "" &&
			strings.ToLower(os.Getenv("TERM")) != "dumb"
	}
}

// IsTerminal reports whether f is attached to a TTY.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ShouldPause reports whether the run should wait for Enter before exiting.
// In auto mode that is only when a person is at the keyboard.
func ShouldPause(mode config.PauseMode) bool {
	switch mode {
	case config.PauseAlways:
		return true
	case config.PauseNever:
		return false
	default:
		return IsTerminal(os.Stdin) && IsTerminal(os.Stdout)
	}
}

// Pause prints prompt to out and blocks until a line (or EOF) arrives on in.
func Pause(in io.Reader, out io.Writer, prompt string) {
	fmt.Fprint(out, prompt)
	_, _ = bufio.NewReader(in).ReadString('\n')
}

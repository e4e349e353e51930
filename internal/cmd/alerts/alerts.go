// Package alerts prints short status lines, such as a skipped tab or a
// store that failed to load, next to a command's regular output.
package alerts

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/stockmatch/stockmatch/internal/cmd/emoji"
)

// Level is the severity of an alert.
type Level int

const (
	// LevelError marks a failure.
	LevelError Level = iota
	// LevelWarning marks a partial failure the command worked around.
	LevelWarning
	// LevelSuccess marks a completed side effect, such as a written file.
	LevelSuccess
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	case LevelSuccess:
		return "success"
	default:
		return fmt.Sprintf("unknown(%d)", l)
	}
}

// Icon returns the symbol printed before the message.
func (l Level) Icon() string {
	switch l {
	case LevelError:
		return emoji.Stop
	case LevelWarning:
		return emoji.Warning
	default:
		return emoji.Success
	}
}

func (l Level) color() string {
	switch l {
	case LevelError:
		return "\033[31m"
	case LevelWarning:
		return "\033[33m"
	default:
		return "\033[32m"
	}
}

const reset = "\033[0m"

// Alert is one status line.
type Alert struct {
	Level   Level
	Message string
	Err     error
}

// Warning creates a warning alert.
func Warning(message string, err error) Alert {
	return Alert{Level: LevelWarning, Message: message, Err: err}
}

// Success creates a success alert.
func Success(message string) Alert {
	return Alert{Level: LevelSuccess, Message: message}
}

// String renders the alert without color.
func (a Alert) String() string {
	s := a.Level.Icon() + " " + a.Message
	if a.Err != nil {
		s += ": " + a.Err.Error()
	}
	return s
}

// Writer prints alerts, colored when writing to a terminal.
type Writer struct {
	w     io.Writer
	color bool
}

// NewWriter returns a Writer for w. Color is used only when w is a
// terminal and NO_COLOR is unset.
func NewWriter(w io.Writer) *Writer {
	color := false
	if f, ok := w.(*os.File); ok && os.Getenv("NO_COLOR") == "" {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Writer{w: w, color: color}
}

// Write prints a.
func (w *Writer) Write(a Alert) {
	if w.color {
		_, _ = fmt.Fprintln(w.w, a.Level.color()+a.String()+reset)
		return
	}
	_, _ = fmt.Fprintln(w.w, a.String())
}

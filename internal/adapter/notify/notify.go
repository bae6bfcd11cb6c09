// Package notify sends desktop notifications through the platform's
// notification command.
package notify

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"vibematrix/internal/app"
)

// ErrUnsupported is returned on platforms without a known notifier command.
var ErrUnsupported = errors.New("desktop notifications not supported on this platform")

const timeout = 10 * time.Second

// RunFunc executes a command; replaced in tests.
type RunFunc func(ctx context.Context, name string, args ...string) error

// Desktop implements app.Notifier with notify-send (Linux) or osascript
// (macOS).
type Desktop struct {
	goos string
	run  RunFunc
}

var _ app.Notifier = (*Desktop)(nil)

// New creates a Desktop notifier for the running OS.
func New() *Desktop {
	return &Desktop{goos: runtime.GOOS, run: runCommand}
}

// WithRunner replaces the OS and command runner.
func (d *Desktop) WithRunner(goos string, run RunFunc) *Desktop {
	d.goos = goos
	d.run = run
	return d
}

// Notify shows a notification and waits for the command to exit.
func (d *Desktop) Notify(ctx context.Context, title, message string) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	switch d.goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return d.run(ctx, "notify-send", "--expire-time=10000", title, message)
	case "darwin":
		script := fmt.Sprintf("display notification %s with title %s", appleQuote(message), appleQuote(title))
		return d.run(ctx, "osascript", "-e", script)
	default:
		return ErrUnsupported
	}
}

// appleQuote renders s as an AppleScript string literal.
func appleQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

func runCommand(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Discard drops notifications; used when notify.enabled is false.
type Discard struct{}

// Notify does nothing.
func (Discard) Notify(context.Context, string, string) error { return nil }

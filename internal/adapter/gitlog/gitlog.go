// Package gitlog reads the latest commit message of the current repository.
package gitlog

import (
	"context"
	"errors"
	"os/exec"
	"strings"
)

// ErrNotRepository is returned when git fails, typically outside a work tree.
var ErrNotRepository = errors.New("not a git repository")

// OutputFunc runs a command and returns its stdout; replaced in tests.
type OutputFunc func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

// Reader runs git in a fixed directory ("" means the process cwd).
type Reader struct {
	dir    string
	output OutputFunc
}

// New creates a Reader for dir.
func New(dir string) *Reader {
	return &Reader{dir: dir, output: commandOutput}
}

// WithOutput replaces the command runner.
func (r *Reader) WithOutput(fn OutputFunc) *Reader {
	r.output = fn
	return r
}

// LastCommitMessage returns the trimmed body of HEAD's commit message.
func (r *Reader) LastCommitMessage(ctx context.Context) (string, error) {
	out, err := r.output(ctx, r.dir, "git", "log", "-1", "--pretty=%B")
	if err != nil {
		return "", errors.Join(ErrNotRepository, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func commandOutput(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.Output()
}

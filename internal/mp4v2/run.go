package mp4v2

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/backmassage/m4bmerge/internal/media"
)

// Runner executes one external command. Tests replace it to capture argv.
type Runner func(ctx context.Context, name string, args ...string) error

// ExecRunner runs the command and converts a failure into
// *media.ExternalToolError with the combined output attached.
func ExecRunner(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return &media.ExternalToolError{
			Tool:   name,
			Err:    err,
			Stderr: strings.TrimSpace(out.String()),
		}
	}
	return nil
}

func runOrDefault(r Runner) Runner {
	if r == nil {
		return ExecRunner
	}
	return r
}

package ffmpeg

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"

	"github.com/backmassage/m4bmerge/internal/media"
	"github.com/backmassage/m4bmerge/internal/planner"
)

// stderrTailLines bounds the stderr kept on a failure.
const stderrTailLines = 20

// ExecResult holds the outcome of a single ffmpeg invocation.
type ExecResult struct {
	Stderr string
	Err    error
}

// Execute runs args (program name first). When tee is set, stderr is also
// copied to os.Stderr in real time; it is always captured.
func Execute(ctx context.Context, args []string, tee bool) ExecResult {
	if len(args) == 0 {
		return ExecResult{Err: errors.New("empty command")}
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderrBuf bytes.Buffer
	if tee {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}

	err := cmd.Run()
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	return ExecResult{
		Stderr: stderrBuf.String(),
		Err:    err,
	}
}

// Transcoder runs merge requests through ffmpeg.
type Transcoder struct {
	Verbose bool
}

// Transcode blocks until ffmpeg exits. A failure is returned as
// *media.ExternalToolError carrying the tail of stderr.
func (t *Transcoder) Transcode(ctx context.Context, req planner.MergeRequest) error {
	if len(req.Inputs) == 0 {
		return errors.New("merge request has no inputs")
	}
	res := Execute(ctx, Build(req, t.Verbose), t.Verbose)
	if res.Err == nil {
		return nil
	}

	err := res.Err
	if hint := Classify(res.Stderr); hint != "" {
		err = errors.Wrap(err, hint)
	}
	return &media.ExternalToolError{
		Tool:   "ffmpeg",
		Err:    err,
		Stderr: Tail(res.Stderr, stderrTailLines),
	}
}

// Tail returns the last n non-empty lines of s.
func Tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	kept := make([]string, 0, n)
	for i := len(lines) - 1; i >= 0 && len(kept) < n; i-- {
		if strings.TrimSpace(lines[i]) != "" {
			kept = append(kept, lines[i])
		}
	}
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return strings.Join(kept, "\n")
}

// Package check provides system diagnostics (--check mode) and pre-pipeline
// dependency validation (CheckDeps) for ffmpeg, ffprobe and the mp4v2
// utilities.
package check

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/backmassage/m4bmerge/internal/config"
	"github.com/backmassage/m4bmerge/internal/tags"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrFfmpegNotFound   = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound  = errors.New("ffprobe not found on PATH")
	ErrMp4chapsNotFound = errors.New("mp4chaps not found on PATH (needed for chapters in mp4 output)")
	ErrMp4tagsNotFound  = errors.New("mp4tags not found on PATH (needed for tags in mp4 output)")
	ErrMp4artNotFound   = errors.New("mp4art not found on PATH (needed to attach the cover)")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// Tool is an external program the merge may invoke.
type Tool struct {
	Name        string
	VersionArgs []string // nil: presence on PATH is all that is reported
	Required    bool     // needed for every run, regardless of format
}

// Tools lists every external program, in report order.
var Tools = []Tool{
	{Name: "ffmpeg", VersionArgs: []string{"-version"}, Required: true},
	{Name: "ffprobe", VersionArgs: []string{"-version"}, Required: true},
	{Name: "mp4chaps"},
	{Name: "mp4tags"},
	{Name: "mp4art"},
}

// Indirections for tests.
var (
	lookPath   = exec.LookPath
	runVersion = func(ctx context.Context, path string, args ...string) (string, error) {
		out, err := exec.CommandContext(ctx, path, args...).Output()
		return string(out), err
	}
	runSilent = func(ctx context.Context, name string, args ...string) bool {
		return exec.CommandContext(ctx, name, args...).Run() == nil
	}
)

// ToolStatus is the diagnostic result for one Tool.
type ToolStatus struct {
	Tool    Tool
	Path    string
	Version string
	Err     error
}

// Probe resolves every tool concurrently. Results are in Tools order.
func Probe(ctx context.Context) []ToolStatus {
	results := make([]ToolStatus, len(Tools))
	g, ctx := errgroup.WithContext(ctx)
	for i, tool := range Tools {
		i, tool := i, tool
		g.Go(func() error {
			results[i] = probeTool(ctx, tool)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func probeTool(ctx context.Context, tool Tool) ToolStatus {
	st := ToolStatus{Tool: tool}
	path, err := lookPath(tool.Name)
	if err != nil {
		st.Err = err
		return st
	}
	st.Path = path
	if tool.VersionArgs == nil {
		return st
	}
	out, err := runVersion(ctx, path, tool.VersionArgs...)
	if err != nil {
		st.Err = errors.Wrapf(err, "%s %s", tool.Name, strings.Join(tool.VersionArgs, " "))
		return st
	}
	st.Version = firstLine(out)
	return st
}

// RunCheck runs the interactive --check flow: prints availability of every
// tool and tests the AAC encoder. This is informational only; it does not
// stop on failure.
func RunCheck(ctx context.Context, cfg *config.Config, log Logger) {
	log.Info("=== System Check ===")

	for _, st := range Probe(ctx) {
		reportTool(st, log)
	}
	checkAAC(ctx, log)

	if cfg.OutputFile != "" {
		log.Info("Output format: %s", formatLabel(config.EffectiveFormat(cfg.Encoding.Format, cfg.OutputFile)))
	}
}

func reportTool(st ToolStatus, log Logger) {
	switch {
	case st.Path == "" && st.Tool.Required:
		log.Error("%s not found", st.Tool.Name)
	case st.Path == "":
		log.Warn("%s not found (mp4 chapters and tags unavailable)", st.Tool.Name)
	case st.Err != nil:
		log.Warn("%s found but %v", st.Tool.Name, st.Err)
	case st.Version != "":
		log.Success("%s: %s", st.Tool.Name, st.Version)
	default:
		log.Success("%s: %s", st.Tool.Name, st.Path)
	}
}

// checkAAC runs a minimal AAC encode to verify the audio encoder works.
func checkAAC(ctx context.Context, log Logger) {
	log.Info("Testing AAC encoder...")
	if runSilent(ctx, "ffmpeg",
		"-hide_banner", "-nostdin",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-c:a", "aac", "-f", "null", "-",
	) {
		log.Success("AAC encoder works")
	} else {
		log.Error("AAC encoder test failed")
	}
}

// CheckDeps is the pre-pipeline validation: ffmpeg and ffprobe are always
// required. For mp4 output mp4chaps and mp4tags are required too, and
// mp4art when a cover is configured or the primary input directory has
// one. Returns a sentinel error on failure.
func CheckDeps(cfg *config.Config) error {
	if _, err := lookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := lookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}

	if config.EffectiveFormat(cfg.Encoding.Format, cfg.OutputFile) != config.FormatMP4 {
		return nil
	}
	if _, err := lookPath("mp4chaps"); err != nil {
		return ErrMp4chapsNotFound
	}
	if _, err := lookPath("mp4tags"); err != nil {
		return ErrMp4tagsNotFound
	}
	if wantsCover(cfg) {
		if _, err := lookPath("mp4art"); err != nil {
			return ErrMp4artNotFound
		}
	}
	return nil
}

// --- internal helpers ---

func wantsCover(cfg *config.Config) bool {
	if cfg.Tags.Cover != "" {
		return true
	}
	if cfg.InputPath == "" {
		return false
	}
	fi, err := os.Stat(filepath.Join(cfg.InputPath, tags.CoverFileName))
	return err == nil && fi.Mode().IsRegular()
}

func formatLabel(f string) string {
	if f == "" {
		return "unknown (chapters are not exported)"
	}
	return f
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

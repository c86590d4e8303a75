package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/backmassage/m4bmerge/internal/chapters"
	"github.com/backmassage/m4bmerge/internal/collect"
	"github.com/backmassage/m4bmerge/internal/config"
	"github.com/backmassage/m4bmerge/internal/ffmpeg"
	"github.com/backmassage/m4bmerge/internal/media"
	"github.com/backmassage/m4bmerge/internal/planner"
	"github.com/backmassage/m4bmerge/internal/tags"
)

// ErrNoInputFiles is returned when collection yields nothing to merge.
var ErrNoInputFiles = errors.New("no input files found to merge")

// Run is the top-level entry point. It collects the inputs, resolves their
// metadata, merges them into cfg.OutputFile and exports chapters and tags.
// Errors from external tools are returned as *media.ExternalToolError and
// an existing marker file as *media.OverwriteConflictError.
func Run(ctx context.Context, cfg *config.Config, log Logger, deps Deps) (RunStats, error) {
	var stats RunStats

	// --- Collect ---
	files := collect.Collect(cfg.Inputs(), collect.NewExtensionSet(cfg.Extensions()), log)
	stats.Files = len(files)
	if len(files) == 0 {
		return stats, ErrNoInputFiles
	}
	log.Info("Found %d input files", len(files))

	// --- Resolve metadata ---
	metas := make([]media.Metadata, len(files))
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return stats, errors.Wrap(err, "interrupted")
		}
		metas[i] = resolve(ctx, cfg, log, deps.Resolver, i, len(files), f)
		if !metas[i].HasDuration {
			stats.UnknownDuration++
		}
	}

	// --- Tags and chapters ---
	ts := tags.FromConfig(cfg.Tags)
	if tags.AutoCover(ts, cfg.InputPath) {
		log.Info("Using cover %s", ts.Get(tags.Cover))
	}
	tags.Coalesce(ts, metas)

	chs := chapters.Build(files, metas)
	stats.Chapters = len(chs)
	stats.Total = chapters.Total(chs)

	out := media.MergeOutput{
		Path:   cfg.OutputFile,
		Format: config.EffectiveFormat(cfg.Encoding.Format, cfg.OutputFile),
	}
	req := planner.BuildMergeRequest(files, ts, cfg.OutputFile, cfg.Encoding, cfg.Force)
	logTags(cfg, log, ts)

	// --- Dry-run ---
	if cfg.DryRun {
		logDryRun(cfg, log, req, chs, out)
		logSummary(log, out.Path, true, &stats)
		return stats, nil
	}

	// --- Transcode ---
	if err := os.MkdirAll(filepath.Dir(out.Path), 0o755); err != nil {
		return stats, errors.Wrap(err, "create output directory")
	}
	log.Info("Merging %d files into %s", len(files), out.Path)
	log.Debug(cfg.Verbose, "  %s", ffmpeg.FormatCommand(ffmpeg.Build(req, cfg.Verbose)))
	start := time.Now()
	if err := deps.Transcoder.Transcode(ctx, req); err != nil {
		logToolFailure(log, err)
		return stats, err
	}
	stats.Elapsed = time.Since(start)

	// --- Chapters ---
	exporter := &chapters.Exporter{Importer: deps.Importer}
	if err := exporter.Export(ctx, chs, out, cfg.Force); err != nil {
		logToolFailure(log, err)
		return stats, err
	}
	if chapters.Applies(chs, out) {
		log.Success("Imported %d chapters from %s", len(chs), chapters.MarkerPath(out.Path))
	} else if len(chs) > 0 {
		log.Info("Chapters not exported (output format %q is not mp4)", out.Format)
	}

	// --- Tags ---
	if err := deps.Tagger.WriteTags(ctx, out.Path, out.Format, ts); err != nil {
		logToolFailure(log, err)
		return stats, err
	}

	if fi, err := os.Stat(out.Path); err == nil {
		stats.OutputBytes = fi.Size()
	}
	logSummary(log, out.Path, false, &stats)
	return stats, nil
}

// resolve fetches metadata for one file. A resolver failure is not fatal;
// the file is merged with empty metadata.
func resolve(ctx context.Context, cfg *config.Config, log Logger, r MetadataResolver, i, n int, f media.InputFile) media.Metadata {
	base := filepath.Base(f.Path)
	m, err := r.Resolve(ctx, f)
	if err != nil {
		log.Warn("[%d/%d] %s: no metadata (%v)", i+1, n, base, err)
		return media.Metadata{}
	}
	if !m.HasDuration {
		log.Warn("[%d/%d] %s: unknown duration, no chapter; later chapter marks will start early", i+1, n, base)
		return m
	}
	log.Debug(cfg.Verbose, "[%d/%d] %s: %s %q", i+1, n, base, m.Duration.Format(), m.Title)
	return m
}

func logTags(cfg *config.Config, log Logger, ts *tags.TagSet) {
	for _, k := range tags.Keys {
		if v := ts.Get(k); v != "" {
			log.Debug(cfg.Verbose, "  tag %s: %s", k, v)
		}
	}
}

func logDryRun(cfg *config.Config, log Logger, req planner.MergeRequest, chs []media.Chapter, out media.MergeOutput) {
	log.Success("[DRY] Would run: %s", ffmpeg.FormatCommand(ffmpeg.Build(req, cfg.Verbose)))
	if !chapters.Applies(chs, out) {
		log.Info("[DRY] No chapters to export")
		return
	}
	log.Success("[DRY] Would write %s:", chapters.MarkerPath(out.Path))
	for _, line := range chapters.Lines(chs) {
		log.Info("  %s", line)
	}
}

// logToolFailure logs the captured output of a failed external tool.
func logToolFailure(log Logger, err error) {
	var toolErr *media.ExternalToolError
	if !errors.As(err, &toolErr) || toolErr.Stderr == "" {
		return
	}
	log.Error("Last %s output:", toolErr.Tool)
	for _, l := range strings.Split(strings.TrimSpace(toolErr.Stderr), "\n") {
		log.Error("  %s", l)
	}
}

package pipeline

import (
	"context"

	"github.com/backmassage/m4bmerge/internal/chapters"
	"github.com/backmassage/m4bmerge/internal/config"
	"github.com/backmassage/m4bmerge/internal/ffmpeg"
	"github.com/backmassage/m4bmerge/internal/media"
	"github.com/backmassage/m4bmerge/internal/mp4v2"
	"github.com/backmassage/m4bmerge/internal/planner"
	"github.com/backmassage/m4bmerge/internal/probe"
	"github.com/backmassage/m4bmerge/internal/tags"
)

// Logger is the logging surface Run needs; *logging.Logger satisfies it.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(bool, string, ...interface{})
}

// MetadataResolver produces the metadata of one input file.
type MetadataResolver interface {
	Resolve(ctx context.Context, f media.InputFile) (media.Metadata, error)
}

// Transcoder executes a merge request and blocks until it completes.
type Transcoder interface {
	Transcode(ctx context.Context, req planner.MergeRequest) error
}

// TagWriter writes the final tag set into the output file.
type TagWriter interface {
	WriteTags(ctx context.Context, path, format string, ts *tags.TagSet) error
}

// Deps bundles the external collaborators of a run.
type Deps struct {
	Resolver   MetadataResolver
	Transcoder Transcoder
	Importer   chapters.ChapterImporter
	Tagger     TagWriter
}

// DefaultDeps wires the ffprobe, ffmpeg and mp4v2 implementations.
func DefaultDeps(cfg *config.Config) Deps {
	return Deps{
		Resolver:   &probe.Resolver{},
		Transcoder: &ffmpeg.Transcoder{Verbose: cfg.Verbose},
		Importer:   &mp4v2.Importer{},
		Tagger:     &mp4v2.Tagger{},
	}
}

package pipeline

import (
	"time"

	"github.com/backmassage/m4bmerge/internal/display"
	"github.com/backmassage/m4bmerge/internal/media"
)

// RunStats tracks counters and totals for one merge.
type RunStats struct {
	Files           int
	Chapters        int
	UnknownDuration int            // files without a known duration
	Total           media.TimeUnit // end of the last chapter
	OutputBytes     int64
	Elapsed         time.Duration // transcode wall time
}

func logSummary(log Logger, output string, dryRun bool, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %s merged, %s", display.Plural(stats.Files, "file"), display.Plural(stats.Chapters, "chapter"))
	log.Info("Summary report:")
	log.Info("  Total length: %s", stats.Total.Format())
	if stats.UnknownDuration > 0 {
		log.Warn("  Files without duration: %d (chapter marks after them start early)", stats.UnknownDuration)
	}
	if dryRun {
		log.Info("  Output: %s (dry run, not written)", output)
		return
	}
	log.Success("  Output: %s (%s) in %ds", output, display.FormatBytes(stats.OutputBytes), int(stats.Elapsed.Seconds()))
}

package chapters

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/backmassage/m4bmerge/internal/config"
	"github.com/backmassage/m4bmerge/internal/media"
)

// MarkerSuffix is appended to the output stem to name the marker file.
const MarkerSuffix = ".chapters.txt"

// ChapterImporter embeds a marker file into the media file at path.
type ChapterImporter interface {
	Import(ctx context.Context, path string) error
}

// MarkerPath returns <dir>/<stem>.chapters.txt for output, where stem is
// the base name without its final extension.
func MarkerPath(output string) string {
	base := filepath.Base(output)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(output), stem+MarkerSuffix)
}

// Lines renders one "HH:MM:SS.mmm name" line per chapter.
func Lines(chs []media.Chapter) []string {
	lines := make([]string, len(chs))
	for i, c := range chs {
		lines[i] = c.Start.Format() + " " + c.Name
	}
	return lines
}

// Serialize joins Lines with single newlines, without a trailing one.
func Serialize(chs []media.Chapter) string {
	return strings.Join(Lines(chs), "\n")
}

// Applies reports whether chapters would be exported for out.
func Applies(chs []media.Chapter, out media.MergeOutput) bool {
	return len(chs) > 0 && out.Format == config.FormatMP4
}

// Exporter writes the marker file and hands it to an importer.
type Exporter struct {
	Importer ChapterImporter
}

// Export writes the marker file for out and imports it. It does nothing
// when chs is empty or the output is not an mp4 container. An existing
// marker file is only replaced when force is set; otherwise an
// *media.OverwriteConflictError is returned and nothing is written.
func (e *Exporter) Export(ctx context.Context, chs []media.Chapter, out media.MergeOutput, force bool) error {
	if !Applies(chs, out) {
		return nil
	}

	marker := MarkerPath(out.Path)
	if _, err := os.Lstat(marker); err == nil {
		if !force {
			return &media.OverwriteConflictError{Path: marker}
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "stat chapters file %s", marker)
	}

	if err := os.WriteFile(marker, []byte(Serialize(chs)), 0o644); err != nil {
		return errors.Wrapf(err, "write chapters file %s", marker)
	}

	if e.Importer == nil {
		return nil
	}
	if err := e.Importer.Import(ctx, out.Path); err != nil {
		if media.IsExternalToolFailure(err) {
			return err
		}
		return &media.ExternalToolError{Tool: "mp4chaps", Err: err}
	}
	return nil
}

package mp4v2

import "context"

// ChapsTool is the chapter import utility.
const ChapsTool = "mp4chaps"

// Importer imports <stem>.chapters.txt into the file it belongs to.
type Importer struct {
	Run Runner
}

// Import runs "mp4chaps -i path". mp4chaps derives the marker file name
// from path itself.
func (im *Importer) Import(ctx context.Context, path string) error {
	return runOrDefault(im.Run)(ctx, ChapsTool, "-i", path)
}

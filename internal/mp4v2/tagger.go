package mp4v2

import (
	"context"

	"github.com/backmassage/m4bmerge/internal/config"
	"github.com/backmassage/m4bmerge/internal/tags"
)

const (
	TagsTool = "mp4tags"
	ArtTool  = "mp4art"
)

// tagFlags maps tag keys onto mp4tags options, in argument order.
var tagFlags = []struct {
	key  tags.Key
	flag string
}{
	{tags.Name, "-s"},
	{tags.Album, "-A"},
	{tags.Artist, "-a"},
	{tags.AlbumArtist, "-R"},
	{tags.Year, "-y"},
	{tags.Genre, "-g"},
	{tags.Writer, "-w"},
	{tags.Description, "-m"},
	{tags.Comment, "-c"},
}

// Tagger writes a tag set into an mp4 container.
type Tagger struct {
	Run Runner
}

// WriteTags writes ts to path with mp4tags and attaches the cover with
// mp4art. Formats other than mp4 are left alone; ffmpeg already embedded
// their metadata during the merge.
func (tg *Tagger) WriteTags(ctx context.Context, path, format string, ts *tags.TagSet) error {
	if format != config.FormatMP4 {
		return nil
	}
	run := runOrDefault(tg.Run)

	if args := TagArgs(path, ts); args != nil {
		if err := run(ctx, TagsTool, args...); err != nil {
			return err
		}
	}
	if cover := ts.Get(tags.Cover); cover != "" {
		if err := run(ctx, ArtTool, "--add", cover, path); err != nil {
			return err
		}
	}
	return nil
}

// TagArgs returns the mp4tags arguments for ts, or nil when ts carries no
// textual tag.
func TagArgs(path string, ts *tags.TagSet) []string {
	var args []string
	for _, tf := range tagFlags {
		if v := ts.Get(tf.key); v != "" {
			args = append(args, tf.flag, v)
		}
	}
	if args == nil {
		return nil
	}
	// Without an explicit album, mp4 players group by the name.
	if !ts.Has(tags.Album) && ts.Has(tags.Name) {
		args = append(args, "-A", ts.Get(tags.Name))
	}
	return append(args, path)
}

package planner

import (
	"github.com/backmassage/m4bmerge/internal/config"
	"github.com/backmassage/m4bmerge/internal/media"
	"github.com/backmassage/m4bmerge/internal/tags"
)

// BuildMergeRequest describes the concatenation of files into output.
// Inputs keep collection order; enc is copied as configured; Overwrite
// mirrors force.
func BuildMergeRequest(files []media.InputFile, ts *tags.TagSet, output string, enc config.Encoding, force bool) MergeRequest {
	inputs := make([]string, len(files))
	for i, f := range files {
		inputs[i] = f.Path
	}
	return MergeRequest{
		Inputs: inputs,
		Concat: Concat{
			StreamCount: len(files),
			Kind:        KindAudio,
		},
		Encoding:  enc,
		Metadata:  BuildMetadata(ts),
		Output:    output,
		Overwrite: force,
	}
}

// BuildMetadata maps the tag set onto ffmpeg metadata keys. The album
// falls back to the name. The cover is never included; images are
// attached by the tag writer.
func BuildMetadata(ts *tags.TagSet) []MetadataPair {
	album := ts.Get(tags.Album)
	if album == "" {
		album = ts.Get(tags.Name)
	}

	candidates := []MetadataPair{
		{"title", ts.Get(tags.Name)},
		{"album", album},
		{"artist", ts.Get(tags.Artist)},
		{"album_artist", ts.Get(tags.AlbumArtist)},
		{"date", ts.Get(tags.Year)},
		{"genre", ts.Get(tags.Genre)},
		{"composer", ts.Get(tags.Writer)},
		{"description", ts.Get(tags.Description)},
		{"comment", ts.Get(tags.Comment)},
	}

	var out []MetadataPair
	for _, p := range candidates {
		if p.Value != "" {
			out = append(out, p)
		}
	}
	return out
}

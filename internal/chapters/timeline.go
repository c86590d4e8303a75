package chapters

import (
	"strconv"

	"github.com/backmassage/m4bmerge/internal/media"
)

// Build returns one chapter per file whose metadata has a known duration.
// metas[i] belongs to files[i].
//
// A file without a duration yields no chapter and does not move the
// cursor, so every later chapter starts early by that file's length.
// Callers should warn about such files.
func Build(files []media.InputFile, metas []media.Metadata) []media.Chapter {
	var (
		out    []media.Chapter
		cursor media.TimeUnit
	)
	for i := range files {
		if i >= len(metas) || !metas[i].HasDuration {
			continue
		}
		m := metas[i]
		name := m.Title
		if name == "" {
			name = strconv.Itoa(i + 1)
		}
		end := cursor.Add(m.Duration)
		out = append(out, media.Chapter{Start: cursor, End: end, Name: name})
		cursor = end
	}
	return out
}

// Total returns the end of the last chapter, or zero for none.
func Total(chs []media.Chapter) media.TimeUnit {
	if len(chs) == 0 {
		return 0
	}
	return chs[len(chs)-1].End
}

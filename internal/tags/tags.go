// Package tags derives the tag set written to the merged output.
//
// Values arrive from three places in decreasing priority: options given on
// the command line, a cover.jpg next to the primary input, and the
// metadata of the collected files. Every key is set at most once, so the
// first source to provide a value wins.
package tags

import (
	"os"
	"path/filepath"

	"github.com/backmassage/m4bmerge/internal/config"
	"github.com/backmassage/m4bmerge/internal/media"
)

// Key names one tag in the fixed enumeration.
type Key string

const (
	Name        Key = "name"
	Album       Key = "album"
	Artist      Key = "artist"
	AlbumArtist Key = "albumartist"
	Year        Key = "year"
	Genre       Key = "genre"
	Writer      Key = "writer"
	Description Key = "description"
	Comment     Key = "comment"
	Cover       Key = "cover"
)

// Keys lists every key in a stable order.
var Keys = []Key{Name, Album, Artist, AlbumArtist, Year, Genre, Writer, Description, Comment, Cover}

// CoverFileName is the image looked up in the primary input directory.
const CoverFileName = "cover.jpg"

// TagSet holds at most one value per Key. The zero value is empty and
// ready to use.
type TagSet struct {
	values map[Key]string
}

// NewTagSet returns a TagSet seeded with the non-empty values of seed.
func NewTagSet(seed map[Key]string) *TagSet {
	ts := &TagSet{values: make(map[Key]string, len(Keys))}
	for k, v := range seed {
		ts.SetIfUnset(k, v)
	}
	return ts
}

// FromConfig seeds a TagSet from the tag options of cfg.
func FromConfig(t config.Tags) *TagSet {
	return NewTagSet(map[Key]string{
		Name:        t.Name,
		Album:       t.Album,
		Artist:      t.Artist,
		AlbumArtist: t.AlbumArtist,
		Year:        t.Year,
		Genre:       t.Genre,
		Writer:      t.Writer,
		Description: t.Description,
		Comment:     t.Comment,
		Cover:       t.Cover,
	})
}

// SetIfUnset stores v under k unless k already has a value or v is empty.
// It reports whether the value was stored.
func (ts *TagSet) SetIfUnset(k Key, v string) bool {
	if v == "" {
		return false
	}
	if ts.values == nil {
		ts.values = make(map[Key]string, len(Keys))
	}
	if _, ok := ts.values[k]; ok {
		return false
	}
	ts.values[k] = v
	return true
}

// Get returns the value for k, or "" when unset.
func (ts *TagSet) Get(k Key) string {
	if ts == nil {
		return ""
	}
	return ts.values[k]
}

// Has reports whether k is set.
func (ts *TagSet) Has(k Key) bool {
	if ts == nil {
		return false
	}
	_, ok := ts.values[k]
	return ok
}

// Len returns the number of set keys.
func (ts *TagSet) Len() int {
	if ts == nil {
		return 0
	}
	return len(ts.values)
}

// AutoCover sets the cover to <primary>/cover.jpg when primary is a
// directory containing that regular file and no cover is configured yet.
func AutoCover(ts *TagSet, primary string) bool {
	if ts.Has(Cover) {
		return false
	}
	if fi, err := os.Stat(primary); err != nil || !fi.IsDir() {
		return false
	}
	cover := filepath.Join(primary, CoverFileName)
	fi, err := os.Stat(cover)
	if err != nil || !fi.Mode().IsRegular() {
		return false
	}
	return ts.SetIfUnset(Cover, cover)
}

// Coalesce fills unset keys from metas, visited in collection order.
//
// The writer is taken from the first file that has one. Only when no file
// carries a writer does the first non-empty album artist stand in for it.
func Coalesce(ts *TagSet, metas []media.Metadata) {
	var writerFallback string
	for _, m := range metas {
		ts.SetIfUnset(Name, m.Album)
		ts.SetIfUnset(Album, m.Album)
		ts.SetIfUnset(Artist, m.Artist)
		ts.SetIfUnset(AlbumArtist, m.AlbumArtist)
		ts.SetIfUnset(Year, m.Date)
		ts.SetIfUnset(Genre, m.Genre)
		ts.SetIfUnset(Writer, m.Writer)
		if writerFallback == "" {
			writerFallback = m.AlbumArtist
		}
	}
	ts.SetIfUnset(Writer, writerFallback)
}

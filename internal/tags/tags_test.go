package tags

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/backmassage/m4bmerge/internal/config"
	"github.com/backmassage/m4bmerge/internal/media"
)

func TestCoalesce_WriterPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		metas []media.Metadata
		want  string
	}{
		{
			name: "later writer beats earlier album artist",
			metas: []media.Metadata{
				{AlbumArtist: "X"},
				{Writer: "Y", AlbumArtist: "Z"},
			},
			want: "Y",
		},
		{
			name: "first album artist when no writer",
			metas: []media.Metadata{
				{AlbumArtist: "X"},
				{AlbumArtist: "Z"},
			},
			want: "X",
		},
		{
			name: "first writer wins",
			metas: []media.Metadata{
				{Writer: "W1"},
				{Writer: "W2"},
			},
			want: "W1",
		},
		{
			name: "album artist found after empty files",
			metas: []media.Metadata{
				{},
				{},
				{AlbumArtist: "Late"},
			},
			want: "Late",
		},
		{
			name:  "nothing available",
			metas: []media.Metadata{{}, {Title: "t"}},
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := NewTagSet(nil)
			Coalesce(ts, tt.metas)
			if got := ts.Get(Writer); got != tt.want {
				t.Errorf("writer = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCoalesce_FirstNonEmptyWins(t *testing.T) {
	metas := []media.Metadata{
		{Title: "Intro", Artist: "", Date: "2001"},
		{Album: "Book", Artist: "Reader", AlbumArtist: "Author", Date: "2002", Genre: "Audiobook"},
		{Album: "Other", Artist: "Someone", Genre: "Drama"},
	}
	ts := NewTagSet(nil)
	Coalesce(ts, metas)

	want := map[Key]string{
		Name:        "Book",
		Album:       "Book",
		Artist:      "Reader",
		AlbumArtist: "Author",
		Year:        "2001",
		Genre:       "Audiobook",
		Writer:      "Author",
	}
	for k, v := range want {
		if got := ts.Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
	if ts.Has(Cover) || ts.Has(Description) || ts.Has(Comment) {
		t.Error("coalescing must not touch cover, description or comment")
	}
}

func TestCoalesce_ConfiguredValuesWin(t *testing.T) {
	ts := FromConfig(config.Tags{Name: "My Book", Writer: "Me", Genre: ""})
	Coalesce(ts, []media.Metadata{{Album: "Tagged", Writer: "Them", Genre: "Fiction"}})

	if got := ts.Get(Name); got != "My Book" {
		t.Errorf("name = %q, want configured value", got)
	}
	if got := ts.Get(Writer); got != "Me" {
		t.Errorf("writer = %q, want configured value", got)
	}
	if got := ts.Get(Genre); got != "Fiction" {
		t.Errorf("genre = %q, want value from metadata (empty option is unset)", got)
	}
	if got := ts.Get(Album); got != "Tagged" {
		t.Errorf("album = %q", got)
	}
}

func TestCoalesce_Idempotent(t *testing.T) {
	metas := []media.Metadata{
		{AlbumArtist: "X", Date: "1999"},
		{Album: "A", Writer: "Y", Genre: "G"},
	}
	a := NewTagSet(nil)
	Coalesce(a, metas)
	b := NewTagSet(nil)
	Coalesce(b, metas)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("coalescing differs between runs: %v vs %v", a.values, b.values)
	}

	before := a.Len()
	Coalesce(a, metas)
	if a.Len() != before {
		t.Errorf("second pass changed key count: %d -> %d", before, a.Len())
	}
}

func TestSetIfUnset(t *testing.T) {
	var ts TagSet
	if ts.SetIfUnset(Genre, "") {
		t.Error("empty value stored")
	}
	if !ts.SetIfUnset(Genre, "a") {
		t.Error("first value not stored")
	}
	if ts.SetIfUnset(Genre, "b") {
		t.Error("second value overwrote the first")
	}
	if got := ts.Get(Genre); got != "a" {
		t.Errorf("genre = %q, want a", got)
	}
}

func TestNilTagSetReads(t *testing.T) {
	var ts *TagSet
	if ts.Get(Name) != "" || ts.Has(Name) || ts.Len() != 0 {
		t.Error("nil TagSet should read as empty")
	}
}

func TestAutoCover(t *testing.T) {
	t.Run("directory with cover", func(t *testing.T) {
		dir := t.TempDir()
		cover := filepath.Join(dir, CoverFileName)
		if err := os.WriteFile(cover, []byte("jpg"), 0o644); err != nil {
			t.Fatal(err)
		}
		ts := NewTagSet(nil)
		if !AutoCover(ts, dir) {
			t.Fatal("cover not detected")
		}
		if got := ts.Get(Cover); got != cover {
			t.Errorf("cover = %q, want %q", got, cover)
		}
	})

	t.Run("configured cover wins", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, CoverFileName), []byte("jpg"), 0o644); err != nil {
			t.Fatal(err)
		}
		ts := NewTagSet(map[Key]string{Cover: "/elsewhere/art.png"})
		if AutoCover(ts, dir) {
			t.Error("configured cover replaced")
		}
		if got := ts.Get(Cover); got != "/elsewhere/art.png" {
			t.Errorf("cover = %q", got)
		}
	})

	t.Run("no cover file", func(t *testing.T) {
		ts := NewTagSet(nil)
		if AutoCover(ts, t.TempDir()) {
			t.Error("cover set without a file")
		}
	})

	t.Run("cover is a directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.Mkdir(filepath.Join(dir, CoverFileName), 0o755); err != nil {
			t.Fatal(err)
		}
		ts := NewTagSet(nil)
		if AutoCover(ts, dir) {
			t.Error("directory accepted as cover")
		}
	})

	t.Run("primary is a file", func(t *testing.T) {
		dir := t.TempDir()
		f := filepath.Join(dir, "a.mp3")
		if err := os.WriteFile(f, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, CoverFileName), []byte("jpg"), 0o644); err != nil {
			t.Fatal(err)
		}
		ts := NewTagSet(nil)
		if AutoCover(ts, f) {
			t.Error("cover looked up next to a file argument")
		}
	})
}

package chapters

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/backmassage/m4bmerge/internal/media"
)

func files(n int) []media.InputFile {
	out := make([]media.InputFile, n)
	for i := range out {
		out[i] = media.InputFile{Path: filepath.Join("/in", string(rune('a'+i))+".mp3"), Ext: "mp3", Readable: true}
	}
	return out
}

func dur(ms int64, title string) media.Metadata {
	return media.Metadata{Title: title}.WithDuration(media.Millis(ms))
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name  string
		metas []media.Metadata
		want  []media.Chapter
	}{
		{
			name:  "titles and index fallback",
			metas: []media.Metadata{dur(60000, "Intro"), dur(90500, "")},
			want: []media.Chapter{
				{Start: 0, End: media.Millis(60000), Name: "Intro"},
				{Start: media.Millis(60000), End: media.Millis(150500), Name: "2"},
			},
		},
		{
			name:  "unknown duration does not advance",
			metas: []media.Metadata{dur(10000, "A"), {Title: "B"}, dur(5000, "")},
			want: []media.Chapter{
				{Start: 0, End: media.Millis(10000), Name: "A"},
				{Start: media.Millis(10000), End: media.Millis(15000), Name: "3"},
			},
		},
		{
			name:  "zero length file",
			metas: []media.Metadata{dur(0, "Empty"), dur(1000, "Next")},
			want: []media.Chapter{
				{Start: 0, End: 0, Name: "Empty"},
				{Start: 0, End: media.Millis(1000), Name: "Next"},
			},
		},
		{
			name:  "no durations",
			metas: []media.Metadata{{}, {}},
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(files(len(tt.metas)), tt.metas)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Build() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBuild_Contiguous(t *testing.T) {
	metas := []media.Metadata{dur(1234, ""), dur(1, ""), {}, dur(3_600_000, ""), dur(999, "")}
	chs := Build(files(len(metas)), metas)
	if len(chs) > len(metas) {
		t.Fatalf("%d chapters for %d files", len(chs), len(metas))
	}
	var prev media.TimeUnit
	for i, c := range chs {
		if c.Start != prev {
			t.Errorf("chapter %d starts at %v, want %v", i, c.Start, prev)
		}
		if c.End < c.Start {
			t.Errorf("chapter %d ends before it starts", i)
		}
		prev = c.End
	}
	if Total(chs) != media.Millis(1234+1+3_600_000+999) {
		t.Errorf("Total = %v", Total(chs))
	}
}

func TestMarkerPath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/out/book.m4b", "/out/book.chapters.txt"},
		{"/out/my.book.m4b", "/out/my.book.chapters.txt"},
		{"/out/noext", "/out/noext.chapters.txt"},
		{"rel/book.mp4", "rel/book.chapters.txt"},
	}
	for _, tt := range tests {
		if got := MarkerPath(tt.in); got != tt.want {
			t.Errorf("MarkerPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSerialize(t *testing.T) {
	chs := []media.Chapter{
		{Start: 0, End: media.Millis(60000), Name: "Intro"},
		{Start: media.Millis(60000), End: media.Millis(150500), Name: "2"},
	}
	want := "00:00:00.000 Intro\n00:01:00.000 2"
	if got := Serialize(chs); got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
	if got := Serialize(nil); got != "" {
		t.Errorf("Serialize(nil) = %q", got)
	}
}

type fakeImporter struct {
	calls []string
	err   error
}

func (f *fakeImporter) Import(_ context.Context, path string) error {
	f.calls = append(f.calls, path)
	return f.err
}

var twoChapters = []media.Chapter{
	{Start: 0, End: media.Millis(60000), Name: "Intro"},
	{Start: media.Millis(60000), End: media.Millis(150500), Name: "2"},
}

func TestExport_WritesAndImports(t *testing.T) {
	dir := t.TempDir()
	out := media.MergeOutput{Path: filepath.Join(dir, "book.m4b"), Format: "mp4"}
	imp := &fakeImporter{}

	if err := (&Exporter{Importer: imp}).Export(context.Background(), twoChapters, out, false); err != nil {
		t.Fatalf("Export: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "book.chapters.txt"))
	if err != nil {
		t.Fatalf("marker not written: %v", err)
	}
	if got, want := string(data), "00:00:00.000 Intro\n00:01:00.000 2"; got != want {
		t.Errorf("marker = %q, want %q", got, want)
	}
	if !reflect.DeepEqual(imp.calls, []string{out.Path}) {
		t.Errorf("importer calls = %v", imp.calls)
	}
}

func TestExport_ExistingMarker(t *testing.T) {
	dir := t.TempDir()
	out := media.MergeOutput{Path: filepath.Join(dir, "book.m4b"), Format: "mp4"}
	marker := MarkerPath(out.Path)
	if err := os.WriteFile(marker, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("without force", func(t *testing.T) {
		imp := &fakeImporter{}
		err := (&Exporter{Importer: imp}).Export(context.Background(), twoChapters, out, false)
		if !media.IsOverwriteConflict(err) {
			t.Fatalf("err = %v, want overwrite conflict", err)
		}
		if data, _ := os.ReadFile(marker); string(data) != "old" {
			t.Errorf("marker rewritten: %q", data)
		}
		if len(imp.calls) != 0 {
			t.Error("importer invoked despite conflict")
		}
	})

	t.Run("with force", func(t *testing.T) {
		imp := &fakeImporter{}
		if err := (&Exporter{Importer: imp}).Export(context.Background(), twoChapters, out, true); err != nil {
			t.Fatalf("Export: %v", err)
		}
		if data, _ := os.ReadFile(marker); string(data) == "old" {
			t.Error("marker not replaced")
		}
		if len(imp.calls) != 1 {
			t.Errorf("importer calls = %d, want 1", len(imp.calls))
		}
	})
}

func TestExport_NoOp(t *testing.T) {
	tests := []struct {
		name string
		chs  []media.Chapter
		fmt  string
	}{
		{"no chapters", nil, "mp4"},
		{"other format", twoChapters, "mp3"},
		{"unknown format", twoChapters, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			out := media.MergeOutput{Path: filepath.Join(dir, "book.out"), Format: tt.fmt}
			imp := &fakeImporter{}
			if err := (&Exporter{Importer: imp}).Export(context.Background(), tt.chs, out, false); err != nil {
				t.Fatalf("Export: %v", err)
			}
			if _, err := os.Stat(MarkerPath(out.Path)); !os.IsNotExist(err) {
				t.Errorf("marker file created (stat err %v)", err)
			}
			if len(imp.calls) != 0 {
				t.Error("importer invoked")
			}
		})
	}
}

func TestExport_ImportFailure(t *testing.T) {
	dir := t.TempDir()
	out := media.MergeOutput{Path: filepath.Join(dir, "book.m4b"), Format: "mp4"}
	imp := &fakeImporter{err: errors.New("exit status 1")}

	err := (&Exporter{Importer: imp}).Export(context.Background(), twoChapters, out, false)
	if !media.IsExternalToolFailure(err) {
		t.Fatalf("err = %v, want external tool failure", err)
	}
	if _, statErr := os.Stat(MarkerPath(out.Path)); statErr != nil {
		t.Errorf("marker should be left in place: %v", statErr)
	}
}

// Package collect resolves command-line paths into the ordered list of files
// to merge.
//
// Directories are walked depth-first in lexical order; a subdirectory is
// drained completely before the walk moves on to its next sibling. Files
// named directly on the command line are taken as-is, without extension
// filtering.
package collect

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/backmassage/m4bmerge/internal/media"
)

// Warner receives non-fatal collection problems.
type Warner interface {
	Warn(format string, args ...interface{})
}

// ExtensionSet is an exact, case-sensitive extension allow-list (no dots).
type ExtensionSet map[string]struct{}

// NewExtensionSet builds a set from a list such as config.ParseExtensions returns.
func NewExtensionSet(exts []string) ExtensionSet {
	s := make(ExtensionSet, len(exts))
	for _, e := range exts {
		s[e] = struct{}{}
	}
	return s
}

// Allows reports whether ext is in the set.
func (s ExtensionSet) Allows(ext string) bool {
	_, ok := s[ext]
	return ok
}

// Collect expands paths in order. paths[0] is the primary input. Paths that
// do not exist or cannot be read are reported to log and skipped. Repeated
// paths are not deduplicated.
func Collect(paths []string, exts ExtensionSet, log Warner) []media.InputFile {
	var files []media.InputFile
	for _, p := range paths {
		got, err := collectPath(p, exts.Allows)
		if err != nil {
			log.Warn("%v", err)
			continue
		}
		files = append(files, got...)
	}
	return files
}

func collectPath(path string, keep func(ext string) bool) ([]media.InputFile, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &media.UnreadableInputError{Path: path}
		}
		return nil, &media.UnreadableInputError{Path: path, Err: err}
	}
	if err := checkReadable(path); err != nil {
		return nil, &media.UnreadableInputError{Path: path, Err: err}
	}

	real, err := realPath(path)
	if err != nil {
		return nil, &media.UnreadableInputError{Path: path, Err: err}
	}

	if fi.IsDir() {
		return walk(real, keep), nil
	}
	return []media.InputFile{newInputFile(real)}, nil
}

// walk returns the files below dir whose extension passes keep. Symlinks are
// neither returned nor followed; unreadable entries are skipped silently.
func walk(dir string, keep func(ext string) bool) []media.InputFile {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var files []media.InputFile
	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		switch {
		case e.Type()&fs.ModeSymlink != 0:
			continue
		case e.IsDir():
			files = append(files, walk(path, keep)...)
		case !e.Type().IsRegular():
			continue
		case !keep(Ext(e.Name())):
			continue
		case checkReadable(path) != nil:
			continue
		default:
			files = append(files, newInputFile(path))
		}
	}
	return files
}

// Ext returns the text after the last dot of name, or "" when there is none.
func Ext(name string) string {
	return strings.TrimPrefix(filepath.Ext(name), ".")
}

func newInputFile(path string) media.InputFile {
	return media.InputFile{Path: path, Ext: Ext(path), Readable: true}
}

func realPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(err, "resolve absolute path")
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Wrap(err, "resolve symlinks")
	}
	return real, nil
}

// checkReadable opens and closes path. It works for files and directories.
func checkReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}

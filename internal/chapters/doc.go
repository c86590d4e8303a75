// Package chapters computes the chapter timeline of a merged file and
// exports it as an mp4v2 chapter marker file.
//
// Each input with a known duration becomes one chapter starting where the
// previous known input ended. The marker file sits next to the output as
// <stem>.chapters.txt, one "HH:MM:SS.mmm name" line per chapter, and is
// imported by mp4chaps, which looks the file up by that exact name.
package chapters

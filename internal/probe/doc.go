// Package probe inspects audio files with ffprobe and maps the result onto
// media.Metadata. One JSON call per file yields both the descriptive tags
// and the duration.
//
// Tag keys differ by container (ID3 "TALB" surfaces as "album", MP4 "©wrt"
// as "composer", Vorbis comments arrive upper-case), so lookups are
// case-insensitive and a few keys have fallbacks: date falls back to year,
// writer to composer. Format-level tags win over stream-level tags.
package probe

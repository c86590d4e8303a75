package probe

import (
	"strings"

	"github.com/backmassage/m4bmerge/internal/media"
)

// FormatInfo holds container-level metadata from ffprobe's format section.
type FormatInfo struct {
	Filename   string
	FormatName string
	Duration   string // Seconds as reported, e.g. "1437.123000". Empty when unknown.
	BitRate    int64
	Tags       map[string]string
}

// AudioStream holds the parsed properties of a single audio stream.
type AudioStream struct {
	Index      int
	Codec      string
	Channels   int
	SampleRate int
	Duration   string
	Tags       map[string]string
}

// ProbeResult is the parsed output of a single ffprobe JSON call.
type ProbeResult struct {
	Format       FormatInfo
	AudioStreams []AudioStream
	HasCoverArt  bool // An attached picture stream is present.
}

// Duration returns the container duration, falling back to the first audio
// stream's duration. ok is false when neither is usable.
func (p *ProbeResult) Duration() (media.TimeUnit, bool) {
	if d, ok := media.ParseSeconds(p.Format.Duration); ok {
		return d, true
	}
	if len(p.AudioStreams) > 0 {
		return media.ParseSeconds(p.AudioStreams[0].Duration)
	}
	return 0, false
}

// Tag returns the first non-empty value for any of keys, compared
// case-insensitively, searching format tags before audio stream tags.
func (p *ProbeResult) Tag(keys ...string) string {
	sources := []map[string]string{p.Format.Tags}
	for _, s := range p.AudioStreams {
		sources = append(sources, s.Tags)
	}
	for _, key := range keys {
		for _, tags := range sources {
			if v := lookupFold(tags, key); v != "" {
				return v
			}
		}
	}
	return ""
}

// Metadata maps the probe result onto media.Metadata.
func (p *ProbeResult) Metadata() media.Metadata {
	m := media.Metadata{
		Album:       p.Tag("album"),
		Title:       p.Tag("title"),
		Artist:      p.Tag("artist"),
		AlbumArtist: p.Tag("album_artist", "albumartist", "album artist"),
		Date:        p.Tag("date", "year"),
		Genre:       p.Tag("genre"),
		Writer:      p.Tag("writer", "composer"),
	}
	if d, ok := p.Duration(); ok {
		m = m.WithDuration(d)
	}
	return m
}

func lookupFold(tags map[string]string, key string) string {
	if v := strings.TrimSpace(tags[key]); v != "" {
		return v
	}
	for k, v := range tags {
		if strings.EqualFold(k, key) {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

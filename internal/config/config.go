// Package config holds runtime configuration: defaults, CLI flag parsing, and
// validation. Encoding options are optional; an unset option is omitted from
// the ffmpeg command so ffmpeg applies its own default.
package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// DefaultIncludeExtensions is the extension allow-list used for directory inputs.
const DefaultIncludeExtensions = "m4b,mp3,aac,mp4,flac"

// FormatMP4 is the only container format that supports chapter import.
const FormatMP4 = "mp4"

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Encoding holds the audio encoding parameters passed through to ffmpeg.
// Zero values mean "not configured".
type Encoding struct {
	Bitrate    string // Normalized to "<n>k" by Validate.
	SampleRate int
	Channels   int
	Codec      string
	Format     string // ffmpeg muxer name; m4b/m4a/ipod normalize to "mp4".
}

// Tags holds tag values given on the command line. Configured values always
// win over values coalesced from input metadata.
type Tags struct {
	Name        string
	Album       string
	Artist      string
	AlbumArtist string
	Year        string
	Genre       string
	Writer      string
	Description string
	Comment     string
	Cover       string
}

// Config holds all runtime settings. It is populated by [DefaultConfig] and
// then mutated by [ParseFlags] before being passed (by pointer) to packages
// that need it.
type Config struct {
	// Inputs (set from positional args).
	InputPath  string   // Primary input: file or directory.
	MoreInputs []string // Additional inputs, merged after the primary one.

	OutputFile        string
	IncludeExtensions string // Comma-separated allow-list.

	Encoding Encoding
	Tags     Tags

	// Behavior flags.
	Force  bool // Overwrite output and chapter marker files.
	DryRun bool

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
	CheckOnly bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with all defaults applied. Used as the base
// before [ParseFlags] applies CLI overrides.
func DefaultConfig() Config {
	return Config{
		IncludeExtensions: DefaultIncludeExtensions,
		ColorMode:         ColorAuto,
	}
}

// Inputs returns the primary input followed by the additional inputs.
func (c *Config) Inputs() []string {
	if c.InputPath == "" {
		return append([]string(nil), c.MoreInputs...)
	}
	return append([]string{c.InputPath}, c.MoreInputs...)
}

// Extensions parses IncludeExtensions into a list.
func (c *Config) Extensions() []string {
	return ParseExtensions(c.IncludeExtensions)
}

// ParseExtensions splits a comma-separated extension list. Whitespace is
// trimmed and empty entries are dropped; case is preserved.
func ParseExtensions(list string) []string {
	var out []string
	for _, e := range strings.Split(list, ",") {
		e = strings.TrimSpace(e)
		if e != "" {
			out = append(out, e)
		}
	}
	return out
}

// Validate checks enum fields and normalizes encoding options. When not in
// CheckOnly mode it also requires an input and an output file.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.Encoding.Bitrate != "" {
		b, err := normalizeAudioBitrate(c.Encoding.Bitrate)
		if err != nil {
			return err
		}
		c.Encoding.Bitrate = b
	}
	if c.Encoding.SampleRate < 0 {
		return errors.Errorf("invalid audio sample rate %d", c.Encoding.SampleRate)
	}
	if c.Encoding.Channels < 0 {
		return errors.Errorf("invalid audio channel count %d", c.Encoding.Channels)
	}
	c.Encoding.Format = NormalizeFormat(c.Encoding.Format)

	if c.CheckOnly {
		return nil
	}
	if c.InputPath == "" {
		return errors.New("need at least one input file or directory")
	}
	if c.OutputFile == "" {
		return errors.New("--output-file is required")
	}
	if len(c.Extensions()) == 0 {
		return errors.New("--include-extensions must list at least one extension")
	}
	return nil
}

// NormalizeFormat maps container aliases to the ffmpeg muxer name.
func NormalizeFormat(f string) string {
	switch f = strings.ToLower(strings.TrimSpace(f)); f {
	case "m4b", "m4a", "ipod":
		return FormatMP4
	default:
		return f
	}
}

// EffectiveFormat returns the container format of the output: the configured
// format if set, otherwise one inferred from the output file extension.
func EffectiveFormat(configured, outputFile string) string {
	if f := NormalizeFormat(configured); f != "" {
		return f
	}
	ext := strings.TrimPrefix(filepath.Ext(outputFile), ".")
	switch strings.ToLower(ext) {
	case "m4b", "m4a", "mp4":
		return FormatMP4
	default:
		return strings.ToLower(ext)
	}
}

// normalizeAudioBitrate validates and canonicalizes user bitrate input.
// Accepted forms: "64", "64k", "64K", "64kbps". Output is "<n>k".
func normalizeAudioBitrate(raw string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", errors.New("audio bitrate must not be empty")
	}
	if strings.HasSuffix(s, "kbps") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "kbps"))
	} else if strings.HasSuffix(s, "k") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "k"))
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return "", errors.Errorf("invalid audio bitrate %q (use positive Kbps value, e.g. 64k)", raw)
	}
	return fmt.Sprintf("%dk", n), nil
}

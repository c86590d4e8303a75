package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into input/output, encoding, tagging, behavior, display, and utility.
// Positional arguments and flags may be interleaved: "m4bmerge book/ --output-file book.m4b".

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and exits.
// On error it returns non-nil (e.g. unknown flag, missing positional args).
func ParseFlags(cfg *Config, version string) error {
	u, err := parseArgs(cfg, os.Args[1:])
	if err != nil {
		return err
	}
	if u.showHelp {
		printUsage(version)
		os.Exit(0)
	}
	if u.showVersion {
		fmt.Fprintln(os.Stdout, "m4bmerge v"+version)
		os.Exit(0)
	}
	return nil
}

// utilityFlags holds flags that are applied after Parse or trigger an exit.
type utilityFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// parseArgs does the work of ParseFlags against an explicit argument list.
func parseArgs(cfg *Config, args []string) (utilityFlags, error) {
	fs := flag.NewFlagSet("m4bmerge", flag.ContinueOnError)
	fs.Usage = func() {}

	var u utilityFlags
	defineIOFlags(fs, cfg)
	defineEncodingFlags(fs, cfg)
	defineTagFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &u)

	positional, err := parseInterleaved(fs, args)
	if err != nil {
		return u, err
	}
	applyColorFlags(cfg, &u)

	if u.showHelp || u.showVersion || cfg.CheckOnly {
		return u, nil
	}
	if len(positional) == 0 {
		return u, errors.New("need an input file or directory")
	}
	cfg.InputPath = positional[0]
	cfg.MoreInputs = positional[1:]
	return u, nil
}

// parseInterleaved runs fs.Parse repeatedly so flags may follow positional
// arguments. Everything after a literal "--" is positional.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		remaining := fs.Args()
		consumed := rest[:len(rest)-len(remaining)]
		if len(consumed) > 0 && consumed[len(consumed)-1] == "--" {
			return append(positional, remaining...), nil
		}
		if len(remaining) == 0 {
			return positional, nil
		}
		positional = append(positional, remaining[0])
		rest = remaining[1:]
	}
}

// defineIOFlags registers --output-file and --include-extensions.
func defineIOFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.OutputFile, "output-file", cfg.OutputFile, "Output file")
	fs.StringVar(&cfg.OutputFile, "o", cfg.OutputFile, "Same as --output-file")
	fs.StringVar(&cfg.IncludeExtensions, "include-extensions", cfg.IncludeExtensions,
		"Comma separated list of file extensions to include (others are skipped)")
}

// defineEncodingFlags registers the optional ffmpeg pass-through options.
func defineEncodingFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Encoding.Bitrate, "audio-bitrate", cfg.Encoding.Bitrate, "Audio bitrate, e.g. 64k")
	fs.IntVar(&cfg.Encoding.SampleRate, "audio-samplerate", cfg.Encoding.SampleRate, "Audio sample rate, e.g. 22050")
	fs.IntVar(&cfg.Encoding.Channels, "audio-channels", cfg.Encoding.Channels, "Audio channels, e.g. 1 or 2")
	fs.StringVar(&cfg.Encoding.Codec, "audio-codec", cfg.Encoding.Codec, "Audio codec, e.g. libfdk_aac")
	fs.StringVar(&cfg.Encoding.Format, "audio-format", cfg.Encoding.Format, "Output format, e.g. mp4 or mp3")
}

// defineTagFlags registers tag overrides.
func defineTagFlags(fs *flag.FlagSet, cfg *Config) {
	t := &cfg.Tags
	fs.StringVar(&t.Name, "name", t.Name, "Custom name (title), otherwise the first album tag is used")
	fs.StringVar(&t.Album, "album", t.Album, "Custom album")
	fs.StringVar(&t.Artist, "artist", t.Artist, "Custom artist")
	fs.StringVar(&t.AlbumArtist, "albumartist", t.AlbumArtist, "Custom album artist")
	fs.StringVar(&t.Year, "year", t.Year, "Custom year")
	fs.StringVar(&t.Genre, "genre", t.Genre, "Custom genre")
	fs.StringVar(&t.Writer, "writer", t.Writer, "Custom writer")
	fs.StringVar(&t.Description, "description", t.Description, "Custom description")
	fs.StringVar(&t.Comment, "comment", t.Comment, "Custom comment")
	fs.StringVar(&t.Cover, "cover", t.Cover, "Cover image, otherwise <input>/cover.jpg if present")
}

// defineBehaviorFlags registers --force and --dry-run.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.Force, "force", false, "Overwrite existing output and chapter files")
	fs.BoolVar(&cfg.Force, "f", false, "Same as --force")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Print the merge plan without writing anything")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
}

// defineDisplayFlags registers --color, --no-color, verbose, --check, --log, --version, --help.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, u *utilityFlags) {
	fs.BoolVar(&u.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&u.noColor, "no-color", false, "Disable colored logs")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run system diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", "", "Same as --log")
	fs.BoolVar(&u.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&u.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&u.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&u.showHelp, "h", false, "Same as --help")
}

func applyColorFlags(cfg *Config, u *utilityFlags) {
	if u.noColor {
		cfg.ColorMode = ColorNever
	} else if u.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(version string) {
	const col1 = 30
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "m4bmerge v" + version + ": merge audio files into one chaptered file"},
		{"", ""},
		{"  m4bmerge [OPTIONS] --output-file <file> <input> [more inputs...]", ""},
		{"", ""},
		{"Input & output", ""},
		{"  -o, --output-file <file>", "Output file (required)"},
		{"  --include-extensions <list>", "Extensions taken from directories (default: " + DefaultIncludeExtensions + ")"},
		{"", ""},
		{"Encoding (omitted unless set)", ""},
		{"  --audio-bitrate <rate>", "e.g. 64k"},
		{"  --audio-samplerate <hz>", "e.g. 22050"},
		{"  --audio-channels <n>", "e.g. 1"},
		{"  --audio-codec <name>", "e.g. libfdk_aac"},
		{"  --audio-format <name>", "mp4 (m4b) enables chapter import"},
		{"", ""},
		{"Tags (first non-empty input value otherwise)", ""},
		{"  --name, --album, --artist", ""},
		{"  --albumartist, --year, --genre", ""},
		{"  --writer, --description, --comment", ""},
		{"  --cover <file>", "Cover image (default: <input>/cover.jpg)"},
		{"", ""},
		{"Behavior", ""},
		{"  -f, --force", "Overwrite existing output and chapter files"},
		{"  -d, --dry-run", "Print the merge plan only"},
		{"", ""},
		{"Display & utility", ""},
		{"  --color, --no-color", "Force or disable colored logs"},
		{"  -v, --verbose", "Verbose output (ffmpeg info log)"},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -c, --check", "System diagnostics (ffmpeg, ffprobe, mp4v2 tools)"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		switch {
		case l.flags == "" && l.desc == "":
			fmt.Fprintln(os.Stderr)
		case l.desc == "":
			fmt.Fprintln(os.Stderr, l.flags)
		case l.flags == "":
			fmt.Fprintln(os.Stderr, l.desc)
		default:
			padding := col1 - len(l.flags)
			if padding < 1 {
				padding = 1
			}
			fmt.Fprintf(os.Stderr, "%s%s%s\n", l.flags, strings.Repeat(" ", padding), l.desc)
		}
	}
}

package ffmpeg

import (
	"strconv"
	"strings"

	"github.com/backmassage/m4bmerge/internal/planner"
)

// ConcatLabel is the filter graph output pad mapped to the result.
const ConcatLabel = "[a]"

// Build constructs the complete ffmpeg argument slice for req, program name
// included. Encoding parameters appear only when set.
func Build(req planner.MergeRequest, verbose bool) []string {
	args := make([]string, 0, 24+2*len(req.Inputs)+2*len(req.Metadata))

	// --- Preamble ---
	args = append(args, "ffmpeg", "-hide_banner", "-nostdin")
	if verbose {
		args = append(args, "-loglevel", "info", "-stats")
	} else {
		args = append(args, "-loglevel", "error")
	}

	// --- Inputs ---
	args = append(args, "-vn")
	for _, in := range req.Inputs {
		args = append(args, "-i", in)
	}

	// --- Concat filter ---
	args = append(args,
		"-filter_complex", ConcatFilter(req.Concat),
		"-map", ConcatLabel,
	)
	if req.Overwrite {
		args = append(args, "-y")
	}

	// --- Encoding (only what was configured) ---
	enc := req.Encoding
	if enc.Bitrate != "" {
		args = append(args, "-ab", enc.Bitrate)
	}
	if enc.SampleRate > 0 {
		args = append(args, "-ar", strconv.Itoa(enc.SampleRate))
	}
	if enc.Channels > 0 {
		args = append(args, "-ac", strconv.Itoa(enc.Channels))
	}
	if enc.Codec != "" {
		args = append(args, "-acodec", enc.Codec)
	}
	if enc.Format != "" {
		args = append(args, "-f", enc.Format)
	}

	// --- Metadata ---
	for _, m := range req.Metadata {
		args = append(args, "-metadata", m.Key+"="+m.Value)
	}

	return append(args, req.Output)
}

// ConcatFilter renders "[0:0] [1:0] ... concat=n=N:v=0:a=1 [a]".
func ConcatFilter(c planner.Concat) string {
	var b strings.Builder
	for i := 0; i < c.StreamCount; i++ {
		b.WriteString("[")
		b.WriteString(strconv.Itoa(i))
		b.WriteString(":0] ")
	}
	b.WriteString("concat=n=")
	b.WriteString(strconv.Itoa(c.StreamCount))
	b.WriteString(":v=0:a=1 ")
	b.WriteString(ConcatLabel)
	return b.String()
}

// FormatCommand joins args into a single line for logging, quoting
// arguments that a shell would split or expand.
func FormatCommand(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = shellQuote(a)
	}
	return strings.Join(quoted, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\n'\"\\$`*?[]{}()<>|&;#~!") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

package ffmpeg

import "regexp"

// Pre-compiled regexes for classifying ffmpeg stderr output. Checked in
// order by [Classify]; the first match wins.
var stderrRules = []struct {
	re   *regexp.Regexp
	hint string
}{
	{
		regexp.MustCompile(`already exists\. Exiting|File '.*' already exists`),
		"output file exists (use --force)",
	},
	{
		regexp.MustCompile(`(?i)No such file or directory|Permission denied`),
		"cannot open an input or the output path",
	},
	{
		regexp.MustCompile(`(?i)Unknown encoder|Encoder .* not found|Requested output format .* is not a suitable output format|Unknown input format|Invalid audio stream`),
		"unsupported codec or format",
	},
	{
		regexp.MustCompile(`(?i)Input link .* parameters .* do not match|Media type mismatch between`),
		"inputs do not share a compatible audio layout",
	},
	{
		regexp.MustCompile(`(?i)Stream specifier .* matches no streams|Invalid file index|does not contain any stream|Output file #0 does not contain any stream`),
		"an input has no audio stream",
	},
	{
		regexp.MustCompile(`(?i)Invalid data found when processing input|moov atom not found|Header missing`),
		"an input is corrupt or not an audio file",
	},
}

// Classify returns a short explanation for a failed run, or "" when the
// stderr output matches no known pattern.
func Classify(stderr string) string {
	for _, r := range stderrRules {
		if r.re.MatchString(stderr) {
			return r.hint
		}
	}
	return ""
}

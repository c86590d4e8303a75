// Package ffmpeg builds and executes the ffmpeg concat command for a
// planner.MergeRequest.
//
// Files:
//   - builder.go: Build(MergeRequest, verbose) → argv, FormatCommand for dry runs
//   - executor.go: Execute (stderr capture, optional tee) and Transcoder
//   - errors.go: stderr classification into short hints for the error log
//
// Every input contributes its first stream ([i:0]) to a single audio-only
// concat filter; video is disabled with -vn before the inputs.
package ffmpeg

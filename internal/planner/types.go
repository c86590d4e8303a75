package planner

import "github.com/backmassage/m4bmerge/internal/config"

// StreamKind names the stream type taken from every input.
type StreamKind string

// KindAudio is the only kind a merge concatenates.
const KindAudio StreamKind = "audio"

// MergeRequest holds everything the transcoder needs to produce the merged
// output. It is produced by BuildMergeRequest and consumed by ffmpeg.Build.
type MergeRequest struct {
	Inputs []string // Source paths in collection order.
	Concat Concat

	// Encoding parameters; zero fields are omitted from the command.
	Encoding config.Encoding

	// Metadata is embedded by the transcoder, in order.
	Metadata []MetadataPair

	Output    string
	Overwrite bool
}

// Concat describes the concat filter: StreamCount streams of Kind, the
// first stream of each input.
type Concat struct {
	StreamCount int
	Kind        StreamKind
}

// MetadataPair is one key=value container tag.
type MetadataPair struct {
	Key   string
	Value string
}

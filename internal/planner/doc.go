// Package planner builds the MergeRequest that the ffmpeg package turns
// into a concat invocation.
//
// The request is an abstract description: ordered inputs, the concat
// shape (one audio stream per input, video excluded), the configured
// encoding parameters and the metadata to embed. Parameters that were not
// configured stay at their zero value and are left out of the command.
package planner

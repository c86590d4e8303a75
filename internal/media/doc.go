// Package media holds the value types shared by every stage of a merge:
// collected input files, resolved per-file metadata, millisecond time units
// and chapters. It also defines the error taxonomy the pipeline reports.
package media

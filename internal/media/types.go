package media

// InputFile is one collected source file.
type InputFile struct {
	Path     string // Absolute, symlink-resolved.
	Ext      string // Extension without the leading dot, case preserved.
	Readable bool
}

// Metadata is the descriptive information resolved for one input file.
// Empty strings mean the property was absent.
type Metadata struct {
	Album       string
	Title       string
	Artist      string
	AlbumArtist string
	Date        string
	Genre       string
	Writer      string

	Duration    TimeUnit
	HasDuration bool // False when the length of the file is unknown.
}

// WithDuration returns a copy of m with a known duration.
func (m Metadata) WithDuration(d TimeUnit) Metadata {
	m.Duration = d
	m.HasDuration = true
	return m
}

// Chapter marks a span of the merged output. End is never before Start.
type Chapter struct {
	Start TimeUnit
	End   TimeUnit
	Name  string
}

// Length returns End - Start.
func (c Chapter) Length() TimeUnit { return c.End - c.Start }

// MergeOutput is the file produced by the transcoder together with the
// container format used to decide on chapter export and tagging.
type MergeOutput struct {
	Path   string
	Format string
}

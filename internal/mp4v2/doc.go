// Package mp4v2 wraps the mp4v2 command-line utilities used after the
// merge: mp4chaps imports the chapter marker file, mp4tags writes the tag
// set and mp4art attaches the cover image.
package mp4v2

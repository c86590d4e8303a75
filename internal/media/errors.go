package media

import (
	"fmt"

	"github.com/pkg/errors"
)

// UnreadableInputError reports an input argument that does not exist or
// cannot be read. It is never fatal; collectors log it and move on.
type UnreadableInputError struct {
	Path string
	Err  error
}

func (e *UnreadableInputError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("skipping %s (does not exist)", e.Path)
	}
	return fmt.Sprintf("skipping %s (%v)", e.Path, e.Err)
}

func (e *UnreadableInputError) Unwrap() error { return e.Err }

// IsUnreadableInput reports whether err is or wraps an UnreadableInputError.
func IsUnreadableInput(err error) bool {
	var e *UnreadableInputError
	return errors.As(err, &e)
}

// OverwriteConflictError reports an existing file that would be replaced
// without --force.
type OverwriteConflictError struct {
	Path string
}

func (e *OverwriteConflictError) Error() string {
	return fmt.Sprintf("chapters file %s already exists, use --force to force overwrite", e.Path)
}

// IsOverwriteConflict reports whether err is or wraps an OverwriteConflictError.
func IsOverwriteConflict(err error) bool {
	var e *OverwriteConflictError
	return errors.As(err, &e)
}

// ExternalToolError reports a failed transcoder, chapter importer or tag
// writer invocation. Stderr holds the captured tool output, if any.
type ExternalToolError struct {
	Tool   string
	Err    error
	Stderr string
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *ExternalToolError) Unwrap() error { return e.Err }

// IsExternalToolFailure reports whether err is or wraps an ExternalToolError.
func IsExternalToolFailure(err error) bool {
	var e *ExternalToolError
	return errors.As(err, &e)
}

package audit

import "errors"

// ErrFileGone is returned by AppendEntry when the file was deleted before a
// non-delete entry could be written.
var ErrFileGone = errors.New("file no longer exists")

package dl

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrBadStatus   = errors.New("unexpected http status")
	ErrReadTimeout = errors.New("no data received within timeout")
	ErrShortBody   = errors.New("body shorter than Content-Length")
	ErrNoFileName  = errors.New("cannot derive a file name from the url")
)

// DownloadError is returned for every network side failure: unreachable
// host, exhausted retries, a non-2xx status or a broken body stream.
type DownloadError struct {
	URL string
	Err error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s: %v", e.URL, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

func (e *DownloadError) Cause() error { return e.Err }

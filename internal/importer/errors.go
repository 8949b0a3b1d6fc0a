package importer

import (
	"errors"
	"fmt"

	"amutils/internal/tracksheet"
)

var (
	// ErrNotFound means no candidate passed any matching rule.
	ErrNotFound = errors.New("no matching track")
	// ErrMalformedRow means the row lacks its identifying field.
	ErrMalformedRow = errors.New("malformed row")
	// ErrUpdateFailure means the library rejected the update.
	ErrUpdateFailure = errors.New("update failed")
)

// Error kinds reported in outcomes and history.
const (
	KindNotFound      = "not_found"
	KindMalformedRow  = "malformed_row"
	KindUpdateFailure = "update_failure"
	KindDecodeFailure = "decode_failure"
	KindUnknownFormat = "unknown_format"
	KindOther         = "other"
)

// ErrorClassifier lets errors declare their kind.
type ErrorClassifier interface {
	ErrorKind() string
}

// RowError is the failure attached to a row outcome.
type RowError struct {
	Marker error
	Line   int
	Detail string
	Err    error
}

func (e *RowError) Error() string {
	msg := fmt.Sprintf("row %d: %s", e.Line, e.Marker)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RowError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Marker}
	}
	return []error{e.Marker, e.Err}
}

// ErrorKind implements ErrorClassifier.
func (e *RowError) ErrorKind() string {
	return Kind(e.Marker)
}

func rowError(marker error, line int, detail string, err error) *RowError {
	return &RowError{Marker: marker, Line: line, Detail: detail, Err: err}
}

// Kind classifies err into one of the Kind constants. It returns "" for nil.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrMalformedRow):
		return KindMalformedRow
	case errors.Is(err, ErrUpdateFailure):
		return KindUpdateFailure
	case errors.Is(err, tracksheet.ErrDecodeFailure):
		return KindDecodeFailure
	case errors.Is(err, tracksheet.ErrUnknownFormat):
		return KindUnknownFormat
	}
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		return classifier.ErrorKind()
	}
	return KindOther
}

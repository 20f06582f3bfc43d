// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jomei/notionapi"
)

// ErrorKind classifies an export failure.
type ErrorKind string

const (
	// KindAuth means the API key is missing or rejected.
	KindAuth ErrorKind = "auth"

	// KindTarget means the page container could not be resolved: not found,
	// ambiguous, or an invalid page identifier.
	KindTarget ErrorKind = "target"

	// KindSchema means a property or block was malformed.
	KindSchema ErrorKind = "schema"

	// KindRetryable means the API rate-limited the request. The exporter
	// never retries; the orchestrating caller may, with backoff.
	KindRetryable ErrorKind = "retryable"

	// KindOther covers remaining API and transport failures.
	KindOther ErrorKind = "other"
)

// ExportError is the typed failure surface of the exporter.
type ExportError struct {
	Kind ErrorKind
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export (%s): %v", e.Kind, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

func exportErrorf(kind ErrorKind, format string, args ...any) *ExportError {
	return &ExportError{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// classify maps an API error onto the export error taxonomy by HTTP status.
func classify(err error) *ExportError {
	var exportErr *ExportError
	if errors.As(err, &exportErr) {
		return exportErr
	}

	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &ExportError{Kind: KindAuth, Err: err}
		case http.StatusNotFound:
			return &ExportError{Kind: KindTarget, Err: err}
		case http.StatusBadRequest:
			return &ExportError{Kind: KindSchema, Err: err}
		case http.StatusTooManyRequests:
			return &ExportError{Kind: KindRetryable, Err: err}
		}
	}
	return &ExportError{Kind: KindOther, Err: err}
}

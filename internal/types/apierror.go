package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrorKind is the closed taxonomy for backend failures. Every error surfaced
// by the SDK maps to exactly one kind, so workflows branch on the kind instead
// of probing the raw body at each call site.
type ErrorKind int

const (
	// KindUnknown: an error response without a parseable structured body.
	KindUnknown ErrorKind = iota
	// KindAuthorization: any 401. Always fatal to the session, never retried.
	KindAuthorization
	// KindValidation: a 4xx carrying a field-error body. Recovered locally by
	// surfacing the field messages.
	KindValidation
	// KindTransport: network failure or exceeded time bound; no HTTP status.
	KindTransport
)

func (k ErrorKind) String() string {
	switch k {
	case KindAuthorization:
		return "authorization"
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// APIError is a structured backend failure: the HTTP status plus the parsed
// field-error body, when one was present. StatusCode 0 means the request
// never produced a response (network error or timeout).
type APIError struct {
	StatusCode int
	Fields     map[string][]string
	Raw        []byte
	Underlying error
}

// ParseAPIError builds an APIError from a non-2xx response. Django-style
// bodies ({"field": ["msg", ...]}, {"field": "msg"}, {"detail": "msg"}) are
// flattened into the Fields map; anything else leaves Fields nil.
func ParseAPIError(statusCode int, body []byte) *APIError {
	e := &APIError{StatusCode: statusCode, Raw: body}
	var loose map[string]any
	if err := json.Unmarshal(body, &loose); err != nil || len(loose) == 0 {
		return e
	}
	fields := make(map[string][]string, len(loose))
	for k, v := range loose {
		switch m := v.(type) {
		case string:
			fields[k] = []string{m}
		case []any:
			var msgs []string
			for _, item := range m {
				if s, ok := item.(string); ok {
					msgs = append(msgs, s)
				}
			}
			if len(msgs) > 0 {
				fields[k] = msgs
			}
		}
	}
	if len(fields) > 0 {
		e.Fields = fields
	}
	return e
}

// NewTransportError wraps a network-level failure so it flows through the
// same error path as HTTP failures.
func NewTransportError(op string, err error) *APIError {
	return &APIError{Underlying: fmt.Errorf("%s: %w", op, err)}
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		if e.Underlying != nil {
			return e.Underlying.Error()
		}
		return "transport failure"
	}
	if msg := e.JoinedFieldErrors(); msg != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

func (e *APIError) Unwrap() error { return e.Underlying }

// Kind maps the failure into the closed taxonomy.
func (e *APIError) Kind() ErrorKind {
	switch {
	case e.StatusCode == 0:
		return KindTransport
	case e.StatusCode == http.StatusUnauthorized:
		return KindAuthorization
	case e.StatusCode >= 400 && e.StatusCode < 500 && len(e.Fields) > 0:
		return KindValidation
	default:
		return KindUnknown
	}
}

// Irrecoverable reports whether retrying is pointless: 4xx client errors
// except 408 and 429. 5xx and transport failures may be transient.
func (e *APIError) Irrecoverable() bool {
	if e.StatusCode >= 400 && e.StatusCode < 500 {
		return e.StatusCode != http.StatusRequestTimeout && e.StatusCode != http.StatusTooManyRequests
	}
	return false
}

// Field returns the first message recorded for the named field, or "".
func (e *APIError) Field(name string) string {
	if msgs := e.Fields[name]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// JoinedFieldErrors concatenates every field message into one human-readable
// string, with fields in sorted order so the output is deterministic.
func (e *APIError) JoinedFieldErrors() string {
	if len(e.Fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], " ")))
	}
	return strings.Join(parts, " | ")
}

// AsAPIError unwraps err into an *APIError when one is in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsIrrecoverable reports whether err is a classified error that must not be
// retried. Used by the sync queue's retry loop.
func IsIrrecoverable(err error) bool {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Irrecoverable()
	}
	return false
}

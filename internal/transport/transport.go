// Package transport decorates outbound requests with the conventions the
// CareNest backend requires: bearer credentials, exact-match trailing-slash
// paths, and the global 401 session-teardown hook.
package transport

import (
	"net/http"
	"net/url"
	"strings"
)

// Transport wraps an http.RoundTripper. The zero value of Base falls back to
// http.DefaultTransport. Credential and OnUnauthorized may be nil.
type Transport struct {
	Base http.RoundTripper

	// Credential returns the current bearer credential, or "" when the
	// session is anonymous. Absence never blocks the request: several
	// endpoints are public.
	Credential func() string

	// OnUnauthorized runs synchronously on every 401, before the response is
	// handed back to the caller. Callers therefore must not read session
	// state after an authorization failure.
	OnUnauthorized func()
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	cloned := req.Clone(req.Context())
	NormalizePath(cloned.URL)

	if t.Credential != nil {
		if cred := t.Credential(); cred != "" {
			cloned.Header.Set("Authorization", "Bearer "+cred)
		}
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	resp, err := base.RoundTrip(cloned)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized && t.OnUnauthorized != nil {
		t.OnUnauthorized()
	}
	return resp, nil
}

// NormalizePath appends the trailing separator the backend's exact-match
// routing requires, unless one is already present or the URL carries a query
// string.
func NormalizePath(u *url.URL) {
	if u.RawQuery != "" || strings.HasSuffix(u.Path, "/") {
		return
	}
	u.Path += "/"
}

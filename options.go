package carenest

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"time"

	"github.com/carenest/carenest-go/internal/credstore"
)

// Option configures a Client during construction in New.
//
// Options are applied before the session transport wrapper is installed, so
// transport-related options (like debug logging) end up underneath the
// bearer/normalization wrapper. Options must be deterministic and
// side-effect free.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
//
// This is the fixed per-request ceiling: a request exceeding it surfaces as a
// transport failure through the same error path as any network error. The
// value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithDebounceInterval sets the quiet period between the last filter edit and
// the discovery search dispatch.
func WithDebounceInterval(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("debounce interval must be > 0")
		}
		c.debounce = d
		return nil
	}
}

// WithCredentialStore replaces the default in-memory credential store, e.g.
// with the encrypted file store for durable sessions.
func WithCredentialStore(s credstore.Store) Option {
	return func(c *Client) error {
		if s == nil {
			return fmt.Errorf("credential store cannot be nil")
		}
		c.creds = s
		return nil
	}
}

// WithNavigator installs the navigation sink that receives role-based
// redirects (login success, session teardown, logout).
func WithNavigator(n Navigator) Option {
	return func(c *Client) error {
		if n == nil {
			return fmt.Errorf("navigator cannot be nil")
		}
		c.nav = n
		return nil
	}
}

// WithDefaultRole sets the role assumed when the backend omits user_type.
// Whether that omission is a contract gap or intended behavior is not the
// client's call, so the fallback stays configurable.
func WithDefaultRole(r Role) Option {
	return func(c *Client) error {
		if r == "" {
			return fmt.Errorf("default role cannot be empty")
		}
		c.defaultRole = r
		return nil
	}
}

// WithDebugLogging wraps the client's transport so each request/response is
// logged when enabled is true.
//
// The debug transport is installed beneath the session wrapper; logs are
// emitted before the request is forwarded to the next transport. Do not
// enable this option in production environments: dumps include credentials.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			c.http.Transport = &debugTransport{base: c.http.Transport}
		}
		return nil
	}
}

// withExecutor swaps the background executor; used by tests.
func withExecutor(e executor) Option {
	return func(c *Client) error {
		c.exec = e
		return nil
	}
}

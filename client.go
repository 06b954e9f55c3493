// Package carenest is the Go client SDK for the CareNest caregiver
// marketplace. It owns the authenticated-session lifecycle, the debounced
// caregiver-discovery search, and the appointment-booking and
// profile-completion workflows; the backend is reached only through its
// HTTP/JSON contract.
package carenest

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/carenest/carenest-go/internal/credstore"
	"github.com/carenest/carenest-go/internal/syncqueue"
	"github.com/carenest/carenest-go/internal/transport"
	"github.com/carenest/carenest-go/internal/types"
)

// Client is the entry point. Construct with New, release with Close.
//
// The client owns the single shared resource, the persisted credential
// pair, and is its only writer (through the session methods). Everything
// else reads credentials indirectly via the transport layer.
type Client struct {
	baseURL string
	http    *http.Client
	exec    executor
	creds   credstore.Store
	nav     Navigator

	session sessionState

	defaultRole Role
	debounce    time.Duration

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the given backend base URL.
// Additional options can be provided via functional arguments.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		panic("baseURL cannot be empty")
	}

	c := &Client{
		baseURL:     baseURL,
		http:        &http.Client{Timeout: defaultHTTPTimeout},
		creds:       credstore.NewMemory(),
		nav:         nopNavigator{},
		defaultRole: RoleClient,
		debounce:    defaultDebounceInterval,
	}
	c.session.state = SessionUnknown

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			panic(err)
		}
	}
	if c.exec == nil {
		c.exec = newDefaultExecutor()
	}

	c.wrapTransport()

	return c
}

// NewFromEnv constructs a Client from CARENEST_* environment configuration.
// Explicit options take precedence over the environment.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	base := []Option{
		WithHTTPTimeout(cfg.HTTPTimeout),
		WithDebounceInterval(cfg.DebounceInterval),
		WithDefaultRole(Role(cfg.DefaultRole)),
	}
	if cfg.CredentialFile != "" && cfg.CredentialSecret != "" {
		base = append(base, WithCredentialStore(credstore.NewFile(cfg.CredentialFile, cfg.CredentialSecret)))
	}
	return New(cfg.BaseURL, append(base, opts...)...), nil
}

// wrapTransport installs the auth/normalization transport above whatever
// transport is already configured, so debug logging (installed by options)
// sits underneath and sees the decorated request.
func (c *Client) wrapTransport() {
	c.http.Transport = &transport.Transport{
		Base:           c.http.Transport,
		Credential:     c.accessCredential,
		OnUnauthorized: c.handleUnauthorized,
	}
}

// accessCredential reads the current bearer credential from the store.
// An empty result means the request goes out unauthenticated.
func (c *Client) accessCredential() string {
	creds, err := c.creds.Load()
	if err != nil {
		return ""
	}
	return creds.AccessToken
}

// Close stops the background executor (if any). Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.exec != nil {
		c.exec.Stop()
	}
	return nil
}

// Flush blocks until all previously queued background writes for the given
// key (e.g. "availability") have been executed, by submitting a no-op job and
// waiting for it to run.
func (c *Client) Flush(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan struct{})
	j := syncqueue.JobFunc(func(context.Context) error {
		close(done)
		return nil
	})
	if err := c.exec.Submit(ctx, key, j); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// submit hands a background job to the executor, translating queue-full
// rejections into ErrBackPressure.
func (c *Client) submit(ctx context.Context, key string, job syncqueue.Job) (*types.EnqueueAck, error) {
	if err := c.exec.Submit(ctx, key, job); err != nil {
		if isQueueFull(err) {
			return nil, ErrBackPressure
		}
		return nil, err
	}
	return &types.EnqueueAck{Status: "queued", Key: key}, nil
}

// newDefaultExecutor constructs the sync queue with env-tuned settings.
func newDefaultExecutor() *syncqueue.Executor {
	cfg, err := syncqueue.LoadConfig()
	if err != nil {
		cfg = syncqueue.Config{}
	}
	return syncqueue.New(cfg)
}

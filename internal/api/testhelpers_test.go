package api

import (
	"fmt"
	"net/http"
)

// errRT simulates a network failure on every request.
type errRT struct{}

func (*errRT) RoundTrip(*http.Request) (*http.Response, error) { return nil, fmt.Errorf("boom") }

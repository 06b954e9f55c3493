package carenest

import (
	"context"

	"github.com/carenest/carenest-go/internal/syncqueue"
)

// executor abstracts the internal async job runner used by background writes.
type executor interface {
	Submit(context.Context, string, syncqueue.Job) error
	Stop()
}

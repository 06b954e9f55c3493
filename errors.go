package carenest

import (
	"errors"

	"github.com/carenest/carenest-go/internal/syncqueue"
	"github.com/carenest/carenest-go/internal/types"
)

// ErrBackPressure is returned when the client's internal sync queue is full.
var ErrBackPressure = errors.New("back-pressure (queue full)")

// IsBackPressure reports whether err is a back-pressure error.
func IsBackPressure(err error) bool { return errors.Is(err, ErrBackPressure) }

// ErrNoSelection is returned by booking operations that need a selected
// caregiver when the workflow is still idle.
var ErrNoSelection = errors.New("no caregiver selected")

// ErrAttachmentTooLarge is returned when a wizard attachment exceeds the
// fixed local size cap; no network call is made.
var ErrAttachmentTooLarge = errors.New("attachment exceeds the 5 MiB limit")

// AsAPIError unwraps err into a structured *APIError when one is in the
// chain, so callers can branch on Kind and field messages.
func AsAPIError(err error) (*APIError, bool) { return types.AsAPIError(err) }

func isQueueFull(err error) bool { return errors.Is(err, syncqueue.ErrQueueFull) }

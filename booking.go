package carenest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/carenest/carenest-go/internal/api"
	"github.com/carenest/carenest-go/internal/types"
)

// Booking policy constants. The backend derives cost from
// duration_hours x hourly_rate_at_booking, so the duration is always sent
// explicitly and never left to a server-side default.
const (
	bookingDurationHours = 2.0
	defaultStartTime     = "09:00"
	defaultServiceType   = "General Care"
	rateFallback         = 25
)

// BookingState is the lifecycle position of a booking draft.
type BookingState int

const (
	BookingIdle BookingState = iota
	BookingSelected
	BookingSubmitting
	BookingConfirmed
	BookingRejected
)

func (s BookingState) String() string {
	switch s {
	case BookingSelected:
		return "selected"
	case BookingSubmitting:
		return "submitting"
	case BookingConfirmed:
		return "confirmed"
	case BookingRejected:
		return "rejected"
	default:
		return "idle"
	}
}

// BookingError is the user-presentable outcome of a rejected submission.
// Message carries exactly one of three interpretations: an account
// restriction, concatenated field-validation errors, or a generic hint.
type BookingError struct {
	Message string
	Cause   error
}

func (e *BookingError) Error() string { return e.Message }
func (e *BookingError) Unwrap() error { return e.Cause }

// Booking drives one appointment draft at a time:
// Idle -> Selected -> Submitting -> Confirmed, or back to Selected on
// rejection so the user can correct and retry without losing the draft.
type Booking struct {
	c *Client

	mu            sync.Mutex
	state         BookingState
	draftID       string
	draft         types.CreateAppointmentRequest
	caregiverName string
}

// Booking returns a new booking workflow bound to this client.
func (c *Client) Booking() *Booking {
	return &Booking{c: c}
}

// State returns the current draft state.
func (b *Booking) State() BookingState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Draft returns a copy of the current draft payload.
func (b *Booking) Draft() CreateAppointmentRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.draft
}

// Select starts a draft for the given candidate. The hourly rate is
// snapshotted here, once; later refreshes of the candidate list never
// touch it, so the submitted price matches what the user saw at selection.
func (b *Booking) Select(cg Caregiver) {
	b.mu.Lock()
	b.state = BookingSelected
	b.draftID = uuid.NewString()
	b.caregiverName = cg.Name()
	b.draft = types.CreateAppointmentRequest{
		Caregiver:           cg.ID,
		ServiceType:         defaultServiceType,
		Date:                time.Now().Format("2006-01-02"),
		StartTime:           defaultStartTime,
		DurationHours:       bookingDurationHours,
		HourlyRateAtBooking: cg.HourlyRate,
		Status:              "pending",
	}
	b.mu.Unlock()
}

// SetSchedule updates the draft's date and start time.
func (b *Booking) SetSchedule(date, startTime string) {
	b.mu.Lock()
	b.draft.Date = date
	b.draft.StartTime = startTime
	b.mu.Unlock()
}

// SetServiceType updates the draft's service type.
func (b *Booking) SetServiceType(serviceType string) {
	b.mu.Lock()
	b.draft.ServiceType = serviceType
	b.mu.Unlock()
}

// SetNotes updates the note passed to the caregiver.
func (b *Booking) SetNotes(notes string) {
	b.mu.Lock()
	b.draft.NotesToCaregiver = notes
	b.mu.Unlock()
}

// DraftID identifies the current draft across retries; it changes on every
// Select and clears on Cancel or confirmation.
func (b *Booking) DraftID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.draftID
}

// Cancel discards the draft and returns to Idle.
func (b *Booking) Cancel() {
	b.mu.Lock()
	b.state = BookingIdle
	b.draftID = ""
	b.draft = types.CreateAppointmentRequest{}
	b.caregiverName = ""
	b.mu.Unlock()
}

// Submit finalizes and sends the draft. The end time is derived from the
// start time plus the fixed duration, with the hour wrapping modulo 24
// across midnight. On success the draft is cleared, the workflow returns to
// Idle, and a confirmation message naming the caregiver is returned. On
// failure the draft survives in Selected and the returned *BookingError
// carries the interpreted server message.
func (b *Booking) Submit(ctx context.Context) (string, error) {
	b.mu.Lock()
	if b.state != BookingSelected && b.state != BookingRejected {
		b.mu.Unlock()
		return "", ErrNoSelection
	}
	b.state = BookingSubmitting
	payload := b.draft
	payload.EndTime = AddHours(payload.StartTime, int(bookingDurationHours))
	payload.DurationHours = bookingDurationHours
	name := b.caregiverName
	draftID := b.draftID
	b.mu.Unlock()

	_, err := api.CreateAppointment(ctx, b.c.http, b.c.baseURL, payload)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.state = BookingSelected
		bookingsTotal.WithLabelValues("rejected").Inc()
		log.Warn().Err(err).Str("draft_id", draftID).Int64("caregiver", payload.Caregiver).Msg("booking rejected")
		return "", &BookingError{Message: interpretBookingError(err), Cause: err}
	}

	b.state = BookingIdle
	b.draftID = ""
	b.draft = types.CreateAppointmentRequest{}
	b.caregiverName = ""
	bookingsTotal.WithLabelValues("confirmed").Inc()
	return fmt.Sprintf("Appointment booked successfully with %s!", name), nil
}

// interpretBookingError maps a submission failure onto the three user-facing
// tiers: a "client" field in the error body means the booking party itself
// is restricted; any other field errors are concatenated; anything without a
// structured body gets the generic sign-in hint.
func interpretBookingError(err error) string {
	apiErr, ok := types.AsAPIError(err)
	if ok && len(apiErr.Fields) > 0 {
		if msg := apiErr.Field("client"); msg != "" {
			return "Account Restriction: " + msg
		}
		return apiErr.JoinedFieldErrors()
	}
	return "Booking failed. Ensure you are logged in with a Client account."
}

// AddHours shifts an HH:MM (or HH:MM:SS) clock time forward by whole hours,
// wrapping the hour modulo 24 and leaving minutes untouched, so 23:30 plus
// two hours is 01:30. Malformed input is returned unchanged.
func AddHours(clock string, hours int) string {
	parts := strings.SplitN(clock, ":", 3)
	if len(parts) < 2 {
		return clock
	}
	var h int
	if _, err := fmt.Sscanf(parts[0], "%d", &h); err != nil {
		return clock
	}
	h = ((h+hours)%24 + 24) % 24
	parts[0] = fmt.Sprintf("%02d", h)
	return strings.Join(parts, ":")
}

// FormatRate renders an hourly rate for display, substituting the fixed
// fallback when the rate is missing or non-numeric.
func FormatRate(r Rate) string {
	return fmt.Sprintf("R%.2f", r.Or(rateFallback))
}

// TotalCost is the display-only projected cost for the given hour count.
func TotalCost(r Rate, hours float64) float64 {
	return r.Or(rateFallback) * hours
}

package carenest

import (
	"context"

	"github.com/carenest/carenest-go/internal/api"
)

// Appointments lists every appointment for the current user.
func (c *Client) Appointments(ctx context.Context) ([]Appointment, error) {
	return api.Appointments(ctx, c.http, c.baseURL)
}

// UpcomingAppointments lists appointments that have not yet happened.
func (c *Client) UpcomingAppointments(ctx context.Context) ([]Appointment, error) {
	return api.UpcomingAppointments(ctx, c.http, c.baseURL)
}

// Appointment fetches a single appointment.
func (c *Client) Appointment(ctx context.Context, id int64) (*Appointment, error) {
	return api.Appointment(ctx, c.http, c.baseURL, id)
}

// ConfirmAppointment accepts a pending appointment (caregiver side).
func (c *Client) ConfirmAppointment(ctx context.Context, id int64) (*Appointment, error) {
	return api.ConfirmAppointment(ctx, c.http, c.baseURL, id)
}

// CompleteAppointment marks a confirmed appointment as finished.
func (c *Client) CompleteAppointment(ctx context.Context, id int64) (*Appointment, error) {
	return api.CompleteAppointment(ctx, c.http, c.baseURL, id)
}

// PartitionAppointments splits a list into the active set (pending or
// confirmed, still needing attention) and the historical rest, preserving
// order within each half. Pure; the input is not modified.
func PartitionAppointments(appts []Appointment) (active, historical []Appointment) {
	for _, a := range appts {
		if a.Active() {
			active = append(active, a)
		} else {
			historical = append(historical, a)
		}
	}
	return active, historical
}

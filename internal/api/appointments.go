package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/carenest/carenest-go/internal/types"
)

// CreateAppointment submits a booking request.
func CreateAppointment(ctx context.Context, httpClient *http.Client, baseURL string, req types.CreateAppointmentRequest) (*types.Appointment, error) {
	if err := types.ValidateIDPresent(req.Caregiver, "caregiver"); err != nil {
		return nil, err
	}
	var appt types.Appointment
	url := fmt.Sprintf("%s/api/profiles/appointments/", baseURL)
	if err := do(ctx, httpClient, http.MethodPost, url, req, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// Appointments lists every appointment for the current user.
func Appointments(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.Appointment, error) {
	var appts []types.Appointment
	url := fmt.Sprintf("%s/api/profiles/appointments/", baseURL)
	if err := do(ctx, httpClient, http.MethodGet, url, nil, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// UpcomingAppointments lists appointments that have not yet happened.
func UpcomingAppointments(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.Appointment, error) {
	var appts []types.Appointment
	url := fmt.Sprintf("%s/api/profiles/appointments/upcoming/", baseURL)
	if err := do(ctx, httpClient, http.MethodGet, url, nil, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// Appointment fetches a single appointment by ID.
func Appointment(ctx context.Context, httpClient *http.Client, baseURL string, id int64) (*types.Appointment, error) {
	if err := types.ValidateIDPresent(id, "appointment id"); err != nil {
		return nil, err
	}
	var appt types.Appointment
	url := fmt.Sprintf("%s/api/profiles/appointments/%d/", baseURL, id)
	if err := do(ctx, httpClient, http.MethodGet, url, nil, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// ConfirmAppointment marks a pending appointment as accepted.
func ConfirmAppointment(ctx context.Context, httpClient *http.Client, baseURL string, id int64) (*types.Appointment, error) {
	return appointmentAction(ctx, httpClient, baseURL, id, "confirm")
}

// CompleteAppointment marks a confirmed appointment as finished.
func CompleteAppointment(ctx context.Context, httpClient *http.Client, baseURL string, id int64) (*types.Appointment, error) {
	return appointmentAction(ctx, httpClient, baseURL, id, "complete")
}

func appointmentAction(ctx context.Context, httpClient *http.Client, baseURL string, id int64, action string) (*types.Appointment, error) {
	if err := types.ValidateIDPresent(id, "appointment id"); err != nil {
		return nil, err
	}
	var appt types.Appointment
	url := fmt.Sprintf("%s/api/profiles/appointments/%d/%s/", baseURL, id, action)
	if err := do(ctx, httpClient, http.MethodPost, url, nil, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

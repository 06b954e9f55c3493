package carenest

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/carenest/carenest-go/internal/api"
	"github.com/carenest/carenest-go/internal/syncqueue"
	"github.com/carenest/carenest-go/internal/types"
)

// MyProfile fetches the caller's caregiver profile. (nil, nil) means the
// profile has not been created yet, which is the dashboard's cue to open
// the completion wizard.
func (c *Client) MyProfile(ctx context.Context) (*CaregiverProfile, error) {
	return api.MyProfile(ctx, c.http, c.baseURL)
}

// UpdateMyProfile patches the caller's profile from a draft, including an
// optional attachment. The same size cap as the wizard applies.
func (c *Client) UpdateMyProfile(ctx context.Context, draft ProfileDraft) (*CaregiverProfile, error) {
	if len(draft.Attachment) > maxAttachmentBytes {
		return nil, ErrAttachmentTooLarge
	}
	return api.UpdateMyProfile(ctx, c.http, c.baseURL, profileFields(draft), draft.AttachmentName, draft.Attachment)
}

// DashboardStats fetches the caregiver earnings summary.
func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	return api.DashboardStats(ctx, c.http, c.baseURL)
}

// SyncAvailability queues a weekly-schedule update for asynchronous
// delivery. Updates for the same caller apply in submission order; the
// returned ack only means the write was accepted locally. Use Flush with
// the returned key to wait for delivery.
func (c *Client) SyncAvailability(ctx context.Context, schedule []AvailabilitySlot) (*EnqueueAck, error) {
	req := types.UpdateAvailabilityRequest{Schedule: append([]AvailabilitySlot(nil), schedule...)}
	job := syncqueue.JobFunc(func(jobCtx context.Context) error {
		return api.UpdateAvailability(jobCtx, c.http, c.baseURL, req)
	})
	return c.submit(ctx, "availability", job)
}

// Dashboard is the hydrated caregiver landing view.
type Dashboard struct {
	Profile  *CaregiverProfile
	Stats    DashboardStats
	Upcoming []Appointment
}

// Hydrate loads the caregiver dashboard in one call: profile, earnings
// stats, and upcoming appointments. Stats and appointment failures degrade
// to zero values so a partial backend outage never blanks the whole view;
// only a failed profile probe aborts hydration.
func (c *Client) Hydrate(ctx context.Context) (*Dashboard, error) {
	profile, err := api.MyProfile(ctx, c.http, c.baseURL)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{Profile: profile}

	if stats, err := api.DashboardStats(ctx, c.http, c.baseURL); err != nil {
		log.Warn().Err(err).Msg("dashboard stats unavailable, showing zeros")
	} else {
		d.Stats = *stats
	}

	if upcoming, err := api.UpcomingAppointments(ctx, c.http, c.baseURL); err != nil {
		log.Warn().Err(err).Msg("upcoming appointments unavailable")
	} else {
		d.Upcoming = upcoming
	}

	return d, nil
}

// profileFields flattens a draft into the multipart text fields the
// profile endpoints expect.
func profileFields(draft ProfileDraft) map[string]string {
	fields := map[string]string{
		"bio":              draft.Bio,
		"hourly_rate":      strconv.FormatFloat(draft.HourlyRate, 'f', 2, 64),
		"experience_years": strconv.Itoa(draft.ExperienceYears),
		"location":         draft.Location,
	}
	if len(draft.Specialties) > 0 {
		fields["specialties"] = strings.Join(draft.Specialties, ",")
	}
	return fields
}

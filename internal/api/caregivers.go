package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/carenest/carenest-go/internal/types"
)

// MyProfile fetches the current caregiver's own profile. A 404 is reported as
// (nil, nil): it means the profile wizard has not been completed yet, not that
// something failed.
func MyProfile(ctx context.Context, httpClient *http.Client, baseURL string) (*types.CaregiverProfile, error) {
	var profile types.CaregiverProfile
	url := fmt.Sprintf("%s/api/profiles/caregiver/me/", baseURL)
	if err := do(ctx, httpClient, http.MethodGet, url, nil, &profile); err != nil {
		if apiErr, ok := types.AsAPIError(err); ok && apiErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	if profile.Missing() {
		return nil, nil
	}
	return &profile, nil
}

// UpdateMyProfile patches the existing profile with a multipart payload.
func UpdateMyProfile(ctx context.Context, httpClient *http.Client, baseURL string, fields map[string]string, fileName string, file []byte) (*types.CaregiverProfile, error) {
	var profile types.CaregiverProfile
	url := fmt.Sprintf("%s/api/profiles/caregiver/me/", baseURL)
	if err := doMultipart(ctx, httpClient, http.MethodPatch, url, fields, "id_document", fileName, file, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// CompleteProfile creates the profile through the wizard endpoint.
func CompleteProfile(ctx context.Context, httpClient *http.Client, baseURL string, fields map[string]string, fileName string, file []byte) (*types.CaregiverProfile, error) {
	var profile types.CaregiverProfile
	url := fmt.Sprintf("%s/api/profiles/caregiver/complete_profile/", baseURL)
	if err := doMultipart(ctx, httpClient, http.MethodPost, url, fields, "id_document", fileName, file, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DashboardStats fetches the caregiver earnings summary.
func DashboardStats(ctx context.Context, httpClient *http.Client, baseURL string) (*types.DashboardStats, error) {
	var stats types.DashboardStats
	url := fmt.Sprintf("%s/api/profiles/caregiver/dashboard_stats/", baseURL)
	if err := do(ctx, httpClient, http.MethodGet, url, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// UpdateAvailability patches the caregiver's weekly schedule.
func UpdateAvailability(ctx context.Context, httpClient *http.Client, baseURL string, req types.UpdateAvailabilityRequest) error {
	url := fmt.Sprintf("%s/api/profiles/caregiver/update_availability/", baseURL)
	return do(ctx, httpClient, http.MethodPatch, url, req, nil)
}

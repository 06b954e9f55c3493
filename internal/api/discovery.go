package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/carenest/carenest-go/internal/types"
)

// SearchCaregivers dispatches one discovery search with the given filter
// snapshot. Filtering and sorting are the backend's job; the client only
// forwards the snapshot.
func SearchCaregivers(ctx context.Context, httpClient *http.Client, baseURL string, f types.DiscoveryFilters) ([]types.Caregiver, error) {
	params := url.Values{}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.MinRate > 0 {
		params.Set("min_rate", strconv.Itoa(f.MinRate))
	}
	if f.MaxRate > 0 {
		params.Set("max_rate", strconv.Itoa(f.MaxRate))
	}
	if f.ExperienceYears > 0 {
		params.Set("experience_years", strconv.Itoa(f.ExperienceYears))
	}
	if f.Specialty != "" {
		params.Set("specialty", f.Specialty)
	}
	if f.SortKey != "" {
		params.Set("sort", f.SortKey)
	}

	u := fmt.Sprintf("%s/api/profiles/caregiver/discovery/?%s", baseURL, params.Encode())
	var resp types.DiscoveryResponse
	if err := do(ctx, httpClient, http.MethodGet, u, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

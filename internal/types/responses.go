package types

import "encoding/json"

// ------------------------------
// Response Types
// ------------------------------

// LoginResponse covers both credential shapes the auth backend produces:
// JWT-style {access, refresh} and token-auth {key}.
type LoginResponse struct {
	Access  string `json:"access,omitempty"`
	Refresh string `json:"refresh,omitempty"`
	Key     string `json:"key,omitempty"`
}

// AccessCredential returns the usable bearer credential, whichever field
// carried it.
func (r LoginResponse) AccessCredential() string {
	if r.Access != "" {
		return r.Access
	}
	return r.Key
}

// DiscoveryResponse is the caregiver search result. The endpoint returns
// {"results": [...]} when paginated and a bare array otherwise.
type DiscoveryResponse struct {
	Results []Caregiver
}

func (d *DiscoveryResponse) UnmarshalJSON(b []byte) error {
	var paged struct {
		Results []Caregiver `json:"results"`
	}
	if err := json.Unmarshal(b, &paged); err == nil {
		d.Results = paged.Results
		return nil
	}
	var bare []Caregiver
	if err := json.Unmarshal(b, &bare); err != nil {
		return err
	}
	d.Results = bare
	return nil
}

// EnqueueAck acknowledges acceptance of an async background write.
type EnqueueAck struct {
	Status string `json:"status"`
	Key    string `json:"key"`
}

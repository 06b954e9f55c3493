package types

// ------------------------------
// Request Types
// ------------------------------

// LoginRequest holds login credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest holds the registration form as the backend expects it.
type RegisterRequest struct {
	Email                 string `json:"email"`
	Password1             string `json:"password1"`
	Password2             string `json:"password2"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name"`
	UserType              Role   `json:"user_type"`
	PhoneNumber           string `json:"phone_number,omitempty"`
	TermsAccepted         bool   `json:"terms_accepted"`
	PrivacyPolicyAccepted bool   `json:"privacy_policy_accepted"`
	MarketingOptIn        bool   `json:"marketing_opt_in"`
}

// CreateAppointmentRequest is the booking submission payload. DurationHours
// must always be set: the backend derives cost from duration x rate and
// rejects (or worse, miscomputes) bookings without it.
type CreateAppointmentRequest struct {
	Caregiver           int64   `json:"caregiver"`
	ServiceType         string  `json:"service_type"`
	Date                string  `json:"date"`
	StartTime           string  `json:"start_time"`
	EndTime             string  `json:"end_time"`
	DurationHours       float64 `json:"duration_hours"`
	HourlyRateAtBooking Rate    `json:"hourly_rate_at_booking"`
	NotesToCaregiver    string  `json:"notes_to_caregiver"`
	Status              string  `json:"status"`
}

// UpdateAvailabilityRequest carries the weekly schedule.
type UpdateAvailabilityRequest struct {
	Schedule []AvailabilitySlot `json:"schedule"`
}

// DiscoveryFilters is the immutable filter snapshot sent with a search
// dispatch. Zero-valued fields are omitted from the query string.
type DiscoveryFilters struct {
	Search          string
	MinRate         int
	MaxRate         int
	ExperienceYears int
	Specialty       string
	SortKey         string
}

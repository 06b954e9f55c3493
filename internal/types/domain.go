package types

import "time"

// ------------------------------
// Core Domain Entities
// ------------------------------

// Role is the declared user type of an authenticated identity.
type Role string

const (
	RoleClient    Role = "client"
	RoleCaregiver Role = "caregiver"
	RoleAdmin     Role = "admin"
)

// Known reports whether r is one of the roles the backend hands out.
func (r Role) Known() bool {
	return r == RoleClient || r == RoleCaregiver || r == RoleAdmin
}

// User is the identity payload returned by GET /api/auth/user/.
type User struct {
	ID          int64  `json:"pk"`
	Email       string `json:"email"`
	Username    string `json:"username,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	UserType    Role   `json:"user_type,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// Caregiver is a discovery-search candidate: a read-only projection of a
// caregiver profile. MatchScore is derived locally and never sent back.
type Caregiver struct {
	ID              int64    `json:"id"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	HourlyRate      Rate     `json:"hourly_rate"`
	ExperienceYears int      `json:"experience_years"`
	AverageRating   float64  `json:"average_rating"`
	TotalReviews    int      `json:"total_reviews"`
	Bio             string   `json:"bio,omitempty"`
	City            string   `json:"city,omitempty"`
	ProfileImage    string   `json:"profile_image,omitempty"`
	Specialties     []string `json:"specialties,omitempty"`

	MatchScore int `json:"-"`
}

// Name returns the candidate's display name.
func (c Caregiver) Name() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// Appointment mirrors the backend appointment record.
type Appointment struct {
	ID                  int64  `json:"id"`
	Caregiver           int64  `json:"caregiver"`
	CaregiverName       string `json:"caregiver_name,omitempty"`
	ClientName          string `json:"client_name,omitempty"`
	ServiceType         string `json:"service_type"`
	Date                string `json:"date"`
	StartTime           string `json:"start_time"`
	EndTime             string `json:"end_time"`
	DurationHours       float64 `json:"duration_hours"`
	HourlyRateAtBooking Rate   `json:"hourly_rate_at_booking"`
	NotesToCaregiver    string `json:"notes_to_caregiver,omitempty"`
	Status              string `json:"status"`
	Location            string `json:"location,omitempty"`
}

// Active reports whether the appointment still needs caregiver attention.
func (a Appointment) Active() bool {
	return a.Status == "pending" || a.Status == "confirmed"
}

// CaregiverProfile is the caregiver's own marketplace profile.
type CaregiverProfile struct {
	ID              int64    `json:"id,omitempty"`
	FirstName       string   `json:"first_name,omitempty"`
	Bio             string   `json:"bio"`
	HourlyRate      Rate     `json:"hourly_rate"`
	ExperienceYears int      `json:"experience_years"`
	Location        string   `json:"location"`
	Specialties     []string `json:"specialties,omitempty"`
	ProfileImage    string   `json:"profile_image,omitempty"`

	// The backend answers the /me/ probe with {"exists": false} instead of a
	// 404 on some deployments; both mean "run the profile wizard".
	Exists *bool `json:"exists,omitempty"`
}

// Missing reports whether the payload signals an absent profile.
func (p *CaregiverProfile) Missing() bool {
	return p == nil || (p.Exists != nil && !*p.Exists)
}

// DashboardStats is the caregiver earnings summary.
type DashboardStats struct {
	TotalEarnings Rate    `json:"total_earnings"`
	HoursWorked   float64 `json:"hours_worked"`
	Rating        float64 `json:"rating"`
}

// AvailabilitySlot is one weekday window of a caregiver schedule.
type AvailabilitySlot struct {
	Day    string `json:"day"`
	Active bool   `json:"active"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// Notification is a marketplace notification for the current user.
type Notification struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

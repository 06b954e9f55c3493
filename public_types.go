package carenest

import "github.com/carenest/carenest-go/internal/types"

// Public type aliases so SDK consumers can import only the carenest package.
type (
	// Domain entities
	User             = types.User
	Caregiver        = types.Caregiver
	Appointment      = types.Appointment
	CaregiverProfile = types.CaregiverProfile
	DashboardStats   = types.DashboardStats
	AvailabilitySlot = types.AvailabilitySlot
	Notification     = types.Notification
	Rate             = types.Rate
	Role             = types.Role

	// Requests
	LoginRequest             = types.LoginRequest
	RegisterRequest          = types.RegisterRequest
	CreateAppointmentRequest = types.CreateAppointmentRequest
	DiscoveryFilters         = types.DiscoveryFilters

	// Responses
	EnqueueAck = types.EnqueueAck

	// Errors
	APIError  = types.APIError
	ErrorKind = types.ErrorKind
)

// Roles the backend hands out.
const (
	RoleClient    = types.RoleClient
	RoleCaregiver = types.RoleCaregiver
	RoleAdmin     = types.RoleAdmin
)

// Closed failure taxonomy; see APIError.Kind.
const (
	KindUnknown       = types.KindUnknown
	KindAuthorization = types.KindAuthorization
	KindValidation    = types.KindValidation
	KindTransport     = types.KindTransport
)

// NewRate builds a valid Rate, mostly useful in tests and fixtures.
func NewRate(v float64) Rate { return types.NewRate(v) }

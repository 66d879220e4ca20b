package constants

const (
	// SessionCookieName is the cookie used by the session middleware.
	SessionCookieName = "hazard_session"

	// ContextKeyUserID stores the authenticated citizen ID in the session and gin context.
	ContextKeyUserID = "user_id"

	// ContextKeyRequestID carries the per-request correlation ID.
	ContextKeyRequestID = "request_id"

	// MinPasswordLength is the shortest password accepted at registration.
	MinPasswordLength = 6

	// DefaultNearbyRadiusKm is used when a nearby query omits radiusKm.
	DefaultNearbyRadiusKm = 10.0

	// MaxNearbyRadiusKm caps nearby queries.
	MaxNearbyRadiusKm = 500.0

	// Optional list pagination bounds.
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

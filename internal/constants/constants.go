package constants

const (
	// ContextKeyUserID is the gin context key holding the authenticated user's id.
	ContextKeyUserID = "user_id"

	// BearerSchemePrefix is the expected Authorization header scheme.
	BearerSchemePrefix = "Bearer "

	// MinPasswordLength is the minimum accepted password length at registration.
	MinPasswordLength = 6
)

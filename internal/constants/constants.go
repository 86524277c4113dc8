package constants

const (
	// ContextKeyUser is the gin context key the auth middleware stores the
	// authenticated user under.
	ContextKeyUser = "current_user"

	// TokenType is the scheme reported alongside issued access tokens.
	TokenType = "bearer"
)

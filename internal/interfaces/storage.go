package interfaces

// TokenStore is durable storage for the single session token.
type TokenStore interface {
	// Load returns the stored token, or "" when none is stored
	Load() (string, error)

	// Save overwrites the stored token
	Save(token string) error

	// Clear removes the stored token; clearing an empty store is not an error
	Clear() error
}

package tokenpkg

import "time"

// Maker is an interface for managing access tokens.
type Maker interface {
	// CreateToken creates a token for the given email and duration.
	CreateToken(email string, duration time.Duration) (string, *Payload, error)

	// VerifyToken checks if the given token is valid.
	VerifyToken(token string) (*Payload, error)
}

package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrMissingSigningSecret indicates the service was configured without a signing secret
	ErrMissingSigningSecret = errors.New("token signing secret is not configured")

	// ErrWeakSigningSecret indicates the signing secret is shorter than MinSecretLength
	ErrWeakSigningSecret = errors.New("token signing secret is too short")

	// ErrInvalidCredentials is the single error for unknown usernames and wrong passwords
	ErrInvalidCredentials = errors.New("invalid login credentials")
)

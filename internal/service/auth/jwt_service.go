package auth

import (
	"context"
	"time"

	"github.com/phrazzld/coursehub-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token containing the user's information.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, userID primitive.ObjectID, role domain.Role) (string, error)

	// ValidateToken validates the provided access token string and extracts the claims.
	// Returns the claims containing user information if the token is valid,
	// or an error if validation fails (expired, invalid signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the custom claims structure for the JWT tokens.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID primitive.ObjectID

	// Role is the user's role at issue time.
	Role domain.Role

	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

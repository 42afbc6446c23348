package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is a user's capability level.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// MaxUsernameLength bounds usernames.
const MaxUsernameLength = 64

// User is a registered learner or administrator.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username string             `bson:"username"      json:"username"`

	// HashedPassword holds the bcrypt hash, never the plaintext.
	HashedPassword string `bson:"password" json:"-"`

	Role            Role                   `bson:"role"              json:"role"`
	EnrolledCourses []primitive.ObjectID   `bson:"enrolledCourses"   json:"enrolledCourses"`
	Profile         map[string]interface{} `bson:"profile,omitempty" json:"profile,omitempty"`
	CreatedAt       time.Time              `bson:"createdAt"         json:"createdAt"`
	UpdatedAt       time.Time              `bson:"updatedAt"         json:"updatedAt"`
}

// NewUser builds a User from an already hashed password.
// The store assigns the ID on insert.
func NewUser(username, hashedPassword string, role Role, profile map[string]interface{}) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		Username:        strings.TrimSpace(username),
		HashedPassword:  hashedPassword,
		Role:            role,
		EnrolledCourses: []primitive.ObjectID{},
		Profile:         profile,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.Username == "" {
		return NewValidationError("username", "is required", nil)
	}
	if len(u.Username) > MaxUsernameLength {
		return NewValidationError("username", "is too long", nil)
	}
	if u.HashedPassword == "" {
		return NewValidationError("password", "is required", nil)
	}
	if u.Role != RoleUser && u.Role != RoleAdmin {
		return NewValidationError("role", "is not a known role", nil)
	}
	for key := range u.Profile {
		if err := validateFieldName(key); err != nil {
			return err
		}
	}
	return nil
}

// IsAdmin reports whether the user holds the admin capability.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsEnrolled reports whether courseID is in the user's enrollment set.
func (u *User) IsEnrolled(courseID primitive.ObjectID) bool {
	for _, id := range u.EnrolledCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

// ParseID parses a hex object ID supplied by a client.
func ParseID(field, hex string) (primitive.ObjectID, error) {
	if hex == "" {
		return primitive.NilObjectID, NewValidationError(field, "is required", nil)
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, NewValidationError(field, "has invalid format", ErrInvalidID)
	}
	return id, nil
}

// validateFieldName rejects document keys the store would interpret as operators or paths.
func validateFieldName(name string) error {
	if name == "" || strings.HasPrefix(name, "$") || strings.Contains(name, ".") {
		return NewValidationError(name, "is not a valid field name", nil)
	}
	return nil
}

package domain

import (
	"errors"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("  alice ", "$2a$10$hash", RoleUser, map[string]interface{}{"fullName": "Alice"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.Username != "alice" {
		t.Errorf("Expected trimmed username alice, got %q", user.Username)
	}
	if user.HashedPassword != "$2a$10$hash" {
		t.Errorf("Expected hashed password to be kept, got %q", user.HashedPassword)
	}
	if user.EnrolledCourses == nil || len(user.EnrolledCourses) != 0 {
		t.Errorf("Expected empty, non-nil enrollment set, got %v", user.EnrolledCourses)
	}
	if !user.ID.IsZero() {
		t.Error("Expected ID to be left for the store to assign")
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}
}

func TestNewUserValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		hash     string
		role     Role
		profile  map[string]interface{}
		field    string
	}{
		{name: "empty username", username: "   ", hash: "h", role: RoleUser, field: "username"},
		{name: "long username", username: strings.Repeat("a", MaxUsernameLength+1), hash: "h", role: RoleUser, field: "username"},
		{name: "empty hash", username: "bob", hash: "", role: RoleUser, field: "password"},
		{name: "unknown role", username: "bob", hash: "h", role: "owner", field: "role"},
		{name: "operator profile key", username: "bob", hash: "h", role: RoleUser, profile: map[string]interface{}{"$set": 1}, field: "$set"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewUser(tc.username, tc.hash, tc.role, tc.profile)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Expected validation error, got %v", err)
			}
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Expected *ValidationError, got %T", err)
			}
			if vErr.Field != tc.field {
				t.Errorf("Expected field %q, got %q", tc.field, vErr.Field)
			}
		})
	}
}

func TestUserEnrollmentHelpers(t *testing.T) {
	courseID := primitive.NewObjectID()
	user := &User{Role: RoleAdmin, EnrolledCourses: []primitive.ObjectID{courseID}}

	if !user.IsEnrolled(courseID) {
		t.Error("Expected user to be enrolled")
	}
	if user.IsEnrolled(primitive.NewObjectID()) {
		t.Error("Expected user not to be enrolled in an unrelated course")
	}
	if !user.IsAdmin() {
		t.Error("Expected admin role to be reported")
	}
}

func TestParseID(t *testing.T) {
	id := primitive.NewObjectID()

	got, err := ParseID("id", id.Hex())
	if err != nil || got != id {
		t.Fatalf("Expected %s, got %s (err %v)", id.Hex(), got.Hex(), err)
	}

	if _, err := ParseID("id", "not-an-id"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("Expected ErrInvalidID, got %v", err)
	}
	if _, err := ParseID("id", ""); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}
}

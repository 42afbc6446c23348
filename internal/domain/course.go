package domain

import (
	"encoding/json"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxCourseTitleLength bounds course titles.
const MaxCourseTitleLength = 200

// reservedCourseFields are managed by the service and cannot be supplied as custom fields.
var reservedCourseFields = map[string]struct{}{
	"_id":       {},
	"id":        {},
	"createdAt": {},
	"updatedAt": {},
}

// Course is a catalog entry. Fields holds arbitrary admin-supplied attributes,
// stored inline alongside the named ones.
type Course struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty"`
	Title       string                 `bson:"title"`
	Description string                 `bson:"description,omitempty"`
	Fields      map[string]interface{} `bson:",inline"`
	CreatedAt   time.Time              `bson:"createdAt"`
	UpdatedAt   time.Time              `bson:"updatedAt"`
}

// CoursePatch is a validated partial update of a course.
type CoursePatch map[string]interface{}

// NewCourse builds a Course from request fields. title is required.
func NewCourse(fields map[string]interface{}) (*Course, error) {
	if _, ok := fields["title"]; !ok {
		return nil, NewValidationError("title", "is required", nil)
	}

	patch, err := NewCoursePatch(fields)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	course := &Course{
		Fields:    map[string]interface{}{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for key, value := range patch {
		switch key {
		case "title":
			course.Title = value.(string)
		case "description":
			course.Description = value.(string)
		default:
			course.Fields[key] = value
		}
	}

	return course, nil
}

// NewCoursePatch validates a partial update. It must name at least one field,
// may not touch reserved fields, and title, when present, must be a non-blank string.
func NewCoursePatch(fields map[string]interface{}) (CoursePatch, error) {
	if len(fields) == 0 {
		return nil, NewValidationError("", "no fields to update", nil)
	}

	patch := make(CoursePatch, len(fields))
	for key, value := range fields {
		if _, reserved := reservedCourseFields[key]; reserved {
			return nil, NewValidationError(key, "cannot be set", nil)
		}
		if err := validateFieldName(key); err != nil {
			return nil, err
		}

		switch key {
		case "title":
			title, ok := value.(string)
			if !ok || strings.TrimSpace(title) == "" {
				return nil, NewValidationError("title", "must be a non-empty string", nil)
			}
			if len(title) > MaxCourseTitleLength {
				return nil, NewValidationError("title", "is too long", nil)
			}
			value = strings.TrimSpace(title)
		case "description":
			if _, ok := value.(string); !ok {
				return nil, NewValidationError("description", "must be a string", nil)
			}
		}
		patch[key] = value
	}

	return patch, nil
}

// MarshalJSON flattens custom fields next to the named ones.
func (c Course) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(c.Fields)+5)
	for key, value := range c.Fields {
		out[key] = value
	}
	out["id"] = c.ID
	out["title"] = c.Title
	if c.Description != "" {
		out["description"] = c.Description
	}
	out["createdAt"] = c.CreatedAt
	out["updatedAt"] = c.UpdatedAt
	return json.Marshal(out)
}

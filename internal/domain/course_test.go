package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewCourse(t *testing.T) {
	course, err := NewCourse(map[string]interface{}{
		"title":       " Intro ",
		"description": "Basics",
		"level":       "beginner",
		"hours":       12.0,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if course.Title != "Intro" {
		t.Errorf("Expected trimmed title, got %q", course.Title)
	}
	if course.Description != "Basics" {
		t.Errorf("Expected description Basics, got %q", course.Description)
	}
	if course.Fields["level"] != "beginner" || course.Fields["hours"] != 12.0 {
		t.Errorf("Expected custom fields to be kept, got %v", course.Fields)
	}
	if _, ok := course.Fields["title"]; ok {
		t.Error("Title must not be duplicated into custom fields")
	}
}

func TestNewCourseValidation(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]interface{}
	}{
		{name: "missing title", fields: map[string]interface{}{"description": "x"}},
		{name: "blank title", fields: map[string]interface{}{"title": "  "}},
		{name: "non string title", fields: map[string]interface{}{"title": 42.0}},
		{name: "non string description", fields: map[string]interface{}{"title": "A", "description": true}},
		{name: "reserved id", fields: map[string]interface{}{"title": "A", "_id": "x"}},
		{name: "operator key", fields: map[string]interface{}{"title": "A", "$where": "1"}},
		{name: "dotted key", fields: map[string]interface{}{"title": "A", "a.b": 1}},
		{name: "empty", fields: map[string]interface{}{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewCourse(tc.fields); !errors.Is(err, ErrValidation) {
				t.Errorf("Expected validation error, got %v", err)
			}
		})
	}
}

func TestNewCoursePatch(t *testing.T) {
	patch, err := NewCoursePatch(map[string]interface{}{"description": "Updated", "level": "advanced"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(patch) != 2 || patch["level"] != "advanced" {
		t.Errorf("Unexpected patch %v", patch)
	}

	if _, err := NewCoursePatch(map[string]interface{}{"createdAt": "now"}); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected reserved field to be rejected, got %v", err)
	}
	if _, err := NewCoursePatch(nil); !errors.Is(err, ErrValidation) {
		t.Errorf("Expected empty patch to be rejected, got %v", err)
	}
}

func TestCourseMarshalJSON(t *testing.T) {
	id := primitive.NewObjectID()
	course := Course{
		ID:     id,
		Title:  "Intro",
		Fields: map[string]interface{}{"level": "beginner"},
	}

	data, err := json.Marshal(course)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Expected valid JSON, got %v", err)
	}
	if out["id"] != id.Hex() {
		t.Errorf("Expected id %s, got %v", id.Hex(), out["id"])
	}
	if out["title"] != "Intro" || out["level"] != "beginner" {
		t.Errorf("Expected flattened fields, got %v", out)
	}
	if _, ok := out["description"]; ok {
		t.Error("Empty description should be omitted")
	}
}

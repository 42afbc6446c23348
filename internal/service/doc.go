// Package service contains the use cases that span more than one store.
//
// Single-store operations (catalog reads, course create and update, login)
// are served by the API handlers directly against the store interfaces.
// Operations that coordinate users and courses live here so that the
// ordering of their store calls, and what a partial failure means, is
// decided in one place:
//
//   - Enroll checks the course exists before the atomic enrollment update.
//   - DeleteCourse removes the course and, when cascading is configured,
//     pulls it from every enrollment set.
//
// The package depends on store interfaces only, never on the MongoDB adapters.
package service

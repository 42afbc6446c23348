// Package api serves the CourseHub HTTP surface: registration and login,
// the public course catalog, the authenticated user endpoints and the admin
// course management routes. Handlers decode and validate requests, call the
// stores or the enrollment service, and map errors to safe client messages.
package api

// Package domain contains the core business entities (users and courses),
// their validation rules and the domain errors shared by every layer.
package domain

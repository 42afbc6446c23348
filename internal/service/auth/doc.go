// Package auth provides credential hashing and signed session tokens.
package auth

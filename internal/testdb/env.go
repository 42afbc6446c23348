//go:build integration

package testdb

import (
	"log/slog"
	"os"
)

// Environment variables consulted for the test connection string, in order.
const (
	EnvTestMongoURI = "COURSEHUB_TEST_MONGODB_URI"
	EnvDatabaseURI  = "COURSEHUB_DATABASE_URI"
)

// GetTestDatabaseURI returns the first non-empty connection string from the
// environment, or "" when none is configured.
func GetTestDatabaseURI() string {
	for i, name := range []string{EnvTestMongoURI, EnvDatabaseURI} {
		if uri := os.Getenv(name); uri != "" {
			if i > 0 {
				slog.Debug("using fallback test database variable",
					"used_var", name,
					"preferred_var", EnvTestMongoURI,
				)
			}
			return uri
		}
	}
	return ""
}

// ShouldSkipDatabaseTest reports whether no test database is configured.
func ShouldSkipDatabaseTest() bool {
	return GetTestDatabaseURI() == ""
}

// isCIEnvironment returns true if running under a common CI system.
func isCIEnvironment() bool {
	for _, name := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

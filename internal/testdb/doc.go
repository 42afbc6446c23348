//go:build integration

// Package testdb provides helpers for tests that run against a real MongoDB
// deployment.
//
// Each call to GetTestDatabaseWithT hands the test its own freshly named
// database, which is dropped when the test completes. Tests can therefore run
// in parallel without sharing documents or indexes.
//
// # Basic Usage
//
//	func TestMyFeature(t *testing.T) {
//	    t.Parallel()
//
//	    db := testdb.GetTestDatabaseWithT(t)
//	    users := mongodb.NewUserStore(db, 5*time.Second, slog.Default())
//	    require.NoError(t, users.EnsureIndexes(context.Background()))
//	    // ...
//	}
//
// # Environment Variables
//
//   - COURSEHUB_TEST_MONGODB_URI: preferred connection string
//   - COURSEHUB_DATABASE_URI: fallback, shared with the server configuration
//
// When neither is set the test is skipped locally and fails in CI.
package testdb

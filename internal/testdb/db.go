//go:build integration

package testdb

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"testing"
	"time"

	"github.com/phrazzld/coursehub-api/internal/redact"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// TestTimeout bounds connection setup and cleanup.
const TestTimeout = 10 * time.Second

// GetTestDatabaseWithT returns a uniquely named database on the configured
// deployment. The database is dropped and the client disconnected when t
// finishes.
func GetTestDatabaseWithT(t *testing.T) *mongo.Database {
	t.Helper()

	uri := GetTestDatabaseURI()
	if uri == "" {
		if isCIEnvironment() {
			t.Fatalf("%s not set in CI environment", EnvTestMongoURI)
		}
		t.Skipf("%s not set - skipping integration test", EnvTestMongoURI)
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(TestTimeout))
	if err != nil {
		t.Fatalf("failed to create test client: %s", redact.Error(err))
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		t.Fatalf("test database unreachable: %s", redact.Error(err))
	}

	db := client.Database(uniqueName(t))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("failed to drop test database %s: %s", db.Name(), redact.Error(err))
		}
		if err := client.Disconnect(ctx); err != nil {
			t.Logf("failed to disconnect test client: %s", redact.Error(err))
		}
	})

	return db
}

// uniqueName yields a database name that stays under MongoDB's 64 byte limit.
func uniqueName(t *testing.T) string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		t.Fatalf("failed to generate database name: %v", err)
	}
	return "coursehub_test_" + hex.EncodeToString(b)
}

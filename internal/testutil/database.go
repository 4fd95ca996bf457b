// Package testutil provides testing utilities for database integration tests.
//
// Environment Variables:
//
// Integration tests run against a real MongoDB and are skipped unless
// MONGODB_TEST_URI is set, for example:
//
//	MONGODB_TEST_URI=mongodb://localhost:27017 go test ./...
//
// Database Setup:
//
//	db := testutil.SetupMongoDB(t)
//
// Every call gets its own randomly named database, dropped on cleanup.
package testutil

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/iamRazzakk/storefront-api/internal/database"
)

// MongoTestURIEnv is the variable holding the test MongoDB connection string.
const MongoTestURIEnv = "MONGODB_TEST_URI"

// GetMongoTestURI returns the MongoDB test URI, or an empty string when unset.
func GetMongoTestURI() string {
	return os.Getenv(MongoTestURIEnv)
}

// TestDatabaseName returns a unique database name for a test run.
func TestDatabaseName() string {
	return "storefront_test_" + strings.ReplaceAll(uuid.Must(uuid.NewV7()).String(), "-", "")
}

// SetupMongoDB connects to the test MongoDB and returns a fresh database.
// The test is skipped when MONGODB_TEST_URI is not set.
func SetupMongoDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := GetMongoTestURI()
	if uri == "" {
		t.Skipf("%s not set, skipping MongoDB integration test", MongoTestURIEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := database.Connect(ctx, database.Config{
		URI:            uri,
		MaxPoolSize:    10,
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, err, "failed to connect to mongodb")

	db := client.Database(TestDatabaseName())

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return db
}

// Package store persists Bio-Pass session metadata in an opaque key-value
// slot.
//
// The lifecycle controller only needs three operations, captured by Store:
// Get, Set and Remove. Values are opaque bytes; the controller writes a
// reversible base64 encoding of the session claims (never key material), so
// no backend here is expected to provide confidentiality.
//
// # Backends
//
//   - MemoryStore: process-local map, the default.
//   - LocalStore: one file per key under a base directory.
//   - RedisStore: github.com/redis/go-redis/v9, optional key prefix and TTL.
//   - PostgresStore: github.com/jackc/pgx/v5 with goose-managed schema.
//   - MongoStore: go.mongodb.org/mongo-driver/v2, one document per key.
//   - SQLiteStore: modernc.org/sqlite through database/sql.
//   - S3Store: github.com/aws/aws-sdk-go-v2/service/s3, one object per key.
//
// Open builds a backend from Config, which is populated from the environment:
//
//	cfg, err := config.Load[store.Config]()
//	if err != nil { ... }
//
//	backend, err := store.Open(ctx, cfg, slog.Default())
//	if err != nil { ... }
//	defer backend.Close()
//
// # Error Handling
//
// Get returns ErrNotFound for an empty slot. Remove is idempotent: removing a
// missing key is not an error. Empty keys are rejected with ErrInvalidKey.
// Backend failures are wrapped so callers can match them with errors.Is.
package store

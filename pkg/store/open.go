package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverLocal    = "local"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverSQLite   = "sqlite"
	DriverS3       = "s3"
)

// Config selects and configures a backend.
type Config struct {
	Driver   string `env:"BIOPASS_STORE" envDefault:"memory"`
	Local    LocalConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Mongo    MongoConfig
	SQLite   SQLiteConfig
	S3       S3Config
}

// Open connects the backend named by cfg.Driver. Postgres schema migrations
// are applied before the store is returned; log receives their output and
// may be nil.
func Open(ctx context.Context, cfg Config, log *slog.Logger) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", DriverMemory:
		return NewMemoryStore(), nil

	case DriverLocal, "file":
		s, err := NewLocalStore(cfg.Local.Dir)
		if err != nil {
			return nil, err
		}
		return s, nil

	case DriverRedis:
		client, err := ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client, WithRedisPrefix(cfg.Redis.Prefix), WithRedisTTL(cfg.Redis.TTL)), nil

	case DriverPostgres, "pg":
		pool, err := ConnectPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		var migrationLog logger
		if log != nil {
			migrationLog = log
		}
		if err := MigratePostgres(ctx, pool, cfg.Postgres.MigrationsTable, migrationLog); err != nil {
			pool.Close()
			return nil, err
		}
		return NewPostgresStore(pool), nil

	case DriverMongo, "mongodb":
		client, err := ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		return NewMongoStore(client, cfg.Mongo.Database, cfg.Mongo.Collection), nil

	case DriverSQLite:
		s, err := OpenSQLite(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return s, nil

	case DriverS3:
		s, err := NewS3Store(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return s, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// Healthcheck adapts a backend to the func(context.Context) error shape used
// by health endpoints.
func Healthcheck(b Backend) func(context.Context) error {
	return func(ctx context.Context) error {
		if b == nil {
			return errors.Join(ErrHealthcheckFailed, ErrInvalidConfig)
		}
		return b.Ping(ctx)
	}
}

// Package config loads configuration structs from the environment.
//
// It wraps github.com/joho/godotenv (optional .env files) and
// github.com/caarlos0/env/v11 (tag-driven parsing). Each package of the
// service exposes its own Config struct with env and envDefault tags; the
// binary composes them into one struct and calls Load once at startup:
//
//	cfg, err := config.Load[appConfig]()
//
// A struct implementing Validator is checked after parsing and rejected with
// ErrInvalidConfig. Parse failures are wrapped in ErrParsingConfig.
//
// Load does not cache: tests can call it repeatedly with WithEnvironment to
// supply a fixed map instead of touching the process environment.
package config

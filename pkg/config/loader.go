package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Validator is implemented by config structs that check their own values
// after parsing.
type Validator interface {
	Validate() error
}

// Option configures Load.
type Option func(*options)

type options struct {
	files   []string
	environ map[string]string
	prefix  string
}

// WithEnvFiles loads the given .env files before parsing. Unlike the default
// ".env", a listed file that cannot be read is an error. Values already in
// the process environment win.
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.files = append(o.files, files...) }
}

// WithEnvironment parses from m instead of the process environment.
// No .env file is read.
func WithEnvironment(m map[string]string) Option {
	return func(o *options) { o.environ = m }
}

// WithPrefix prepends prefix to every variable name.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// Load parses the environment into a new T using its env/envDefault tags and
// runs Validate when T implements Validator. Nested structs are parsed too,
// so an application config can embed the per-package Config types.
//
//	type App struct {
//		Lifecycle lifecycle.Config
//		Store     store.Config
//	}
//
//	cfg, err := config.Load[App]()
func Load[T any](opts ...Option) (T, error) {
	var cfg T

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.environ == nil {
		if len(o.files) > 0 {
			if err := godotenv.Load(o.files...); err != nil {
				return cfg, errors.Join(ErrEnvFile, err)
			}
		} else {
			// .env is optional
			_ = godotenv.Load()
		}
	}

	envOpts := env.Options{Prefix: o.prefix}
	if o.environ != nil {
		envOpts.Environment = o.environ
	}
	if err := env.ParseWithOptions(&cfg, envOpts); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}

	if v, ok := any(&cfg).(Validator); ok {
		if err := v.Validate(); err != nil {
			return cfg, errors.Join(ErrInvalidConfig, err)
		}
	}
	return cfg, nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}

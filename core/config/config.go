package config

import (
	"errors"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> T
)

// Load fills cfg from environment variables. The first call for a type parses
// the environment; later calls for the same type copy the cached value.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}

	dotenvOnce.Do(func() {
		// A missing .env file is the normal case outside local development.
		_ = godotenv.Load()
	})

	key := reflect.TypeOf((*T)(nil)).Elem()
	if cached, ok := cache.Load(key); ok {
		*cfg = cached.(T)
		return nil
	}

	var loaded T
	if err := env.Parse(&loaded); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	actual, _ := cache.LoadOrStore(key, loaded)
	*cfg = actual.(T)
	return nil
}

// MustLoad is like Load but panics on failure. Intended for application startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

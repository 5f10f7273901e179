// Package config loads configuration structs from the environment.
//
// Fields are declared with `env` tags parsed by github.com/caarlos0/env; a
// .env file, when present, is loaded once per process via godotenv before
// the first parse. Required fields that are missing make Load fail, which
// keeps misconfiguration a startup error instead of a runtime surprise.
//
//	type KeystoreConfig struct {
//		Path          string `env:"KEYSTORE_PATH,required"`
//		StorePassword string `env:"KEYSTORE_PASSWORD,required"`
//	}
//
//	var cfg KeystoreConfig
//	config.MustLoad(&cfg)
package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrNilPointer is returned when a nil pointer is passed to Load.
	ErrNilPointer = errors.New("config: nil pointer")

	// ErrParsingConfig is returned when environment variables cannot be
	// parsed into the config struct.
	ErrParsingConfig = errors.New("config: failed to parse environment")
)

// dotenvOnce guards the one-time .env bootstrap. A missing .env file is not
// an error; explicit environment always wins over file contents.
var dotenvOnce sync.Once

// Load parses environment variables into cfg based on its `env` field tags.
func Load[T any](cfg *T) error {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	if cfg == nil {
		return ErrNilPointer
	}

	if err := env.Parse(cfg); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics on failure. Use for configuration the
// process cannot start without.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

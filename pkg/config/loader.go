package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// registry keeps one parsed copy per configuration type.
type registry struct {
	mu     sync.RWMutex
	values map[string]any
	onces  map[string]*sync.Once
}

var (
	loaded = newRegistry()

	dotenvOnce sync.Once
)

func newRegistry() *registry {
	return &registry{
		values: make(map[string]any),
		onces:  make(map[string]*sync.Once),
	}
}

// LoadEnv reads the given .env files into the process environment.
// Variables that are already set are not overridden.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Load parses environment variables into v.
// The first successful parse of a type is cached and returned to every later caller.
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		// .env is optional
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	key := typeKey[T]()

	if cached, ok := loaded.get(key); ok {
		*v = cached.(T)
		return nil
	}

	once := loaded.once(key)

	var err error
	once.Do(func() {
		if parseErr := env.Parse(v); parseErr != nil {
			err = errors.Join(ErrParsingConfig, parseErr)
			return
		}
		loaded.set(key, *v)
	})
	if err != nil {
		// Allow a later call to retry, e.g. after the environment was fixed.
		loaded.forget(key)
		return err
	}

	if cached, ok := loaded.get(key); ok {
		*v = cached.(T)
		return nil
	}

	return ErrConfigNotLoaded
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Reset drops every cached configuration. Intended for tests.
func Reset() {
	loaded.mu.Lock()
	defer loaded.mu.Unlock()
	loaded.values = make(map[string]any)
	loaded.onces = make(map[string]*sync.Once)
}

func (r *registry) get(key string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	return v, ok
}

func (r *registry) set(key string, v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = v
}

func (r *registry) once(key string) *sync.Once {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.onces[key]
	if !ok {
		o = new(sync.Once)
		r.onces[key] = o
	}
	return o
}

func (r *registry) forget(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.onces, key)
	delete(r.values, key)
}

func typeKey[T any]() string {
	t := reflect.TypeFor[T]()
	return t.PkgPath() + "." + t.String()
}

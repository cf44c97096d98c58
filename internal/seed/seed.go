package seed

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"ReviewAnalyzer/internal/domain"
)

// Request carries all parameters required to load a seed dataset.
type Request struct {
	// Path is a file path or database DSN, depending on the loader.
	Path string
	// Table names the source table for database loaders.
	Table string
	// Location interprets seed timestamps that carry no zone.
	Location *time.Location
	// LoadedAt stamps rows whose timestamp is blank.
	LoadedAt time.Time
}

// Loader reads raw reviews from one kind of source (CSV file, SQLite table, ...).
type Loader interface {
	Name() string
	Load(ctx context.Context, req Request) ([]domain.RawReview, error)
}

// UnknownLoaderError reports a seed source name that no loader answers to.
type UnknownLoaderError struct {
	Name      string
	Available []string
}

func (e *UnknownLoaderError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("seed loader %q is not registered; no loaders available", e.Name)
	}
	return fmt.Sprintf("seed loader %q is not registered; available: %s", e.Name, strings.Join(e.Available, ", "))
}

// Registry maps seed source names from configuration to loaders.
type Registry struct {
	loaders map[string]Loader
}

// NewRegistry builds a registry holding loaders.
func NewRegistry(loaders ...Loader) *Registry {
	r := &Registry{}
	r.Register(loaders...)
	return r
}

// Register adds loaders; a later loader with the same name replaces the earlier one.
func (r *Registry) Register(loaders ...Loader) {
	if r.loaders == nil {
		r.loaders = make(map[string]Loader, len(loaders))
	}
	for _, l := range loaders {
		r.loaders[l.Name()] = l
	}
}

// Names lists the registered loader names in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.loaders))
	for name := range r.loaders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the loader registered under name, or an *UnknownLoaderError.
func (r *Registry) Resolve(name string) (Loader, error) {
	if l, ok := r.loaders[name]; ok {
		return l, nil
	}
	return nil, &UnknownLoaderError{Name: name, Available: r.Names()}
}

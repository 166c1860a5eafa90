package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/qccodec/internal/ctxlog"
	"github.com/specialistvlad/qccodec/internal/fileset"
	"github.com/specialistvlad/qccodec/internal/model"
)

// Module is the interface every engine package implements to be registered.
type Module interface {
	Register(r *Registry)
}

// EncodeFunc renders a job into an engine's native input.
type EncodeFunc func(ctx context.Context, job model.JobSpec) (model.NativeInput, error)

// Engine holds the non-extractor parts of an engine's registration.
type Engine struct {
	Layout fileset.Layout
	Encode EncodeFunc
}

// Registry holds every registered engine and extractor for one codec instance.
type Registry struct {
	engines map[string]*Engine
	entries []*Entry
	targets map[string]*Entry
	sealed  bool
	logger  *slog.Logger
}

// New creates and initializes a new, empty Registry. Registrations are
// logged through the logger carried by ctx.
func New(ctx context.Context) *Registry {
	return &Registry{
		engines: make(map[string]*Engine),
		targets: make(map[string]*Entry),
		logger:  ctxlog.FromContext(ctx),
	}
}

// RegisterEngine registers an engine's layout and encoder under name.
func (r *Registry) RegisterEngine(name string, engine *Engine) {
	r.mustBeOpen()
	if _, exists := r.engines[name]; exists {
		panic(fmt.Sprintf("engine '%s' already registered", name))
	}
	r.logger.Debug("Registering engine.", "engine", name, "companions", len(engine.Layout.Companions))
	r.engines[name] = engine
}

// RegisterExtractor appends an extractor entry. Two entries of one engine may
// not share a target.
func (r *Registry) RegisterExtractor(entry *Entry) {
	r.mustBeOpen()
	key := entry.Engine + "\x00" + entry.Target.String()
	if prev, exists := r.targets[key]; exists {
		panic(fmt.Sprintf("engine '%s': target '%s' already owned by an extractor on %s", entry.Engine, entry.Target, prev.File))
	}
	r.logger.Debug("Registering extractor.", "engine", entry.Engine, "file", entry.File, "target", entry.Target.String(), "optional", entry.Optional)
	r.targets[key] = entry
	r.entries = append(r.entries, entry)
}

func (r *Registry) mustBeOpen() {
	if r.sealed {
		panic("registry is sealed; registrations must happen before validation")
	}
}

// Engine returns the registration of the named engine.
func (r *Registry) Engine(name string) (*Engine, bool) {
	e, ok := r.engines[name]
	return e, ok
}

// Engines returns the registered engine names, sorted.
func (r *Registry) Engines() []string {
	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extractors returns, in registration order, the entries of engine that read
// files of kind and apply to calc.
func (r *Registry) Extractors(engine string, kind fileset.Kind, calc model.CalcType) []*Entry {
	var out []*Entry
	for _, e := range r.entries {
		if e.Engine == engine && e.File == kind && e.AppliesTo(calc) {
			out = append(out, e)
		}
	}
	return out
}

// Entries returns every entry of engine in registration order.
func (r *Registry) Entries(engine string) []*Entry {
	var out []*Entry
	for _, e := range r.entries {
		if e.Engine == engine {
			out = append(out, e)
		}
	}
	return out
}

package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/qccodec/internal/ctxlog"
)

// Validate performs a parity check between extractor entries and engine
// registrations, then seals the registry. Every problem found is reported
// in one error.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, name := range r.Engines() {
		engine := r.engines[name]
		if engine.Encode == nil {
			errs = append(errs, fmt.Sprintf("engine '%s': no encoder registered", name))
		}
		for _, c := range engine.Layout.Companions {
			if !c.Kind.IsCompanion() {
				errs = append(errs, fmt.Sprintf("engine '%s': layout lists %s as a companion file", name, c.Kind))
			}
			if c.Suffix == "" {
				errs = append(errs, fmt.Sprintf("engine '%s': companion %s has an empty suffix", name, c.Kind))
			}
		}
		if len(engine.Layout.Companions) > 0 && engine.Layout.Basename == nil {
			errs = append(errs, fmt.Sprintf("engine '%s': layout has companion files but no basename extractor", name))
		}
		if len(r.Entries(name)) == 0 {
			logger.Warn("Engine has no extractors registered; decoding it will yield empty results.", "engine", name)
		}
	}

	for _, e := range r.entries {
		engine, ok := r.engines[e.Engine]
		if !ok {
			errs = append(errs, fmt.Sprintf("extractor for '%s' belongs to unregistered engine '%s'", e.Target, e.Engine))
			continue
		}
		if e.Extract == nil {
			errs = append(errs, fmt.Sprintf("engine '%s', target '%s': extractor function is nil", e.Engine, e.Target))
		}
		if e.Target.Len() == 0 {
			errs = append(errs, fmt.Sprintf("engine '%s': extractor on %s has an empty target", e.Engine, e.File))
		}
		if !engine.Layout.Declares(e.File) {
			errs = append(errs, fmt.Sprintf("engine '%s', target '%s': reads %s files, which the engine layout never produces", e.Engine, e.Target, e.File))
		}
		for _, c := range e.CalcTypes {
			if !c.Valid() {
				errs = append(errs, fmt.Sprintf("engine '%s', target '%s': unknown calculation type %s", e.Engine, e.Target, c))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	r.sealed = true
	logger.Debug("Registry validated and sealed.", "engines", len(r.engines), "extractors", len(r.entries))
	return nil
}

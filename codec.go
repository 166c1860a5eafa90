package qccodec

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/specialistvlad/qccodec/internal/collector"
	"github.com/specialistvlad/qccodec/internal/ctxlog"
	"github.com/specialistvlad/qccodec/internal/fileset"
	"github.com/specialistvlad/qccodec/internal/qcerr"
	"github.com/specialistvlad/qccodec/internal/registry"
)

// Codec decodes engine output and encodes engine input for a fixed set of
// engines. Its registry is sealed at construction, so a Codec is safe for
// concurrent use.
type Codec struct {
	logger   *slog.Logger
	registry *registry.Registry
}

// Sources are the outputs of one engine run. Stdout is nil when the caller
// has no stdout text; Directory is empty when there is no result directory.
// Input is the job that produced the outputs, used by extractors that
// rebuild per-step jobs such as optimization trajectories.
type Sources struct {
	Stdout    *string
	Directory string
	Input     *JobSpec
}

// New builds a Codec with the given engines, or with every built-in engine
// when none are given. An inconsistent registration is a programming error
// and panics.
func New(cfg *Config, modules ...registry.Module) *Codec {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, cfg.Output)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New(ctx)
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All engine modules registered.", "count", len(modules))

	if err := reg.Validate(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.", "engines", reg.Engines())

	return &Codec{logger: logger, registry: reg}
}

// Engines returns the names of the registered engines, sorted.
func (c *Codec) Engines() []string {
	return c.registry.Engines()
}

// Decode extracts every value engine's extractors produce for calc from src.
//
// Files are visited in resolution order: stdout, the directory, then the
// engine's companion files. Each extractor registered for a file's kind and
// for calc runs once and writes its target. An optional extractor that finds
// nothing is skipped; any other failure aborts the call and no partial Result
// is returned.
func (c *Codec) Decode(ctx context.Context, engine string, calc CalcType, src Sources) (*Result, error) {
	ctx = ctxlog.WithLogger(ctx, c.logger.With("engine", engine, "calctype", calc.String()))
	logger := ctxlog.FromContext(ctx)

	eng, ok := c.registry.Engine(engine)
	if !ok {
		return nil, qcerr.Parserf("unknown engine %q, registered engines are %s", engine, strings.Join(c.registry.Engines(), ", "))
	}
	if !calc.Valid() {
		return nil, qcerr.Parserf("invalid calculation type %s", calc)
	}
	logger.Debug("Decode started.", "stdout", src.Stdout != nil, "directory", src.Directory)

	result := collector.New()
	for file, err := range fileset.Resolve(ctx, eng.Layout, src.Stdout, src.Directory) {
		if err != nil {
			return nil, err
		}
		entries := c.registry.Extractors(engine, file.Kind, calc)
		logger.Debug("Resolved file.", "kind", file.Kind.String(), "path", file.Path, "extractors", len(entries))

		source := registry.Source{File: file, Stdout: src.Stdout, Input: src.Input}
		for _, entry := range entries {
			value, err := entry.Extract(ctx, source)
			if err != nil {
				if entry.Optional && errors.Is(err, qcerr.ErrPatternNotFound) {
					logger.Debug("Optional value not found, skipping.", "target", entry.Target.String())
					continue
				}
				return nil, fmt.Errorf("extracting %s from %s: %w", entry.Target, file.Kind, err)
			}
			if err := result.Set(entry.Target, value); err != nil {
				return nil, err
			}
			logger.Debug("Extracted value.", "target", entry.Target.String())
		}
	}

	logger.Debug("Decode finished.", "targets", len(result.Paths()))
	return result, nil
}

// Encode renders job as engine's native input.
func (c *Codec) Encode(ctx context.Context, job JobSpec, engine string) (NativeInput, error) {
	ctx = ctxlog.WithLogger(ctx, c.logger.With("engine", engine, "calctype", job.CalcType.String()))

	eng, ok := c.registry.Engine(engine)
	if !ok {
		return NativeInput{}, qcerr.Encoderf("unknown engine %q, registered engines are %s", engine, strings.Join(c.registry.Engines(), ", "))
	}
	if !job.CalcType.Valid() {
		return NativeInput{}, qcerr.Encoderf("invalid calculation type %s", job.CalcType)
	}
	return eng.Encode(ctx, job)
}

package registry

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/specialistvlad/qccodec/internal/ctxlog"
	"github.com/specialistvlad/qccodec/internal/fileset"
	"github.com/specialistvlad/qccodec/internal/model"
	"github.com/specialistvlad/qccodec/internal/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopExtract(context.Context, Source) (any, error) { return nil, nil }

func noopEncode(context.Context, model.JobSpec) (model.NativeInput, error) {
	return model.NativeInput{}, nil
}

func newTestRegistry() *Registry {
	r := New(context.Background())
	r.RegisterEngine("fake", &Engine{
		Layout: fileset.Layout{
			Companions: []fileset.Companion{{Kind: fileset.Hess, Suffix: ".hess"}},
			Basename:   func(string) (string, error) { return "run", nil },
		},
		Encode: noopEncode,
	})
	r.RegisterExtractor(&Entry{
		Engine:    "fake",
		File:      fileset.Stdout,
		CalcTypes: []model.CalcType{model.Energy, model.Gradient},
		Target:    target.MustParse("computed.energy"),
		Extract:   noopExtract,
	})
	r.RegisterExtractor(&Entry{
		Engine:  "fake",
		File:    fileset.Stdout,
		Target:  target.MustParse("provenance.program_version"),
		Extract: noopExtract,
	})
	r.RegisterExtractor(&Entry{
		Engine:    "fake",
		File:      fileset.Hess,
		CalcTypes: []model.CalcType{model.Hessian},
		Target:    target.MustParse("computed.hessian"),
		Extract:   noopExtract,
	})
	return r
}

func targets(entries []*Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Target.String()
	}
	return out
}

func TestExtractors_FilterByFileAndCalcType(t *testing.T) {
	r := newTestRegistry()

	testCases := []struct {
		name     string
		kind     fileset.Kind
		calc     model.CalcType
		expected []string
	}{
		{"energy stdout", fileset.Stdout, model.Energy, []string{"computed.energy", "provenance.program_version"}},
		{"hessian stdout", fileset.Stdout, model.Hessian, []string{"provenance.program_version"}},
		{"hessian hess file", fileset.Hess, model.Hessian, []string{"computed.hessian"}},
		{"energy hess file", fileset.Hess, model.Energy, []string{}},
		{"directory", fileset.Directory, model.Optimization, []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, targets(r.Extractors("fake", tc.kind, tc.calc)))
		})
	}

	assert.Empty(t, r.Extractors("other", fileset.Stdout, model.Energy))
}

func TestRegisterEngine_DuplicatePanics(t *testing.T) {
	r := newTestRegistry()
	assert.Panics(t, func() {
		r.RegisterEngine("fake", &Engine{Encode: noopEncode})
	})
}

func TestRegisterExtractor_DuplicateTargetPanics(t *testing.T) {
	r := newTestRegistry()
	assert.Panics(t, func() {
		r.RegisterExtractor(&Entry{
			Engine:  "fake",
			File:    fileset.Hess,
			Target:  target.MustParse("computed.energy"),
			Extract: noopExtract,
		})
	})
}

func TestValidate_SealsRegistry(t *testing.T) {
	r := newTestRegistry()
	require.NoError(t, r.Validate(context.Background()))

	assert.Panics(t, func() {
		r.RegisterEngine("late", &Engine{Encode: noopEncode})
	})
	assert.Equal(t, []string{"fake"}, r.Engines())
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	r := New(context.Background())
	r.RegisterEngine("broken", &Engine{
		Layout: fileset.Layout{Companions: []fileset.Companion{{Kind: fileset.Stdout}}},
	})
	r.RegisterExtractor(&Entry{
		Engine: "ghost",
		File:   fileset.Stdout,
		Target: target.MustParse("computed.energy"),
	})
	r.RegisterExtractor(&Entry{
		Engine: "broken",
		File:   fileset.Hess,
		Target: target.MustParse("computed.hessian"),
	})

	err := r.Validate(context.Background())
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "engine 'broken': no encoder registered")
	assert.Contains(t, msg, "layout lists stdout as a companion file")
	assert.Contains(t, msg, "companion stdout has an empty suffix")
	assert.Contains(t, msg, "no basename extractor")
	assert.Contains(t, msg, "unregistered engine 'ghost'")
	assert.Contains(t, msg, "extractor function is nil")
	assert.Contains(t, msg, "reads hess files, which the engine layout never produces")

	assert.NotPanics(t, func() {
		r.RegisterEngine("fixed", &Engine{Encode: noopEncode})
	}, "a registry that failed validation stays open")
}

func TestEntry_AppliesTo(t *testing.T) {
	all := &Entry{}
	for _, c := range model.AllCalcTypes() {
		assert.True(t, all.AppliesTo(c), c.String())
	}

	some := &Entry{CalcTypes: []model.CalcType{model.Optimization, model.TransitionState}}
	assert.True(t, some.AppliesTo(model.TransitionState))
	assert.False(t, some.AppliesTo(model.Energy))
}

func TestRegister_LogsThroughContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := New(ctxlog.WithLogger(context.Background(), logger))
	r.RegisterEngine("fake", &Engine{Encode: noopEncode})
	r.RegisterExtractor(&Entry{
		Engine:  "fake",
		File:    fileset.Stdout,
		Target:  target.MustParse("computed.energy"),
		Extract: noopExtract,
	})

	assert.Contains(t, buf.String(), `msg="Registering engine." engine=fake`)
	assert.Contains(t, buf.String(), "target=computed.energy")
}

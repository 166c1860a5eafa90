package qccodec

import (
	"context"
	"sync"

	"github.com/specialistvlad/qccodec/internal/jobfile"
)

// defaultCodec serves the package-level functions: every built-in engine,
// warnings and errors logged as text to stderr.
var defaultCodec = sync.OnceValue(func() *Codec {
	cfg, err := NewConfig(Config{})
	if err != nil {
		panic(err)
	}
	return New(cfg)
})

// Decode calls Decode on the default Codec.
func Decode(ctx context.Context, engine string, calc CalcType, src Sources) (*Result, error) {
	return defaultCodec().Decode(ctx, engine, calc, src)
}

// Encode calls Encode on the default Codec.
func Encode(ctx context.Context, job JobSpec, engine string) (NativeInput, error) {
	return defaultCodec().Encode(ctx, job, engine)
}

// LoadJob reads a job description from an HCL file.
func LoadJob(ctx context.Context, path string) (JobSpec, error) {
	return jobfile.Load(ctx, path)
}

// ParseJob reads a job description from HCL source.
func ParseJob(ctx context.Context, src []byte, filename string) (JobSpec, error) {
	return jobfile.Parse(ctx, src, filename)
}

// MarshalJob writes job as HCL that ParseJob reads back.
func MarshalJob(job JobSpec) ([]byte, error) {
	return jobfile.Marshal(job)
}

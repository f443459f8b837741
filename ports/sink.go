package ports

import (
	"context"

	"gwinfer/domain/run"
	"gwinfer/domain/sample"
)

// ResultSink persists or exports the weighted samples of a completed run.
type ResultSink interface {
	WriteResult(ctx context.Context, manifest *run.Manifest, result *sample.Result) error
}

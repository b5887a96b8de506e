package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-navigator/internal/types"
)

// FileResult pairs a path with its result or error.
type FileResult struct {
	Path   string  `json:"path"`
	Result *Result `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// RunFiles processes paths with at most concurrency runs in flight. A
// failing file is reported in its FileResult and does not stop the others.
// Results keep the order of paths.
func (p *Pipeline) RunFiles(ctx context.Context, paths []string, target *types.Target, concurrency int) ([]FileResult, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make([]FileResult, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range paths {
		g.Go(func() error {
			results[i] = p.runFile(gCtx, path, target)
			return gCtx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (p *Pipeline) runFile(ctx context.Context, path string, target *types.Target) FileResult {
	out := FileResult{Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	res, err := p.Run(ctx, Input{Filename: filepath.Base(path), Data: data, Target: target})
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.Result = res
	return out
}

// Package batch compiles every asset a manifest lists, in parallel.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/flavor/go/assetgen/internal/workspace"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/assemble"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/checksum"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/compiler"
	asseterrors "github.com/provide-io/flavor/go/assetgen/pkg/asset/errors"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/literal"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/manifest"
)

// Status is what happened to one asset.
type Status int

const (
	StatusFailed   Status = iota
	StatusWritten         // output replaced
	StatusUpToDate        // output already matched
	StatusStale           // check mode: output differs or is missing
	StatusSkipped         // not started before cancellation
)

func (s Status) String() string {
	switch s {
	case StatusFailed:
		return "failed"
	case StatusWritten:
		return "written"
	case StatusUpToDate:
		return "up-to-date"
	case StatusStale:
		return "stale"
	case StatusSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result reports one manifest entry. Results keep manifest order.
type Result struct {
	Entry          manifest.Entry
	Status         Status
	SourceChecksum string
	OutputChecksum string // checksum of the generated text
	Size           int    // embedded payload bytes
	Duration       time.Duration
	Err            error
}

// Runner executes a plan.
type Runner struct {
	plan   *manifest.Plan
	logger hclog.Logger
}

// NewRunner creates a Runner. A nil logger discards output.
func NewRunner(plan *manifest.Plan, logger hclog.Logger) *Runner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Runner{plan: plan, logger: logger}
}

// Build generates every output, replacing only files whose content
// changes. The returned error joins every per-asset failure.
func (r *Runner) Build(ctx context.Context) ([]Result, error) {
	return r.run(ctx, r.build)
}

// Check regenerates every output in memory and compares it with the file
// on disk without writing anything. Outputs that differ are reported as
// ErrStaleOutput.
func (r *Runner) Check(ctx context.Context) ([]Result, error) {
	return r.run(ctx, r.check)
}

func (r *Runner) jobs() int {
	jobs := r.plan.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	return min(jobs, max(len(r.plan.Entries), 1))
}

func (r *Runner) run(ctx context.Context, process func(hclog.Logger, manifest.Entry) Result) ([]Result, error) {
	results := make([]Result, len(r.plan.Entries))
	for i, entry := range r.plan.Entries {
		results[i] = Result{Entry: entry, Status: StatusSkipped}
	}

	jobs := r.jobs()
	r.logger.Debug("🚀 Starting batch", "assets", len(results), "jobs", jobs, "preset", r.plan.Preset.Name)

	work := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < jobs; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			logger := r.logger.With("worker", worker)
			for i := range work {
				start := time.Now()
				res := process(logger, r.plan.Entries[i])
				res.Duration = time.Since(start)
				results[i] = res
			}
		}(w)
	}

	for i := range r.plan.Entries {
		if ctx.Err() == nil {
			select {
			case <-ctx.Done():
			case work <- i:
				continue
			}
		}
		r.logger.Warn("⚠️ Batch cancelled", "scheduled", i, "total", len(results))
		break
	}
	close(work)
	wg.Wait()

	var errs []error
	for i := range results {
		if results[i].Status == StatusSkipped {
			results[i].Err = asseterrors.Wrap(results[i].Entry.Source, "schedule", ctx.Err())
		}
		if results[i].Err != nil {
			errs = append(errs, results[i].Err)
		}
	}

	r.logger.Debug("🏁 Batch finished", "assets", len(results), "failed", len(errs))
	return results, errors.Join(errs...)
}

// Render produces the complete text for entry and the checksum of its
// source.
func (r *Runner) Render(logger hclog.Logger, entry manifest.Entry) (text string, sourceSum string, size int, err error) {
	data, err := os.ReadFile(entry.Source)
	if err != nil {
		return "", "", 0, asseterrors.Wrap(entry.Source, "read", err)
	}

	c := compiler.New(compiler.Options{
		Preset:    r.plan.Preset,
		Transform: entry.Transform,
		HTML:      r.plan.HTML,
	}, logger)

	res, err := c.Compile(compiler.RawAsset{
		Path: entry.Source,
		Name: entry.Name,
		Kind: entry.Kind,
		Data: data,
	})
	if err != nil {
		return "", "", 0, err
	}

	sourceSum = checksum.Calculate(data, r.plan.Checksum)

	var header string
	if r.plan.Preset.Format.Target == literal.TargetC {
		header = workspace.HeaderName(entry.Output)
	}
	return r.assembler(logger).Assemble(res.Fragment, header, sourceSum), sourceSum, res.Size, nil
}

func (r *Runner) assembler(logger hclog.Logger) *assemble.Assembler {
	return &assemble.Assembler{
		License: r.plan.License,
		Target:  r.plan.Preset.Format.Target,
		Package: r.plan.Package,
		Stamp:   r.plan.Stamp,
		Mode:    r.plan.Mode,
		Logger:  logger,
	}
}

func (r *Runner) build(logger hclog.Logger, entry manifest.Entry) Result {
	logger = logger.With("source", entry.Source)
	res := Result{Entry: entry, Status: StatusFailed}

	text, sum, size, err := r.Render(logger, entry)
	if err != nil {
		res.Err = err
		logger.Error("❌ Failed to compile asset", "error", err)
		return res
	}
	res.SourceChecksum = sum
	res.OutputChecksum = checksum.Calculate([]byte(text), r.plan.Checksum)
	res.Size = size

	if assemble.Unchanged(entry.Output, text) {
		res.Status = StatusUpToDate
		logger.Debug("✅ Output up to date", "output", entry.Output)
		return res
	}

	if err := r.assembler(logger).WriteFile(entry.Output, text); err != nil {
		res.Err = asseterrors.Wrap(entry.Output, "write", err)
		logger.Error("❌ Failed to write output", "output", entry.Output, "error", err)
		return res
	}

	res.Status = StatusWritten
	logger.Info("📝 Wrote asset", "output", entry.Output, "kind", entry.Kind.String(), "size", size)
	return res
}

func (r *Runner) check(logger hclog.Logger, entry manifest.Entry) Result {
	logger = logger.With("source", entry.Source)
	res := Result{Entry: entry, Status: StatusFailed}

	text, sum, size, err := r.Render(logger, entry)
	if err != nil {
		res.Err = err
		return res
	}
	res.SourceChecksum = sum
	res.OutputChecksum = checksum.Calculate([]byte(text), r.plan.Checksum)
	res.Size = size

	existing, err := os.ReadFile(entry.Output)
	if err != nil {
		res.Status = StatusStale
		res.Err = asseterrors.Wrap(entry.Output, "check", fmt.Errorf("%w: %v", asseterrors.ErrStaleOutput, err))
		logger.Warn("⚠️ Output missing", "output", entry.Output)
		return res
	}

	match, err := checksum.Verify(existing, res.OutputChecksum)
	if err != nil {
		res.Err = asseterrors.Wrap(entry.Output, "check", err)
		return res
	}
	if !match {
		res.Status = StatusStale
		res.Err = asseterrors.Wrap(entry.Output, "check",
			fmt.Errorf("%w: expected %s", asseterrors.ErrStaleOutput, res.OutputChecksum))
		logger.Warn("⚠️ Output out of date", "output", entry.Output)
		return res
	}

	res.Status = StatusUpToDate
	logger.Debug("✅ Output up to date", "output", entry.Output)
	return res
}

package pkg

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/flavor/go/assetgen/pkg/asset/batch"
	"github.com/provide-io/flavor/go/assetgen/pkg/logging"
)

// VerifyOutputsWithLogger checks that every output of the manifest at
// path matches what a build would generate now. It logs one line per
// asset and returns ErrVerificationFailed wrapping the individual
// failures if any output is stale or could not be regenerated.
func VerifyOutputsWithLogger(ctx context.Context, path string, logger hclog.Logger) error {
	logger.Info("Verifying generated sources", "manifest", path)

	results, err := CheckManifest(ctx, path, logger)
	if results == nil && err != nil {
		logger.Error("Failed to load manifest", "error", err)
		return err
	}

	failed := 0
	for _, res := range results {
		switch res.Status {
		case batch.StatusUpToDate:
			logger.Info("✓ Output up to date", "output", res.Entry.Output, "checksum", res.OutputChecksum)
		case batch.StatusStale:
			failed++
			logger.Error("✗ Output stale", "output", res.Entry.Output, "source", res.Entry.Source)
		default:
			failed++
			logger.Error("✗ Output could not be regenerated", "source", res.Entry.Source, "error", res.Err)
		}
	}

	if failed == 0 {
		logger.Info("✓ Verification passed", "assets", len(results))
		return nil
	}

	logger.Error("✗ Verification failed", "error_count", failed)
	return fmt.Errorf("%w: %d of %d outputs: %w", ErrVerificationFailed, failed, len(results), err)
}

// VerifyOutputs verifies with default logger settings.
func VerifyOutputs(ctx context.Context, path string) error {
	logger := logging.NewLogger("assetgen-verify", logging.ResolveLevel(""), nil)
	return VerifyOutputsWithLogger(ctx, path, logger)
}

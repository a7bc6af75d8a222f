package pkg

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/flavor/go/assetgen/pkg/asset/assemble"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/batch"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/compiler"
	asseterrors "github.com/provide-io/flavor/go/assetgen/pkg/asset/errors"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/ico"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/jpeg"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/manifest"
)

// CompileOptions configures a single-file compile. Zero values select the
// canonical preset, no transform, no license and mode 0644.
type CompileOptions struct {
	Preset    string
	Transform string
	License   string
	Package   string
	Macros    map[string]string
	Mode      string
	Stamp     bool
	Logger    hclog.Logger
}

// CompileFile compiles one resource into dst. The output is left untouched
// on failure.
func CompileFile(ctx context.Context, kind compiler.Kind, src, dst, name string, opts CompileOptions) (batch.Result, error) {
	m := &manifest.Manifest{
		Preset:    opts.Preset,
		License:   opts.License,
		Package:   opts.Package,
		Macros:    opts.Macros,
		Mode:      opts.Mode,
		Transform: opts.Transform,
		Stamp:     opts.Stamp,
		Jobs:      1,
		Assets: []manifest.Asset{{
			Kind:   kind.String(),
			Source: src,
			Output: dst,
			Name:   name,
		}},
	}
	if kind == compiler.KindHTML {
		// The transform is a manifest default, which pages ignore.
		m.Transform = ""
		m.Assets[0].Transform = opts.Transform
	}

	plan, err := m.Plan("")
	if err != nil {
		return batch.Result{}, err
	}

	results, err := batch.NewRunner(plan, opts.Logger).Build(ctx)
	if len(results) == 0 {
		return batch.Result{}, err
	}
	return results[0], err
}

// BuildManifest compiles every asset the manifest at path lists.
func BuildManifest(ctx context.Context, path string, logger hclog.Logger) ([]batch.Result, error) {
	plan, err := manifest.LoadPlan(path)
	if err != nil {
		return nil, err
	}
	return batch.NewRunner(plan, logger).Build(ctx)
}

// CheckManifest reports outputs of the manifest at path that are missing
// or out of date, without writing.
func CheckManifest(ctx context.Context, path string, logger hclog.Logger) ([]batch.Result, error) {
	plan, err := manifest.LoadPlan(path)
	if err != nil {
		return nil, err
	}
	return batch.NewRunner(plan, logger).Check(ctx)
}

// Inspection is the segment walk of one JPEG file.
type Inspection struct {
	Segments []jpeg.Segment
	Frame    *jpeg.FrameInfo
	Err      error // why the walk stopped before the first scan, if it did
}

// InspectJPEG lists the segments of the JPEG at path up to the first scan.
func InspectJPEG(path string) (*Inspection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	out := &Inspection{}
	scanner := jpeg.NewScanner(data)
	for {
		seg, err := scanner.Next()
		if err != nil {
			out.Err = err
			break
		}
		out.Segments = append(out.Segments, seg)
		if seg.Marker == jpeg.SOS || seg.Marker == jpeg.EOI {
			break
		}
	}

	if frame, err := jpeg.FrameSize(data); err == nil {
		out.Frame = &frame
	} else if out.Err == nil {
		out.Err = err
	}
	return out, nil
}

// WriteIconResource converts the ICO at src into a Windows resource
// object at dst. An empty dst means rsrc_windows_<arch>.syso next to src.
func WriteIconResource(src, dst, arch string, logger hclog.Logger) (string, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return "", asseterrors.Wrap(src, "read", err)
	}
	if dst == "" {
		dst = filepath.Join(filepath.Dir(src), "rsrc_windows_"+arch+".syso")
	}

	var buf bytes.Buffer
	if err := ico.WriteSyso(&buf, data, arch, logger); err != nil {
		return "", asseterrors.Wrap(src, "syso", err)
	}

	a := &assemble.Assembler{Logger: logger}
	if err := a.WriteFile(dst, buf.String()); err != nil {
		return "", asseterrors.Wrap(dst, "write", err)
	}
	return dst, nil
}

// Package compiler turns one resource file into declarations, choosing
// the encoder by resource kind.
package compiler

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	asseterrors "github.com/provide-io/flavor/go/assetgen/pkg/asset/errors"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/html"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/ico"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/jpeg"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/literal"
	"github.com/provide-io/flavor/go/assetgen/pkg/asset/transform"
	_ "github.com/provide-io/flavor/go/assetgen/pkg/asset/transform/compress"
)

// RawAsset is the content of one resource file and the name its symbols
// are derived from.
type RawAsset struct {
	Path string
	Name string
	Kind Kind
	Data []byte
}

// Options configures how assets are rendered.
type Options struct {
	Preset    literal.Preset
	Transform transform.Chain
	HTML      html.Options
}

// Result is a compiled asset.
type Result struct {
	Fragment string
	Frame    *jpeg.FrameInfo // JPEG only
	Icon     *ico.Info       // ICO only
	Size     int             // embedded payload bytes
	RawSize  int             // bytes before the transform
}

// Compiler compiles assets. It holds no mutable state and may be shared
// between goroutines.
type Compiler struct {
	opts   Options
	logger hclog.Logger
}

// New creates a Compiler. A nil logger discards output.
func New(opts Options, logger hclog.Logger) *Compiler {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Compiler{opts: opts, logger: logger}
}

// Compile renders a. Failures are *errors.AssetError values naming a.Path.
func (c *Compiler) Compile(a RawAsset) (Result, error) {
	logger := c.logger.With("path", a.Path, "kind", a.Kind.String(), "name", a.Name)

	var (
		res Result
		err error
	)
	switch a.Kind {
	case KindJPEG:
		res, err = c.compileJPEG(logger, a)
	case KindICO:
		res, err = c.compileICO(logger, a)
	case KindHTML:
		res, err = c.compileHTML(logger, a)
	default:
		err = asseterrors.Wrap(a.Path, "dispatch", fmt.Errorf("%w: %v", asseterrors.ErrUnknownKind, a.Kind))
	}
	if err != nil {
		logger.Debug("❌ Compile failed", "error", err)
		return Result{}, err
	}

	logger.Debug("✅ Compiled asset", "size", res.Size, "raw_size", res.RawSize)
	return res, nil
}

func (c *Compiler) compileJPEG(logger hclog.Logger, a RawAsset) (Result, error) {
	if len(a.Data) == 0 {
		return Result{}, asseterrors.Wrap(a.Path, "scan", fmt.Errorf("%w: file is empty", asseterrors.ErrEmptyInput))
	}
	frame, err := jpeg.FrameSize(a.Data)
	if err != nil {
		return Result{}, asseterrors.Wrap(a.Path, "scan", err)
	}
	logger.Debug("🔍 Found baseline frame", "width", frame.Width, "height", frame.Height)

	res, err := c.encodeBinary(logger, a, &literal.Dimensions{Width: uint(frame.Width), Height: uint(frame.Height)})
	if err != nil {
		return Result{}, err
	}
	res.Frame = &frame
	return res, nil
}

func (c *Compiler) compileICO(logger hclog.Logger, a RawAsset) (Result, error) {
	info, err := ico.Validate(a.Data)
	if err != nil {
		return Result{}, asseterrors.Wrap(a.Path, "validate", err)
	}
	logger.Debug("🔍 Icon directory", "images", len(info.Images))

	res, err := c.encodeBinary(logger, a, nil)
	if err != nil {
		return Result{}, err
	}
	res.Icon = &info
	return res, nil
}

func (c *Compiler) compileHTML(logger hclog.Logger, a RawAsset) (Result, error) {
	if len(c.opts.Transform) > 0 {
		return Result{}, asseterrors.Wrap(a.Path, "transform",
			fmt.Errorf("%w: %s cannot apply to text pages", asseterrors.ErrUnknownTransform, c.opts.Transform))
	}

	fragment, err := html.NewEncoder(c.opts.Preset, c.opts.HTML).Encode(a.Name, string(a.Data))
	if err != nil {
		return Result{}, asseterrors.Wrap(a.Path, "encode", err)
	}
	return Result{Fragment: fragment, Size: len(a.Data), RawSize: len(a.Data)}, nil
}

// encodeBinary applies the transform, then renders the payload.
func (c *Compiler) encodeBinary(logger hclog.Logger, a RawAsset, dims *literal.Dimensions) (Result, error) {
	payload := a.Data
	rawSize := 0
	if len(c.opts.Transform) > 0 {
		var err error
		payload, err = c.opts.Transform.Apply(a.Data)
		if err != nil {
			return Result{}, asseterrors.Wrap(a.Path, "transform", err)
		}
		rawSize = len(a.Data)
		logger.Debug("📦 Transformed payload", "chain", c.opts.Transform.String(), "from", rawSize, "to", len(payload))
	}

	fragment, err := literal.NewEncoder(c.opts.Preset, a.Kind.Tag()).Encode(literal.Input{
		Name:       a.Name,
		Data:       payload,
		Dimensions: dims,
		RawSize:    rawSize,
	})
	if err != nil {
		return Result{}, asseterrors.Wrap(a.Path, "encode", err)
	}

	return Result{
		Fragment: fragment,
		Size:     len(payload),
		RawSize:  len(a.Data),
	}, nil
}

package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/philipparndt/gospatial/pkg/openscad"
	"github.com/philipparndt/gospatial/pkg/stl"
)

// ErrTypeUnsupported marks a file whose extension has no loader
const ErrTypeUnsupported = "unsupported_format"

// Loader reads models from .stl files, or from .scad files rendered through
// OpenSCAD.
type Loader struct {
	renderer *openscad.Renderer
}

// New creates a loader. openscadBinary is only needed for .scad files.
func New(workDir, openscadBinary string) *Loader {
	if abs, err := filepath.Abs(workDir); err == nil {
		workDir = abs
	}
	return &Loader{
		renderer: openscad.NewRenderer(workDir).WithBinary(openscadBinary),
	}
}

// Load reads the model stored in path
func (l *Loader) Load(ctx context.Context, path string) (*stl.Model, error) {
	switch ext(path) {
	case ".stl":
		return stl.ParseFile(path)

	case ".scad":
		return l.loadSCAD(ctx, path)

	default:
		return nil, errors.New("unsupported model format").
			WithType(ErrTypeUnsupported).
			WithTag("file", path)
	}
}

func (l *Loader) loadSCAD(ctx context.Context, path string) (*stl.Model, error) {
	dir, err := os.MkdirTemp("", "gospatial-*")
	if err != nil {
		return nil, errors.New("creating render directory failed").Wrap(err)
	}
	defer os.RemoveAll(dir)

	out := filepath.Join(dir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))+".stl")
	logs.WithTag("file", path).
		WithTag("output", out).
		Debug("rendering openscad model")

	if err := l.renderer.RenderToSTL(ctx, path, out); err != nil {
		return nil, err
	}
	return stl.ParseFile(out)
}

// Dependencies returns the files whose change requires reloading path
func (l *Loader) Dependencies(path string) ([]string, error) {
	switch ext(path) {
	case ".stl":
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, errors.New("resolving model path failed").
				WithTag("file", path).
				Wrap(err)
		}
		return []string{abs}, nil

	case ".scad":
		return l.renderer.ResolveDependencies(path)

	default:
		return nil, errors.New("unsupported model format").
			WithType(ErrTypeUnsupported).
			WithTag("file", path)
	}
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

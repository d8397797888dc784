package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/philipparndt/gospatial/internal/config"
	"github.com/philipparndt/gospatial/internal/loader"
	"github.com/philipparndt/gospatial/pkg/quadtree"
	"github.com/philipparndt/gospatial/pkg/scene"
	"github.com/philipparndt/gospatial/pkg/stl"
	"github.com/philipparndt/gospatial/pkg/viewer"
	"github.com/philipparndt/gospatial/version"
	"github.com/segmentio/encoding/json"
	"github.com/spf13/cobra"
)

// app holds the state shared by all commands of one invocation
type app struct {
	cfg *config.Config

	jsonOutput bool
	logLevel   string
	width      float64
	height     float64
	maxListLen int
	maxDepth   int
	dynamic    bool
	elevation  float64
	azimuth    float64
	zoom       float64
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "gospatial",
		Short: "Spatial queries on STL and OpenSCAD models",
		Long: `gospatial loads STL or OpenSCAD models and answers spatial queries on them:
box interference, screen space picking through a quadtree index, proximity
searches and clipping against the model bounds.

Defaults are read from GOSPATIAL_* environment variables and can be
overridden with flags.`,
		Version:           version.GetFullVersion(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	f := root.PersistentFlags()
	f.BoolVar(&a.jsonOutput, "json", false, "print results as JSON")
	f.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warning or error")
	f.Float64Var(&a.width, "width", 0, "viewport width in pixels")
	f.Float64Var(&a.height, "height", 0, "viewport height in pixels")
	f.IntVar(&a.maxListLen, "max-list-len", 0, "items a quadtree leaf holds before it splits")
	f.IntVar(&a.maxDepth, "max-depth", 0, "deepest quadtree level that may split")
	f.BoolVar(&a.dynamic, "dynamic-depth", false, "let the leaf size double with every quadtree level")
	f.Float64Var(&a.elevation, "elevation", 0, "camera elevation in degrees")
	f.Float64Var(&a.azimuth, "azimuth", 0, "camera azimuth in degrees")
	f.Float64Var(&a.zoom, "zoom", 0, "relative camera zoom, -0.5 halves the distance")

	root.AddCommand(
		a.newInfoCmd(),
		a.newPickCmd(),
		a.newBoxCmd(),
		a.newNearCmd(),
		a.newClipCmd(),
		a.newIndexCmd(),
		a.newTrianglesCmd(),
		a.newWatchCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("width") {
		cfg.ViewportWidth = a.width
	}
	if flags.Changed("height") {
		cfg.ViewportHeight = a.height
	}
	if flags.Changed("max-list-len") {
		cfg.MaxListLen = a.maxListLen
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = a.maxDepth
	}
	if flags.Changed("dynamic-depth") {
		cfg.DynamicDepth = a.dynamic
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	logs.SetLevel(logs.ParseLevel(cfg.LogLevel))
	logs.Encoder = json.Marshal
	if cfg.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	stderr := cmd.ErrOrStderr()
	logs.SetLogger(func(e logs.Entry) {
		fmt.Fprintln(stderr, e)
	})
	errors.Encoder = json.Marshal
	return nil
}

func (a *app) loadModel(cmd *cobra.Command, path string) (*stl.Model, error) {
	model, err := loader.New(".", a.cfg.OpenSCADPath).Load(cmd.Context(), path)
	if err != nil {
		return nil, err
	}
	logs.WithTag("file", path).
		WithTag("triangles", model.TriangleCount()).
		Debug("model loaded")
	return model, nil
}

func (a *app) viewport(model *stl.Model) *viewer.Viewport {
	vp := viewer.NewViewport(model.Bounds(), a.cfg.ViewportWidth, a.cfg.ViewportHeight)
	if a.elevation != 0 || a.azimuth != 0 {
		vp.Camera.Rotate(degrees(a.elevation), degrees(a.azimuth))
	}
	if a.zoom != 0 {
		vp.Camera.Zoom(a.zoom)
	}
	return vp
}

func (a *app) buildScene(model *stl.Model) *scene.Scene {
	return scene.Build(model, a.viewport(model), quadtree.WithSplitPolicy(a.cfg.SplitPolicy()))
}

// print writes v as indented JSON with --json, otherwise it calls text
func (a *app) print(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	w := cmd.OutOrStdout()
	if !a.jsonOutput {
		text(w)
		return nil
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.New("encoding output failed").Wrap(err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		logs.Fatal(err)
	}
}

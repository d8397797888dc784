package openscad

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
)

// ErrTypeRender marks a failed OpenSCAD invocation or dependency scan
const ErrTypeRender = "openscad_render"

// DefaultBinary is the executable looked up in PATH
const DefaultBinary = "openscad"

// dependencyRegex matches `use <file>` and `include <file>` statements
var dependencyRegex = regexp.MustCompile(`^\s*(?:use|include)\s*<([^>]+)>`)

// Renderer converts .scad files to STL with the OpenSCAD command line tool
type Renderer struct {
	workDir string
	binary  string
}

// NewRenderer creates a renderer resolving relative paths against workDir
func NewRenderer(workDir string) *Renderer {
	return &Renderer{workDir: workDir, binary: DefaultBinary}
}

// WithBinary returns a copy of the renderer using another executable
func (r *Renderer) WithBinary(binary string) *Renderer {
	c := *r
	c.binary = binary
	return &c
}

func (r *Renderer) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.workDir, path)
}

// RenderToSTL renders scadFile into outputFile
func (r *Renderer) RenderToSTL(ctx context.Context, scadFile, outputFile string) error {
	bin, err := exec.LookPath(r.binary)
	if err != nil {
		return errors.New("openscad executable not found").
			WithType(ErrTypeRender).
			WithTag("binary", r.binary).
			Wrap(err)
	}

	cmd := exec.CommandContext(ctx, bin, "-o", outputFile, r.abs(scadFile))
	cmd.Dir = r.workDir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return errors.New("openscad rendering failed").
			WithType(ErrTypeRender).
			WithTag("file", scadFile).
			WithTag("output", strings.TrimSpace(out.String())).
			Wrap(err)
	}
	return nil
}

// ResolveDependencies returns scadFile and every file it uses or includes,
// directly or indirectly, as absolute paths in discovery order.
func (r *Renderer) ResolveDependencies(scadFile string) ([]string, error) {
	visited := make(map[string]struct{})
	var deps []string

	var walk func(file string) error
	walk = func(file string) error {
		if _, ok := visited[file]; ok {
			return nil
		}
		visited[file] = struct{}{}
		deps = append(deps, file)

		direct, err := r.parseDependencies(file)
		if err != nil {
			return err
		}
		for _, d := range direct {
			if err := walk(d); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(filepath.Clean(r.abs(scadFile))); err != nil {
		return nil, err
	}
	return deps, nil
}

func (r *Renderer) parseDependencies(scadFile string) ([]string, error) {
	data, err := os.ReadFile(scadFile)
	if err != nil {
		return nil, errors.New("reading openscad file failed").
			WithType(ErrTypeRender).
			WithTag("file", scadFile).
			Wrap(err)
	}

	var deps []string
	dir := filepath.Dir(scadFile)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		if m := dependencyRegex.FindStringSubmatch(line); m != nil {
			deps = append(deps, r.resolveDepPath(m[1], dir))
		}
	}
	return deps, nil
}

// resolveDepPath resolves a dependency next to the including file, falling
// back to the work directory for library style paths.
func (r *Renderer) resolveDepPath(dep, dir string) string {
	local := filepath.Clean(filepath.Join(dir, dep))
	if strings.HasPrefix(dep, "./") || strings.HasPrefix(dep, "../") {
		return local
	}
	if _, err := os.Stat(local); err == nil {
		return local
	}
	return filepath.Clean(filepath.Join(r.workDir, dep))
}

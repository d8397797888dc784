package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/philipparndt/gospatial/pkg/geometry"
)

// ErrTypeParse marks a malformed STL stream
const ErrTypeParse = "stl_parse"

const (
	binaryHeaderSize = 80
	binaryFacetSize  = 50
)

// ParseFile reads an STL file and returns a Model
func ParseFile(filename string) (*Model, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.New("opening stl file failed").
			WithType(ErrTypeParse).
			WithTag("file", filename).
			Wrap(err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, errors.New("parsing stl file failed").
			WithType(ErrTypeParse).
			WithTag("file", filename).
			Wrap(err)
	}
	return m, nil
}

// Parse reads an ASCII or binary STL stream. A stream starting with "solid"
// is still treated as binary when its length matches the facet count in the
// binary header, as some exporters write such headers.
func Parse(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.New("reading stl stream failed").
			WithType(ErrTypeParse).
			Wrap(err)
	}
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) && !looksBinary(data) {
		return parseASCII(data)
	}
	return parseBinary(data)
}

func looksBinary(data []byte) bool {
	if len(data) < binaryHeaderSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[binaryHeaderSize:])
	return uint64(len(data)) == binaryHeaderSize+4+uint64(count)*binaryFacetSize
}

func parseASCII(data []byte) (*Model, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	model := NewModel("")

	var normal geometry.Vector3
	var vertices []geometry.Vector3
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "facet":
			if len(fields) < 5 || fields[1] != "normal" {
				return nil, errors.New("malformed facet line").
					WithType(ErrTypeParse).
					WithTag("line", lineNo)
			}
			v, err := parseVector(fields[2:5])
			if err != nil {
				return nil, errors.New("invalid facet normal").
					WithType(ErrTypeParse).
					WithTag("line", lineNo).
					Wrap(err)
			}
			normal = v

		case "vertex":
			if len(fields) < 4 {
				return nil, errors.New("malformed vertex line").
					WithType(ErrTypeParse).
					WithTag("line", lineNo)
			}
			v, err := parseVector(fields[1:4])
			if err != nil {
				return nil, errors.New("invalid vertex").
					WithType(ErrTypeParse).
					WithTag("line", lineNo).
					Wrap(err)
			}
			vertices = append(vertices, v)

		case "endfacet":
			if len(vertices) != 3 {
				return nil, errors.Newf("facet has %d vertices", len(vertices)).
					WithType(ErrTypeParse).
					WithTag("line", lineNo)
			}
			model.AddTriangle(geometry.NewTriangle(normal, vertices[0], vertices[1], vertices[2]))
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.New("reading ascii stl failed").
			WithType(ErrTypeParse).
			Wrap(err)
	}
	return model, nil
}

func parseVector(fields []string) (geometry.Vector3, error) {
	var c [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return geometry.Vector3{}, err
		}
		c[i] = v
	}
	return geometry.NewVector3(c[0], c[1], c[2]), nil
}

func parseBinary(data []byte) (*Model, error) {
	if len(data) < binaryHeaderSize+4 {
		return nil, errors.New("binary stl shorter than its header").
			WithType(ErrTypeParse).
			WithTag("length", len(data))
	}

	model := NewModel(string(bytes.TrimRight(data[:binaryHeaderSize], "\x00 ")))
	count := binary.LittleEndian.Uint32(data[binaryHeaderSize:])
	body := data[binaryHeaderSize+4:]
	if uint64(len(body)) < uint64(count)*binaryFacetSize {
		return nil, errors.New("binary stl truncated").
			WithType(ErrTypeParse).
			WithTag("facets", count).
			WithTag("length", len(data))
	}

	model.Triangles = make([]geometry.Triangle, 0, count)
	for i := uint32(0); i < count; i++ {
		rec := body[int(i)*binaryFacetSize:]
		model.AddTriangle(geometry.NewTriangle(
			readVector(rec[0:]),
			readVector(rec[12:]),
			readVector(rec[24:]),
			readVector(rec[36:]),
		))
	}
	return model, nil
}

// readVector decodes three little-endian float32 values
func readVector(b []byte) geometry.Vector3 {
	f := func(off int) float64 {
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b[off:])))
	}
	return geometry.NewVector3(f(0), f(4), f(8))
}

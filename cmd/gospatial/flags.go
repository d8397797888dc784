package main

import (
	"math"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/philipparndt/gospatial/pkg/geometry"
)

const errTypeUsage = "usage"

func degrees(d float64) float64 {
	return d * math.Pi / 180
}

func vector3(name string, values []float64) (geometry.Vector3, error) {
	if len(values) != 3 {
		return geometry.Vector3{}, errors.Newf("--%s needs 3 values, got %d", name, len(values)).
			WithType(errTypeUsage)
	}
	return geometry.NewVector3(values[0], values[1], values[2]), nil
}

func vector2(name string, values []float64) (geometry.Vector2, error) {
	if len(values) != 2 {
		return geometry.Vector2{}, errors.Newf("--%s needs 2 values, got %d", name, len(values)).
			WithType(errTypeUsage)
	}
	return geometry.NewVector2(values[0], values[1]), nil
}

func rect(name string, values []float64) (geometry.Rect, error) {
	if len(values) != 4 {
		return geometry.Rect{}, errors.Newf("--%s needs 4 values x1,y1,x2,y2, got %d", name, len(values)).
			WithType(errTypeUsage)
	}
	return geometry.NewRect(values[0], values[1], values[2], values[3]), nil
}

// points reads a flat list of coordinates as 3D points
func points(name string, values []float64) ([]geometry.Vector3, error) {
	if len(values) == 0 || len(values)%3 != 0 {
		return nil, errors.Newf("--%s needs a multiple of 3 values, got %d", name, len(values)).
			WithType(errTypeUsage)
	}
	res := make([]geometry.Vector3, 0, len(values)/3)
	for i := 0; i < len(values); i += 3 {
		res = append(res, geometry.NewVector3(values[i], values[i+1], values[i+2]))
	}
	return res, nil
}

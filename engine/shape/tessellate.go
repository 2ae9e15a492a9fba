package shape

import (
	"fmt"

	"github.com/chewxy/math32"
)

// CircleSides is the side count used when a circle is requested; circles are drawn as regular polygons.
const CircleSides = 80

// radius of the circle every built-in shape is inscribed in.
const radius = 0.5

// Geometry is the local tessellation of one shape. Vertices are homogeneous positions (w = 1);
// Indices refer into Vertices and are not yet shifted into any flattened array.
type Geometry struct {
	Vertices [][4]float32
	Indices  []uint32
}

// Validate checks that a shape can be tessellated.
// When strict is true, list meshes must also have a vertex count that is a multiple of three;
// otherwise a trailing partial triangle is passed through as-is.
//
// Parameters:
//   - s: the shape to validate
//   - strict: whether to reject list meshes with a partial trailing triangle
//
// Returns:
//   - error: an error wrapping ErrInvalidShape, or nil
func Validate(s Shape, strict bool) error {
	switch v := s.(type) {
	case Triangle, Square:
		return nil
	case Polygon:
		if v.Sides < 3 {
			return fmt.Errorf("%w: polygon needs at least 3 sides, got %d", ErrInvalidShape, v.Sides)
		}
		return nil
	case Mesh:
		n := len(v.Vertices)
		switch v.Topology {
		case TopologyList:
			if strict && n%3 != 0 {
				return fmt.Errorf("%w: list mesh vertex count %d is not a multiple of 3", ErrInvalidShape, n)
			}
			return nil
		case TopologyStrip:
			if n < 3 {
				return fmt.Errorf("%w: strip mesh needs at least 3 vertices, got %d", ErrInvalidShape, n)
			}
			return nil
		default:
			return fmt.Errorf("%w: unknown mesh %s", ErrInvalidShape, v.Topology)
		}
	case nil:
		return fmt.Errorf("%w: nil shape", ErrInvalidShape)
	default:
		return fmt.Errorf("%w: unsupported shape %T", ErrInvalidShape, s)
	}
}

// Tessellate validates a shape and maps it to its local vertex and index lists.
//
// Index winding per variant:
//   - Triangle: [0 1 2]
//   - Square: [0 1 2 1 2 3]
//   - Polygon(n): fan from vertex 0, {0, i+1, i+2} for i in [0, n-2)
//   - Mesh list: 0..count unmodified
//   - Mesh strip: {i, i+1, i+2} for i in [0, count-2)
//
// Parameters:
//   - s: the shape to tessellate
//   - strict: passed to Validate
//
// Returns:
//   - Geometry: the shape's local geometry
//   - error: an error wrapping ErrInvalidShape when the shape cannot be tessellated
func Tessellate(s Shape, strict bool) (Geometry, error) {
	if err := Validate(s, strict); err != nil {
		return Geometry{}, err
	}

	switch v := s.(type) {
	case Triangle:
		return Geometry{
			Vertices: [][4]float32{point(v.A), point(v.B), point(v.C)},
			Indices:  []uint32{0, 1, 2},
		}, nil
	case Square:
		return square(), nil
	case Polygon:
		return polygon(v.Sides), nil
	case Mesh:
		return mesh(v), nil
	}
	// unreachable: Validate rejects every other type
	return Geometry{}, fmt.Errorf("%w: unsupported shape %T", ErrInvalidShape, s)
}

func point(p [3]float32) [4]float32 {
	return [4]float32{p[0], p[1], p[2], 1}
}

// square has side 1/√2, so its corners sit on the radius-0.5 circle.
func square() Geometry {
	l := math32.Sqrt(1.0 / 8.0)
	return Geometry{
		Vertices: [][4]float32{
			{l, l, 0, 1},
			{l, -l, 0, 1},
			{-l, l, 0, 1},
			{-l, -l, 0, 1},
		},
		Indices: []uint32{0, 1, 2, 1, 2, 3},
	}
}

func polygon(n uint32) Geometry {
	g := Geometry{
		Vertices: make([][4]float32, 0, n),
		Indices:  make([]uint32, 0, 3*(n-2)),
	}
	for i := uint32(0); i < n; i++ {
		th := float32(i) / float32(n) * 2 * math32.Pi
		sin, cos := math32.Sincos(th)
		g.Vertices = append(g.Vertices, [4]float32{cos * radius, sin * radius, 0, 1})
	}
	for i := uint32(0); i < n-2; i++ {
		g.Indices = append(g.Indices, 0, i+1, i+2)
	}
	return g
}

func mesh(m Mesh) Geometry {
	n := uint32(len(m.Vertices))
	g := Geometry{Vertices: make([][4]float32, 0, n)}
	for _, v := range m.Vertices {
		g.Vertices = append(g.Vertices, point(v))
	}

	switch m.Topology {
	case TopologyList:
		g.Indices = make([]uint32, n)
		for i := range g.Indices {
			g.Indices[i] = uint32(i)
		}
	case TopologyStrip:
		g.Indices = make([]uint32, 0, 3*(n-2))
		for i := uint32(0); i < n-2; i++ {
			g.Indices = append(g.Indices, i, i+1, i+2)
		}
	}
	return g
}

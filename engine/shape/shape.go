package shape

import (
	"errors"
	"fmt"
)

// ErrInvalidShape is returned when a shape's parameters cannot produce geometry,
// such as a polygon with fewer than three sides.
var ErrInvalidShape = errors.New("invalid shape")

// Kind identifies the variant of a Shape.
type Kind uint8

const (
	KindTriangle Kind = iota
	KindSquare
	KindPolygon
	KindMesh
)

func (k Kind) String() string {
	switch k {
	case KindTriangle:
		return "triangle"
	case KindSquare:
		return "square"
	case KindPolygon:
		return "polygon"
	case KindMesh:
		return "mesh"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Topology is the convention for deriving triangles from a mesh's ordered vertex sequence.
type Topology uint8

const (
	// TopologyList treats every three consecutive vertices as an independent triangle.
	TopologyList Topology = iota
	// TopologyStrip forms a triangle from each vertex and its two predecessors.
	TopologyStrip
)

func (t Topology) String() string {
	switch t {
	case TopologyList:
		return "list"
	case TopologyStrip:
		return "strip"
	default:
		return fmt.Sprintf("topology(%d)", uint8(t))
	}
}

// Shape is an immutable primitive descriptor. The set of implementations is closed;
// Tessellate switches over them exhaustively.
type Shape interface {
	// Kind returns the variant tag of the shape.
	Kind() Kind

	shape()
}

// Triangle is a single triangle given by three 3D points.
type Triangle struct {
	A, B, C [3]float32
}

// Square is the unit square, centered on the origin in the XY plane.
type Square struct{}

// Polygon is a regular polygon with Sides vertices, centered on the origin in the XY plane.
type Polygon struct {
	Sides uint32
}

// Mesh is an arbitrary ordered vertex sequence interpreted through its Topology.
type Mesh struct {
	Vertices [][3]float32
	Topology Topology
}

var (
	_ Shape = Triangle{}
	_ Shape = Square{}
	_ Shape = Polygon{}
	_ Shape = Mesh{}
)

func (Triangle) Kind() Kind { return KindTriangle }
func (Square) Kind() Kind   { return KindSquare }
func (Polygon) Kind() Kind  { return KindPolygon }
func (Mesh) Kind() Kind     { return KindMesh }

func (Triangle) shape() {}
func (Square) shape()   {}
func (Polygon) shape()  {}
func (Mesh) shape()     {}

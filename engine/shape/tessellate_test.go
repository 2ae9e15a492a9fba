package shape

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-6

func TestTessellateTriangle(t *testing.T) {
	g, err := Tessellate(Triangle{A: [3]float32{0, 1, 0}, B: [3]float32{-1, -1, 0}, C: [3]float32{1, -1, 2}}, false)
	require.NoError(t, err)

	assert.Equal(t, [][4]float32{{0, 1, 0, 1}, {-1, -1, 0, 1}, {1, -1, 2, 1}}, g.Vertices)
	assert.Equal(t, []uint32{0, 1, 2}, g.Indices)
}

func TestTessellateSquare(t *testing.T) {
	g, err := Tessellate(Square{}, false)
	require.NoError(t, err)

	require.Len(t, g.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 1, 2, 3}, g.Indices)

	l := math32.Sqrt(1.0 / 8.0)
	want := [][4]float32{{l, l, 0, 1}, {l, -l, 0, 1}, {-l, l, 0, 1}, {-l, -l, 0, 1}}
	for i := range want {
		assert.InDeltaSlice(t, want[i][:], g.Vertices[i][:], tol)
	}

	// side length 1/√2
	assert.InDelta(t, 1/math32.Sqrt(2), g.Vertices[0][0]-g.Vertices[2][0], tol)
}

func TestTessellatePolygon(t *testing.T) {
	for _, n := range []uint32{3, 4, 5, 8, CircleSides} {
		g, err := Tessellate(Polygon{Sides: n}, false)
		require.NoError(t, err)

		assert.Len(t, g.Vertices, int(n))
		assert.Len(t, g.Indices, int(3*(n-2)))

		for i := uint32(0); i < n-2; i++ {
			assert.Equal(t, []uint32{0, i + 1, i + 2}, g.Indices[3*i:3*i+3])
		}
		for _, v := range g.Vertices {
			assert.InDelta(t, radius, math32.Sqrt(v[0]*v[0]+v[1]*v[1]), tol)
			assert.Equal(t, float32(0), v[2])
			assert.Equal(t, float32(1), v[3])
		}
		assert.InDeltaSlice(t, []float32{radius, 0, 0, 1}, g.Vertices[0][:], tol)
	}
}

func TestPolygonThreeMatchesTriangleTopology(t *testing.T) {
	p, err := Tessellate(Polygon{Sides: 3}, false)
	require.NoError(t, err)
	tri, err := Tessellate(Triangle{}, false)
	require.NoError(t, err)

	assert.Equal(t, tri.Indices, p.Indices)
	assert.Len(t, p.Vertices, len(tri.Vertices))
}

func TestTessellatePolygonTooFewSides(t *testing.T) {
	for _, n := range []uint32{0, 1, 2} {
		_, err := Tessellate(Polygon{Sides: n}, false)
		assert.ErrorIs(t, err, ErrInvalidShape)
	}
}

func TestTessellateMeshStrip(t *testing.T) {
	g, err := Tessellate(Mesh{
		Vertices: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}},
		Topology: TopologyStrip,
	}, false)
	require.NoError(t, err)

	assert.Equal(t, []uint32{0, 1, 2, 1, 2, 3}, g.Indices)
	assert.Equal(t, [4]float32{1, 1, 0, 1}, g.Vertices[3])
}

func TestTessellateMeshList(t *testing.T) {
	g, err := Tessellate(Mesh{
		Vertices: make([][3]float32, 6),
		Topology: TopologyList,
	}, false)
	require.NoError(t, err)

	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5}, g.Indices)
	assert.Len(t, g.Vertices, 6)
}

func TestTessellateMeshErrors(t *testing.T) {
	_, err := Tessellate(Mesh{Vertices: make([][3]float32, 2), Topology: TopologyStrip}, false)
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = Tessellate(Mesh{Vertices: make([][3]float32, 3), Topology: Topology(9)}, false)
	assert.ErrorIs(t, err, ErrInvalidShape)

	_, err = Tessellate(nil, false)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestValidateStrictList(t *testing.T) {
	m := Mesh{Vertices: make([][3]float32, 4), Topology: TopologyList}

	assert.NoError(t, Validate(m, false))
	assert.ErrorIs(t, Validate(m, true), ErrInvalidShape)

	// lenient tessellation passes the partial triangle through
	g, err := Tessellate(m, false)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2, 3}, g.Indices)

	_, err = Tessellate(m, true)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

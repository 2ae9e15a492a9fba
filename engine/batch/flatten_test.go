package batch

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/Carmen-Shannon/oxy-sketch/engine/camera"
	"github.com/Carmen-Shannon/oxy-sketch/engine/scene"
	"github.com/Carmen-Shannon/oxy-sketch/engine/shape"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

var (
	red  = common.RGBA(1, 0, 0, 1)
	blue = common.RGBA(0, 0, 1, 1)
)

// fakeSource serves hand-built node arenas, including ones the scene builder refuses to produce.
type fakeSource struct {
	nodes  []scene.Node
	shapes *shape.Table
	cam    camera.Camera
}

func (f *fakeSource) Node(h scene.NodeHandle) (scene.Node, bool) {
	if h < 0 || int(h) >= len(f.nodes) {
		return scene.Node{}, false
	}
	return f.nodes[h], true
}

func (f *fakeSource) Shapes() *shape.Table     { return f.shapes }
func (f *fakeSource) Camera() camera.Camera    { return f.cam }
func (f *fakeSource) ClearColor() common.Color { return common.White }

func transformPoint(m [16]float32, x, y, z float32) []float32 {
	v := common.MulVec4(m, [4]float32{x, y, z, 1})
	return v[:]
}

func TestFlattenTranslatedSquare(t *testing.T) {
	s := scene.NewScene()
	s.Push(scene.WithTranslation(10, 0, 0))
	s.Square()
	require.NoError(t, s.Pop())

	state, err := Flatten(s)
	require.NoError(t, err)

	require.Len(t, state.Instances, 2)
	translation := common.IdentityMatrix()
	translation[12] = 10
	assert.Equal(t, translation, state.Instances[1].Transform)
	assert.Equal(t, common.White.Vec4(), state.Instances[1].Color)

	require.Len(t, state.Draws, 1)
	assert.Equal(t, GPUDrawIndexedIndirect{
		IndexCount:    6,
		InstanceCount: 1,
		FirstIndex:    0,
		BaseVertex:    0,
		FirstInstance: 1,
	}, state.Draws[0])
	assert.Len(t, state.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 1, 2, 3}, state.Indices)
}

func TestFlattenEmptyScene(t *testing.T) {
	state, err := Flatten(scene.NewScene())
	require.NoError(t, err)

	require.Len(t, state.Instances, 1)
	assert.Equal(t, GPUInstance{Transform: common.IdentityMatrix(), Color: common.White.Vec4()}, state.Instances[0])
	assert.Empty(t, state.Draws)
	assert.Empty(t, state.Vertices)
	assert.Empty(t, state.Indices)
	assert.Equal(t, FrameStats{Instances: 1}, state.Stats())
}

func TestFlattenInstancePerNode(t *testing.T) {
	s := scene.NewScene()
	s.Push()
	s.Push()
	require.NoError(t, s.Pop())
	s.Push()
	require.NoError(t, s.Pop())
	require.NoError(t, s.Pop())
	s.Push()
	s.Square()

	state, err := Flatten(s)
	require.NoError(t, err)

	// a bare root shares the default instance; every other node gets its own.
	assert.Len(t, state.Instances, s.Len())

	s.Set(scene.WithColor(red))
	require.NoError(t, s.Update(scene.RootHandle, scene.WithColor(blue)))
	state, err = Flatten(s)
	require.NoError(t, err)
	assert.Len(t, state.Instances, s.Len()+1)
}

func TestFlattenColorInheritance(t *testing.T) {
	s := scene.NewScene()
	s.Square()
	s.Push(scene.WithColor(red))
	s.Push()
	// two levels below the red node, nothing set in between
	s.Push()
	s.Square()
	require.NoError(t, s.Pop())
	require.NoError(t, s.Pop())
	s.Push(scene.WithColor(blue))
	s.Push()
	s.Square()

	state, err := Flatten(s)
	require.NoError(t, err)

	colors := make([][4]float32, len(state.Instances))
	for i, inst := range state.Instances {
		colors[i] = inst.Color
	}
	assert.Equal(t, [][4]float32{
		common.White.Vec4(),
		red.Vec4(),
		red.Vec4(),
		red.Vec4(),
		blue.Vec4(),
		blue.Vec4(),
	}, colors)

	require.Len(t, state.Draws, 3)
	assert.Equal(t, uint32(0), state.Draws[0].FirstInstance)
	assert.Equal(t, uint32(3), state.Draws[1].FirstInstance)
	assert.Equal(t, uint32(5), state.Draws[2].FirstInstance)
}

func TestFlattenDefaultColor(t *testing.T) {
	s := scene.NewScene()
	s.Push()
	s.Square()

	state, err := Flatten(s, WithDefaultColor(red))
	require.NoError(t, err)
	assert.Equal(t, red.Vec4(), state.Instances[0].Color)
	assert.Equal(t, red.Vec4(), state.Instances[1].Color)
}

func TestFlattenTransformComposition(t *testing.T) {
	s := scene.NewScene()
	s.Push(scene.WithScale(2, 2, 2))
	s.Push(scene.WithTranslation(1, 0, 0))
	s.Push() // no transform: keeps the ancestor's
	s.Push(scene.WithRotationAxis(0, 0, 1, math32.Pi/2))

	state, err := Flatten(s)
	require.NoError(t, err)
	require.Len(t, state.Instances, 5)

	assert.InDeltaSlice(t, []float32{2, 0, 0, 1}, transformPoint(state.Instances[1].Transform, 1, 0, 0), eps)
	// parent scale applies to the child's translation
	assert.InDeltaSlice(t, []float32{2, 0, 0, 1}, transformPoint(state.Instances[2].Transform, 0, 0, 0), eps)
	assert.Equal(t, state.Instances[2].Transform, state.Instances[3].Transform)
	// rotation happens before the inherited translation and scale
	assert.InDeltaSlice(t, []float32{2, 2, 0, 1}, transformPoint(state.Instances[4].Transform, 1, 0, 0), eps)
}

func TestFlattenLocalCompositionOrder(t *testing.T) {
	s := scene.NewScene()
	s.Push(scene.WithTranslation(1, 0, 0), scene.WithScale(3, 3, 3))

	state, err := Flatten(s)
	require.NoError(t, err)

	var want [16]float32
	var sc, tr [16]float32
	common.Scale(sc[:], 3, 3, 3)
	common.Translation(tr[:], 1, 0, 0)
	common.Mul4(want[:], sc[:], tr[:])
	assert.Equal(t, want, state.Instances[1].Transform)
	assert.InDeltaSlice(t, []float32{3, 0, 0, 1}, transformPoint(state.Instances[1].Transform, 0, 0, 0), eps)
}

func TestFlattenIdentitySubtree(t *testing.T) {
	s := scene.NewScene()
	for i := 0; i < 4; i++ {
		s.Push(scene.WithColor(common.RGBA(float32(i)/4, 0, 0, 1)))
		s.Triangle([3]float32{0, 0, 0}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0})
	}

	state, err := Flatten(s)
	require.NoError(t, err)
	for _, inst := range state.Instances {
		assert.Equal(t, common.IdentityMatrix(), inst.Transform)
	}
}

func TestFlattenVisitsChildrenInPushOrder(t *testing.T) {
	s := scene.NewScene()
	s.Push(scene.WithColor(red))
	s.Push(scene.WithColor(blue))
	s.Square()
	require.NoError(t, s.Pop())
	require.NoError(t, s.Pop())
	s.Push(scene.WithTranslation(5, 0, 0))
	s.Triangle([3]float32{0, 0, 0}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0})

	state, err := Flatten(s)
	require.NoError(t, err)

	require.Len(t, state.Instances, 4)
	assert.Equal(t, red.Vec4(), state.Instances[1].Color)
	assert.Equal(t, blue.Vec4(), state.Instances[2].Color)
	assert.Equal(t, float32(5), state.Instances[3].Transform[12])

	require.Len(t, state.Draws, 2)
	assert.Equal(t, uint32(6), state.Draws[0].IndexCount)
	assert.Equal(t, uint32(2), state.Draws[0].FirstInstance)
	assert.Equal(t, uint32(3), state.Draws[1].IndexCount)
	assert.Equal(t, uint32(3), state.Draws[1].FirstInstance)
}

func TestFlattenDrawsPartitionBuffers(t *testing.T) {
	s := scene.NewScene()
	sq := s.Square()
	s.Push(scene.WithTranslation(1, 1, 0))
	s.Circle()
	s.Polygon(5)
	require.NoError(t, s.Reuse(sq))
	s.Push()
	s.Mesh(shape.TopologyStrip, func(m *scene.MeshBuilder) {
		m.Vertex(0, 0, 0)
		m.Vertex(1, 0, 0)
		m.Vertex(0, 1, 0)
		m.Vertex(1, 1, 0)
		m.Vertex(2, 1, 0)
	})

	state, err := Flatten(s)
	require.NoError(t, err)
	require.Len(t, state.Draws, 5)

	var indices uint32
	var vertices int32
	for _, d := range state.Draws {
		assert.Equal(t, indices, d.FirstIndex)
		assert.Equal(t, vertices, d.BaseVertex)
		assert.Equal(t, uint32(1), d.InstanceCount)

		for _, ix := range state.Indices[d.FirstIndex : d.FirstIndex+d.IndexCount] {
			assert.Less(t, int(d.BaseVertex)+int(ix), len(state.Vertices))
		}

		indices += d.IndexCount
		maxIndex := uint32(0)
		for _, ix := range state.Indices[d.FirstIndex : d.FirstIndex+d.IndexCount] {
			maxIndex = max(maxIndex, ix)
		}
		vertices += int32(maxIndex) + 1
	}
	assert.Equal(t, int(indices), len(state.Indices))
	assert.Equal(t, int(vertices), len(state.Vertices))

	assert.Equal(t, []uint32{6, 234, 9, 6, 9}, []uint32{
		state.Draws[0].IndexCount,
		state.Draws[1].IndexCount,
		state.Draws[2].IndexCount,
		state.Draws[3].IndexCount,
		state.Draws[4].IndexCount,
	})
	assert.Equal(t, state.Vertices[0:4], state.Vertices[4+80+5:4+80+5+4])
	assert.Equal(t, FrameStats{Instances: 3, Draws: 5, Vertices: 4 + 80 + 5 + 4 + 5, Indices: 264}, state.Stats())
}

func TestFlattenPassThroughReuse(t *testing.T) {
	build := func() scene.Scene {
		s := scene.NewScene()
		s.Push()
		s.Square()
		s.Push(scene.WithColor(red))
		s.Square()
		s.Push()
		s.Square()
		return s
	}

	state, err := Flatten(build())
	require.NoError(t, err)
	require.Len(t, state.Instances, 4)
	assert.Equal(t, []uint32{1, 2, 3}, firstInstances(state))

	reused, err := Flatten(build(), WithPassThroughReuse(true))
	require.NoError(t, err)
	require.Len(t, reused.Instances, 2)
	assert.Equal(t, []uint32{0, 1, 1}, firstInstances(reused))
	assert.Equal(t, red.Vec4(), reused.Instances[1].Color)
	assert.Equal(t, state.Vertices, reused.Vertices)
	assert.Equal(t, state.Indices, reused.Indices)
}

func firstInstances(state *RenderState) []uint32 {
	out := make([]uint32, len(state.Draws))
	for i, d := range state.Draws {
		out[i] = d.FirstInstance
	}
	return out
}

func TestFlattenInvalidPolygon(t *testing.T) {
	s := scene.NewScene()
	s.Square()
	s.Push()
	s.Polygon(2)

	state, err := Flatten(s)
	assert.ErrorIs(t, err, shape.ErrInvalidShape)
	assert.Nil(t, state)
}

func TestFlattenStrictMeshes(t *testing.T) {
	s := scene.NewScene()
	s.Mesh(shape.TopologyList, func(m *scene.MeshBuilder) {
		for i := 0; i < 4; i++ {
			m.Vertex(float32(i), 0, 0)
		}
	})

	state, err := Flatten(s)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2, 3}, state.Indices)

	state, err = Flatten(s, WithStrictMeshes(true))
	assert.ErrorIs(t, err, shape.ErrInvalidShape)
	assert.Nil(t, state)
}

func TestFlattenInvalidProjection(t *testing.T) {
	s := scene.NewScene()
	s.Perspective(0, 1, 0.1, 10)

	state, err := Flatten(s)
	assert.ErrorIs(t, err, camera.ErrInvalidProjection)
	assert.Nil(t, state)

	s.Orthographic(-1, 1, -1, 1, 5, 5)
	_, err = Flatten(s)
	assert.ErrorIs(t, err, camera.ErrInvalidProjection)
}

func TestFlattenDanglingShapeReference(t *testing.T) {
	tbl := shape.NewTable(1)
	tbl.Add(shape.Square{})
	src := &fakeSource{
		nodes: []scene.Node{
			{Children: []scene.NodeHandle{1}},
			{Shapes: []int{0, 3}},
		},
		shapes: tbl,
		cam:    camera.NewCamera(),
	}

	state, err := Flatten(src)
	assert.ErrorIs(t, err, ErrDanglingShapeReference)
	assert.Nil(t, state)
}

func TestFlattenInvalidChildHandle(t *testing.T) {
	src := &fakeSource{
		nodes:  []scene.Node{{Children: []scene.NodeHandle{7}}},
		shapes: shape.NewTable(0),
		cam:    camera.NewCamera(),
	}

	_, err := Flatten(src)
	assert.ErrorIs(t, err, scene.ErrInvalidHandle)
}

func TestFlattenCameraAndClear(t *testing.T) {
	cam := camera.NewCamera(camera.WithOrthographic(-2, 2, -2, 2, 0, 10))
	s := scene.NewScene(scene.WithCamera(cam), scene.WithClearColor(blue))

	state, err := Flatten(s)
	require.NoError(t, err)

	want, err := cam.Matrix()
	require.NoError(t, err)
	assert.Equal(t, want, state.Camera.ViewProj)
	assert.Equal(t, blue, state.Clear)
	assert.Equal(t, blue.WGPU(), state.Clear.WGPU())
}

func TestFlattenDeepTree(t *testing.T) {
	s := scene.NewScene()
	const depth = 10000
	for i := 0; i < depth; i++ {
		s.Push(scene.WithTranslation(1, 0, 0))
	}
	s.Triangle([3]float32{0, 0, 0}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0})

	state, err := Flatten(s, WithCapacity(FrameStats{Instances: depth + 1, Draws: 1, Vertices: 3, Indices: 3}))
	require.NoError(t, err)
	require.Len(t, state.Instances, depth+1)
	assert.InDelta(t, float32(depth), state.Instances[depth].Transform[12], eps)
	assert.Equal(t, uint32(depth), state.Draws[0].FirstInstance)
}

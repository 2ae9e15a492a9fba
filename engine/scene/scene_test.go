package scene

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/Carmen-Shannon/oxy-sketch/engine/camera"
	"github.com/Carmen-Shannon/oxy-sketch/engine/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSceneHasEmptyRoot(t *testing.T) {
	s := NewScene()

	assert.Equal(t, RootHandle, s.Root())
	assert.Equal(t, RootHandle, s.Current())
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.Depth())
	assert.Equal(t, common.White, s.ClearColor())
	assert.NotNil(t, s.Camera())
	assert.Equal(t, 0, s.Shapes().Len())

	root, ok := s.Node(RootHandle)
	require.True(t, ok)
	assert.Nil(t, root.Transform)
	assert.Nil(t, root.Color)
	assert.Empty(t, root.Children)
	assert.Empty(t, root.Shapes)
}

func TestPushPopRestoresParent(t *testing.T) {
	s := NewScene()

	a := s.Push()
	b := s.Push()
	c := s.Push()
	assert.Equal(t, c, s.Current())
	assert.Equal(t, 3, s.Depth())

	require.NoError(t, s.Pop())
	assert.Equal(t, b, s.Current())
	require.NoError(t, s.Pop())
	assert.Equal(t, a, s.Current())

	d := s.Push()
	require.NoError(t, s.Pop())
	require.NoError(t, s.Pop())
	assert.Equal(t, RootHandle, s.Current())

	nodeA, _ := s.Node(a)
	assert.Equal(t, []NodeHandle{b, d}, nodeA.Children)
	nodeB, _ := s.Node(b)
	assert.Equal(t, []NodeHandle{c}, nodeB.Children)
	root, _ := s.Node(RootHandle)
	assert.Equal(t, []NodeHandle{a}, root.Children)
}

func TestPopAtRoot(t *testing.T) {
	s := NewScene()
	assert.ErrorIs(t, s.Pop(), ErrUnbalancedPop)

	s.Push()
	require.NoError(t, s.Pop())
	assert.True(t, errors.Is(s.Pop(), ErrUnbalancedPop))
	assert.Equal(t, RootHandle, s.Current())
}

func TestPushOptions(t *testing.T) {
	s := NewScene()
	red := common.RGBA(1, 0, 0, 1)

	h := s.Push(WithTranslation(10, 0, 0), WithScale(2, 2, 2), WithColor(red))
	n, ok := s.Node(h)
	require.True(t, ok)
	require.NotNil(t, n.Transform)
	assert.Equal(t, &[3]float32{10, 0, 0}, n.Transform.Translation)
	assert.Equal(t, &[3]float32{2, 2, 2}, n.Transform.Scale)
	assert.Nil(t, n.Transform.Rotation)
	assert.Equal(t, &red, n.Color)

	bare := s.Push()
	n, _ = s.Node(bare)
	assert.Nil(t, n.Transform)
	assert.True(t, n.Transform.Empty())
}

func TestSetAndUpdate(t *testing.T) {
	s := NewScene()
	h := s.Push(WithColor(common.RGBA(0, 1, 0, 1)))

	s.Set(WithRotationAxis(0, 0, 1, 0), WithInheritedColor())
	n, _ := s.Node(h)
	assert.Nil(t, n.Color)
	require.NotNil(t, n.Transform)
	assert.Equal(t, &[4]float32{0, 0, 0, 1}, n.Transform.Rotation)

	require.NoError(t, s.Update(RootHandle, WithColor(common.White)))
	root, _ := s.Node(RootHandle)
	assert.Equal(t, &common.White, root.Color)

	assert.ErrorIs(t, s.Update(NodeHandle(42), WithScale(1, 1, 1)), ErrInvalidHandle)
	_, ok := s.Node(-1)
	assert.False(t, ok)
}

func TestShapeCallsAttachToCurrentNode(t *testing.T) {
	s := NewScene()

	sq := s.Square()
	h := s.Push()
	tri := s.Triangle([3]float32{0, 0, 0}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0})
	circle := s.Circle()
	require.NoError(t, s.Reuse(sq))
	require.NoError(t, s.Pop())
	hex := s.Polygon(6)

	assert.Equal(t, []int{0, 1, 2, 3}, []int{sq, tri, circle, hex})
	assert.Equal(t, 4, s.Shapes().Len())

	root, _ := s.Node(RootHandle)
	assert.Equal(t, []int{sq, hex}, root.Shapes)
	child, _ := s.Node(h)
	assert.Equal(t, []int{tri, circle, sq}, child.Shapes)

	got, ok := s.Shapes().Get(circle)
	require.True(t, ok)
	assert.Equal(t, shape.Polygon{Sides: shape.CircleSides}, got)

	assert.ErrorIs(t, s.Reuse(4), ErrInvalidHandle)
	assert.ErrorIs(t, s.Reuse(-1), ErrInvalidHandle)
}

func TestMeshBuilder(t *testing.T) {
	s := NewScene()

	idx := s.Mesh(shape.TopologyStrip, func(m *MeshBuilder) {
		m.Vertex(0, 0, 0)
		m.Vertex(1, 0, 0)
		m.Vertex(0, 1, 0)
		m.Vertex(1, 1, 0)
		assert.Equal(t, 4, m.Len())
	})

	got, ok := s.Shapes().Get(idx)
	require.True(t, ok)
	mesh, ok := got.(shape.Mesh)
	require.True(t, ok)
	assert.Equal(t, shape.TopologyStrip, mesh.Topology)
	assert.Len(t, mesh.Vertices, 4)
	assert.Equal(t, [3]float32{1, 1, 0}, mesh.Vertices[3])

	empty := s.Mesh(shape.TopologyList, nil)
	got, _ = s.Shapes().Get(empty)
	assert.Empty(t, got.(shape.Mesh).Vertices)
}

func TestCameraCalls(t *testing.T) {
	cam := camera.NewCamera()
	s := NewScene(WithCamera(cam), WithClearColor(common.RGBA(0, 0, 0, 1)))
	assert.Same(t, cam, s.Camera())
	assert.Equal(t, common.RGBA(0, 0, 0, 1), s.ClearColor())

	s.Orthographic(-1, 1, -1, 1, 0, 10)
	assert.Equal(t, camera.Orthographic{Left: -1, Right: 1, Bottom: -1, Top: 1, Near: 0, Far: 10}, cam.Projection())

	s.Perspective(1, 2, 0.5, 50)
	assert.Equal(t, camera.Perspective{FovY: 1, Aspect: 2, Near: 0.5, Far: 50}, cam.Projection())

	other := camera.ScreenCamera(640, 480)
	s.SetCamera(other)
	assert.Same(t, other, s.Camera())

	s.SetClearColor(common.White)
	assert.Equal(t, common.White, s.ClearColor())
}

func TestSceneOptions(t *testing.T) {
	f := FrameInfo{Count: 7, Width: 800, Height: 600}
	s := NewScene(WithFrame(f), WithNodeCapacity(-3), WithShapeCapacity(-1))
	assert.Equal(t, f, s.Frame())
	assert.Equal(t, 1, s.Len())

	s = NewScene(WithNodeCapacity(64), WithShapeCapacity(16))
	for i := 0; i < 100; i++ {
		s.Push()
		s.Square()
	}
	assert.Equal(t, 101, s.Len())
	assert.Equal(t, 100, s.Depth())
	assert.Equal(t, 100, s.Shapes().Len())
}

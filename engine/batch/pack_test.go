package batch

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-sketch/engine/scene"
	"github.com/Carmen-Shannon/oxy-sketch/engine/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func packScene(t *testing.T, nodes int) *RenderState {
	t.Helper()
	s := scene.NewScene()
	for i := 0; i < nodes; i++ {
		s.Push(scene.WithTranslation(float32(i), 0, 0))
		s.Square()
		require.NoError(t, s.Pop())
	}
	state, err := Flatten(s)
	require.NoError(t, err)
	return state
}

func TestPackInline(t *testing.T) {
	state := packScene(t, 3)
	b := Pack(state, nil)

	assert.Len(t, b.Vertices, len(state.Vertices)*VertexSize)
	assert.Len(t, b.Indices, len(state.Indices)*IndexSize)
	assert.Len(t, b.Instances, len(state.Instances)*80)
	assert.Len(t, b.Indirect, len(state.Draws)*20)
	assert.Equal(t, state.Camera.Marshal(), b.Camera)

	assert.Equal(t, state.Instances[2].Marshal(), b.Instances[2*80:3*80])
	assert.Equal(t, state.Draws[1].Marshal(), b.Indirect[20:40])
	assert.Equal(t, state.Indices[4], binary.LittleEndian.Uint32(b.Indices[4*IndexSize:]))
	assert.Equal(t, state.Vertices[1][1], math.Float32frombits(binary.LittleEndian.Uint32(b.Vertices[VertexSize+4:])))
}

func TestPackOnPoolMatchesInline(t *testing.T) {
	pool := worker.NewDynamicWorkerPool(4, 256, 1*time.Second)
	defer pool.Stop()

	state := packScene(t, 3*packChunk+17)
	assert.Equal(t, Pack(state, nil), Pack(state, pool))
}

func TestPackEmptyState(t *testing.T) {
	state := packScene(t, 0)
	b := Pack(state, nil)

	assert.Nil(t, b.Vertices)
	assert.Nil(t, b.Indices)
	assert.Nil(t, b.Indirect)
	assert.Len(t, b.Instances, 80)
	assert.Len(t, b.Camera, 64)
}

func TestFlattenAndPackEmptyListMesh(t *testing.T) {
	s := scene.NewScene()
	s.Mesh(shape.TopologyList, func(m *scene.MeshBuilder) {})

	state, err := Flatten(s, WithStrictMeshes(true))
	require.NoError(t, err)
	require.Len(t, state.Draws, 1)
	assert.Equal(t, uint32(0), state.Draws[0].IndexCount)
	assert.Empty(t, state.Vertices)
	assert.Empty(t, state.Indices)

	b := Pack(state, nil)
	assert.Nil(t, b.Vertices)
	assert.Nil(t, b.Indices)
	assert.Len(t, b.Indirect, 20)
}

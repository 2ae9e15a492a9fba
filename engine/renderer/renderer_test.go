package renderer

import (
	"errors"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/Carmen-Shannon/oxy-sketch/engine/batch"
	"github.com/Carmen-Shannon/oxy-sketch/engine/scene"
	"github.com/Carmen-Shannon/oxy-sketch/engine/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	uploads   []*batch.Buffers
	draws     []int
	clears    []common.Color
	sizes     [][2]int
	uploadErr error
}

func (b *fakeBackend) ConfigureSurface(width, height int) {
	b.sizes = append(b.sizes, [2]int{width, height})
}

func (b *fakeBackend) SetPresentMode(mode PresentMode) {}

func (b *fakeBackend) Upload(buffers *batch.Buffers) error {
	if b.uploadErr != nil {
		return b.uploadErr
	}
	b.uploads = append(b.uploads, buffers)
	return nil
}

func (b *fakeBackend) Draw(clear common.Color, draws int) error {
	b.clears = append(b.clears, clear)
	b.draws = append(b.draws, draws)
	return nil
}

func (b *fakeBackend) Release() {}

func newTestRenderer(b RendererBackend) *renderer {
	return &renderer{mu: &sync.Mutex{}, backend: b}
}

func flatten(t *testing.T, build func(s scene.Scene)) *batch.RenderState {
	t.Helper()
	s := scene.NewScene()
	build(s)
	state, err := batch.Flatten(s)
	require.NoError(t, err)
	return state
}

func TestRenderIssuesOneDrawPerDescriptor(t *testing.T) {
	b := &fakeBackend{}
	r := newTestRenderer(b)

	state := flatten(t, func(s scene.Scene) {
		s.SetClearColor(common.RGBA(0, 0, 0, 1))
		s.Square()
		s.Polygon(6)
	})
	require.NoError(t, r.Render(state))

	assert.Equal(t, []int{2}, b.draws)
	assert.Equal(t, []common.Color{common.RGBA(0, 0, 0, 1)}, b.clears)
	require.Len(t, b.uploads, 1)
	assert.Len(t, b.uploads[0].Indirect, 2*20)
}

func TestRenderEmptyMeshOnlyClears(t *testing.T) {
	b := &fakeBackend{}
	r := newTestRenderer(b)

	state := flatten(t, func(s scene.Scene) {
		s.Mesh(shape.TopologyList, func(m *scene.MeshBuilder) {})
	})
	require.Len(t, state.Draws, 1)

	require.NoError(t, r.Render(state))
	assert.Equal(t, []int{0}, b.draws)
	assert.Nil(t, b.uploads[0].Vertices)
	assert.Nil(t, b.uploads[0].Indices)
}

func TestRenderUploadErrorSkipsDraw(t *testing.T) {
	b := &fakeBackend{uploadErr: errors.New("device lost")}
	r := newTestRenderer(b)

	err := r.Render(flatten(t, func(s scene.Scene) { s.Square() }))
	assert.ErrorContains(t, err, "upload frame")
	assert.Empty(t, b.draws)
}

func TestResizeForwardsToBackend(t *testing.T) {
	b := &fakeBackend{}
	r := newTestRenderer(b)

	r.Resize(640, 480)
	assert.Equal(t, [][2]int{{640, 480}}, b.sizes)
}

package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestMul4Identity(t *testing.T) {
	var tr, out [16]float32
	Translation(tr[:], 1, 2, 3)
	id := IdentityMatrix()

	Mul4(out[:], id[:], tr[:])
	assert.Equal(t, tr, out)
	Mul4(out[:], tr[:], id[:])
	assert.Equal(t, tr, out)
}

func TestMul4AliasesOutput(t *testing.T) {
	var a, b [16]float32
	Translation(a[:], 1, 0, 0)
	Translation(b[:], 0, 2, 0)

	Mul4(a[:], a[:], b[:])
	assert.Equal(t, [4]float32{1, 2, 0, 1}, MulVec4(a, [4]float32{0, 0, 0, 1}))
}

func TestComposeOrder(t *testing.T) {
	var s, tr, m [16]float32
	Scale(s[:], 2, 2, 2)
	Translation(tr[:], 1, 0, 0)

	// S * T translates first, so the offset is scaled too
	Mul4(m[:], s[:], tr[:])
	assert.Equal(t, [4]float32{2, 0, 0, 1}, MulVec4(m, [4]float32{0, 0, 0, 1}))

	Mul4(m[:], tr[:], s[:])
	assert.Equal(t, [4]float32{1, 0, 0, 1}, MulVec4(m, [4]float32{0, 0, 0, 1}))
}

func TestAxisAngleRotation(t *testing.T) {
	q := AxisAngle(0, 0, 2, math32.Pi/2)
	assert.InDeltaSlice(t, []float32{0, 0, math32.Sqrt(0.5), math32.Sqrt(0.5)}, q[:], 1e-6)

	var r [16]float32
	Rotation(r[:], q[0], q[1], q[2], q[3])
	v := MulVec4(r, [4]float32{1, 0, 0, 1})
	assert.InDeltaSlice(t, []float32{0, 1, 0, 1}, v[:], 1e-6)

	assert.Equal(t, [4]float32{0, 0, 0, 1}, AxisAngle(0, 0, 0, 1))
}

func TestPerspectiveLHDepthRange(t *testing.T) {
	var p [16]float32
	PerspectiveLH(p[:], math32.Pi/2, 1, 1, 10)

	near := MulVec4(p, [4]float32{0, 0, 1, 1})
	far := MulVec4(p, [4]float32{0, 0, 10, 1})
	assert.InDelta(t, 0, near[2]/near[3], 1e-6)
	assert.InDelta(t, 1, far[2]/far[3], 1e-6)

	edge := MulVec4(p, [4]float32{1, 1, 1, 1})
	assert.InDelta(t, 1, edge[0]/edge[3], 1e-6)
	assert.InDelta(t, 1, edge[1]/edge[3], 1e-6)
}

func TestOrthographicLHMapsVolume(t *testing.T) {
	var o [16]float32
	OrthographicLH(o[:], -2, 2, -1, 1, 0, 4)

	lo := MulVec4(o, [4]float32{-2, -1, 0, 1})
	hi := MulVec4(o, [4]float32{2, 1, 4, 1})
	assert.InDeltaSlice(t, []float32{-1, -1, 0, 1}, lo[:], 1e-6)
	assert.InDeltaSlice(t, []float32{1, 1, 1, 1}, hi[:], 1e-6)
}

func TestLookAtLH(t *testing.T) {
	var v [16]float32
	LookAtLH(v[:], 0, 0, -5, 0, 0, 0, 0, 1, 0)

	// the target lies straight ahead on +Z, and +X stays to the right
	center := MulVec4(v, [4]float32{0, 0, 0, 1})
	assert.InDeltaSlice(t, []float32{0, 0, 5, 1}, center[:], 1e-6)
	right := MulVec4(v, [4]float32{1, 0, 0, 1})
	assert.InDeltaSlice(t, []float32{1, 0, 5, 1}, right[:], 1e-6)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 3, 4))
	assert.Equal(t, "", Coalesce[string]())
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]uint32{}))
	assert.Equal(t, []byte{1, 0, 0, 0, 2, 0, 0, 0}, SliceToBytes([]uint32{1, 2}))
}

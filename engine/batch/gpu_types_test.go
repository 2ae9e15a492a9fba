package batch

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPUInstanceLayout(t *testing.T) {
	inst := GPUInstance{Color: [4]float32{0.25, 0.5, 0.75, 1}}
	for i := range inst.Transform {
		inst.Transform[i] = float32(i)
	}

	buf := inst.Marshal()
	require.Len(t, buf, 80)
	assert.Equal(t, 80, inst.Size())

	for i := 0; i < 16; i++ {
		assert.Equal(t, float32(i), math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:])))
	}
	assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(buf[64:])))
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[76:])))
}

func TestGPUDrawIndexedIndirectLayout(t *testing.T) {
	d := GPUDrawIndexedIndirect{
		IndexCount:    6,
		InstanceCount: 1,
		FirstIndex:    12,
		BaseVertex:    -4,
		FirstInstance: 3,
	}

	buf := d.Marshal()
	require.Len(t, buf, 20)
	assert.Equal(t, 20, d.Size())
	assert.Equal(t, uint32(6), binary.LittleEndian.Uint32(buf[0:]))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[4:]))
	assert.Equal(t, uint32(12), binary.LittleEndian.Uint32(buf[8:]))
	assert.Equal(t, int32(-4), int32(binary.LittleEndian.Uint32(buf[12:])))
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(buf[16:]))
}

func TestBufferLayouts(t *testing.T) {
	v := VertexBufferLayout()
	assert.Equal(t, uint64(VertexSize), v.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeVertex, v.StepMode)
	require.Len(t, v.Attributes, 1)
	assert.Equal(t, uint32(0), v.Attributes[0].ShaderLocation)

	inst := InstanceBufferLayout()
	assert.Equal(t, uint64(80), inst.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeInstance, inst.StepMode)
	require.Len(t, inst.Attributes, 5)
	for i, a := range inst.Attributes {
		assert.Equal(t, uint32(i+1), a.ShaderLocation)
		assert.Equal(t, uint64(i*16), a.Offset)
		assert.Equal(t, wgpu.VertexFormatFloat32x4, a.Format)
	}
}

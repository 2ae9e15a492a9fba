package batch

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// VertexSize is the size of one flattened vertex in bytes (vec4<f32> position).
const VertexSize = 16

// IndexSize is the size of one flattened index in bytes (u32).
const IndexSize = 4

// GPUInstance is the GPU-aligned representation of one resolved node, read as a per-instance
// vertex attribute: the transform's four columns at shader locations 1-4, the color at location 5.
// Size: 80 bytes.
type GPUInstance struct {
	Transform [16]float32 // offset 0: column-major model matrix
	Color     [4]float32  // offset 64: RGBA
}

// Size returns the size of the GPUInstance struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUInstance) Marshal() []byte {
	buf := make([]byte, g.Size())
	g.MarshalTo(buf)
	return buf
}

// MarshalTo serializes the GPUInstance into buf, which must hold at least Size bytes.
//
// Parameters:
//   - buf: destination buffer
func (g *GPUInstance) MarshalTo(buf []byte) {
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Transform[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Color[i]))
	}
}

// GPUDrawIndexedIndirect is the argument block of one indexed indirect draw, in the field order
// the GPU reads it.
// Size: 20 bytes.
type GPUDrawIndexedIndirect struct {
	IndexCount    uint32 // offset 0: number of indices drawn
	InstanceCount uint32 // offset 4: always 1
	FirstIndex    uint32 // offset 8: first index in the flattened index buffer
	BaseVertex    int32  // offset 12: added to every index before fetching a vertex
	FirstInstance uint32 // offset 16: instance the draw reads its transform and color from
}

// Size returns the size of the GPUDrawIndexedIndirect struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (20)
func (g *GPUDrawIndexedIndirect) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUDrawIndexedIndirect struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUDrawIndexedIndirect) Marshal() []byte {
	buf := make([]byte, g.Size())
	g.MarshalTo(buf)
	return buf
}

// MarshalTo serializes the GPUDrawIndexedIndirect into buf, which must hold at least Size bytes.
//
// Parameters:
//   - buf: destination buffer
func (g *GPUDrawIndexedIndirect) MarshalTo(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:], g.IndexCount)
	binary.LittleEndian.PutUint32(buf[4:], g.InstanceCount)
	binary.LittleEndian.PutUint32(buf[8:], g.FirstIndex)
	binary.LittleEndian.PutUint32(buf[12:], uint32(g.BaseVertex))
	binary.LittleEndian.PutUint32(buf[16:], g.FirstInstance)
}

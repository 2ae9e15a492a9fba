package batch

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// VertexBufferLayout describes the flattened vertex buffer: one vec4<f32> position at location 0.
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout for vertex buffer slot 0
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: VertexSize,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 0},
		},
	}
}

// InstanceBufferLayout describes the instance buffer: the model matrix columns at locations 1-4
// and the color at location 5, advancing once per instance.
//
// Returns:
//   - wgpu.VertexBufferLayout: the layout for vertex buffer slot 1
func InstanceBufferLayout() wgpu.VertexBufferLayout {
	attrs := make([]wgpu.VertexAttribute, 5)
	for i := range attrs {
		attrs[i] = wgpu.VertexAttribute{
			Format:         wgpu.VertexFormatFloat32x4,
			Offset:         uint64(i * 16),
			ShaderLocation: uint32(i + 1),
		}
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64((&GPUInstance{}).Size()),
		StepMode:    wgpu.VertexStepModeInstance,
		Attributes:  attrs,
	}
}

// IndexFormat is the format of the flattened index buffer.
const IndexFormat = wgpu.IndexFormatUint32

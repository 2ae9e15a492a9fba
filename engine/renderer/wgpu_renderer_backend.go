package renderer

import (
	_ "embed"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/Carmen-Shannon/oxy-sketch/engine/batch"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed shader.wgsl
var shaderSource string

// minBufferSize is the smallest GPU buffer allocated for per-frame data.
const minBufferSize = 256

// gpuBuffer is a GPU buffer that is replaced by a larger one when a frame outgrows it.
type gpuBuffer struct {
	label  string
	usage  wgpu.BufferUsage
	buffer *wgpu.Buffer
	size   uint64
}

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat   wgpu.TextureFormat
	msaaTexture     *wgpu.Texture
	msaaTextureView *wgpu.TextureView

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount

	pipeline        *wgpu.RenderPipeline
	cameraLayout    *wgpu.BindGroupLayout
	cameraBindGroup *wgpu.BindGroup

	vertices  *gpuBuffer
	indices   *gpuBuffer
	instances *gpuBuffer
	indirect  *gpuBuffer
	camera    *gpuBuffer
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount, presentMode PresentMode) (*wgpuRendererBackendImpl, error) {
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		sampleCount: sampleCount,
		vertices:    &gpuBuffer{label: "Vertex Buffer", usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst},
		indices:     &gpuBuffer{label: "Index Buffer", usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst},
		instances:   &gpuBuffer{label: "Instance Buffer", usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst},
		indirect:    &gpuBuffer{label: "Indirect Buffer", usage: wgpu.BufferUsageIndirect | wgpu.BufferUsageCopyDst},
		camera:      &gpuBuffer{label: "Camera Buffer", usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst},
	}
	b.SetPresentMode(presentMode)
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	b.adapter = a

	// Draws read their instance through first_instance in the indirect arguments.
	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label:            "Sketch Device",
		RequiredFeatures: []wgpu.FeatureName{wgpu.FeatureNameIndirectFirstInstance},
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		return nil, errors.New("surface reports no texture formats")
	}
	b.surfaceFormat = capabilities.Formats[0]

	// Every buffer exists from the start so a pass never binds a nil buffer.
	for _, buf := range []*gpuBuffer{b.vertices, b.indices, b.instances, b.indirect, b.camera} {
		if err := b.ensure(buf, minBufferSize); err != nil {
			return nil, err
		}
	}
	if err := b.createPipeline(); err != nil {
		return nil, err
	}
	return b, nil
}

// createPipeline builds the single shape pipeline: flattened vertices in slot 0, instances in slot 1,
// the camera uniform at group 0 binding 0.
func (b *wgpuRendererBackendImpl) createPipeline() error {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Shape Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: shaderSource,
		},
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}

	cameraEntry := wgpu.BindGroupLayoutEntry{
		Binding:    0,
		Visibility: wgpu.ShaderStageVertex,
	}
	cameraEntry.Buffer.Type = wgpu.BufferBindingTypeUniform

	b.cameraLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "Camera Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{cameraEntry},
	})
	if err != nil {
		return fmt.Errorf("create camera layout: %w", err)
	}

	b.cameraBindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Camera Bind Group",
		Layout: b.cameraLayout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  b.camera.buffer,
			Offset:  0,
			Size:    wgpu.WholeSize,
		}},
	})
	if err != nil {
		return fmt.Errorf("create camera bind group: %w", err)
	}

	layout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Shape Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.cameraLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}

	b.pipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Shape Render Pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{batch.VertexBufferLayout(), batch.InstanceBufferLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    b.surfaceFormat,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create render pipeline: %w", err)
	}
	return nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return
	}

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTexture.Release()
		b.msaaTextureView, b.msaaTexture = nil, nil
	}
	if b.sampleCount <= 1 {
		return
	}

	msaaTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "MSAA Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   uint32(b.sampleCount),
		Dimension:     wgpu.TextureDimension2D,
		Format:        b.surfaceFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	view, err := msaaTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}
	b.msaaTexture, b.msaaTextureView = msaaTexture, view
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) Upload(buffers *batch.Buffers) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	uploads := []struct {
		target *gpuBuffer
		data   []byte
	}{
		{b.vertices, buffers.Vertices},
		{b.indices, buffers.Indices},
		{b.instances, buffers.Instances},
		{b.indirect, buffers.Indirect},
		{b.camera, buffers.Camera},
	}
	for _, u := range uploads {
		if len(u.data) == 0 {
			continue
		}
		if err := b.ensure(u.target, uint64(len(u.data))); err != nil {
			return err
		}
		b.queue.WriteBuffer(u.target.buffer, 0, u.data)
	}
	return nil
}

// ensure makes sure target can hold size bytes, replacing it with a buffer of the next power of two.
// The camera buffer never grows, so the camera bind group stays valid.
func (b *wgpuRendererBackendImpl) ensure(target *gpuBuffer, size uint64) error {
	if target.buffer != nil && target.size >= size {
		return nil
	}

	capacity := uint64(minBufferSize)
	for capacity < size {
		capacity <<= 1
	}

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            target.label,
		Size:             capacity,
		Usage:            target.usage,
		MappedAtCreation: false,
	})
	if err != nil {
		return fmt.Errorf("create %s (%d bytes): %w", target.label, capacity, err)
	}
	if target.buffer != nil {
		target.buffer.Release()
	}
	target.buffer, target.size = buf, capacity
	return nil
}

func (b *wgpuRendererBackendImpl) Draw(clear common.Color, draws int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create surface view: %w", err)
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	// With MSAA the pass renders into the multisampled texture and resolves into the swapchain view.
	attachment := wgpu.RenderPassColorAttachment{
		View:       view,
		LoadOp:     wgpu.LoadOpClear,
		StoreOp:    wgpu.StoreOpStore,
		ClearValue: clear.WGPU(),
	}
	if b.msaaTextureView != nil {
		attachment.View = b.msaaTextureView
		attachment.ResolveTarget = view
		attachment.StoreOp = wgpu.StoreOpDiscard
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{attachment},
	})
	if draws > 0 {
		pass.SetPipeline(b.pipeline)
		pass.SetBindGroup(0, b.cameraBindGroup, nil)
		pass.SetVertexBuffer(0, b.vertices.buffer, 0, wgpu.WholeSize)
		pass.SetVertexBuffer(1, b.instances.buffer, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(b.indices.buffer, batch.IndexFormat, 0, wgpu.WholeSize)

		var args batch.GPUDrawIndexedIndirect
		stride := uint64(args.Size())
		for i := 0; i < draws; i++ {
			pass.DrawIndexedIndirect(b.indirect.buffer, uint64(i)*stride)
		}
	}
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish command encoder: %w", err)
	}
	defer commandBuffer.Release()

	b.queue.Submit(commandBuffer)
	b.surface.Present()
	return nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, buf := range []*gpuBuffer{b.vertices, b.indices, b.instances, b.indirect, b.camera} {
		if buf.buffer != nil {
			buf.buffer.Release()
			buf.buffer = nil
		}
	}
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTexture.Release()
	}
	if b.pipeline != nil {
		b.pipeline.Release()
	}
	if b.cameraBindGroup != nil {
		b.cameraBindGroup.Release()
	}
	if b.cameraLayout != nil {
		b.cameraLayout.Release()
	}
	b.queue.Release()
	b.device.Release()
	b.adapter.Release()
	b.surface.Release()
	b.instance.Release()
}

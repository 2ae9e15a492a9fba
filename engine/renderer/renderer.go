package renderer

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-sketch/engine/batch"
	"github.com/cogentcore/webgpu/wgpu"
)

type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	packPool    worker.DynamicWorkerPool
	packWorkers int

	forceFallbackAdapter bool
	presentMode          PresentMode
	sampleCount          MSAASampleCount
}

// Surface is what the renderer draws into: anything that yields a WebGPU surface descriptor and a size.
// window.Window satisfies it.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Size() (int, int)
}

// Renderer draws flattened frames. Each Render uploads the frame's vertex, index, instance,
// indirect, and camera buffers and issues one indexed indirect draw per draw descriptor in a
// single render pass cleared to the frame's clear color.
type Renderer interface {
	// Render uploads and draws one frame. A frame with no draws only clears the surface.
	//
	// Parameters:
	//   - state: the flattened frame
	//
	// Returns:
	//   - error: an error if upload or submission fails
	Render(state *batch.RenderState) error

	// Resize reconfigures the surface for a new framebuffer size. Zero sizes (minimized windows) are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes the present mode; it takes effect at the next Resize.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// Release stops the packing pool and frees all GPU resources.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer for the given surface and configures it at the surface's current size.
//
// Parameters:
//   - backendType: the GPU backend to use
//   - surface: the surface to draw into
//   - options: functional options for renderer configuration
//
// Returns:
//   - Renderer: the new renderer
//   - error: an error if no adapter or device could be acquired, or the pipeline failed to build
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		packWorkers: max(runtime.NumCPU()-1, 1),
		presentMode: PresentModeVSync,
		sampleCount: MSAA4x,
	}
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		b, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.sampleCount, r.presentMode)
		if err != nil {
			return nil, fmt.Errorf("create wgpu backend: %w", err)
		}
		r.backend = b
	}

	r.packPool = worker.NewDynamicWorkerPool(r.packWorkers, 256, 1*time.Second)
	r.backend.ConfigureSurface(surface.Size())
	return r, nil
}

func (r *renderer) Render(state *batch.RenderState) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	buffers := batch.Pack(state, r.packPool)
	if err := r.backend.Upload(buffers); err != nil {
		return fmt.Errorf("upload frame: %w", err)
	}
	if err := r.backend.Draw(state.Clear, drawCount(state)); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}
	return nil
}

// drawCount is the number of indirect draws worth issuing. Draws of meshes without vertices
// index nothing, and a frame made only of them needs no vertex or index buffer bound.
func drawCount(state *batch.RenderState) int {
	if len(state.Vertices) == 0 || len(state.Indices) == 0 {
		return 0
	}
	return len(state.Draws)
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.packPool != nil {
		r.packPool.Stop()
		r.packPool = nil
	}
	r.backend.Release()
}

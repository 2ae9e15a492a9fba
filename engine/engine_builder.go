package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-sketch/engine/batch"
	"github.com/Carmen-Shannon/oxy-sketch/engine/camera"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithWindow sets the window the engine runs in. Its resize events are forwarded to the renderer
// and its size seeds each frame's camera.
//
// Parameters:
//   - w: the window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer frames are handed to. Required.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithDrawCallback sets the function that describes each frame.
//
// Parameters:
//   - callback: function receiving the frame's fresh scene
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDrawCallback(callback DrawCallback) EngineBuilderOption {
	return func(e *engine) {
		e.draw = callback
	}
}

// WithCamera sets a camera shared by every frame instead of the per-frame screen camera.
//
// Parameters:
//   - c: the shared camera
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithFlattenOptions sets options passed to every frame's batch.Flatten call.
//
// Parameters:
//   - options: the flatten options
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFlattenOptions(options ...batch.FlattenBuilderOption) EngineBuilderOption {
	return func(e *engine) {
		e.flattenOptions = append(e.flattenOptions, options...)
	}
}

// WithSize sets the surface size used when no window is attached.
//
// Parameters:
//   - width, height: the size in pixels
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSize(width, height int) EngineBuilderOption {
	return func(e *engine) {
		e.width, e.height = width, height
	}
}

// WithProfilerInterval sets how often profiling statistics are logged. Defaults to 1 second.
//
// Parameters:
//   - d: the logging interval
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfilerInterval(d time.Duration) EngineBuilderOption {
	return func(e *engine) {
		e.profiler.SetInterval(d)
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
	}
}

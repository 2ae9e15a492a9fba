package scene

import (
	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/Carmen-Shannon/oxy-sketch/engine/camera"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithCamera sets the camera the scene starts with.
// The camera is shared, not copied; projection changes made through the scene are visible to other holders.
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(c camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.camera = c
	}
}

// WithClearColor sets the color the frame is cleared to. Defaults to white.
//
// Parameters:
//   - c: the clear color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithClearColor(c common.Color) SceneBuilderOption {
	return func(s *scene) {
		s.clear = c
	}
}

// WithFrame sets the frame information exposed through Scene.Frame.
//
// Parameters:
//   - f: the frame info
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithFrame(f FrameInfo) SceneBuilderOption {
	return func(s *scene) {
		s.frame = f
	}
}

// WithNodeCapacity preallocates room for n nodes, root included.
// Useful when the per-frame loop knows last frame's node count.
//
// Parameters:
//   - n: expected node count
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithNodeCapacity(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.nodeCapacity = n
	}
}

// WithShapeCapacity preallocates room for n shape-table entries.
//
// Parameters:
//   - n: expected shape count
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShapeCapacity(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 0 {
			n = 0
		}
		s.shapeCapacity = n
	}
}

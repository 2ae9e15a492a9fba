package batch

import (
	"github.com/Carmen-Shannon/oxy-sketch/common"
)

// FlattenBuilderOption is a functional option for configuring Flatten.
// Use the With* functions to create options.
type FlattenBuilderOption func(f *flattener)

// WithDefaultColor sets the color of the default instance, inherited by nodes whose ancestors never set one.
// Defaults to white.
//
// Parameters:
//   - c: the default color
//
// Returns:
//   - FlattenBuilderOption: option function to apply
func WithDefaultColor(c common.Color) FlattenBuilderOption {
	return func(f *flattener) {
		f.defaultColor = c
	}
}

// WithPassThroughReuse makes nodes with neither a transform nor a color share their ancestor's
// instance instead of producing a copy of it. Draw output is unchanged; the instance buffer shrinks.
//
// Parameters:
//   - enabled: whether pass-through nodes reuse their ancestor's instance
//
// Returns:
//   - FlattenBuilderOption: option function to apply
func WithPassThroughReuse(enabled bool) FlattenBuilderOption {
	return func(f *flattener) {
		f.passThroughReuse = enabled
	}
}

// WithStrictMeshes rejects list meshes whose vertex count is not a multiple of 3.
// Without it the trailing vertices are drawn as whatever the GPU makes of them.
//
// Parameters:
//   - enabled: whether list meshes are validated
//
// Returns:
//   - FlattenBuilderOption: option function to apply
func WithStrictMeshes(enabled bool) FlattenBuilderOption {
	return func(f *flattener) {
		f.strictMeshes = enabled
	}
}

// WithCapacity preallocates the output buffers, typically from the previous frame's FrameStats.
//
// Parameters:
//   - stats: expected element counts
//
// Returns:
//   - FlattenBuilderOption: option function to apply
func WithCapacity(stats FrameStats) FlattenBuilderOption {
	return func(f *flattener) {
		f.vertexCapacity = max(stats.Vertices, 0)
		f.indexCapacity = max(stats.Indices, 0)
		f.instanceCapacity = max(stats.Instances, 1)
		f.drawCapacity = max(stats.Draws, 0)
	}
}

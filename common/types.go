// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// White is the fallback color for nodes whose ancestors never set one, and the default clear color.
var White = Color{R: 1, G: 1, B: 1, A: 1}

// RGBA builds a Color from its four components.
//
// Parameters:
//   - r, g, b, a: color components in [0, 1]
//
// Returns:
//   - Color: the color
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Vec4 returns the color as a 4-component vector in RGBA order, the layout the instance buffer expects.
//
// Returns:
//   - [4]float32: the components as {R, G, B, A}
func (c Color) Vec4() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// WGPU converts the color to a wgpu.Color, used as a render pass clear value.
//
// Returns:
//   - wgpu.Color: the same color in float64 components
func (c Color) WGPU() wgpu.Color {
	return wgpu.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)}
}

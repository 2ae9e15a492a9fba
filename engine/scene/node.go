package scene

import (
	"github.com/Carmen-Shannon/oxy-sketch/common"
)

// NodeHandle is a stable index into a scene's node arena. Handles are never reused within a scene.
type NodeHandle int

// RootHandle is the handle of every scene's root node.
const RootHandle NodeHandle = 0

// Transform is a node's local transform. Each component is optional; a nil component
// contributes nothing to the local matrix. The local matrix is composed as
// scale * rotation * translation.
type Transform struct {
	// Scale is the per-axis scale factor.
	Scale *[3]float32

	// Rotation is a unit quaternion (x, y, z, w).
	Rotation *[4]float32

	// Translation is the offset from the parent's origin.
	Translation *[3]float32
}

// Empty reports whether the transform has no components.
func (t *Transform) Empty() bool {
	return t == nil || (t.Scale == nil && t.Rotation == nil && t.Translation == nil)
}

// Node is one element of the scene tree. Children and Shapes keep the order in which they were recorded.
type Node struct {
	// Transform is the node's local transform, or nil for none.
	Transform *Transform

	// Color is the node's explicit color, or nil to inherit the nearest ancestor's.
	Color *common.Color

	// Children are the handles of the node's child nodes.
	Children []NodeHandle

	// Shapes are indices into the scene's shape table. The same index may appear more than once.
	Shapes []int
}

// NodeOption configures a node when it is pushed or updated through Set.
type NodeOption func(n *Node)

// WithScale sets the node's scale component.
//
// Parameters:
//   - x, y, z: scale factors along each axis
//
// Returns:
//   - NodeOption: option function to apply
func WithScale(x, y, z float32) NodeOption {
	return func(n *Node) {
		transform(n).Scale = &[3]float32{x, y, z}
	}
}

// WithRotation sets the node's rotation component.
//
// Parameters:
//   - q: unit quaternion as (x, y, z, w)
//
// Returns:
//   - NodeOption: option function to apply
func WithRotation(q [4]float32) NodeOption {
	return func(n *Node) {
		transform(n).Rotation = &q
	}
}

// WithRotationAxis sets the node's rotation component from an axis and an angle.
//
// Parameters:
//   - ax, ay, az: rotation axis (normalized internally)
//   - angle: rotation angle in radians
//
// Returns:
//   - NodeOption: option function to apply
func WithRotationAxis(ax, ay, az, angle float32) NodeOption {
	return WithRotation(common.AxisAngle(ax, ay, az, angle))
}

// WithTranslation sets the node's translation component.
//
// Parameters:
//   - x, y, z: offset along each axis
//
// Returns:
//   - NodeOption: option function to apply
func WithTranslation(x, y, z float32) NodeOption {
	return func(n *Node) {
		transform(n).Translation = &[3]float32{x, y, z}
	}
}

// WithColor sets the node's explicit color.
//
// Parameters:
//   - c: the color
//
// Returns:
//   - NodeOption: option function to apply
func WithColor(c common.Color) NodeOption {
	return func(n *Node) {
		n.Color = &c
	}
}

// WithInheritedColor clears the node's explicit color so it inherits from its ancestors.
//
// Returns:
//   - NodeOption: option function to apply
func WithInheritedColor() NodeOption {
	return func(n *Node) {
		n.Color = nil
	}
}

func transform(n *Node) *Transform {
	if n.Transform == nil {
		n.Transform = &Transform{}
	}
	return n.Transform
}

package batch

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/Carmen-Shannon/oxy-sketch/engine/camera"
	"github.com/Carmen-Shannon/oxy-sketch/engine/scene"
	"github.com/Carmen-Shannon/oxy-sketch/engine/shape"
)

// ErrDanglingShapeReference is returned when a node references an index outside the shape table.
var ErrDanglingShapeReference = errors.New("dangling shape reference")

// Source is the read-only view of a scene that Flatten consumes. scene.Scene satisfies it.
type Source interface {
	Node(h scene.NodeHandle) (scene.Node, bool)
	Shapes() *shape.Table
	Camera() camera.Camera
	ClearColor() common.Color
}

// RenderState is the render-ready output of one frame: flat geometry, per-node instances,
// one indirect draw per shape occurrence, the combined camera matrix, and the clear color.
//
// Indices are local to the shape they belong to; each draw's BaseVertex is added by the GPU.
// Instances[0] is always the default identity instance.
type RenderState struct {
	Vertices  [][4]float32
	Indices   []uint32
	Instances []GPUInstance
	Draws     []GPUDrawIndexedIndirect
	Camera    camera.GPUCameraUniform
	Clear     common.Color
}

// Stats summarizes a RenderState for logging.
//
// Returns:
//   - FrameStats: element counts of each buffer
func (r *RenderState) Stats() FrameStats {
	if r == nil {
		return FrameStats{}
	}
	return FrameStats{
		Instances: len(r.Instances),
		Draws:     len(r.Draws),
		Vertices:  len(r.Vertices),
		Indices:   len(r.Indices),
	}
}

// FrameStats holds the element counts of a RenderState.
type FrameStats struct {
	Instances int
	Draws     int
	Vertices  int
	Indices   int
}

type flattener struct {
	defaultColor     common.Color
	passThroughReuse bool
	strictMeshes     bool
	vertexCapacity   int
	indexCapacity    int
	instanceCapacity int
	drawCapacity     int
}

// Flatten walks the scene tree depth-first and resolves it into a RenderState.
//
// Every visited node produces one instance whose transform is its ancestor's resolved transform
// times its own local transform, and whose color is its own color or, if it has none, its ancestor's
// resolved color. A root with neither transform nor color shares the default instance at index 0.
// Every shape reference on a node produces one draw bound to that node's instance. Children are
// visited in the order they were pushed.
//
// Flatten never returns a partial state: any error yields a nil RenderState.
//
// Parameters:
//   - src: the scene to flatten
//   - options: functional options for the traversal
//
// Returns:
//   - *RenderState: the render-ready output
//   - error: ErrDanglingShapeReference, shape.ErrInvalidShape, camera.ErrInvalidProjection, or
//     scene.ErrInvalidHandle, wrapped with the offending node
func Flatten(src Source, options ...FlattenBuilderOption) (*RenderState, error) {
	f := &flattener{
		defaultColor: common.White,
	}
	for _, opt := range options {
		opt(f)
	}

	cam, err := src.Camera().Matrix()
	if err != nil {
		return nil, fmt.Errorf("resolve camera: %w", err)
	}

	state := &RenderState{
		Vertices:  make([][4]float32, 0, f.vertexCapacity),
		Indices:   make([]uint32, 0, f.indexCapacity),
		Instances: make([]GPUInstance, 1, common.Coalesce(f.instanceCapacity, 1)),
		Draws:     make([]GPUDrawIndexedIndirect, 0, f.drawCapacity),
		Camera:    camera.GPUCameraUniform{ViewProj: cam},
		Clear:     src.ClearColor(),
	}
	state.Instances[0] = GPUInstance{Transform: common.IdentityMatrix(), Color: f.defaultColor.Vec4()}

	table := src.Shapes()
	geometry := make(map[int]shape.Geometry)

	// nodes and ancestors move in lock-step: ancestors[i] is the instance nodes[i] inherits from.
	nodes := []scene.NodeHandle{scene.RootHandle}
	ancestors := []uint32{0}

	for len(nodes) > 0 {
		last := len(nodes) - 1
		h, parent := nodes[last], ancestors[last]
		nodes, ancestors = nodes[:last], ancestors[:last]

		n, ok := src.Node(h)
		if !ok {
			return nil, fmt.Errorf("node %d: %w", h, scene.ErrInvalidHandle)
		}

		idx := parent
		passThrough := n.Transform.Empty() && n.Color == nil
		if !passThrough || (h != scene.RootHandle && !f.passThroughReuse) {
			state.Instances = append(state.Instances, resolve(state.Instances[parent], n))
			idx = uint32(len(state.Instances) - 1)
		}

		for _, si := range n.Shapes {
			g, ok := geometry[si]
			if !ok {
				sh, found := table.Get(si)
				if !found {
					return nil, fmt.Errorf("node %d references shape %d of %d: %w", h, si, table.Len(), ErrDanglingShapeReference)
				}
				if g, err = shape.Tessellate(sh, f.strictMeshes); err != nil {
					return nil, fmt.Errorf("node %d shape %d: %w", h, si, err)
				}
				geometry[si] = g
			}

			state.Draws = append(state.Draws, GPUDrawIndexedIndirect{
				IndexCount:    uint32(len(g.Indices)),
				InstanceCount: 1,
				FirstIndex:    uint32(len(state.Indices)),
				BaseVertex:    int32(len(state.Vertices)),
				FirstInstance: idx,
			})
			state.Vertices = append(state.Vertices, g.Vertices...)
			state.Indices = append(state.Indices, g.Indices...)
		}

		for i := len(n.Children) - 1; i >= 0; i-- {
			nodes = append(nodes, n.Children[i])
			ancestors = append(ancestors, idx)
		}
	}

	return state, nil
}

// resolve composes a node's local transform and color onto its ancestor's instance.
func resolve(ancestor GPUInstance, n scene.Node) GPUInstance {
	inst := ancestor
	if local, ok := localMatrix(n.Transform); ok {
		common.Mul4(inst.Transform[:], ancestor.Transform[:], local[:])
	}
	if n.Color != nil {
		inst.Color = n.Color.Vec4()
	}
	return inst
}

// localMatrix returns S * R * T built from the components present on t.
// ok is false when t has no components.
func localMatrix(t *scene.Transform) (m [16]float32, ok bool) {
	if t.Empty() {
		return m, false
	}

	m = common.IdentityMatrix()
	var f [16]float32
	if t.Scale != nil {
		common.Scale(f[:], t.Scale[0], t.Scale[1], t.Scale[2])
		common.Mul4(m[:], m[:], f[:])
	}
	if t.Rotation != nil {
		common.Rotation(f[:], t.Rotation[0], t.Rotation[1], t.Rotation[2], t.Rotation[3])
		common.Mul4(m[:], m[:], f[:])
	}
	if t.Translation != nil {
		common.Translation(f[:], t.Translation[0], t.Translation[1], t.Translation[2])
		common.Mul4(m[:], m[:], f[:])
	}
	return m, true
}

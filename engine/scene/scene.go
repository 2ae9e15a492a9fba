package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-sketch/common"
	"github.com/Carmen-Shannon/oxy-sketch/engine/camera"
	"github.com/Carmen-Shannon/oxy-sketch/engine/shape"
)

var (
	// ErrUnbalancedPop is returned by Pop when the current node is the root.
	ErrUnbalancedPop = errors.New("pop without matching push")

	// ErrInvalidHandle is returned when a node handle does not address a node in the scene.
	ErrInvalidHandle = errors.New("invalid node handle")
)

// FrameInfo describes the frame a scene is being built for.
type FrameInfo struct {
	// Count is the zero-based number of frames rendered before this one.
	Count uint64

	// Width and Height are the surface size in pixels.
	Width, Height int
}

// Scene is the retained description of one frame: a tree of nodes built through a stack-based
// builder, the shape table the nodes reference, a camera, and a clear color.
//
// The builder tracks a current node. Push appends a new child to the current node and descends
// into it; Pop returns to the node that was current before the matching Push. Shape calls attach
// shapes to the current node.
//
// A scene is built fresh every frame and then flattened; it is safe for concurrent access but the
// order of builder calls defines the tree, so a single goroutine is expected to drive it.
type Scene interface {
	// Root returns the handle of the root node.
	//
	// Returns:
	//   - NodeHandle: always RootHandle
	Root() NodeHandle

	// Current returns the handle of the node builder calls currently apply to.
	//
	// Returns:
	//   - NodeHandle: the current node
	Current() NodeHandle

	// Depth returns how many pushes are outstanding.
	//
	// Returns:
	//   - int: 0 when the current node is the root
	Depth() int

	// Node returns a copy of the node at the given handle.
	// The returned slices alias the scene's storage and must not be modified.
	//
	// Parameters:
	//   - h: the node handle
	//
	// Returns:
	//   - Node: the node
	//   - bool: false if the handle is not in the scene
	Node(h NodeHandle) (Node, bool)

	// Len returns the number of nodes in the scene, root included.
	//
	// Returns:
	//   - int: the node count
	Len() int

	// Push creates a child of the current node configured by the given options, and makes it current.
	//
	// Parameters:
	//   - options: transform and color options for the new node
	//
	// Returns:
	//   - NodeHandle: the new node's handle
	Push(options ...NodeOption) NodeHandle

	// Pop makes the node that was current before the matching Push current again.
	//
	// Returns:
	//   - error: ErrUnbalancedPop if the current node is the root
	Pop() error

	// Set applies options to the current node, replacing any component they name.
	//
	// Parameters:
	//   - options: transform and color options
	Set(options ...NodeOption)

	// Update applies options to any node in the scene.
	//
	// Parameters:
	//   - h: the node handle
	//   - options: transform and color options
	//
	// Returns:
	//   - error: ErrInvalidHandle if the handle is not in the scene
	Update(h NodeHandle, options ...NodeOption) error

	// AddShape appends a shape to the shape table and references it from the current node.
	//
	// Parameters:
	//   - s: the shape
	//
	// Returns:
	//   - int: the shape's index in the table
	AddShape(s shape.Shape) int

	// Reuse references an existing shape-table entry from the current node.
	//
	// Parameters:
	//   - index: the shape index
	//
	// Returns:
	//   - error: ErrInvalidHandle wrapped with context if the index is not in the table
	Reuse(index int) error

	// Triangle adds a triangle with the given corners to the current node.
	//
	// Parameters:
	//   - a, b, c: the corners
	//
	// Returns:
	//   - int: the shape index
	Triangle(a, b, c [3]float32) int

	// Square adds the built-in square to the current node.
	//
	// Returns:
	//   - int: the shape index
	Square() int

	// Polygon adds a regular polygon with the given number of sides to the current node.
	// Side counts below 3 are recorded as given and rejected when the scene is flattened.
	//
	// Parameters:
	//   - sides: number of sides
	//
	// Returns:
	//   - int: the shape index
	Polygon(sides uint32) int

	// Circle adds a circle approximated by a polygon of shape.CircleSides sides to the current node.
	//
	// Returns:
	//   - int: the shape index
	Circle() int

	// Mesh adds a mesh whose vertices are recorded by build to the current node.
	//
	// Parameters:
	//   - topology: how the vertices form triangles
	//   - build: called once with a MeshBuilder to record vertices
	//
	// Returns:
	//   - int: the shape index
	Mesh(topology shape.Topology, build func(m *MeshBuilder)) int

	// Shapes returns the scene's shape table.
	//
	// Returns:
	//   - *shape.Table: the table
	Shapes() *shape.Table

	// Camera returns the scene's camera.
	//
	// Returns:
	//   - camera.Camera: the camera
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - c: the new camera
	SetCamera(c camera.Camera)

	// Orthographic switches the camera to an orthographic projection.
	//
	// Parameters:
	//   - left, right, bottom, top: the view volume's side planes
	//   - near, far: the view volume's depth planes
	Orthographic(left, right, bottom, top, near, far float32)

	// Perspective switches the camera to a perspective projection.
	//
	// Parameters:
	//   - fovY: vertical field of view in radians
	//   - aspect: width/height ratio
	//   - near, far: clipping plane distances
	Perspective(fovY, aspect, near, far float32)

	// ClearColor returns the color the frame is cleared to.
	//
	// Returns:
	//   - common.Color: the clear color
	ClearColor() common.Color

	// SetClearColor sets the color the frame is cleared to.
	//
	// Parameters:
	//   - c: the clear color
	SetClearColor(c common.Color)

	// Frame returns information about the frame being built.
	//
	// Returns:
	//   - FrameInfo: the frame info
	Frame() FrameInfo
}

type scene struct {
	mu *sync.RWMutex

	nodes   []Node
	current NodeHandle
	stack   []NodeHandle

	shapes *shape.Table
	camera camera.Camera
	clear  common.Color
	frame  FrameInfo

	nodeCapacity  int
	shapeCapacity int
}

var _ Scene = &scene{}

// NewScene creates a scene containing only an empty root node.
// Without WithCamera the scene gets camera.NewCamera defaults; without WithClearColor it clears to white.
//
// Parameters:
//   - options: functional options for configuring the scene
//
// Returns:
//   - Scene: the new scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:    &sync.RWMutex{},
		clear: common.White,
	}

	for _, opt := range options {
		opt(s)
	}

	if s.camera == nil {
		s.camera = camera.NewCamera()
	}
	s.shapes = shape.NewTable(s.shapeCapacity)
	s.nodes = make([]Node, 1, common.Coalesce(s.nodeCapacity, 1))
	s.current = RootHandle

	return s
}

func (s *scene) Root() NodeHandle {
	return RootHandle
}

func (s *scene) Current() NodeHandle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *scene) Depth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.stack)
}

func (s *scene) Node(h NodeHandle) (Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.valid(h) {
		return Node{}, false
	}
	return s.nodes[h], true
}

func (s *scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

func (s *scene) Push(options ...NodeOption) NodeHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n Node
	for _, opt := range options {
		opt(&n)
	}

	h := NodeHandle(len(s.nodes))
	s.nodes = append(s.nodes, n)
	s.nodes[s.current].Children = append(s.nodes[s.current].Children, h)
	s.stack = append(s.stack, s.current)
	s.current = h
	return h
}

func (s *scene) Pop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.stack) == 0 {
		return ErrUnbalancedPop
	}
	last := len(s.stack) - 1
	s.current = s.stack[last]
	s.stack = s.stack[:last]
	return nil
}

func (s *scene) Set(options ...NodeOption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, opt := range options {
		opt(&s.nodes[s.current])
	}
}

func (s *scene) Update(h NodeHandle, options ...NodeOption) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.valid(h) {
		return fmt.Errorf("update node %d: %w", h, ErrInvalidHandle)
	}
	for _, opt := range options {
		opt(&s.nodes[h])
	}
	return nil
}

func (s *scene) AddShape(sh shape.Shape) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.shapes.Add(sh)
	s.nodes[s.current].Shapes = append(s.nodes[s.current].Shapes, idx)
	return idx
}

func (s *scene) Reuse(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= s.shapes.Len() {
		return fmt.Errorf("reuse shape %d of %d: %w", index, s.shapes.Len(), ErrInvalidHandle)
	}
	s.nodes[s.current].Shapes = append(s.nodes[s.current].Shapes, index)
	return nil
}

func (s *scene) Triangle(a, b, c [3]float32) int {
	return s.AddShape(shape.Triangle{A: a, B: b, C: c})
}

func (s *scene) Square() int {
	return s.AddShape(shape.Square{})
}

func (s *scene) Polygon(sides uint32) int {
	return s.AddShape(shape.Polygon{Sides: sides})
}

func (s *scene) Circle() int {
	return s.Polygon(shape.CircleSides)
}

func (s *scene) Mesh(topology shape.Topology, build func(m *MeshBuilder)) int {
	mb := &MeshBuilder{}
	if build != nil {
		build(mb)
	}
	return s.AddShape(shape.Mesh{Vertices: mb.vertices, Topology: topology})
}

func (s *scene) Shapes() *shape.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shapes
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.camera
}

func (s *scene) SetCamera(c camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.camera = c
}

func (s *scene) Orthographic(left, right, bottom, top, near, far float32) {
	s.Camera().SetOrthographic(left, right, bottom, top, near, far)
}

func (s *scene) Perspective(fovY, aspect, near, far float32) {
	s.Camera().SetPerspective(fovY, aspect, near, far)
}

func (s *scene) ClearColor() common.Color {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clear
}

func (s *scene) SetClearColor(c common.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear = c
}

func (s *scene) Frame() FrameInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame
}

func (s *scene) valid(h NodeHandle) bool {
	return h >= 0 && int(h) < len(s.nodes)
}

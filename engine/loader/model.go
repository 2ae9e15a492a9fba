package loader

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-sketch/engine/scene"
	"github.com/Carmen-Shannon/oxy-sketch/engine/shape"
)

var (
	// ErrCyclicHierarchy is returned when a model's node references one of its own ancestors.
	ErrCyclicHierarchy = errors.New("node hierarchy is cyclic")
	// ErrInvalidReference is returned when a model node names a missing node or mesh.
	ErrInvalidReference = errors.New("invalid node or mesh reference")
)

// Node is one imported transform node. Its local transform applies scale, then rotation,
// then translation to its meshes and children.
type Node struct {
	Name        string
	Scale       *[3]float32
	Rotation    *[4]float32
	Translation *[3]float32
	// Mesh indexes Model.Meshes, or is -1 when the node carries no geometry.
	Mesh     int
	Children []int
}

// Model is imported geometry plus the node hierarchy that places it.
type Model struct {
	Name string
	// Meshes holds one entry per source mesh, each with one shape per primitive.
	Meshes [][]shape.Mesh
	Nodes  []Node
	// Roots are the nodes of the default scene.
	Roots []int
}

// ShapeCount returns the number of primitives across all meshes.
//
// Returns:
//   - int: the total primitive count
func (m *Model) ShapeCount() int {
	n := 0
	for _, prims := range m.Meshes {
		n += len(prims)
	}
	return n
}

// Validate checks that every node and mesh reference resolves and that the hierarchy is acyclic.
//
// Returns:
//   - error: an error wrapping ErrInvalidReference or ErrCyclicHierarchy, or nil
func (m *Model) Validate() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]uint8, len(m.Nodes))

	var visit func(i int) error
	visit = func(i int) error {
		if i < 0 || i >= len(m.Nodes) {
			return fmt.Errorf("%w: node %d of %d", ErrInvalidReference, i, len(m.Nodes))
		}
		switch state[i] {
		case visiting:
			return fmt.Errorf("%w: node %d", ErrCyclicHierarchy, i)
		case done:
			return nil
		}
		state[i] = visiting
		n := &m.Nodes[i]
		if n.Mesh < -1 || n.Mesh >= len(m.Meshes) {
			return fmt.Errorf("%w: node %d mesh %d of %d", ErrInvalidReference, i, n.Mesh, len(m.Meshes))
		}
		for _, c := range n.Children {
			if err := visit(c); err != nil {
				return err
			}
		}
		state[i] = done
		return nil
	}

	for _, r := range m.Roots {
		if err := visit(r); err != nil {
			return err
		}
	}
	return nil
}

// Instantiate records the model into s under a new child of the current node. The options apply
// to that wrapper node, so callers can place and color the whole model. Each primitive is added to
// the shape table once and reused by every node that draws it. The builder's current node is
// unchanged on return.
//
// Parameters:
//   - s: the scene to record into
//   - options: node options for the wrapper node
//
// Returns:
//   - error: an error from Validate, in which case nothing is recorded, or from the scene
//     builder, in which case the current node is still restored
func (m *Model) Instantiate(s scene.Scene, options ...scene.NodeOption) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("instantiate %q: %w", m.Name, err)
	}

	shapes := make([][]int, len(m.Meshes))
	s.Push(options...)
	for _, r := range m.Roots {
		if err := m.instantiateNode(s, r, shapes); err != nil {
			return fmt.Errorf("instantiate %q: %w", m.Name, errors.Join(err, s.Pop()))
		}
	}
	if err := s.Pop(); err != nil {
		return fmt.Errorf("instantiate %q: %w", m.Name, err)
	}
	return nil
}

// instantiateNode emits node i as nested translation, rotation and scale nodes so the
// resolved transform applies scale first, then rotation, then translation. Every node it
// pushes is popped again, also on error.
func (m *Model) instantiateNode(s scene.Scene, i int, shapes [][]int) (err error) {
	n := &m.Nodes[i]

	pushes := 0
	if n.Translation != nil {
		t := *n.Translation
		s.Push(scene.WithTranslation(t[0], t[1], t[2]))
		pushes++
	}
	if n.Rotation != nil {
		s.Push(scene.WithRotation(*n.Rotation))
		pushes++
	}
	if n.Scale != nil {
		sc := *n.Scale
		s.Push(scene.WithScale(sc[0], sc[1], sc[2]))
		pushes++
	}
	if pushes == 0 {
		s.Push()
		pushes++
	}
	defer func() {
		for range pushes {
			if popErr := s.Pop(); popErr != nil && err == nil {
				err = fmt.Errorf("node %d: %w", i, popErr)
			}
		}
	}()

	if n.Mesh >= 0 {
		if shapes[n.Mesh] == nil {
			for _, prim := range m.Meshes[n.Mesh] {
				shapes[n.Mesh] = append(shapes[n.Mesh], s.AddShape(prim))
			}
		} else {
			for _, idx := range shapes[n.Mesh] {
				if err := s.Reuse(idx); err != nil {
					return fmt.Errorf("node %d mesh %d: %w", i, n.Mesh, err)
				}
			}
		}
	}

	for _, c := range n.Children {
		if err := m.instantiateNode(s, c, shapes); err != nil {
			return err
		}
	}
	return nil
}

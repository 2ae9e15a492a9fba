package scene

// MeshBuilder collects the vertices of a mesh recorded through Scene.Mesh.
type MeshBuilder struct {
	vertices [][3]float32
}

// Vertex appends one vertex to the mesh.
//
// Parameters:
//   - x, y, z: vertex position
func (m *MeshBuilder) Vertex(x, y, z float32) {
	m.vertices = append(m.vertices, [3]float32{x, y, z})
}

// Len returns the number of vertices recorded so far.
func (m *MeshBuilder) Len() int {
	return len(m.vertices)
}

package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-sketch/engine/shape"
	"github.com/chewxy/math32"
)

// gltfImporterImpl is the implementation of the gltfImporter interface.
type gltfImporterImpl struct{}

// gltfImporter orchestrates a glTF/GLB import: parsing, mesh extraction and node extraction.
type gltfImporter interface {
	// Import loads a glTF/GLB file into a Model.
	//
	// Parameters:
	//   - path: the file path to the glTF or GLB file
	//
	// Returns:
	//   - *Model: the imported model, named after the file
	//   - error: error if import fails
	Import(path string) (*Model, error)

	// ImportReader loads a glTF document from a reader.
	//
	// Parameters:
	//   - r: the reader providing glTF/GLB data
	//   - isGLB: true if the reader provides GLB binary data, false for glTF JSON
	//
	// Returns:
	//   - *Model: the imported model
	//   - error: error if import fails
	ImportReader(r io.Reader, isGLB bool) (*Model, error)
}

var _ gltfImporter = &gltfImporterImpl{}

// newGLTFImporter creates a new glTF importer.
//
// Returns:
//   - gltfImporter: the importer
func newGLTFImporter() gltfImporter {
	return &gltfImporterImpl{}
}

func (imp *gltfImporterImpl) Import(path string) (*Model, error) {
	parser := newGLTFParser()
	if err := parser.Parse(path); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	m, err := imp.importFromParser(parser)
	if err != nil {
		return nil, fmt.Errorf("failed to import %s: %w", path, err)
	}
	m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return m, nil
}

func (imp *gltfImporterImpl) ImportReader(r io.Reader, isGLB bool) (*Model, error) {
	parser := newGLTFParser()
	if err := parser.ParseReader(r, isGLB); err != nil {
		return nil, fmt.Errorf("failed to parse from reader: %w", err)
	}

	return imp.importFromParser(parser)
}

// importFromParser extracts meshes and nodes from a parsed document.
func (imp *gltfImporterImpl) importFromParser(parser gltfParser) (*Model, error) {
	doc := parser.Document()

	m := &Model{
		Meshes: make([][]shape.Mesh, 0, len(doc.Meshes)),
		Nodes:  make([]Node, 0, len(doc.Nodes)),
	}

	for i := range doc.Meshes {
		prims, err := extractMesh(parser, &doc.Meshes[i])
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
		m.Meshes = append(m.Meshes, prims)
	}

	for i := range doc.Nodes {
		m.Nodes = append(m.Nodes, extractNode(&doc.Nodes[i]))
	}

	m.Roots = sceneRoots(doc)

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// sceneRoots returns the root nodes of the default scene. Documents without scenes use every
// node that is nobody's child.
func sceneRoots(doc *gltfDocument) []int {
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
			idx = *doc.Scene
		}
		return append([]int(nil), doc.Scenes[idx].Nodes...)
	}

	child := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(child) {
				child[c] = true
			}
		}
	}
	var roots []int
	for i, isChild := range child {
		if !isChild {
			roots = append(roots, i)
		}
	}
	return roots
}

// extractNode converts a glTF node, decomposing a matrix transform into scale, rotation and
// translation.
func extractNode(gn *gltfNode) Node {
	n := Node{
		Name:        gn.Name,
		Mesh:        -1,
		Children:    append([]int(nil), gn.Children...),
		Scale:       gn.Scale,
		Rotation:    gn.Rotation,
		Translation: gn.Translation,
	}
	if gn.Mesh != nil {
		n.Mesh = *gn.Mesh
	}
	if gn.Matrix != nil {
		t, r, s := decompose(*gn.Matrix)
		n.Translation, n.Rotation, n.Scale = &t, &r, &s
	}
	return n
}

// extractMesh converts each triangle primitive of a glTF mesh into a shape.Mesh. Indexed
// primitives are expanded into their ordered vertex sequence; fans become lists.
func extractMesh(parser gltfParser, gm *gltfMesh) ([]shape.Mesh, error) {
	prims := make([]shape.Mesh, 0, len(gm.Primitives))
	for i := range gm.Primitives {
		prim := &gm.Primitives[i]

		mode := gltfPrimitiveModeTriangles
		if prim.Mode != nil {
			mode = *prim.Mode
		}

		posAccessor, ok := prim.Attributes["POSITION"]
		if !ok {
			return nil, fmt.Errorf("primitive %d has no POSITION attribute", i)
		}
		positions, err := parser.ReadVec3Accessor(posAccessor)
		if err != nil {
			return nil, fmt.Errorf("primitive %d positions: %w", i, err)
		}

		vertices := positions
		if prim.Indices != nil {
			indices, err := parser.ReadIndicesAccessor(*prim.Indices)
			if err != nil {
				return nil, fmt.Errorf("primitive %d indices: %w", i, err)
			}
			vertices = make([][3]float32, len(indices))
			for j, idx := range indices {
				if int(idx) >= len(positions) {
					return nil, fmt.Errorf("primitive %d index %d out of range (%d positions)", i, idx, len(positions))
				}
				vertices[j] = positions[idx]
			}
		}

		switch mode {
		case gltfPrimitiveModeTriangles:
			prims = append(prims, shape.Mesh{Vertices: vertices, Topology: shape.TopologyList})
		case gltfPrimitiveModeTriangleStrip:
			prims = append(prims, shape.Mesh{Vertices: vertices, Topology: shape.TopologyStrip})
		case gltfPrimitiveModeTriangleFan:
			prims = append(prims, shape.Mesh{Vertices: fanToList(vertices), Topology: shape.TopologyList})
		default:
			return nil, fmt.Errorf("primitive %d: unsupported mode %d (only triangles supported)", i, mode)
		}
	}
	return prims, nil
}

// fanToList expands a triangle fan into independent triangles.
func fanToList(fan [][3]float32) [][3]float32 {
	if len(fan) < 3 {
		return nil
	}
	list := make([][3]float32, 0, (len(fan)-2)*3)
	for i := 1; i+1 < len(fan); i++ {
		list = append(list, fan[0], fan[i], fan[i+1])
	}
	return list
}

// decompose splits an affine column-major matrix into translation, rotation quaternion
// (x, y, z, w) and scale. Shear is discarded.
func decompose(m [16]float32) ([3]float32, [4]float32, [3]float32) {
	t := [3]float32{m[12], m[13], m[14]}

	sx := math32.Sqrt(m[0]*m[0] + m[1]*m[1] + m[2]*m[2])
	sy := math32.Sqrt(m[4]*m[4] + m[5]*m[5] + m[6]*m[6])
	sz := math32.Sqrt(m[8]*m[8] + m[9]*m[9] + m[10]*m[10])

	det := m[0]*(m[5]*m[10]-m[9]*m[6]) - m[4]*(m[1]*m[10]-m[9]*m[2]) + m[8]*(m[1]*m[6]-m[5]*m[2])
	if det < 0 {
		sx = -sx
	}
	s := [3]float32{sx, sy, sz}

	inv := func(v float32) float32 {
		if v == 0 {
			return 0
		}
		return 1 / v
	}
	ix, iy, iz := inv(sx), inv(sy), inv(sz)
	m00, m10, m20 := m[0]*ix, m[1]*ix, m[2]*ix
	m01, m11, m21 := m[4]*iy, m[5]*iy, m[6]*iy
	m02, m12, m22 := m[8]*iz, m[9]*iz, m[10]*iz

	var q [4]float32
	switch trace := m00 + m11 + m22; {
	case trace > 0:
		k := 0.5 / math32.Sqrt(trace+1)
		q = [4]float32{(m21 - m12) * k, (m02 - m20) * k, (m10 - m01) * k, 0.25 / k}
	case m00 > m11 && m00 > m22:
		k := 2 * math32.Sqrt(1+m00-m11-m22)
		q = [4]float32{0.25 * k, (m01 + m10) / k, (m02 + m20) / k, (m21 - m12) / k}
	case m11 > m22:
		k := 2 * math32.Sqrt(1+m11-m00-m22)
		q = [4]float32{(m01 + m10) / k, 0.25 * k, (m12 + m21) / k, (m02 - m20) / k}
	default:
		k := 2 * math32.Sqrt(1+m22-m00-m11)
		q = [4]float32{(m02 + m20) / k, (m12 + m21) / k, 0.25 * k, (m10 - m01) / k}
	}
	return t, q, s
}

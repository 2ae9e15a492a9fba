package loader

import (
	"io"
)

// loaderBackend defines the generic interface for loading models from files or streams.
// Concrete implementations (e.g., gltfLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load imports a model from the given file path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *Model: the imported model
	//   - error: error if loading fails
	Load(path string) (*Model, error)

	// LoadReader imports a model from a reader stream.
	//
	// Parameters:
	//   - r: the reader providing model data
	//   - isGLB: true if the reader provides GLB binary data, false for text-based formats
	//
	// Returns:
	//   - *Model: the imported model
	//   - error: error if loading fails
	LoadReader(r io.Reader, isGLB bool) (*Model, error)
}

package shape

// Table is the append-only, insertion-ordered list of shapes referenced by index from scene nodes.
// An index returned by Add stays valid for the table's lifetime and is never reused.
// A Table is owned by a single frame's builder session and is not safe for concurrent use.
type Table struct {
	shapes []Shape
}

// NewTable creates an empty Table with room for capacity shapes before reallocating.
//
// Parameters:
//   - capacity: initial capacity hint (may be 0)
//
// Returns:
//   - *Table: the new table
func NewTable(capacity int) *Table {
	return &Table{shapes: make([]Shape, 0, capacity)}
}

// Add appends a shape and returns its index.
//
// Parameters:
//   - s: the shape to append
//
// Returns:
//   - int: the index of the appended shape
func (t *Table) Add(s Shape) int {
	t.shapes = append(t.shapes, s)
	return len(t.shapes) - 1
}

// Get returns the shape at index i.
//
// Parameters:
//   - i: the shape index
//
// Returns:
//   - Shape: the shape, or nil when i is out of range
//   - bool: false when i is out of range
func (t *Table) Get(i int) (Shape, bool) {
	if t == nil || i < 0 || i >= len(t.shapes) {
		return nil, false
	}
	return t.shapes[i], true
}

// Len returns the number of shapes in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.shapes)
}

package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableAddIsStable(t *testing.T) {
	tbl := NewTable(0)

	assert.Equal(t, 0, tbl.Add(Square{}))
	assert.Equal(t, 1, tbl.Add(Polygon{Sides: 6}))
	assert.Equal(t, 2, tbl.Add(Square{}))
	assert.Equal(t, 3, tbl.Len())

	s, ok := tbl.Get(1)
	assert.True(t, ok)
	assert.Equal(t, Polygon{Sides: 6}, s)
	assert.Equal(t, KindPolygon, s.Kind())
}

func TestTableGetOutOfRange(t *testing.T) {
	tbl := NewTable(4)
	tbl.Add(Square{})

	for _, i := range []int{-1, 1, 100} {
		s, ok := tbl.Get(i)
		assert.False(t, ok)
		assert.Nil(t, s)
	}

	var nilTable *Table
	assert.Equal(t, 0, nilTable.Len())
	_, ok := nilTable.Get(0)
	assert.False(t, ok)
}

package table

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNodeTable(t *testing.T) {
	nodes := NewNodeTable(3)
	require.Equal(t, 3, nodes.Rows())
	require.Equal(t, NodeCols, nodes.Cols())
	for i := range 3 {
		assert.Equal(t, TypeL, nodes.At(i, NodeType))
		assert.Equal(t, TypeL, nodes.At(i, NodeTypeT))
		assert.Equal(t, 0.0, nodes.At(i, NodePOccurrence))
		assert.Equal(t, 1.0, nodes.At(i, NodeActive))
	}
}

func TestNewBranchTable(t *testing.T) {
	branches := NewBranchTable(2)
	assert.Equal(t, []float64{DefaultVInit, DefaultVInit}, branches.Col(BranchV))
	assert.Equal(t, []float64{1, 1}, branches.Col(BranchPressureRatio))
	assert.Equal(t, []float64{0, 0}, branches.Col(BranchPL))
}

// TestEmptyTable 零行表不分配存储，视图为空
func TestEmptyTable(t *testing.T) {
	nodes := NewNodeTable(0)
	assert.Nil(t, nodes.Dense())
	assert.Empty(t, nodes.Col(NodePInit))
	v := nodes.View(Range{})
	assert.Equal(t, 0, v.Len())
	assert.Empty(t, v.Col(NodePInit))
	v.Fill(NodePInit, 1)
	assert.Equal(t, "<empty>", nodes.String())
}

func TestViewRelativeRows(t *testing.T) {
	nodes := NewNodeTable(5)
	v := nodes.View(Range{From: 2, To: 4})
	assert.Equal(t, 2, v.Len())
	v.SetCol(NodePInit, []float64{3, 4})
	v.Set(1, NodeLoad, 0.5)
	assert.Equal(t, []float64{0, 0, 3, 4, 0}, nodes.Col(NodePInit))
	assert.Equal(t, 0.5, nodes.At(3, NodeLoad))
	assert.Equal(t, 3, v.Abs(1))

	v.SetInts(NodeElementIdx, []int{7, 9})
	assert.Equal(t, []int{7, 9}, v.Indices(NodeElementIdx))
	v.SetBools(NodeActive, []bool{false, true})
	assert.Equal(t, []float64{0, 1}, v.Col(NodeActive))
}

// TestViewBounds 视图写入不能越出区间
func TestViewBounds(t *testing.T) {
	nodes := NewNodeTable(4)
	v := nodes.View(Range{From: 1, To: 3})
	assert.Panics(t, func() { v.Set(2, NodePInit, 1) })
	assert.Panics(t, func() { v.At(-1, NodePInit) })
	assert.Panics(t, func() { v.SetCol(NodePInit, []float64{1}) })
	assert.Panics(t, func() { nodes.View(Range{From: 3, To: 5}) })
}

func TestSetDiameter(t *testing.T) {
	branches := NewBranchTable(3)
	v := branches.View(Range{From: 1, To: 3})
	v.SetDiameter([]float64{0.1, 0.2})
	assert.InDelta(t, 0.0078539816, branches.At(1, BranchArea), 1e-9)
	assert.InDelta(t, math.Pi*0.01, branches.At(2, BranchArea), 1e-12)
	assert.Equal(t, 0.0, branches.At(0, BranchArea))

	v.FillDiameter(0.1)
	assert.InDelta(t, 0.0078539816, branches.At(2, BranchArea), 1e-9)
}

func TestGatherScatter(t *testing.T) {
	nodes := NewNodeTable(4)
	nodes.Scatter([]int{3, 1}, NodeLoad, []float64{2, 5})
	assert.Equal(t, []float64{5, 2}, nodes.Gather([]int{1, 3}, NodeLoad))
	nodes.Inc(1, NodeLoad, 1)
	assert.Equal(t, 6.0, nodes.At(1, NodeLoad))
}

func TestColumnNames(t *testing.T) {
	assert.Equal(t, "p_init", NodeColumnName(NodePInit))
	assert.Equal(t, "active", NodeColumnName(NodeActive))
	assert.Equal(t, "pressure_ratio", BranchColumnName(BranchPressureRatio))
	assert.Equal(t, "active", BranchColumnName(BranchActive))
	assert.Equal(t, "unknown", BranchColumnName(BranchCols))
}

func TestLookups(t *testing.T) {
	l := NewLookups()
	l.SetNodeIndex("junction", Range{From: 0, To: 3}, []int{4, 0, 2})

	row, err := l.NodeRow("junction", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, row)

	rows, err := l.NodeRows("junction", []int{0, 4})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, rows)

	_, err = l.NodeRow("junction", 1)
	assert.True(t, errors.Is(err, ErrLookup))
	_, err = l.NodeRow("junction", 9)
	assert.True(t, errors.Is(err, ErrLookup))
	_, err = l.NodeRows("tank", []int{0})
	assert.True(t, errors.Is(err, ErrLookup))
}

func TestFixedNodes(t *testing.T) {
	l := NewLookups()
	l.AddFixedNodes("ext_grid", []int{4, 1})
	l.AddFixedNodes("ext_grid", []int{1, 2})
	assert.Equal(t, []int{1, 2, 4}, l.FixedNodes["ext_grid"])
	l.AddFixedNodes("other", []int{0, 4})
	assert.Equal(t, []int{0, 1, 2, 4}, l.AllFixedNodes())
}

// TestLookupsLargeIndex 元件索引可以任意大，不按索引分配存储
func TestLookupsLargeIndex(t *testing.T) {
	l := NewLookups()
	l.SetNodeIndex("junction", Range{From: 2, To: 4}, []int{1 << 50, 7})

	row, err := l.NodeRow("junction", 1<<50)
	require.NoError(t, err)
	assert.Equal(t, 2, row)
	row, err = l.NodeRow("junction", 7)
	require.NoError(t, err)
	assert.Equal(t, 3, row)

	_, err = l.NodeRow("junction", 1<<50-1)
	assert.True(t, errors.Is(err, ErrLookup))
	_, err = l.NodeRow("junction", -1)
	assert.True(t, errors.Is(err, ErrLookup))
}

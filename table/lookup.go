package table

import (
	"errors"
	"fmt"
	"slices"
)

// ErrLookup 查找失败
var ErrLookup = errors.New("table: 查找失败")

// Lookups 求解准备阶段生成的查找表，求解期间只读（固定节点集合除外）
type Lookups struct {
	NodeRanges   map[string]Range       // 元件类型 → 节点表行区间
	BranchRanges map[string]Range       // 元件类型 → 支路表行区间
	NodeIndex    map[string]map[int]int // 节点元件类型 → 元件索引到节点行的映射
	FixedNodes   map[string][]int       // 边界元件类型 → 升序节点行集合
}

// NewLookups 创建空查找表
func NewLookups() *Lookups {
	return &Lookups{
		NodeRanges:   map[string]Range{},
		BranchRanges: map[string]Range{},
		NodeIndex:    map[string]map[int]int{},
		FixedNodes:   map[string][]int{},
	}
}

// SetNodeIndex 根据元件索引列表建立索引到行的映射，行号从 r.From 开始
func (l *Lookups) SetNodeIndex(name string, r Range, index []int) {
	lookup := make(map[int]int, len(index))
	for i, idx := range index {
		lookup[idx] = r.From + i
	}
	l.NodeRanges[name] = r
	l.NodeIndex[name] = lookup
}

// NodeRow 元件索引对应的节点行
func (l *Lookups) NodeRow(name string, idx int) (int, error) {
	lookup, ok := l.NodeIndex[name]
	if !ok {
		return 0, fmt.Errorf("%w: 节点元件 %q 未建立索引", ErrLookup, name)
	}
	row, ok := lookup[idx]
	if !ok {
		return 0, fmt.Errorf("%w: %s %d 不存在", ErrLookup, name, idx)
	}
	return row, nil
}

// NodeRows 批量转换元件索引到节点行
func (l *Lookups) NodeRows(name string, idx []int) ([]int, error) {
	rows := make([]int, len(idx))
	for i, id := range idx {
		row, err := l.NodeRow(name, id)
		if err != nil {
			return nil, err
		}
		rows[i] = row
	}
	return rows, nil
}

// AddFixedNodes 将节点行并入该类型的固定节点集合
func (l *Lookups) AddFixedNodes(name string, rows []int) {
	merged := append(slices.Clone(l.FixedNodes[name]), rows...)
	slices.Sort(merged)
	l.FixedNodes[name] = slices.Compact(merged)
}

// AllFixedNodes 所有类型固定节点的并集
func (l *Lookups) AllFixedNodes() []int {
	var all []int
	for _, rows := range l.FixedNodes {
		all = append(all, rows...)
	}
	slices.Sort(all)
	return slices.Compact(all)
}

package component

import (
	"fmt"

	"pipeflow/table"
)

// ResolveNodes 将元件的节点引用列转换为节点行。
// 投运行引用不存在的节点返回 ErrConfig，停运行引用不存在的节点记为 -1。
func ResolveNodes(net *Network, t *Table, col, nodeComponent string) ([]int, error) {
	refs, err := t.Ints(col)
	if err != nil {
		return nil, err
	}
	inService, err := t.inServiceMask()
	if err != nil {
		return nil, err
	}
	rows := make([]int, len(refs))
	for i, ref := range refs {
		row, err := net.Lookups.NodeRow(nodeComponent, ref)
		if err != nil {
			if inService[i] {
				return nil, fmt.Errorf("%w: %s %d 列 %s 引用的%s %d 不存在", ErrConfig, t.Name, t.Index[i], col, nodeComponent, ref)
			}
			row = -1
		}
		rows[i] = row
	}
	return rows, nil
}

// inServiceMask 每行是否投运
func (t *Table) inServiceMask() ([]bool, error) {
	mask := make([]bool, t.Len())
	rows, err := t.InService()
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		mask[r] = true
	}
	return mask, nil
}

// Pick 按行号取子集
func Pick[T any](values []T, rows []int) []T {
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = values[r]
	}
	return out
}

// BranchEndpoints 写入支路起止节点与投运标记，返回起止节点行
func BranchEndpoints(net *Network, t *Table, nodeComponent string, branches table.View) (from, to []int, err error) {
	if from, err = ResolveNodes(net, t, ColFromJunction, nodeComponent); err != nil {
		return nil, nil, err
	}
	if to, err = ResolveNodes(net, t, ColToJunction, nodeComponent); err != nil {
		return nil, nil, err
	}
	active, err := t.inServiceMask()
	if err != nil {
		return nil, nil, err
	}
	branches.SetInts(table.BranchElementIdx, t.Index)
	branches.SetInts(table.BranchFrom, from)
	branches.SetInts(table.BranchTo, to)
	branches.SetBools(table.BranchActive, active)
	branches.Fill(table.BranchRho, net.Fluid.Density)
	return from, to, nil
}

// BranchRows 支路视图每行的结果，断开或停运的行为 NaN
func BranchRows(branches table.View, conn Connectivity, values []float64) []float64 {
	out := make([]float64, branches.Len())
	for i := range out {
		row := branches.Abs(i)
		if branches.At(i, table.BranchActive) == 0 || !conn.Branch(row) {
			out[i] = nan
			continue
		}
		out[i] = values[row]
	}
	return out
}

package solver

import (
	"math"

	"pipeflow/component"
	"pipeflow/table"
)

// branchResults 由收敛后的内部表计算支路结果，断开的支路为 NaN
func branchResults(net *component.Network, conn component.Connectivity) *component.BranchResults {
	nodes, branches := net.Pit.Node, net.Pit.Branch
	m := branches.Rows()
	br := component.NewBranchResults(m)
	for b := range m {
		if !conn.Branch(b) {
			br.VMean[b], br.MdotFrom[b], br.MdotTo[b] = math.NaN(), math.NaN(), math.NaN()
			br.PFrom[b], br.PTo[b], br.DeltaP[b] = math.NaN(), math.NaN(), math.NaN()
			continue
		}
		f, t := branches.Index(b, table.BranchFrom), branches.Index(b, table.BranchTo)
		mdot := branches.At(b, table.BranchMdot)
		br.VMean[b] = branches.At(b, table.BranchV)
		br.MdotFrom[b] = mdot
		br.MdotTo[b] = -mdot
		br.PFrom[b] = nodes.At(f, table.NodePInit)
		br.PTo[b] = nodes.At(t, table.NodePInit)
		br.DeltaP[b] = br.PTo[b] - br.PFrom[b]
	}
	return br
}

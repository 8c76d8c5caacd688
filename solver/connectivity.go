package solver

import (
	"pipeflow/component"
	"pipeflow/table"
)

// connectivity 从压力边界节点出发，沿投运支路广度优先搜索可达的节点与支路。
// check 为 false 时所有投运的节点与支路视为连通。
func connectivity(net *component.Network, check bool) (component.Connectivity, error) {
	nodes, branches := net.Pit.Node, net.Pit.Branch
	n, m := nodes.Rows(), branches.Rows()
	conn := component.Connectivity{Nodes: make([]bool, n), Branches: make([]bool, m)}
	activeNode := func(i int) bool { return i >= 0 && i < n && nodes.At(i, table.NodeActive) != 0 }
	activeBranch := func(b int) bool {
		return branches.At(b, table.BranchActive) != 0 &&
			activeNode(branches.Index(b, table.BranchFrom)) && activeNode(branches.Index(b, table.BranchTo))
	}
	if !check {
		for i := range n {
			conn.Nodes[i] = activeNode(i)
		}
		for b := range m {
			conn.Branches[b] = activeBranch(b)
		}
		return conn, nil
	}
	// 邻接表
	adjacent := make([][]int, n)
	for b := range m {
		if !activeBranch(b) {
			continue
		}
		f, t := branches.Index(b, table.BranchFrom), branches.Index(b, table.BranchTo)
		adjacent[f] = append(adjacent[f], b)
		adjacent[t] = append(adjacent[t], b)
	}
	var queue []int
	for _, row := range net.Lookups.AllFixedNodes() {
		if activeNode(row) && !conn.Nodes[row] {
			conn.Nodes[row] = true
			queue = append(queue, row)
		}
	}
	if n > 0 && len(queue) == 0 {
		return conn, errorf(component.ErrConfig, "管网 %s 没有投运的压力边界节点", net.Name)
	}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		for _, b := range adjacent[i] {
			conn.Branches[b] = true
			next := branches.Index(b, table.BranchTo)
			if next == i {
				next = branches.Index(b, table.BranchFrom)
			}
			if !conn.Nodes[next] {
				conn.Nodes[next] = true
				queue = append(queue, next)
			}
		}
	}
	return conn, nil
}

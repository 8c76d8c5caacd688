package base

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pipeflow/component"
)

// newNetwork 创建含 n 个节点的管网，节点索引为 0..n-1
func newNetwork(t *testing.T, n int, pn float64) *component.Network {
	net := component.NewNetwork("test")
	for i := range n {
		_, err := net.AddElement(JunctionName, i, component.Row{"pn_bar": pn, "tfluid_k": 293.15})
		require.NoError(t, err)
	}
	return net
}

// setup 执行校验与内部表写入
func setup(t *testing.T, net *component.Network) *component.Context {
	ctx := component.NewContext(net)
	for _, mark := range []component.Mark{component.MarkValidate, component.MarkNodeEntries, component.MarkBranchEntries} {
		require.NoError(t, ctx.CallMark(mark), mark.String())
	}
	return ctx
}

func add(t *testing.T, net *component.Network, name string, row component.Row) {
	_, err := net.AddElement(name, -1, row)
	require.NoError(t, err)
}

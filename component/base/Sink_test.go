package base

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pipeflow/component"
	"pipeflow/table"
)

func TestSinkSourceLoad(t *testing.T) {
	net := newNetwork(t, 3, 1)
	add(t, net, SinkName, component.Row{component.ColJunction: 1, "mdot_kg_per_s": 0.4})
	add(t, net, SinkName, component.Row{component.ColJunction: 1, "mdot_kg_per_s": 0.2, "scaling": 0.5})
	add(t, net, SinkName, component.Row{component.ColJunction: 2, "mdot_kg_per_s": 9.0, component.ColInService: false})
	add(t, net, SourceName, component.Row{component.ColJunction: 2, "mdot_kg_per_s": 0.3})
	ctx := setup(t, net)

	loads := net.Pit.Node.Col(table.NodeLoad)
	assert.InDelta(t, 0, loads[0], 1e-15)
	assert.InDelta(t, 0.5, loads[1], 1e-15)
	assert.InDelta(t, -0.3, loads[2], 1e-15)

	ctx.Branches = component.NewBranchResults(0)
	require.NoError(t, ctx.CallMark(component.MarkExtract))
	res, _ := net.Result(SinkName)
	mdot, err := res.Float64s("mdot_kg_per_s")
	require.NoError(t, err)
	assert.InDelta(t, 0.4, mdot[0], 1e-15)
	assert.InDelta(t, 0.1, mdot[1], 1e-15)
	assert.True(t, math.IsNaN(mdot[2]))
}

// TestSinkLoadAdditive 挂接元件对节点负荷只做累加，重新写入节点行时节点表整体重建
func TestSinkLoadAdditive(t *testing.T) {
	net := newNetwork(t, 2, 1)
	add(t, net, SinkName, component.Row{component.ColJunction: 1, "mdot_kg_per_s": 0.4})
	add(t, net, SourceName, component.Row{component.ColJunction: 0, "mdot_kg_per_s": 0.1})
	ctx := setup(t, net)
	assert.Equal(t, []float64{-0.1, 0.4}, net.Pit.Node.Col(table.NodeLoad))

	c, ok := component.Lookup(SinkName)
	require.True(t, ok)
	sink := c.(component.NodeElementComponent)
	require.NoError(t, sink.CreateNodeElementEntries(net, net.Pit.Node))
	assert.Equal(t, []float64{-0.1, 0.8}, net.Pit.Node.Col(table.NodeLoad))

	require.NoError(t, ctx.CallMark(component.MarkNodeEntries))
	assert.Equal(t, []float64{-0.1, 0.4}, net.Pit.Node.Col(table.NodeLoad))
}

func TestSinkNegativeFlow(t *testing.T) {
	net := newNetwork(t, 1, 1)
	add(t, net, SinkName, component.Row{component.ColJunction: 0, "mdot_kg_per_s": -1.0})
	assert.ErrorIs(t, component.NewContext(net).CallMark(component.MarkValidate), component.ErrConfig)
}

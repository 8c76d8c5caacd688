package base

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pipeflow/component"
	"pipeflow/table"
)

func TestExtGridMean(t *testing.T) {
	net := newNetwork(t, 2, 0)
	add(t, net, ExtGridName, component.Row{component.ColJunction: 1, "p_bar": 4.0, "type": ExtGridP})
	add(t, net, ExtGridName, component.Row{component.ColJunction: 1, "p_bar": 6.0, "t_k": 300.0})
	add(t, net, ExtGridName, component.Row{component.ColJunction: 1, "p_bar": 100.0, component.ColInService: false})
	setup(t, net)

	nodes := net.Pit.Node
	assert.Equal(t, 5.0, nodes.At(1, table.NodePInit))
	assert.Equal(t, table.TypeP, nodes.At(1, table.NodeType))
	assert.Equal(t, 2.0, nodes.At(1, table.NodePOccurrence))
	assert.Equal(t, 300.0, nodes.At(1, table.NodeTInit))
	assert.Equal(t, table.TypeT, nodes.At(1, table.NodeTypeT))
	assert.Equal(t, 1.0, nodes.At(1, table.NodeTOccurrence))
	assert.Equal(t, table.TypeL, nodes.At(0, table.NodeType))
	assert.Equal(t, 0.0, nodes.At(0, table.NodePOccurrence))
	assert.Equal(t, []int{1}, net.Lookups.FixedNodes[ExtGridName])
}

// TestExtGridProperty 同一节点 N 个同类边界：压力为平均值，出现次数为原值加 N
func TestExtGridProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("mean value and cumulative counter", prop.ForAll(
		func(pressures []float64, prior int, accelerated bool) bool {
			net := newNetwork(t, 3, 0)
			net.Options.Accelerated = accelerated
			for _, p := range pressures {
				add(t, net, ExtGridName, component.Row{component.ColJunction: 2, "p_bar": p, "type": ExtGridP})
			}
			ctx := setup(t, net)
			nodes := net.Pit.Node
			mean := 0.0
			for _, p := range pressures {
				mean += p
			}
			mean /= float64(len(pressures))
			if math.Abs(nodes.At(2, table.NodePInit)-mean) > 1e-9*math.Max(1, math.Abs(mean)) {
				return false
			}
			if nodes.At(2, table.NodePOccurrence) != float64(len(pressures)) {
				return false
			}
			// 已有计数时再次写入：计数累加
			nodes.Set(2, table.NodePOccurrence, float64(prior))
			nodes.Set(2, table.NodePInit, mean)
			eg, _ := component.Lookup(ExtGridName)
			if err := eg.(component.NodeElementComponent).CreateNodeElementEntries(ctx.Net, nodes); err != nil {
				return false
			}
			return nodes.At(2, table.NodePOccurrence) == float64(prior+len(pressures)) &&
				math.Abs(nodes.At(2, table.NodePInit)-mean) <= 1e-9*math.Max(1, math.Abs(mean))
		},
		gen.IntRange(1, 8).FlatMap(func(n any) gopter.Gen {
			return gen.SliceOfN(n.(int), gen.Float64Range(0.5, 20))
		}, reflect.TypeOf([]float64{})),
		gen.IntRange(0, 10),
		gen.Bool(),
	))
	properties.TestingRun(t)
}

// TestExtGridNoRows 没有投运的边界时计数不变且不报错
func TestExtGridNoRows(t *testing.T) {
	net := newNetwork(t, 2, 1)
	add(t, net, ExtGridName, component.Row{component.ColJunction: 0, "p_bar": 3.0, component.ColInService: false})
	setup(t, net)
	nodes := net.Pit.Node
	nodes.Set(0, table.NodePOccurrence, 4)
	eg, _ := component.Lookup(ExtGridName)
	require.NoError(t, eg.(component.NodeElementComponent).CreateNodeElementEntries(net, nodes))
	assert.Equal(t, 4.0, nodes.At(0, table.NodePOccurrence))
	assert.Equal(t, 0.0, nodes.At(1, table.NodePOccurrence))
	assert.Equal(t, 1.0, nodes.At(0, table.NodePInit))

	empty := newNetwork(t, 1, 1)
	_, err := empty.Create(ExtGridName)
	require.NoError(t, err)
	setup(t, empty)
	require.NoError(t, eg.(component.NodeElementComponent).CreateNodeElementEntries(empty, empty.Pit.Node))
	require.NoError(t, eg.ExtractResults(empty, empty.Options, component.NewBranchResults(0), component.Connectivity{}))
}

func TestExtGridConfigErrors(t *testing.T) {
	net := newNetwork(t, 1, 0)
	add(t, net, ExtGridName, component.Row{component.ColJunction: 3, "p_bar": 1.0})
	ctx := component.NewContext(net)
	require.NoError(t, ctx.CallMark(component.MarkValidate))
	assert.True(t, errors.Is(ctx.CallMark(component.MarkNodeEntries), component.ErrConfig), "引用不存在的节点")

	net = newNetwork(t, 1, 0)
	add(t, net, ExtGridName, component.Row{component.ColJunction: 0, "p_bar": 1.0, "type": "x"})
	ctx = component.NewContext(net)
	assert.True(t, errors.Is(ctx.CallMark(component.MarkValidate), component.ErrConfig), "类型标签非法")

	net = newNetwork(t, 1, 0)
	add(t, net, ExtGridName, component.Row{component.ColJunction: 0, "p_bar": math.NaN()})
	ctx = component.NewContext(net)
	assert.True(t, errors.Is(ctx.CallMark(component.MarkNodeEntries), component.ErrConfig), "压力非法")
}

// TestExtGridIsolatedNode 孤立节点上所有压力边界结果之和等于负荷的相反数
func TestExtGridIsolatedNode(t *testing.T) {
	for _, load := range []float64{0, 0.25, 3.5} {
		net := newNetwork(t, 2, 0)
		add(t, net, ExtGridName, component.Row{component.ColJunction: 1, "p_bar": 2.0})
		add(t, net, ExtGridName, component.Row{component.ColJunction: 1, "p_bar": 2.0, "type": ExtGridP})
		add(t, net, ExtGridName, component.Row{component.ColJunction: 1, "t_k": 280.0, "p_bar": 0.0, "type": ExtGridT})
		add(t, net, SinkName, component.Row{component.ColJunction: 1, "mdot_kg_per_s": load})
		ctx := setup(t, net)
		ctx.Branches = component.NewBranchResults(0)
		require.NoError(t, ctx.CallMark(component.MarkExtract))

		res, ok := net.Result(ExtGridName)
		require.True(t, ok)
		mdot, err := res.Float64s("mdot_kg_per_s")
		require.NoError(t, err)
		assert.InDelta(t, -load/2, mdot[0], 1e-12)
		assert.InDelta(t, -load, mdot[0]+mdot[1], 1e-12)
		assert.True(t, math.IsNaN(mdot[2]), "温度边界没有质量流量结果")
	}
}

// TestExtGridBranchFlows 净流量 = Σ流入 - Σ流出 - 负荷
func TestExtGridBranchFlows(t *testing.T) {
	net := newNetwork(t, 3, 0)
	add(t, net, ExtGridName, component.Row{component.ColJunction: 1, "p_bar": 2.0})
	add(t, net, PipeName, component.Row{component.ColFromJunction: 0, component.ColToJunction: 1, "length_km": 1.0, "diameter_m": 0.1})
	add(t, net, PipeName, component.Row{component.ColFromJunction: 1, component.ColToJunction: 2, "length_km": 1.0, "diameter_m": 0.1})
	add(t, net, SinkName, component.Row{component.ColJunction: 1, "mdot_kg_per_s": 0.5})
	ctx := setup(t, net)
	branches := net.Pit.Branch
	branches.Set(0, table.BranchMdot, 2)
	branches.Set(1, table.BranchMdot, 3)
	ctx.Branches = component.NewBranchResults(2)
	require.NoError(t, ctx.CallMark(component.MarkExtract))
	res, _ := net.Result(ExtGridName)
	mdot, err := res.Float64s("mdot_kg_per_s")
	require.NoError(t, err)
	assert.InDelta(t, 2-3-0.5, mdot[0], 1e-12)
}

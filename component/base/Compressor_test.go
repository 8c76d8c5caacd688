package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pipeflow/component"
	"pipeflow/table"
)

// newCompressorNetwork 入口绝对压力为 5 bar 的压缩机
func newCompressorNetwork(t *testing.T, ratio float64) *component.Network {
	net := newNetwork(t, 2, 5-PNorm)
	add(t, net, CompressorName, component.Row{
		component.ColFromJunction: 0, component.ColToJunction: 1, "pressure_ratio": ratio,
	})
	return net
}

func TestCompressorLift(t *testing.T) {
	net := newCompressorNetwork(t, 1.2)
	setup(t, net)
	comp, _ := component.Lookup(CompressorName)
	adapter := comp.(component.Adapter)
	r := net.Lookups.BranchRanges[CompressorName]
	branches := net.Pit.Branch.View(r)

	branches.Set(0, table.BranchV, 0.5)
	require.NoError(t, adapter.AdaptionBeforeDerivatives(net, branches, net.Pit.Node, net.Options))
	assert.InDelta(t, 1.0, branches.At(0, table.BranchPL), 1e-12)

	branches.Set(0, table.BranchV, 0)
	require.NoError(t, adapter.AdaptionBeforeDerivatives(net, branches, net.Pit.Node, net.Options))
	assert.InDelta(t, 1.0, branches.At(0, table.BranchPL), 1e-12, "零流量按正向处理")

	// 反向流动不提供压力提升
	branches.Set(0, table.BranchV, -0.1)
	require.NoError(t, adapter.AdaptionBeforeDerivatives(net, branches, net.Pit.Node, net.Options))
	assert.Equal(t, 0.0, branches.At(0, table.BranchPL))
}

// TestCompressorLiftFollowsInlet 每次迭代按当前入口压力重新计算
func TestCompressorLiftFollowsInlet(t *testing.T) {
	net := newCompressorNetwork(t, 1.5)
	setup(t, net)
	comp, _ := component.Lookup(CompressorName)
	branches := net.Pit.Branch.View(net.Lookups.BranchRanges[CompressorName])
	net.Pit.Node.Set(0, table.NodePInit, 3-PNorm)
	require.NoError(t, comp.(component.Adapter).AdaptionBeforeDerivatives(net, branches, net.Pit.Node, net.Options))
	assert.InDelta(t, 1.5, branches.At(0, table.BranchPL), 1e-12)
}

func TestCompressorEntries(t *testing.T) {
	net := newCompressorNetwork(t, 1.2)
	setup(t, net)
	branches := net.Pit.Branch
	assert.Equal(t, 0.1, branches.At(0, table.BranchD))
	assert.InDelta(t, 0.007854, branches.At(0, table.BranchArea), 1e-6)
	assert.Equal(t, 0.0, branches.At(0, table.BranchLC))
	assert.Equal(t, 1.2, branches.At(0, table.BranchPressureRatio))
	assert.Equal(t, 0.0, branches.At(0, table.BranchPL))
	assert.Equal(t, 0.0, branches.At(0, table.BranchFrom))
	assert.Equal(t, 1.0, branches.At(0, table.BranchTo))
}

func TestCompressorInvalidRatio(t *testing.T) {
	net := newCompressorNetwork(t, 0)
	ctx := component.NewContext(net)
	assert.ErrorIs(t, ctx.CallMark(component.MarkValidate), component.ErrConfig)
}

// TestActiveBranchResults 有源支路输出压差与流量
func TestActiveBranchResults(t *testing.T) {
	net := newCompressorNetwork(t, 1.2)
	ctx := setup(t, net)
	br := component.NewBranchResults(1)
	br.DeltaP[0], br.VMean[0], br.MdotFrom[0], br.MdotTo[0] = 1, 2, 3, -3
	br.PFrom[0], br.PTo[0] = 4, 5
	ctx.Branches = br
	require.NoError(t, ctx.CallMark(component.MarkExtract))
	res, ok := net.Result(CompressorName)
	require.True(t, ok)
	for col, want := range map[string]float64{
		"deltap_bar": 1, "v_mean_m_per_s": 2, "mdot_from_kg_per_s": 3, "mdot_to_kg_per_s": -3,
		"p_from_bar": 4, "p_to_bar": 5,
	} {
		got, err := res.Float64s(col)
		require.NoError(t, err)
		assert.Equal(t, []float64{want}, got, col)
	}
}

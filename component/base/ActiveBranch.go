package base

import (
	"pipeflow/component"
	"pipeflow/config"
	"pipeflow/table"
)

// 有源支路的名义几何参数
const (
	ActiveDiameter = 0.1 // 名义内径（m）
	ActiveLength   = 0.0 // 名义长度（m）
)

// activeResults 有源支路结果列
var activeResults = component.FloatColumns("deltap_bar", "v_mean_m_per_s", "p_from_bar", "p_to_bar",
	"mdot_from_kg_per_s", "mdot_to_kg_per_s")

// ActiveBranch 泵与压缩机的公共实现：名义几何参数、零损失系数，压力提升每次迭代重新计算
type ActiveBranch struct{ *component.Config }

// BranchCount 支路行数
func (a ActiveBranch) BranchCount(net *component.Network) int { return net.Len(a.Name) }

// CreateBranchEntries 写入起止节点与名义几何参数，损失系数为 0
func (a ActiveBranch) CreateBranchEntries(net *component.Network, branches table.View) error {
	t, _ := net.Table(a.Name)
	if _, _, err := component.BranchEndpoints(net, t, JunctionName, branches); err != nil {
		return err
	}
	branches.FillDiameter(ActiveDiameter)
	branches.Fill(table.BranchLength, ActiveLength)
	branches.Fill(table.BranchLambda, 0)
	branches.Fill(table.BranchLC, 0)
	branches.Fill(table.BranchPL, 0)
	return nil
}

// inletPressure 起点绝对压力（bar）
func inletPressure(branches table.View, nodes *table.Table, i int) float64 {
	from := branches.Table().Index(branches.Abs(i), table.BranchFrom)
	return nodes.At(from, table.NodePAmb) + nodes.At(from, table.NodePInit)
}

// adapt 对每条投运支路按 lift 计算压力提升，反向流动时为 0
func adapt(branches table.View, nodes *table.Table, lift func(i int) float64) {
	pl := make([]float64, branches.Len())
	for i := range pl {
		if branches.At(i, table.BranchActive) == 0 || branches.At(i, table.BranchV) < 0 {
			continue
		}
		pl[i] = lift(i)
	}
	branches.SetCol(table.BranchPL, pl)
}

// ExtractResults 输出压差、流速、两端压力与质量流量
func (a ActiveBranch) ExtractResults(net *component.Network, opts config.Options, br *component.BranchResults, conn component.Connectivity) error {
	return extractBranchResults(net, a.Name, br, conn, map[string][]float64{
		"deltap_bar":         br.DeltaP,
		"v_mean_m_per_s":     br.VMean,
		"p_from_bar":         br.PFrom,
		"p_to_bar":           br.PTo,
		"mdot_from_kg_per_s": br.MdotFrom,
		"mdot_to_kg_per_s":   br.MdotTo,
	})
}

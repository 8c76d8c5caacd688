package base

import (
	"math"

	"pipeflow/component"
	"pipeflow/config"
	"pipeflow/table"
)

// PipeType 定义元件
var PipeType = component.AddComponent(5, &Pipe{
	&component.Config{
		Name: PipeName,
		Input: []component.Column{
			component.Text(component.ColName).WithDefault(""),
			component.Uint(component.ColFromJunction),
			component.Uint(component.ColToJunction),
			component.Float("length_km", "gt=0"),
			component.Float("diameter_m", "gt=0"),
			component.Float("k_mm", "gte=0").WithDefault(0.2),            // 绝对粗糙度
			component.Float("loss_coefficient", "gte=0").WithDefault(0.0), // 局部损失系数
			component.Bool(component.ColInService, true),
		},
		Results: component.FloatColumns("v_mean_m_per_s", "p_from_bar", "p_to_bar",
			"mdot_from_kg_per_s", "mdot_to_kg_per_s"),
		AllFloat: true,
	},
})

// Pipe 管道元件，摩擦系数按完全粗糙区（Nikuradse）计算
type Pipe struct{ *component.Config }

// BranchCount 支路行数
func (Pipe) BranchCount(net *component.Network) int { return net.Len(PipeName) }

// CreateBranchEntries 写入管道几何参数与摩擦系数
func (Pipe) CreateBranchEntries(net *component.Network, branches table.View) error {
	t, _ := net.Table(PipeName)
	if _, _, err := component.BranchEndpoints(net, t, JunctionName, branches); err != nil {
		return err
	}
	length, err := t.Float64s("length_km")
	if err != nil {
		return err
	}
	d, err := t.Float64s("diameter_m")
	if err != nil {
		return err
	}
	k, err := t.Float64s("k_mm")
	if err != nil {
		return err
	}
	lc, err := t.Float64s("loss_coefficient")
	if err != nil {
		return err
	}
	lengthM := make([]float64, len(length))
	lambda := make([]float64, len(length))
	for i := range length {
		lengthM[i] = length[i] * 1000
		lambda[i] = Nikuradse(d[i], k[i]/1000)
	}
	branches.SetDiameter(d)
	branches.SetCol(table.BranchLength, lengthM)
	branches.SetCol(table.BranchLambda, lambda)
	branches.SetCol(table.BranchLC, lc)
	return nil
}

// Nikuradse 完全粗糙区摩擦系数 λ = 1/(2·lg(3.71·d/k))²，k 为 0 时取 0.01
func Nikuradse(d, k float64) float64 {
	if k <= 0 {
		return 0.01
	}
	x := 2 * math.Log10(3.71*d/k)
	return 1 / (x * x)
}

// ExtractResults 输出管道流速、两端压力与质量流量
func (Pipe) ExtractResults(net *component.Network, opts config.Options, br *component.BranchResults, conn component.Connectivity) error {
	return extractBranchResults(net, PipeName, br, conn, map[string][]float64{
		"v_mean_m_per_s":     br.VMean,
		"p_from_bar":         br.PFrom,
		"p_to_bar":           br.PTo,
		"mdot_from_kg_per_s": br.MdotFrom,
		"mdot_to_kg_per_s":   br.MdotTo,
	})
}

// extractBranchResults 将支路结果按本元件行区间写入结果表
func extractBranchResults(net *component.Network, name string, br *component.BranchResults, conn component.Connectivity, cols map[string][]float64) error {
	res, _ := net.Result(name)
	branches := net.Pit.Branch.View(net.Lookups.BranchRanges[name])
	for col, values := range cols {
		if err := res.Set(col, component.BranchRows(branches, conn, values)); err != nil {
			return err
		}
	}
	return nil
}

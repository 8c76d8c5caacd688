package base

import (
	"pipeflow/component"
	"pipeflow/config"
	"pipeflow/table"
)

// PumpType 定义元件
var PumpType = component.AddComponent(6, &Pump{ActiveBranch{
	&component.Config{
		Name: PumpName,
		Input: []component.Column{
			component.Text(component.ColName).WithDefault(""),
			component.Uint(component.ColFromJunction),
			component.Uint(component.ColToJunction),
			component.Float("c0_bar", "gte=0"),                       // 零流量扬程
			component.Float("c1_bar_h_per_m3", "").WithDefault(0.0),  // 一次项系数
			component.Float("c2_bar_h2_per_m6", "").WithDefault(0.0), // 二次项系数
			component.Bool(component.ColInService, true),
		},
		Results:  activeResults,
		AllFloat: true,
	},
}})

// Pump 泵：压力提升按二次特性曲线 c0 + c1·q + c2·q² 计算（q 为 m³/h），不低于 0
type Pump struct{ ActiveBranch }

// Lift 特性曲线压力提升（bar）
func Lift(c0, c1, c2, q float64) float64 {
	return max(c0+c1*q+c2*q*q, 0)
}

// AdaptionBeforeDerivatives 按当前流量重新计算压力提升
func (Pump) AdaptionBeforeDerivatives(net *component.Network, branches table.View, nodes *table.Table, opts config.Options) error {
	t, _ := net.Table(PumpName)
	c0, err := t.Float64s("c0_bar")
	if err != nil {
		return err
	}
	c1, err := t.Float64s("c1_bar_h_per_m3")
	if err != nil {
		return err
	}
	c2, err := t.Float64s("c2_bar_h2_per_m6")
	if err != nil {
		return err
	}
	adapt(branches, nodes, func(i int) float64 {
		q := branches.At(i, table.BranchV) * branches.At(i, table.BranchArea) * 3600
		return Lift(c0[i], c1[i], c2[i], q)
	})
	return nil
}

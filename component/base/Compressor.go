package base

import (
	"pipeflow/component"
	"pipeflow/config"
	"pipeflow/table"
)

// CompressorType 定义元件
var CompressorType = component.AddComponent(7, &Compressor{ActiveBranch{
	&component.Config{
		Name: CompressorName,
		Input: []component.Column{
			component.Text(component.ColName).WithDefault(""),
			component.Uint(component.ColFromJunction),
			component.Uint(component.ColToJunction),
			component.Float("pressure_ratio", "gt=0"),
			component.Bool(component.ColInService, true),
		},
		Results:  activeResults,
		AllFloat: true,
	},
}})

// Compressor 压缩机：出口绝对压力 = 入口绝对压力 × 压比
type Compressor struct{ ActiveBranch }

// CreateBranchEntries 在有源支路参数基础上写入压比
func (c Compressor) CreateBranchEntries(net *component.Network, branches table.View) error {
	if err := c.ActiveBranch.CreateBranchEntries(net, branches); err != nil {
		return err
	}
	t, _ := net.Table(CompressorName)
	ratio, err := t.Float64s("pressure_ratio")
	if err != nil {
		return err
	}
	branches.SetCol(table.BranchPressureRatio, ratio)
	return nil
}

// AdaptionBeforeDerivatives 按当前入口压力重新计算压力提升
func (Compressor) AdaptionBeforeDerivatives(net *component.Network, branches table.View, nodes *table.Table, opts config.Options) error {
	adapt(branches, nodes, func(i int) float64 {
		pFrom := inletPressure(branches, nodes, i)
		return pFrom*branches.At(i, table.BranchPressureRatio) - pFrom
	})
	return nil
}

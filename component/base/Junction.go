package base

import (
	"pipeflow/component"
	"pipeflow/config"
	"pipeflow/table"
)

// JunctionType 定义元件
var JunctionType = component.AddComponent(1, &Junction{
	&component.Config{
		Name: JunctionName,
		Input: []component.Column{
			component.Text(component.ColName).WithDefault(""),
			component.Float("pn_bar", ""),                    // 初始压力（表压）
			component.Float("tfluid_k", "gt=0"),              // 流体温度
			component.Float("height_m", "").WithDefault(0.0), // 高程
			component.Bool(component.ColInService, true),
		},
		Results:  component.FloatColumns("p_bar", "t_k"),
		AllFloat: true,
	},
})

// Junction 节点元件，每行占用一个节点行
type Junction struct{ *component.Config }

// NodeCount 节点行数，停运节点同样占用一行
func (Junction) NodeCount(net *component.Network) int { return net.Len(JunctionName) }

// CreateNodeEntries 写入节点初值与环境压力，并建立索引查找表
func (Junction) CreateNodeEntries(net *component.Network, nodes table.View) error {
	t, _ := net.Table(JunctionName)
	pn, err := t.Float64s("pn_bar")
	if err != nil {
		return err
	}
	tk, err := t.Float64s("tfluid_k")
	if err != nil {
		return err
	}
	height, err := t.Float64s("height_m")
	if err != nil {
		return err
	}
	active, err := t.Bools(component.ColInService)
	if err != nil {
		return err
	}
	pamb := make([]float64, len(height))
	for i, h := range height {
		pamb[i] = ambientPressure(h)
	}
	nodes.SetInts(table.NodeElementIdx, t.Index)
	nodes.SetCol(table.NodePInit, pn)
	nodes.SetCol(table.NodeTInit, tk)
	nodes.SetCol(table.NodeHeight, height)
	nodes.SetCol(table.NodePAmb, pamb)
	nodes.SetBools(table.NodeActive, active)
	net.Lookups.SetNodeIndex(JunctionName, nodes.Range(), t.Index)
	return nil
}

// ExtractResults 输出节点压力与温度，断开的节点为 NaN
func (Junction) ExtractResults(net *component.Network, opts config.Options, branches *component.BranchResults, conn component.Connectivity) error {
	res, _ := net.Result(JunctionName)
	nodes := net.Pit.Node.View(net.Lookups.NodeRanges[JunctionName])
	p, tk := nodes.Col(table.NodePInit), nodes.Col(table.NodeTInit)
	for i := range p {
		if nodes.At(i, table.NodeActive) == 0 || !conn.Node(nodes.Abs(i)) {
			p[i], tk[i] = nan, nan
		}
	}
	if err := res.Set("p_bar", p); err != nil {
		return err
	}
	return res.Set("t_k", tk)
}

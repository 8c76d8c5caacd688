package base

import (
	"pipeflow/component"
	"pipeflow/config"
	"pipeflow/maths"
	"pipeflow/table"
)

// SinkType 定义元件
var SinkType = component.AddComponent(3, &Sink{massFlow{
	Config: &component.Config{
		Name:     SinkName,
		Input:    massFlowInput(),
		Results:  component.FloatColumns("mdot_kg_per_s"),
		AllFloat: true,
	},
	sign: 1,
}})

// SourceType 定义元件
var SourceType = component.AddComponent(4, &Source{massFlow{
	Config: &component.Config{
		Name:     SourceName,
		Input:    massFlowInput(),
		Results:  component.FloatColumns("mdot_kg_per_s"),
		AllFloat: true,
	},
	sign: -1,
}})

// Sink 从节点取用质量流量
type Sink struct{ massFlow }

// Source 向节点注入质量流量
type Source struct{ massFlow }

func massFlowInput() []component.Column {
	return []component.Column{
		component.Text(component.ColName).WithDefault(""),
		component.Uint(component.ColJunction),
		component.Float("mdot_kg_per_s", "gte=0"),
		component.Float("scaling", "gte=0").WithDefault(1.0),
		component.Bool(component.ColInService, true),
	}
}

// massFlow 汇与源的公共实现，sign 为写入节点负荷的符号
type massFlow struct {
	*component.Config
	sign float64
}

// ConnectedNodeComponent 所连接的节点元件
func (massFlow) ConnectedNodeComponent() string { return JunctionName }

// flows 每行的缩放后流量与节点行
func (m massFlow) flows(net *component.Network) (mdot []float64, nodes []int, err error) {
	t, _ := net.Table(m.Name)
	if nodes, err = component.ResolveNodes(net, t, component.ColJunction, m.ConnectedNodeComponent()); err != nil {
		return nil, nil, err
	}
	raw, err := t.Float64s("mdot_kg_per_s")
	if err != nil {
		return nil, nil, err
	}
	scaling, err := t.Float64s("scaling")
	if err != nil {
		return nil, nil, err
	}
	mdot = make([]float64, len(raw))
	for i := range raw {
		mdot[i] = raw[i] * scaling[i]
	}
	return mdot, nodes, nil
}

// CreateNodeElementEntries 按节点汇总流量并累加到节点负荷
func (m massFlow) CreateNodeElementEntries(net *component.Network, nodes *table.Table) error {
	t, _ := net.Table(m.Name)
	rows, err := t.InService()
	if err != nil || len(rows) == 0 {
		return err
	}
	mdot, nodeRows, err := m.flows(net)
	if err != nil {
		return err
	}
	g, err := maths.SumByGroup(net.Strategy(), component.Pick(nodeRows, rows), component.Pick(mdot, rows), nil)
	if err != nil {
		return err
	}
	for i, row := range g.Keys {
		nodes.Inc(row, table.NodeLoad, m.sign*g.Sums[i])
	}
	return nil
}

// ExtractResults 输出投运且连通行的质量流量
func (m massFlow) ExtractResults(net *component.Network, opts config.Options, br *component.BranchResults, conn component.Connectivity) error {
	t, _ := net.Table(m.Name)
	res, _ := net.Result(m.Name)
	mdot, nodes, err := m.flows(net)
	if err != nil {
		return err
	}
	active, err := t.Bools(component.ColInService)
	if err != nil {
		return err
	}
	for i := range mdot {
		if !active[i] || nodes[i] < 0 || !conn.Node(nodes[i]) {
			mdot[i] = nan
		}
	}
	return res.Set("mdot_kg_per_s", mdot)
}

package base

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"pipeflow/component"
	"pipeflow/config"
	"pipeflow/maths"
	"pipeflow/table"
)

// 外部电网类型
const (
	ExtGridP  = "p"  // 固定压力
	ExtGridT  = "t"  // 固定温度
	ExtGridPT = "pt" // 固定压力与温度
)

// ExtGridType 定义元件
var ExtGridType = component.AddComponent(2, &ExtGrid{
	&component.Config{
		Name: ExtGridName,
		Input: []component.Column{
			component.Text(component.ColName).WithDefault(""),
			component.Uint(component.ColJunction),
			component.Float("p_bar", ""),
			component.Float("t_k", "gt=0").WithDefault(293.15),
			component.Bool(component.ColInService, true),
			component.Text("type").WithDefault(ExtGridPT).WithValidate("oneof=p t pt"),
		},
		Results:  component.FloatColumns("mdot_kg_per_s"),
		AllFloat: true,
	},
})

// ExtGrid 压力/温度边界，同一节点上的多个边界取平均
type ExtGrid struct{ *component.Config }

// Sign 结果质量流量的符号
func (ExtGrid) Sign() float64 { return 1 }

// ConnectedNodeComponent 所连接的节点元件
func (ExtGrid) ConnectedNodeComponent() string { return JunctionName }

// extGridRows 投运行及其节点行、类型标签
type extGridRows struct {
	rows  []int     // 投运的配置表行
	nodes []int     // 对应节点行
	kind  []string  // 类型标签
	p     []float64 // 压力
	t     []float64 // 温度
}

func (e ExtGrid) inService(net *component.Network) (extGridRows, error) {
	var r extGridRows
	t, ok := net.Table(ExtGridName)
	if !ok {
		return r, nil
	}
	rows, err := t.InService()
	if err != nil {
		return r, err
	}
	nodes, err := component.ResolveNodes(net, t, component.ColJunction, e.ConnectedNodeComponent())
	if err != nil {
		return r, err
	}
	kind, err := t.Strings("type")
	if err != nil {
		return r, err
	}
	p, err := t.Float64s("p_bar")
	if err != nil {
		return r, err
	}
	tk, err := t.Float64s("t_k")
	if err != nil {
		return r, err
	}
	r.rows = rows
	r.nodes = component.Pick(nodes, rows)
	r.kind = component.Pick(kind, rows)
	r.p = component.Pick(p, rows)
	r.t = component.Pick(tk, rows)
	return r, nil
}

// mask 类型标签属于 kinds 的投运行位置
func (r extGridRows) mask(kinds ...string) []int {
	var out []int
	for i, k := range r.kind {
		if slices.Contains(kinds, k) {
			out = append(out, i)
		}
	}
	return out
}

// CreateNodeElementEntries 按节点分组求平均，写入节点压力/温度与类型标记，并累加出现次数
func (e ExtGrid) CreateNodeElementEntries(net *component.Network, nodes *table.Table) error {
	r, err := e.inService(net)
	if err != nil {
		return err
	}
	if len(r.rows) == 0 {
		return nil
	}
	for i, k := range r.kind {
		if k != ExtGridT && !isFinite(r.p[i]) {
			return fmt.Errorf("%w: %s %d 压力 %v 非法", component.ErrConfig, ExtGridName, r.rows[i], r.p[i])
		}
	}
	s := net.Strategy()

	pMask := r.mask(ExtGridP, ExtGridPT)
	pNodes := component.Pick(r.nodes, pMask)
	if err := setBoundary(s, nodes, pNodes, component.Pick(r.p, pMask),
		table.NodePInit, table.NodeType, table.NodePOccurrence, table.TypeP); err != nil {
		return err
	}

	tMask := r.mask(ExtGridT, ExtGridPT)
	if err := setBoundary(s, nodes, component.Pick(r.nodes, tMask), component.Pick(r.t, tMask),
		table.NodeTInit, table.NodeTypeT, table.NodeTOccurrence, table.TypeT); err != nil {
		return err
	}

	net.Lookups.AddFixedNodes(ExtGridName, pNodes)
	log.WithFields(logrus.Fields{"p": len(pMask), "t": len(tMask)}).Debug("ext_grid 边界写入完成")
	return nil
}

// setBoundary 将同一节点上的边界值合并为加权平均，出现次数累加
func setBoundary(s maths.Strategy, nodes *table.Table, rows []int, values []float64, valueCol, typeCol, occCol int, flag float64) error {
	g, err := maths.SumByGroup(s, rows, values, nil)
	if err != nil {
		return err
	}
	for i, row := range g.Keys {
		prior := nodes.At(row, occCol)
		total := prior + float64(g.Counts[i])
		if total == 0 {
			continue
		}
		var mean float64
		if prior == 0 {
			mean, _ = g.Mean(i)
		} else {
			mean = (nodes.At(row, valueCol)*prior + g.Sums[i]) / total
		}
		nodes.Set(row, valueCol, mean)
		nodes.Set(row, typeCol, flag)
		nodes.Set(row, occCol, total)
	}
	return nil
}

// ExtractResults 每个压力边界节点的净流量 = Σ流入 - Σ流出 - 负荷，在该节点的压力边界之间平均分配。
// 供给管网时结果为负值，与节点负荷同号规则一致。
func (e ExtGrid) ExtractResults(net *component.Network, opts config.Options, br *component.BranchResults, conn component.Connectivity) error {
	r, err := e.inService(net)
	if err != nil {
		return err
	}
	res, _ := net.Result(ExtGridName)
	pMask := r.mask(ExtGridP, ExtGridPT)
	if len(pMask) == 0 {
		return nil
	}
	egNodes := component.Pick(r.nodes, pMask)
	uniq, inverse, counts := maths.Unique(egNodes)

	node, branch := net.Pit.Node, net.Pit.Branch
	var keys []int
	var flows []float64
	for b := range branch.Rows() {
		if branch.At(b, table.BranchActive) == 0 {
			continue
		}
		mdot := branch.At(b, table.BranchMdot)
		if from := branch.Index(b, table.BranchFrom); contains(uniq, from) {
			keys = append(keys, from)
			flows = append(flows, -mdot)
		}
		if to := branch.Index(b, table.BranchTo); contains(uniq, to) {
			keys = append(keys, to)
			flows = append(flows, mdot)
		}
	}
	loads := node.Gather(uniq, table.NodeLoad)
	floats.Scale(-1, loads)
	keys = append(keys, uniq...)
	flows = append(flows, loads...)

	g, err := maths.SumByGroup(opts.Strategy(), keys, flows, nil)
	if err != nil {
		return err
	}
	mdot := make([]float64, res.Len())
	for i := range mdot {
		mdot[i] = nan
	}
	for k, j := range inverse {
		mdot[r.rows[pMask[k]]] = e.Sign() * g.Sums[j] / float64(counts[j])
	}
	return res.Set("mdot_kg_per_s", mdot)
}

func contains(sorted []int, v int) bool {
	_, ok := slices.BinarySearch(sorted, v)
	return ok
}

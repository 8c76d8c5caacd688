package component

import (
	"pipeflow/config"
	"pipeflow/table"
)

// Component 元件接口，每种元件类型一个实现，按表名注册
type Component interface {
	// TableName 元件类型名，同时是配置表与结果表的名称
	TableName() string
	// ComponentInput 配置表列定义（有序）
	ComponentInput() []Column
	// ResultTable 结果表列定义，以及是否全部为浮点列
	ResultTable() ([]Column, bool)
	// ExtractResults 收敛后将内部状态汇总到结果表；元件没有行时不做任何操作
	ExtractResults(net *Network, opts config.Options, branches *BranchResults, conn Connectivity) error
}

// NodeComponent 拥有节点行的元件（如 junction）
type NodeComponent interface {
	Component
	NodeCount(net *Network) int
	CreateNodeEntries(net *Network, nodes table.View) error
}

// NodeElementComponent 挂接在已有节点上、只修改节点值的元件（如 ext_grid、sink）
type NodeElementComponent interface {
	Component
	// ConnectedNodeComponent 所连接的节点元件类型
	ConnectedNodeComponent() string
	CreateNodeElementEntries(net *Network, nodes *table.Table) error
}

// BranchComponent 拥有支路行的元件（如 pipe、pump、compressor）
type BranchComponent interface {
	Component
	BranchCount(net *Network) int
	CreateBranchEntries(net *Network, branches table.View) error
}

// Adapter 每次计算导数前修改本元件支路系数的元件。
// 只能写 branches 视图，nodes 只读。
type Adapter interface {
	AdaptionBeforeDerivatives(net *Network, branches table.View, nodes *table.Table, opts config.Options) error
}

// BranchResults 收敛后的支路结果，按支路表行排列
type BranchResults struct {
	VMean    []float64 // 平均流速（m/s）
	MdotFrom []float64 // 起点流出质量流量（kg/s）
	MdotTo   []float64 // 终点流入质量流量（kg/s），等于 -MdotFrom
	PFrom    []float64 // 起点压力（bar）
	PTo      []float64 // 终点压力（bar）
	DeltaP   []float64 // 压差 p_to - p_from（bar）
}

// NewBranchResults 分配 n 条支路的结果
func NewBranchResults(n int) *BranchResults {
	return &BranchResults{
		VMean:    make([]float64, n),
		MdotFrom: make([]float64, n),
		MdotTo:   make([]float64, n),
		PFrom:    make([]float64, n),
		PTo:      make([]float64, n),
		DeltaP:   make([]float64, n),
	}
}

// Connectivity 连通性掩码；切片为nil时视为全部连通
type Connectivity struct {
	Nodes    []bool
	Branches []bool
}

// Node 节点行是否连通
func (c Connectivity) Node(row int) bool { return c.Nodes == nil || c.Nodes[row] }

// Branch 支路行是否连通
func (c Connectivity) Branch(row int) bool { return c.Branches == nil || c.Branches[row] }

package component

import (
	"fmt"
	"maps"
	"slices"

	"pipeflow/config"
	"pipeflow/maths"
	"pipeflow/table"
)

// Fluid 不可压缩流体
type Fluid struct {
	Name    string  `validate:"required"`
	Density float64 `validate:"gt=0"` // 密度（kg/m³）
}

// Water 默认流体
var Water = Fluid{Name: "water", Density: 998.2}

// Pit 内部节点/支路表，由求解器在准备阶段分配
type Pit struct {
	Node   *table.Table
	Branch *table.Table
}

// Network 管网：配置表、结果表、内部表、查找表与求解参数的集合，传递给元件的每个钩子
type Network struct {
	Name    string
	Fluid   Fluid
	Pit     Pit
	Lookups *table.Lookups
	Options config.Options
	tables  map[string]*Table
	results map[string]*Result
}

// NewNetwork 创建空管网，流体为水
func NewNetwork(name string) *Network {
	return &Network{
		Name:    name,
		Fluid:   Water,
		Lookups: table.NewLookups(),
		Options: config.Default(),
		tables:  map[string]*Table{},
		results: map[string]*Result{},
	}
}

// Table 元件配置表
func (net *Network) Table(name string) (*Table, bool) {
	t, ok := net.tables[name]
	return t, ok
}

// Len 元件配置表行数，表不存在时为 0
func (net *Network) Len(name string) int {
	if t, ok := net.tables[name]; ok {
		return t.Len()
	}
	return 0
}

// Tables 已创建的表名（升序）
func (net *Network) Tables() []string {
	return slices.Sorted(maps.Keys(net.tables))
}

// Create 按注册的元件输入列创建配置表，表已存在时直接返回
func (net *Network) Create(name string) (*Table, error) {
	if t, ok := net.tables[name]; ok {
		return t, nil
	}
	comp, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: 未注册的元件类型 %q", ErrConfig, name)
	}
	t := NewTable(name, comp.ComponentInput())
	net.tables[name] = t
	return t, nil
}

// SetTable 直接设置配置表，用于批量导入
func (net *Network) SetTable(t *Table) { net.tables[t.Name] = t }

// AddElement 向元件配置表追加一行，返回元件索引
func (net *Network) AddElement(name string, idx int, row Row) (int, error) {
	t, err := net.Create(name)
	if err != nil {
		return 0, err
	}
	return t.AddRow(idx, row)
}

// Result 元件结果表
func (net *Network) Result(name string) (*Result, bool) {
	r, ok := net.results[name]
	return r, ok
}

// NewResult 为元件创建（覆盖）结果表，行与配置表对应
func (net *Network) NewResult(comp Component) *Result {
	cols, allFloat := comp.ResultTable()
	var index []int
	if t, ok := net.tables[comp.TableName()]; ok {
		index = t.Index
	}
	r := NewResult(comp.TableName(), cols, allFloat, index)
	net.results[comp.TableName()] = r
	return r
}

// Strategy 分组求和执行方式
func (net *Network) Strategy() maths.Strategy {
	return net.Options.Strategy()
}

// Validate 校验流体参数
func (f Fluid) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: 流体参数 %+v 非法", ErrConfig, f)
	}
	return nil
}

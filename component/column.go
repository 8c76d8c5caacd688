package component

import (
	"errors"
	"fmt"
)

// ErrConfig 元件配置错误，在求解准备阶段、迭代开始前报告
var ErrConfig = errors.New("component: 配置错误")

// Kind 配置列的取值类型
type Kind uint8

const (
	KindText  Kind = iota // 文本
	KindUint              // 无符号整数（节点引用、索引）
	KindFloat             // 浮点数
	KindBool              // 布尔
)

// String 类型名称
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Column 配置表或结果表的列定义
type Column struct {
	Name     string // 列名
	Kind     Kind   // 取值类型
	Default  any    // 缺省值，nil 表示必填
	Validate string // validator 校验标签，空表示不校验
}

// Required 是否必填
func (c Column) Required() bool { return c.Default == nil }

// Text 必填文本列
func Text(name string) Column { return Column{Name: name, Kind: KindText} }

// Uint 必填整数列
func Uint(name string) Column { return Column{Name: name, Kind: KindUint} }

// Float 浮点列，validate 为校验标签
func Float(name, validate string) Column {
	return Column{Name: name, Kind: KindFloat, Validate: validate}
}

// Bool 布尔列，缺省值为 def
func Bool(name string, def bool) Column { return Column{Name: name, Kind: KindBool, Default: def} }

// WithDefault 设置缺省值
func (c Column) WithDefault(v any) Column {
	c.Default = v
	return c
}

// Names 列名列表
func Names(cols []Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// FloatColumns 生成一组浮点结果列
func FloatColumns(names ...string) []Column {
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = Column{Name: n, Kind: KindFloat}
	}
	return cols
}

// 常用列名
const (
	ColName         = "name"
	ColInService    = "in_service"
	ColJunction     = "junction"
	ColFromJunction = "from_junction"
	ColToJunction   = "to_junction"
)

// WithValidate 设置校验标签
func (c Column) WithValidate(tag string) Column {
	c.Validate = tag
	return c
}

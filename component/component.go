package component

import (
	"cmp"
	"slices"

	"github.com/sirupsen/logrus"
)

// ComponentType 元件类型标识，决定钩子的调用顺序
type ComponentType uint

// componentList 元件类型注册表
var componentList = map[ComponentType]Component{}

// componentNames 表名 → 元件类型
var componentNames = map[string]ComponentType{}

// AddComponent 注册元件类型。
// 类型标识或表名重复注册会触发致命错误。
func AddComponent(t ComponentType, comp Component) ComponentType {
	if _, ok := componentList[t]; ok {
		logrus.Fatalf("元件重复注册: %d", t)
	}
	if _, ok := componentNames[comp.TableName()]; ok {
		logrus.Fatalf("元件表名重复注册: %s", comp.TableName())
	}
	componentList[t] = comp
	componentNames[comp.TableName()] = t
	return t
}

// Lookup 按表名查找元件
func Lookup(name string) (Component, bool) {
	t, ok := componentNames[name]
	if !ok {
		return nil, false
	}
	return componentList[t], true
}

// TypeOf 按表名查找元件类型标识
func TypeOf(name string) (ComponentType, bool) {
	t, ok := componentNames[name]
	return t, ok
}

// Components 所有已注册元件，按类型标识升序
func Components() []Component {
	types := make([]ComponentType, 0, len(componentList))
	for t := range componentList {
		types = append(types, t)
	}
	slices.SortFunc(types, func(a, b ComponentType) int { return cmp.Compare(a, b) })
	out := make([]Component, len(types))
	for i, t := range types {
		out[i] = componentList[t]
	}
	return out
}

// Present 管网中有配置表的元件，按类型标识升序
func Present(net *Network) []Component {
	var out []Component
	for _, c := range Components() {
		if _, ok := net.Table(c.TableName()); ok {
			out = append(out, c)
		}
	}
	return out
}

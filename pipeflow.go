// Package pipeflow 稳态管网潮流计算：元件向内部节点/支路表写入贡献，求解后汇总为元件结果。
package pipeflow

import (
	"pipeflow/component"
	"pipeflow/config"
	"pipeflow/solver"

	_ "pipeflow/component/base"
)

// Network 管网
type Network = component.Network

// NewNetwork 创建空管网，内置元件均已注册
func NewNetwork(name string) *Network {
	return component.NewNetwork(name)
}

// Run 使用给定参数求解管网
func Run(net *Network, opts config.Options) (solver.Report, error) {
	return solver.Run(net, opts)
}

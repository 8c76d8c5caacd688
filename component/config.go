package component

import "pipeflow/config"

// Config 元件静态配置，嵌入具体元件后提供默认实现。
// 具体元件可以重写这些方法实现自定义行为。
type Config struct {
	Name     string   // 元件类型名（表名）
	Input    []Column // 配置表列
	Results  []Column // 结果表列
	AllFloat bool     // 结果是否全部为浮点列
}

// TableName 元件类型名
func (c *Config) TableName() string { return c.Name }

// ComponentInput 配置表列定义
func (c *Config) ComponentInput() []Column { return c.Input }

// ResultTable 结果表列定义
func (c *Config) ResultTable() ([]Column, bool) { return c.Results, c.AllFloat }

// ExtractResults 默认不输出结果（空实现）
func (*Config) ExtractResults(net *Network, opts config.Options, branches *BranchResults, conn Connectivity) error {
	return nil
}

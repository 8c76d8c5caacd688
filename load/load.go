// Package load 读取管网描述文件并创建管网。
// YAML（兼容 JSON）由 gopkg.in/yaml.v3 解析，TOML 由 BurntSushi/toml 解析。
package load

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
	"pipeflow/component"

	_ "pipeflow/component/base"
)

// 文件格式
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// ColIndex 行内指定元件索引的键，省略时自动编号
const ColIndex = "index"

// Fluid 流体参数
type Fluid struct {
	Name    string  `yaml:"name" toml:"name"`
	Density float64 `yaml:"density" toml:"density"`
}

// Document 管网描述：元件类型 → 行列表
type Document struct {
	Name   string                      `yaml:"name" toml:"name"`
	Fluid  *Fluid                      `yaml:"fluid" toml:"fluid"`
	Tables map[string][]map[string]any `yaml:"tables" toml:"tables"`
}

// LoadString 加载 YAML 管网描述。
func LoadString(s string) (*component.Network, error) {
	return LoadReader(strings.NewReader(s), FormatYAML)
}

// LoadReader 按格式解析管网描述。
func LoadReader(r io.Reader, format string) (*component.Network, error) {
	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: 解析 YAML 失败: %v", component.ErrConfig, err)
		}
	case FormatTOML:
		if _, err := toml.DecodeReader(r, &doc); err != nil {
			return nil, fmt.Errorf("%w: 解析 TOML 失败: %v", component.ErrConfig, err)
		}
	default:
		return nil, fmt.Errorf("%w: 未知文件格式 %q", component.ErrConfig, format)
	}
	return doc.Network()
}

// Load 按扩展名读取管网描述文件，描述中没有名称时取文件名。
func Load(path string) (*component.Network, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	net, err := LoadReader(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if net.Name == "" {
		net.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return net, nil
}

// FormatOf 由扩展名判断文件格式
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: 无法识别文件 %q 的格式", component.ErrConfig, path)
}

// Network 创建管网，元件类型按名称顺序写入
func (doc *Document) Network() (*component.Network, error) {
	net := component.NewNetwork(doc.Name)
	if doc.Fluid != nil {
		net.Fluid = component.Fluid{Name: doc.Fluid.Name, Density: doc.Fluid.Density}
	}
	for _, name := range slices.Sorted(maps.Keys(doc.Tables)) {
		for i, row := range doc.Tables[name] {
			idx, err := indexOf(row)
			if err != nil {
				return nil, fmt.Errorf("%s 第 %d 行: %w", name, i+1, err)
			}
			values := maps.Clone(row)
			delete(values, ColIndex)
			if _, err := net.AddElement(name, idx, values); err != nil {
				return nil, fmt.Errorf("%s 第 %d 行: %w", name, i+1, err)
			}
		}
	}
	return net, nil
}

// indexOf 行内元件索引，-1 表示自动编号
func indexOf(row map[string]any) (int, error) {
	v, ok := row[ColIndex]
	if !ok {
		return -1, nil
	}
	var idx int
	switch i := v.(type) {
	case int:
		idx = i
	case int64:
		idx = int(i)
	case uint64:
		if i > math.MaxInt {
			return 0, fmt.Errorf("%w: 元件索引 %d 超出范围", component.ErrConfig, i)
		}
		idx = int(i)
	default:
		return 0, fmt.Errorf("%w: 元件索引 %v 不是整数", component.ErrConfig, v)
	}
	if idx < 0 {
		return 0, fmt.Errorf("%w: 元件索引 %d 为负数", component.ErrConfig, idx)
	}
	return idx, nil
}

package component

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Row 一行配置，键为列名
type Row map[string]any

// Table 元件配置表，按列存储，每个元件一行。求解期间只读。
type Table struct {
	Name    string         // 元件类型（表名）
	Columns []Column       // 列定义
	Index   []int          // 元件索引
	data    map[string]any // 列名 → []string / []uint / []float64 / []bool
}

// NewTable 按列定义创建空表
func NewTable(name string, columns []Column) *Table {
	t := &Table{Name: name, Columns: slices.Clone(columns), Index: []int{}, data: map[string]any{}}
	for _, c := range columns {
		t.data[c.Name] = emptyColumn(c.Kind)
	}
	return t
}

func emptyColumn(kind Kind) any {
	switch kind {
	case KindText:
		return []string{}
	case KindUint:
		return []uint{}
	case KindBool:
		return []bool{}
	}
	return []float64{}
}

// Len 行数
func (t *Table) Len() int { return len(t.Index) }

// Column 查找列定义
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// AddRow 追加一行。idx < 0 时使用下一个可用索引。
// 未给出的列取缺省值，必填列缺失或类型无法转换时返回 ErrConfig。
func (t *Table) AddRow(idx int, row Row) (int, error) {
	if idx < 0 {
		idx = 0
		for _, i := range t.Index {
			idx = max(idx, i+1)
		}
	} else if slices.Contains(t.Index, idx) {
		return 0, fmt.Errorf("%w: %s 索引 %d 重复", ErrConfig, t.Name, idx)
	}
	for key := range row {
		if _, ok := t.Column(key); !ok {
			return 0, fmt.Errorf("%w: %s 没有列 %q", ErrConfig, t.Name, key)
		}
	}
	values := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		v, ok := row[c.Name]
		if !ok || v == nil {
			if c.Required() {
				return 0, fmt.Errorf("%w: %s 缺少必填列 %q", ErrConfig, t.Name, c.Name)
			}
			v = c.Default
		}
		cv, err := convert(c.Kind, v)
		if err != nil {
			return 0, fmt.Errorf("%w: %s 列 %q: %v", ErrConfig, t.Name, c.Name, err)
		}
		values[i] = cv
	}
	for i, c := range t.Columns {
		switch col := t.data[c.Name].(type) {
		case []string:
			t.data[c.Name] = append(col, values[i].(string))
		case []uint:
			t.data[c.Name] = append(col, values[i].(uint))
		case []float64:
			t.data[c.Name] = append(col, values[i].(float64))
		case []bool:
			t.data[c.Name] = append(col, values[i].(bool))
		}
	}
	t.Index = append(t.Index, idx)
	return idx, nil
}

// SetColumn 整列写入（或替换）数据，values 必须为 []string、[]uint、[]float64 或 []bool
func (t *Table) SetColumn(name string, values any) {
	t.data[name] = values
}

// DropColumn 删除列数据
func (t *Table) DropColumn(name string) { delete(t.data, name) }

func (t *Table) column(name string) (any, error) {
	col, ok := t.data[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s 缺少列 %q", ErrConfig, t.Name, name)
	}
	return col, nil
}

func typeError(t *Table, name string, want Kind, got any) error {
	return fmt.Errorf("%w: %s 列 %q 应为 %s，实际 %T", ErrConfig, t.Name, name, want, got)
}

// Strings 文本列
func (t *Table) Strings(name string) ([]string, error) {
	col, err := t.column(name)
	if err != nil {
		return nil, err
	}
	if v, ok := col.([]string); ok {
		return v, nil
	}
	return nil, typeError(t, name, KindText, col)
}

// Uints 整数列
func (t *Table) Uints(name string) ([]uint, error) {
	col, err := t.column(name)
	if err != nil {
		return nil, err
	}
	if v, ok := col.([]uint); ok {
		return v, nil
	}
	return nil, typeError(t, name, KindUint, col)
}

// Ints 整数列转换为 int
func (t *Table) Ints(name string) ([]int, error) {
	u, err := t.Uints(name)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(u))
	for i, x := range u {
		out[i] = int(x)
	}
	return out, nil
}

// Float64s 浮点列
func (t *Table) Float64s(name string) ([]float64, error) {
	col, err := t.column(name)
	if err != nil {
		return nil, err
	}
	if v, ok := col.([]float64); ok {
		return v, nil
	}
	return nil, typeError(t, name, KindFloat, col)
}

// Bools 布尔列
func (t *Table) Bools(name string) ([]bool, error) {
	col, err := t.column(name)
	if err != nil {
		return nil, err
	}
	if v, ok := col.([]bool); ok {
		return v, nil
	}
	return nil, typeError(t, name, KindBool, col)
}

// InService 投运行的行号；没有 in_service 列时全部投运
func (t *Table) InService() ([]int, error) {
	rows := make([]int, 0, t.Len())
	if _, ok := t.Column(ColInService); !ok {
		for i := range t.Len() {
			rows = append(rows, i)
		}
		return rows, nil
	}
	flags, err := t.Bools(ColInService)
	if err != nil {
		return nil, err
	}
	for i, ok := range flags {
		if ok {
			rows = append(rows, i)
		}
	}
	return rows, nil
}

func columnLen(col any) int {
	switch v := col.(type) {
	case []string:
		return len(v)
	case []uint:
		return len(v)
	case []float64:
		return len(v)
	case []bool:
		return len(v)
	}
	return -1
}

// Validate 检查列是否齐全、类型与长度是否一致，并按列标签校验每个取值
func (t *Table) Validate(schema []Column) error {
	for _, c := range schema {
		col, err := t.column(c.Name)
		if err != nil {
			return err
		}
		if n := columnLen(col); n != t.Len() {
			return fmt.Errorf("%w: %s 列 %q 长度 %d，应为 %d", ErrConfig, t.Name, c.Name, n, t.Len())
		}
		if c.Kind != kindOf(col) {
			return typeError(t, c.Name, c.Kind, col)
		}
		if c.Validate == "" {
			continue
		}
		for i := range t.Len() {
			if err := validate.Var(valueAt(col, i), c.Validate); err != nil {
				return fmt.Errorf("%w: %s %d 列 %q 不满足 %q", ErrConfig, t.Name, t.Index[i], c.Name, c.Validate)
			}
		}
	}
	return nil
}

func kindOf(col any) Kind {
	switch col.(type) {
	case []string:
		return KindText
	case []uint:
		return KindUint
	case []bool:
		return KindBool
	case []float64:
		return KindFloat
	}
	return Kind(255)
}

func valueAt(col any, i int) any {
	switch v := col.(type) {
	case []string:
		return v[i]
	case []uint:
		return v[i]
	case []float64:
		return v[i]
	case []bool:
		return v[i]
	}
	return nil
}

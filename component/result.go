package component

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Result 元件结果表，每次求解写入一次。
// 全部为浮点列时使用 mat.Dense 存储，否则按列存储。
type Result struct {
	Name     string
	Columns  []Column
	Index    []int      // 与配置表行对应的元件索引
	AllFloat bool       // 是否全部为浮点列
	dense    *mat.Dense // AllFloat 时的存储，行数为零时为nil
	data     map[string][]float64
	text     map[string][]string
}

// NewResult 创建结果表，行对应配置表的每个元件，初值为 NaN
func NewResult(name string, columns []Column, allFloat bool, index []int) *Result {
	r := &Result{Name: name, Columns: columns, Index: append([]int(nil), index...), AllFloat: allFloat}
	n := len(index)
	if allFloat {
		if n > 0 && len(columns) > 0 {
			r.dense = mat.NewDense(n, len(columns), nil)
		}
	} else {
		r.data = map[string][]float64{}
		r.text = map[string][]string{}
		for _, c := range columns {
			if c.Kind == KindText {
				r.text[c.Name] = make([]string, n)
			} else {
				r.data[c.Name] = make([]float64, n)
			}
		}
	}
	r.Reset()
	return r
}

// Len 行数
func (r *Result) Len() int { return len(r.Index) }

// Reset 所有数值置为 NaN
func (r *Result) Reset() {
	if r.dense != nil {
		rows, cols := r.dense.Dims()
		for i := range rows {
			for j := range cols {
				r.dense.Set(i, j, math.NaN())
			}
		}
	}
	for _, col := range r.data {
		for i := range col {
			col[i] = math.NaN()
		}
	}
}

func (r *Result) col(name string) (int, error) {
	for i, c := range r.Columns {
		if c.Name == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("结果表 %s 没有列 %q", r.Name, name)
}

// Set 写入一列结果，values 长度必须等于行数
func (r *Result) Set(name string, values []float64) error {
	j, err := r.col(name)
	if err != nil {
		return err
	}
	if len(values) != r.Len() {
		return fmt.Errorf("结果表 %s 列 %q 长度 %d，应为 %d", r.Name, name, len(values), r.Len())
	}
	if r.AllFloat {
		if r.dense != nil {
			r.dense.SetCol(j, values)
		}
		return nil
	}
	copy(r.data[name], values)
	return nil
}

// SetText 写入文本列
func (r *Result) SetText(name string, values []string) error {
	if _, err := r.col(name); err != nil {
		return err
	}
	col, ok := r.text[name]
	if !ok || len(values) != len(col) {
		return fmt.Errorf("结果表 %s 列 %q 不是文本列或长度不符", r.Name, name)
	}
	copy(col, values)
	return nil
}

// Float64s 读取一列结果
func (r *Result) Float64s(name string) ([]float64, error) {
	j, err := r.col(name)
	if err != nil {
		return nil, err
	}
	if r.AllFloat {
		if r.dense == nil {
			return []float64{}, nil
		}
		return mat.Col(nil, j, r.dense), nil
	}
	col, ok := r.data[name]
	if !ok {
		return nil, fmt.Errorf("结果表 %s 列 %q 不是数值列", r.Name, name)
	}
	return append([]float64(nil), col...), nil
}

// Strings 读取文本列
func (r *Result) Strings(name string) ([]string, error) {
	if _, err := r.col(name); err != nil {
		return nil, err
	}
	col, ok := r.text[name]
	if !ok {
		return nil, fmt.Errorf("结果表 %s 列 %q 不是文本列", r.Name, name)
	}
	return append([]string(nil), col...), nil
}

// Dense 全浮点结果的矩阵视图
func (r *Result) Dense() *mat.Dense { return r.dense }

var nan = math.NaN()

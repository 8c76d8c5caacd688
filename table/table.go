package table

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Range 行区间 [From, To)，在求解准备阶段计算一次，求解期间保持不变
type Range struct {
	From int // 起始行（含）
	To   int // 结束行（不含）
}

// Len 区间行数
func (r Range) Len() int { return r.To - r.From }

// Contains 判断绝对行号是否在区间内
func (r Range) Contains(row int) bool { return row >= r.From && row < r.To }

// String 区间字符串
func (r Range) String() string { return fmt.Sprintf("[%d,%d)", r.From, r.To) }

// Table 内部定长列数值表，由求解器分配，元件按行区间原地读写
type Table struct {
	data *mat.Dense // 底层数据，行数为零时为nil
	rows int        // 行数
	cols int        // 列数
}

// New 创建指定行列数的数值表
func New(rows, cols int) *Table {
	t := &Table{rows: rows, cols: cols}
	if rows > 0 && cols > 0 {
		t.data = mat.NewDense(rows, cols, nil)
	}
	return t
}

// NewNodeTable 创建节点表，类型标记初始化为未知量
func NewNodeTable(rows int) *Table {
	t := New(rows, NodeCols)
	for i := range rows {
		t.Set(i, NodeType, TypeL)
		t.Set(i, NodeTypeT, TypeL)
		t.Set(i, NodeActive, 1)
	}
	return t
}

// NewBranchTable 创建支路表，压比初始化为1
func NewBranchTable(rows int) *Table {
	t := New(rows, BranchCols)
	for i := range rows {
		t.Set(i, BranchV, DefaultVInit)
		t.Set(i, BranchPressureRatio, DefaultPressureRatio)
		t.Set(i, BranchActive, 1)
	}
	return t
}

// Rows 行数
func (t *Table) Rows() int { return t.rows }

// Cols 列数
func (t *Table) Cols() int { return t.cols }

// Dense 返回底层矩阵，行数为零时为nil
func (t *Table) Dense() *mat.Dense { return t.data }

// At 读取单元值
func (t *Table) At(row, col int) float64 { return t.data.At(row, col) }

// Set 设置单元值
func (t *Table) Set(row, col int, v float64) { t.data.Set(row, col, v) }

// Inc 单元值累加
func (t *Table) Inc(row, col int, v float64) { t.data.Set(row, col, t.data.At(row, col)+v) }

// Index 读取行号类列（节点行、元件索引）
func (t *Table) Index(row, col int) int { return int(t.data.At(row, col)) }

// Col 复制整列数据
func (t *Table) Col(col int) []float64 {
	if t.data == nil {
		return []float64{}
	}
	return mat.Col(nil, col, t.data)
}

// Gather 按行号读取一列
func (t *Table) Gather(rows []int, col int) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = t.data.At(r, col)
	}
	return out
}

// Scatter 按行号写入一列
func (t *Table) Scatter(rows []int, col int, values []float64) {
	for i, r := range rows {
		t.data.Set(r, col, values[i])
	}
}

// Full 返回覆盖整张表的视图
func (t *Table) Full() View { return t.View(Range{From: 0, To: t.rows}) }

// View 返回指定行区间的视图；区间越界时 panic
func (t *Table) View(r Range) View {
	if r.From < 0 || r.To > t.rows || r.From > r.To {
		panic(fmt.Errorf("table: 行区间 %s 超出表范围 [0,%d)", r, t.rows))
	}
	return View{t: t, r: r}
}

// String 输出表内容，用于调试
func (t *Table) String() string {
	if t.data == nil {
		return "<empty>"
	}
	return fmt.Sprintf("%v", mat.Formatted(t.data, mat.Squeeze()))
}

// View 元件持有的行区间视图，行号相对区间起点，写入不能越出区间
type View struct {
	t *Table
	r Range
}

// Range 视图对应的绝对行区间
func (v View) Range() Range { return v.r }

// Len 视图行数
func (v View) Len() int { return v.r.Len() }

// Table 底层表
func (v View) Table() *Table { return v.t }

// Abs 相对行号转换为绝对行号
func (v View) Abs(i int) int {
	if i < 0 || i >= v.r.Len() {
		panic(fmt.Errorf("table: 行 %d 超出视图区间 %s", i, v.r))
	}
	return v.r.From + i
}

// At 读取相对行的单元值
func (v View) At(i, col int) float64 { return v.t.At(v.Abs(i), col) }

// Set 设置相对行的单元值
func (v View) Set(i, col int, x float64) { v.t.Set(v.Abs(i), col, x) }

// Col 复制视图内的一列
func (v View) Col(col int) []float64 {
	out := make([]float64, v.r.Len())
	for i := range out {
		out[i] = v.t.At(v.r.From+i, col)
	}
	return out
}

// Indices 读取视图内的行号类列
func (v View) Indices(col int) []int {
	out := make([]int, v.r.Len())
	for i := range out {
		out[i] = v.t.Index(v.r.From+i, col)
	}
	return out
}

// SetCol 写入视图内的一列，长度必须等于视图行数
func (v View) SetCol(col int, values []float64) {
	if len(values) != v.r.Len() {
		panic(fmt.Errorf("table: 列长度 %d 与视图行数 %d 不一致", len(values), v.r.Len()))
	}
	for i, x := range values {
		v.t.Set(v.r.From+i, col, x)
	}
}

// SetInts 写入视图内的行号类列
func (v View) SetInts(col int, values []int) {
	if len(values) != v.r.Len() {
		panic(fmt.Errorf("table: 列长度 %d 与视图行数 %d 不一致", len(values), v.r.Len()))
	}
	for i, x := range values {
		v.t.Set(v.r.From+i, col, float64(x))
	}
}

// SetBools 写入视图内的标记列
func (v View) SetBools(col int, values []bool) {
	if len(values) != v.r.Len() {
		panic(fmt.Errorf("table: 列长度 %d 与视图行数 %d 不一致", len(values), v.r.Len()))
	}
	for i, x := range values {
		f := 0.0
		if x {
			f = 1
		}
		v.t.Set(v.r.From+i, col, f)
	}
}

// Fill 将视图内一列设置为同一值
func (v View) Fill(col int, x float64) {
	for i := v.r.From; i < v.r.To; i++ {
		v.t.Set(i, col, x)
	}
}

// SetDiameter 设置支路内径并同步更新截面积 area = π·d²/4
func (v View) SetDiameter(d []float64) {
	v.SetCol(BranchD, d)
	area := make([]float64, len(d))
	for i, x := range d {
		area[i] = x * x * math.Pi / 4
	}
	v.SetCol(BranchArea, area)
}

// FillDiameter 将视图内所有支路设置为同一内径
func (v View) FillDiameter(d float64) {
	v.Fill(BranchD, d)
	v.Fill(BranchArea, d*d*math.Pi/4)
}

// String 视图调试输出
func (v View) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "rows %s\n", v.r)
	for i := v.r.From; i < v.r.To; i++ {
		for c := 0; c < v.t.cols; c++ {
			fmt.Fprintf(&sb, "%g ", v.t.At(i, c))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

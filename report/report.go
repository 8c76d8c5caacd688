// Package report 输出求解结果：文本表格与节点压力图。
package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"pipeflow/component"
	"pipeflow/component/base"
)

// ErrNoResult 没有可输出的结果
var ErrNoResult = errors.New("report: 没有可输出的结果")

// 图像尺寸
var (
	Width  = 6 * vg.Inch
	Height = 4 * vg.Inch
)

var titleStyle = lipgloss.NewStyle().Bold(true)

// Write 按元件类型顺序把结果表写为文本表格，未求解的类型跳过
func Write(w io.Writer, net *component.Network) error {
	n := 0
	for _, name := range net.Tables() {
		res, ok := net.Result(name)
		if !ok {
			continue
		}
		t, err := Table(res)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n", titleStyle.Render(name), t.String()); err != nil {
			return err
		}
		n++
	}
	if n == 0 {
		return fmt.Errorf("%w: 管网 %s 尚未求解", ErrNoResult, net.Name)
	}
	return nil
}

// Table 单个结果表的文本表格，首列为元件索引
func Table(res *component.Result) (*table.Table, error) {
	headers := append([]string{"index"}, component.Names(res.Columns)...)
	cells := make([][]string, res.Len())
	for i, idx := range res.Index {
		cells[i] = append(make([]string, 0, len(headers)), strconv.Itoa(idx))
	}
	for _, c := range res.Columns {
		if c.Kind == component.KindText {
			values, err := res.Strings(c.Name)
			if err != nil {
				return nil, err
			}
			for i, v := range values {
				cells[i] = append(cells[i], v)
			}
			continue
		}
		values, err := res.Float64s(c.Name)
		if err != nil {
			return nil, err
		}
		for i, v := range values {
			cells[i] = append(cells[i], strconv.FormatFloat(v, 'g', 6, 64))
		}
	}
	return table.New().Border(lipgloss.NormalBorder()).Headers(headers...).Rows(cells...), nil
}

// Pressure 节点压力柱状图，停运或断开的节点不绘制
func Pressure(net *component.Network) (*plot.Plot, error) {
	res, ok := net.Result(base.JunctionName)
	if !ok {
		return nil, fmt.Errorf("%w: 管网 %s 没有节点结果", ErrNoResult, net.Name)
	}
	p, err := res.Float64s("p_bar")
	if err != nil {
		return nil, err
	}
	var values plotter.Values
	var labels []string
	for i, v := range p {
		if math.IsNaN(v) {
			continue
		}
		values = append(values, v)
		labels = append(labels, strconv.Itoa(res.Index[i]))
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: 管网 %s 没有连通的节点", ErrNoResult, net.Name)
	}
	pl := plot.New()
	pl.Title.Text = net.Name
	pl.X.Label.Text = base.JunctionName
	pl.Y.Label.Text = "p [bar]"
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.Color = plotutil.Color(0)
	pl.Add(bars)
	pl.NominalX(labels...)
	return pl, nil
}

// SavePressure 保存节点压力图，格式由扩展名决定
func SavePressure(net *component.Network, path string) error {
	pl, err := Pressure(net)
	if err != nil {
		return err
	}
	return pl.Save(Width, Height, path)
}

// WritePressure 以指定格式（png、svg、pdf 等）写出节点压力图
func WritePressure(w io.Writer, net *component.Network, format string) error {
	pl, err := Pressure(net)
	if err != nil {
		return err
	}
	wt, err := pl.WriterTo(Width, Height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// Package base 内置元件：节点、管道、外部电网（压力边界）、汇/源、泵与压缩机。
package base

import (
	"math"

	"github.com/sirupsen/logrus"
)

// 元件表名
const (
	JunctionName   = "junction"
	PipeName       = "pipe"
	ExtGridName    = "ext_grid"
	SinkName       = "sink"
	SourceName     = "source"
	PumpName       = "pump"
	CompressorName = "compressor"
)

// PNorm 标准大气压（bar）
const PNorm = 1.01325

var log = logrus.WithField("component", "base")

var nan = math.NaN()

// ambientPressure 高程 h（m）处的环境压力（bar）
func ambientPressure(h float64) float64 {
	return PNorm * math.Pow(1-2.25577e-5*h, 5.25588)
}

func isFinite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

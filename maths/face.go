package maths

import "errors"

// Number 是一个约束，允许任何浮点类型
type Number interface {
	~float32 | ~float64
}

// 分组错误
var (
	ErrLength = errors.New("maths: 并行数组长度不一致") // 键、值、计数长度不同
	ErrKey    = errors.New("maths: 分组键不能为负数")   // 键必须为非负整数
)

// Strategy 分组求和的执行方式，两种方式结果逐位一致
type Strategy uint8

const (
	Baseline    Strategy = iota // 稳定排序后顺序扫描
	Accelerated                 // 按键直接寻址累加
)

// String 返回执行方式名称
func (s Strategy) String() string {
	switch s {
	case Baseline:
		return "baseline"
	case Accelerated:
		return "accelerated"
	}
	return "unknown"
}

// StrategyOf 根据配置开关选择执行方式
func StrategyOf(accelerated bool) Strategy {
	if accelerated {
		return Accelerated
	}
	return Baseline
}

// Group 分组求和结果
type Group[T Number] struct {
	Keys   []int // 升序排列的唯一键
	Sums   []T   // 每个键的求和值
	Counts []int // 每个键的出现次数（或合并后的计数）
}

// Len 分组数量
func (g Group[T]) Len() int { return len(g.Keys) }

// Mean 返回第i组的均值；计数为零时返回false，调用方应跳过写入
func (g Group[T]) Mean(i int) (T, bool) {
	if g.Counts[i] == 0 {
		return 0, false
	}
	return g.Sums[i] / T(g.Counts[i]), true
}

package maths

import (
	"fmt"
	"slices"
)

// denseLimit 直接寻址时桶数组相对输入长度的最大放大倍数，超出则退回基线实现
const denseLimit = 8

// SumByGroup 按键分组求和。
// 参数:
//
//	s: 执行方式。
//	keys: 分组键（非负，可无序、可重复）。
//	values: 与 keys 并行的数值。
//	counts: 可选的并行计数，为nil时每项计数为1，用于合并已部分聚合的数据。
//
// 返回:
//
//	Group: 升序唯一键、每组和、每组计数；空输入返回空结果。
func SumByGroup[T Number](s Strategy, keys []int, values []T, counts []int) (Group[T], error) {
	if len(keys) != len(values) || (counts != nil && len(counts) != len(keys)) {
		return Group[T]{}, fmt.Errorf("%w: keys=%d values=%d counts=%d", ErrLength, len(keys), len(values), len(counts))
	}
	maxKey := -1
	for i, k := range keys {
		if k < 0 {
			return Group[T]{}, fmt.Errorf("%w: 第 %d 项为 %d", ErrKey, i, k)
		}
		maxKey = max(maxKey, k)
	}
	if len(keys) == 0 {
		return Group[T]{Keys: []int{}, Sums: []T{}, Counts: []int{}}, nil
	}
	if s == Accelerated && maxKey < denseLimit*len(keys)+64 {
		return sumDense(keys, values, counts, maxKey), nil
	}
	return sumSorted(keys, values, counts), nil
}

// countAt 读取第i项的计数
func countAt(counts []int, i int) int {
	if counts == nil {
		return 1
	}
	return counts[i]
}

// sumSorted 稳定排序后扫描，组内按输入顺序累加
func sumSorted[T Number](keys []int, values []T, counts []int) Group[T] {
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return keys[a] - keys[b] })
	g := Group[T]{}
	for _, i := range order {
		n := len(g.Keys)
		if n == 0 || g.Keys[n-1] != keys[i] {
			g.Keys = append(g.Keys, keys[i])
			g.Sums = append(g.Sums, 0)
			g.Counts = append(g.Counts, 0)
			n++
		}
		g.Sums[n-1] += values[i]
		g.Counts[n-1] += countAt(counts, i)
	}
	return g
}

// sumDense 按键直接寻址累加，组内同样按输入顺序累加
func sumDense[T Number](keys []int, values []T, counts []int, maxKey int) Group[T] {
	sums := make([]T, maxKey+1)
	num := make([]int, maxKey+1)
	seen := make([]bool, maxKey+1)
	groups := 0
	for i, k := range keys {
		if !seen[k] {
			seen[k] = true
			groups++
		}
		sums[k] += values[i]
		num[k] += countAt(counts, i)
	}
	g := Group[T]{
		Keys:   make([]int, 0, groups),
		Sums:   make([]T, 0, groups),
		Counts: make([]int, 0, groups),
	}
	for k, ok := range seen {
		if ok {
			g.Keys = append(g.Keys, k)
			g.Sums = append(g.Sums, sums[k])
			g.Counts = append(g.Counts, num[k])
		}
	}
	return g
}

// Unique 返回升序唯一键、每项在唯一键中的位置以及每个键的出现次数
func Unique(keys []int) (uniq []int, inverse []int, counts []int) {
	uniq = slices.Clone(keys)
	slices.Sort(uniq)
	uniq = slices.Compact(uniq)
	counts = make([]int, len(uniq))
	inverse = make([]int, len(keys))
	for i, k := range keys {
		j, _ := slices.BinarySearch(uniq, k)
		inverse[i] = j
		counts[j]++
	}
	return uniq, inverse, counts
}

package solver

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// system 牛顿迭代的线性化方程 J·dx = -F
type system struct {
	J *mat.Dense // 雅可比矩阵
	F []float64  // 残差
}

func newSystem(n int) *system {
	return &system{J: mat.NewDense(n, n, nil), F: make([]float64, n)}
}

// reset 清零矩阵与残差
func (s *system) reset() {
	s.J.Zero()
	for i := range s.F {
		s.F[i] = 0
	}
}

// stamp 在 J 的 (i,j) 位置叠加值
func (s *system) stamp(i, j int, v float64) {
	if i >= 0 && j >= 0 && !math.IsNaN(v) && v != 0 {
		s.J.Set(i, j, s.J.At(i, j)+v)
	}
}

// stampResidual 在残差的 i 位置叠加值
func (s *system) stampResidual(i int, v float64) {
	if i >= 0 && !math.IsNaN(v) {
		s.F[i] += v
	}
}

// stampFixed 固定未知量：J 对角为 1，残差为 0
func (s *system) stampFixed(i int) {
	s.J.Set(i, i, 1)
}

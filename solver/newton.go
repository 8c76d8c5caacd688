package solver

import (
	"errors"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"pipeflow/component"
	"pipeflow/table"
)

// minDerivative 支路方程对流速导数的最小绝对值，无摩擦的有源支路依赖该下限保持矩阵非奇异
const minDerivative = 1e-8

// newton 牛顿迭代求解节点压力与支路流速，结果原地写回内部表
func (s *Solver) newton(ctx *component.Context, report *Report) error {
	net := ctx.Net
	nodes, branches := net.Pit.Node, net.Pit.Branch
	n, m := nodes.Rows(), branches.Rows()
	if n+m == 0 {
		report.Converged = true
		return nil
	}
	// 未知量：节点压力在前，支路流速在后
	x := make([]float64, n+m)
	for i := range n {
		x[i] = nodes.At(i, table.NodePInit)
	}
	for b := range m {
		if ctx.Conn.Branch(b) {
			x[n+b] = branches.At(b, table.BranchV)
		}
	}
	sys := newSystem(n + m)
	dx := mat.NewVecDense(n+m, nil)
	opts := s.Options
	for iter := 1; iter <= opts.MaxIter; iter++ {
		report.Iterations = iter
		// 写回当前估计值，供有源支路调整系数
		writeBack(ctx, x)
		if err := ctx.CallMark(component.MarkAdaption); err != nil {
			return err
		}
		// 线性化
		assemble(ctx, sys, x)
		report.Residual = floats.Norm(sys.F, math.Inf(1))
		// 求解 J·dx = -F
		rhs := make([]float64, n+m)
		floats.ScaleTo(rhs, -1, sys.F)
		var lu mat.LU
		lu.Factorize(sys.J)
		if err := lu.SolveVecTo(dx, false, mat.NewVecDense(n+m, rhs)); err != nil {
			var cond mat.Condition
			if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
				return errorf(ErrSingular, "第 %d 次迭代: %v", iter, err)
			}
			s.Log.WithFields(logrus.Fields{"iteration": iter, "condition": float64(cond)}).Warn("雅可比矩阵病态")
		}
		step := dx.RawVector().Data
		if floats.HasNaN(step) {
			return errorf(ErrSingular, "第 %d 次迭代出现无效步长", iter)
		}
		// 阻尼更新
		floats.AddScaled(x, opts.Alpha, step)
		dp := floats.Norm(step[:n], math.Inf(1))
		dv := 0.0
		if m > 0 {
			dv = floats.Norm(step[n:], math.Inf(1))
		}
		s.Log.WithFields(logrus.Fields{
			"iteration": iter,
			"residual":  report.Residual,
			"dp":        dp,
			"dv":        dv,
		}).Debug("牛顿迭代")
		if dp < opts.TolP && dv < opts.TolV && report.Residual < opts.TolRes {
			writeBack(ctx, x)
			report.Converged = true
			return nil
		}
	}
	writeBack(ctx, x)
	return errorf(ErrNotConverged, "管网 %s 迭代 %d 次后残差 %g", net.Name, opts.MaxIter, report.Residual)
}

// writeBack 将未知量写回内部表，并更新支路质量流量
func writeBack(ctx *component.Context, x []float64) {
	nodes, branches := ctx.Net.Pit.Node, ctx.Net.Pit.Branch
	n := nodes.Rows()
	for i := range n {
		if ctx.Conn.Node(i) {
			nodes.Set(i, table.NodePInit, x[i])
		}
	}
	for b := range branches.Rows() {
		if !ctx.Conn.Branch(b) {
			branches.Set(b, table.BranchMdot, 0)
			continue
		}
		v := x[n+b]
		branches.Set(b, table.BranchV, v)
		branches.Set(b, table.BranchMdot, branches.At(b, table.BranchRho)*branches.At(b, table.BranchArea)*v)
	}
}

// assemble 组装节点质量守恒与支路压降方程
func assemble(ctx *component.Context, sys *system, x []float64) {
	sys.reset()
	nodes, branches := ctx.Net.Pit.Node, ctx.Net.Pit.Branch
	n := nodes.Rows()
	// 节点方程：压力固定或断开的节点保持不变
	unknown := make([]bool, n)
	for i := range n {
		unknown[i] = ctx.Conn.Node(i) && nodes.At(i, table.NodeActive) != 0 && nodes.At(i, table.NodeType) != table.TypeP
		if !unknown[i] {
			sys.stampFixed(i)
			continue
		}
		sys.stampResidual(i, -nodes.At(i, table.NodeLoad))
	}
	// 支路方程
	for b := range branches.Rows() {
		k := n + b
		if !ctx.Conn.Branch(b) {
			sys.stampFixed(k)
			continue
		}
		f, t := branches.Index(b, table.BranchFrom), branches.Index(b, table.BranchTo)
		v := x[k]
		rho, area := branches.At(b, table.BranchRho), branches.At(b, table.BranchArea)
		// 流入 to 节点，流出 from 节点
		if unknown[t] {
			sys.stampResidual(t, rho*area*v)
			sys.stamp(t, k, rho*area)
		}
		if unknown[f] {
			sys.stampResidual(f, -rho*area*v)
			sys.stamp(f, k, -rho*area)
		}
		// p_from - p_to + PL + ρg(h_from - h_to) - ζ·ρ·v|v|/2 = 0（bar）
		zeta := branches.At(b, table.BranchLC)
		if d := branches.At(b, table.BranchD); d > 0 {
			zeta += branches.At(b, table.BranchLambda) * branches.At(b, table.BranchLength) / d
		}
		hydro := rho * gravity * (nodes.At(f, table.NodeHeight) - nodes.At(t, table.NodeHeight)) / 1e5
		friction := zeta * rho * v * math.Abs(v) / 2 / 1e5
		sys.stampResidual(k, x[f]-x[t]+branches.At(b, table.BranchPL)+hydro-friction)
		sys.stamp(k, f, 1)
		sys.stamp(k, t, -1)
		sys.stamp(k, k, -max(zeta*rho*math.Abs(v)/1e5, minDerivative))
	}
}

// gravity 重力加速度（m/s²）
const gravity = 9.81

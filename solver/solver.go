// Package solver 稳态管网求解：准备内部表、牛顿迭代、结果汇总。
package solver

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"pipeflow/component"
	"pipeflow/config"
	"pipeflow/table"
)

// 求解错误
var (
	ErrNotConverged = errors.New("solver: 牛顿迭代未收敛")
	ErrSingular     = errors.New("solver: 雅可比矩阵奇异")
)

// Report 一次求解的统计
type Report struct {
	Iterations int     // 牛顿迭代次数
	Residual   float64 // 最后一次迭代的残差无穷范数
	Nodes      int     // 节点行数
	Branches   int     // 支路行数
	Converged  bool    // 是否收敛
}

// Solver 求解器
type Solver struct {
	Options config.Options
	Metrics *Metrics // 可为nil
	Log     *logrus.Entry
}

// New 创建求解器，日志级别取自参数
func New(opts config.Options) *Solver {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(opts.Level())
	return &Solver{Options: opts, Log: logger.WithField("component", "solver")}
}

// Setup 校验配置并重新分配内部表。
// 每次调用都分配新的节点/支路表与查找表，出现次数从 0 开始累加。
func Setup(net *component.Network) (*component.Context, error) {
	if err := net.Fluid.Validate(); err != nil {
		return nil, err
	}
	net.Lookups = table.NewLookups()
	net.Pit = component.Pit{}
	ctx := component.NewContext(net)
	for _, mark := range []component.Mark{component.MarkValidate, component.MarkNodeEntries, component.MarkBranchEntries} {
		if err := ctx.CallMark(mark); err != nil {
			return nil, err
		}
	}
	return ctx, nil
}

// Run 准备、迭代并汇总结果
func (s *Solver) Run(net *component.Network) (Report, error) {
	report, err := s.run(net)
	if s.Metrics != nil {
		s.Metrics.observe(report, err)
	}
	return report, err
}

func (s *Solver) run(net *component.Network) (Report, error) {
	var report Report
	if err := s.Options.Validate(); err != nil {
		return report, err
	}
	net.Options = s.Options
	// 准备阶段：配置错误在迭代开始前返回
	ctx, err := Setup(net)
	if err != nil {
		return report, err
	}
	nodes, branches := net.Pit.Node, net.Pit.Branch
	report.Nodes, report.Branches = nodes.Rows(), branches.Rows()
	s.Log.WithFields(logrus.Fields{
		"network":  net.Name,
		"nodes":    report.Nodes,
		"branches": report.Branches,
	}).Debug("内部表准备完成")
	// 连通性
	conn, err := connectivity(net, s.Options.CheckConnectivity)
	if err != nil {
		return report, err
	}
	ctx.Conn = conn
	// 牛顿迭代
	if err := s.newton(ctx, &report); err != nil {
		return report, err
	}
	// 汇总结果
	ctx.Branches = branchResults(net, conn)
	if err := ctx.CallMark(component.MarkExtract); err != nil {
		return report, err
	}
	s.Log.WithFields(logrus.Fields{
		"network":    net.Name,
		"iterations": report.Iterations,
		"residual":   report.Residual,
	}).Info("求解收敛")
	return report, nil
}

// Run 使用给定参数求解管网
func Run(net *component.Network, opts config.Options) (Report, error) {
	return New(opts).Run(net)
}

// errorf 包装求解错误
func errorf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}

package component

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"pipeflow/table"
)

// Mark 用于区分钩子的标记
type Mark uint8

// 钩子类型
const (
	MarkValidate      Mark = iota // 校验配置表
	MarkNodeEntries               // 写入节点行
	MarkBranchEntries             // 写入支路行
	MarkAdaption                  // 计算导数前调整支路系数
	MarkExtract                   // 汇总结果
)

// String 钩子名称
func (m Mark) String() string {
	switch m {
	case MarkValidate:
		return "validate"
	case MarkNodeEntries:
		return "node_entries"
	case MarkBranchEntries:
		return "branch_entries"
	case MarkAdaption:
		return "adaption"
	case MarkExtract:
		return "extract"
	}
	return fmt.Sprintf("mark(%d)", uint8(m))
}

// Context 一次求解的上下文
type Context struct {
	Net        *Network       // 管网
	Components []Component    // 参与求解的元件（按类型标识排序）
	Branches   *BranchResults // 收敛后的支路结果
	Conn       Connectivity   // 连通性
}

// NewContext 为管网中存在的元件创建上下文
func NewContext(net *Network) *Context {
	return &Context{Net: net, Components: Present(net)}
}

// CallMark 按元件顺序统一调用钩子，遇到错误立即返回
func (con *Context) CallMark(mark Mark) error {
	var err error
	switch mark {
	case MarkValidate:
		for _, c := range con.Components {
			t, _ := con.Net.Table(c.TableName())
			if err = t.Validate(c.ComponentInput()); err != nil {
				return err
			}
		}
	case MarkNodeEntries:
		err = con.nodeEntries()
	case MarkBranchEntries:
		err = con.branchEntries()
	case MarkAdaption:
		for _, c := range con.Components {
			a, ok := c.(Adapter)
			if !ok {
				continue
			}
			r := con.Net.Lookups.BranchRanges[c.TableName()]
			if r.Len() == 0 {
				continue
			}
			if err = a.AdaptionBeforeDerivatives(con.Net, con.Net.Pit.Branch.View(r), con.Net.Pit.Node, con.Net.Options); err != nil {
				return fmt.Errorf("%s 系数调整失败: %w", c.TableName(), err)
			}
		}
	case MarkExtract:
		for _, c := range con.Components {
			if con.Net.Len(c.TableName()) == 0 {
				continue
			}
			con.Net.NewResult(c)
			if err = c.ExtractResults(con.Net, con.Net.Options, con.Branches, con.Conn); err != nil {
				return fmt.Errorf("%s 结果汇总失败: %w", c.TableName(), err)
			}
		}
	default:
		logrus.Fatalf("未知 CallMark 操作: %d", mark)
	}
	return err
}

// nodeEntries 先由节点元件分配节点行，再由挂接元件写入边界条件
func (con *Context) nodeEntries() error {
	ranges := map[string]table.Range{}
	rows := 0
	for _, c := range con.Components {
		if nc, ok := c.(NodeComponent); ok {
			n := nc.NodeCount(con.Net)
			ranges[c.TableName()] = table.Range{From: rows, To: rows + n}
			rows += n
		}
	}
	con.Net.Pit.Node = table.NewNodeTable(rows)
	for _, c := range con.Components {
		if nc, ok := c.(NodeComponent); ok {
			r := ranges[c.TableName()]
			con.Net.Lookups.NodeRanges[c.TableName()] = r
			if err := nc.CreateNodeEntries(con.Net, con.Net.Pit.Node.View(r)); err != nil {
				return fmt.Errorf("%s 节点写入失败: %w", c.TableName(), err)
			}
		}
	}
	for _, c := range con.Components {
		if ne, ok := c.(NodeElementComponent); ok {
			if err := ne.CreateNodeElementEntries(con.Net, con.Net.Pit.Node); err != nil {
				return fmt.Errorf("%s 节点边界写入失败: %w", c.TableName(), err)
			}
		}
	}
	return nil
}

// branchEntries 分配支路行并写入
func (con *Context) branchEntries() error {
	ranges := map[string]table.Range{}
	rows := 0
	for _, c := range con.Components {
		if bc, ok := c.(BranchComponent); ok {
			n := bc.BranchCount(con.Net)
			ranges[c.TableName()] = table.Range{From: rows, To: rows + n}
			rows += n
		}
	}
	con.Net.Pit.Branch = table.NewBranchTable(rows)
	for _, c := range con.Components {
		if bc, ok := c.(BranchComponent); ok {
			r := ranges[c.TableName()]
			con.Net.Lookups.BranchRanges[c.TableName()] = r
			if err := bc.CreateBranchEntries(con.Net, con.Net.Pit.Branch.View(r)); err != nil {
				return fmt.Errorf("%s 支路写入失败: %w", c.TableName(), err)
			}
		}
	}
	return nil
}

package table

// 节点表列定义。该列顺序是所有元件与求解器之间的约定，新增列只能追加在末尾。
const (
	NodeElementIdx  = iota // 元件索引（junction 索引）
	NodePInit              // 压力（表压，bar）
	NodeTInit              // 温度（K）
	NodePAmb               // 环境压力（bar）
	NodeLoad               // 节点负荷（kg/s，正值为取用）
	NodeType               // 压力类型标记
	NodeTypeT              // 温度类型标记
	NodePOccurrence        // 压力边界出现次数
	NodeTOccurrence        // 温度边界出现次数
	NodeHeight             // 高程（m）
	NodeActive             // 是否参与计算
	NodeCols               // 节点表列数
)

// 支路表列定义。该列顺序是所有元件与求解器之间的约定，新增列只能追加在末尾。
const (
	BranchElementIdx    = iota // 元件索引
	BranchFrom                 // 起始节点行
	BranchTo                   // 终止节点行
	BranchV                    // 流速（m/s）
	BranchD                    // 内径（m）
	BranchArea                 // 截面积（m²）
	BranchLC                   // 局部损失系数
	BranchPL                   // 压力提升（bar）
	BranchPressureRatio        // 压比
	BranchLength               // 长度（m）
	BranchLambda               // 摩擦系数
	BranchRho                  // 密度（kg/m³）
	BranchMdot                 // 质量流量（kg/s，沿 from→to 为正）
	BranchActive               // 是否参与计算
	BranchCols                 // 支路表列数
)

// 节点类型标记值
const (
	TypeP float64 = 1  // 压力由边界条件给定
	TypeL float64 = 2  // 压力（温度）为求解未知量
	TypeT float64 = 10 // 温度由边界条件给定
)

// 默认值
const (
	DefaultVInit         = 0.1 // 初始流速（m/s）
	DefaultPressureRatio = 1.0 // 无源支路压比
)

var nodeNames = [NodeCols]string{
	"element_idx", "p_init", "t_init", "p_amb", "load", "node_type", "node_type_t",
	"p_occurrence", "t_occurrence", "height", "active",
}

var branchNames = [BranchCols]string{
	"element_idx", "from_node", "to_node", "v_init", "d", "area", "loss_coefficient",
	"pl", "pressure_ratio", "length", "lambda", "rho", "mdot", "active",
}

// NodeColumnName 节点列名称，用于调试输出
func NodeColumnName(col int) string {
	if col >= 0 && col < NodeCols {
		return nodeNames[col]
	}
	return "unknown"
}

// BranchColumnName 支路列名称，用于调试输出
func BranchColumnName(col int) string {
	if col >= 0 && col < BranchCols {
		return branchNames[col]
	}
	return "unknown"
}

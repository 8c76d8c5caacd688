package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"pipeflow"
	"pipeflow/component"
	"pipeflow/config"
	"pipeflow/load"
	"pipeflow/report"
)

func main() {
	if err := newRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRoot 命令行入口
func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "pipeflow",
		Short:         "稳态管网水力计算",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRun(), newComponents())
	return root
}

func newRun() *cobra.Command {
	var cfgPath, plotPath string
	cmd := &cobra.Command{
		Use:   "run <network>",
		Short: "读取管网描述文件并求解",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			net, err := load.Load(args[0])
			if err != nil {
				return err
			}
			r, err := pipeflow.Run(net, opts)
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{
				"network":    net.Name,
				"iterations": r.Iterations,
			}).Debug("求解完成")
			if err := report.Write(cmd.OutOrStdout(), net); err != nil {
				return err
			}
			if plotPath != "" {
				return report.SavePressure(net, plotPath)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "求解参数文件（toml/yaml/json）")
	cmd.Flags().StringVarP(&plotPath, "plot", "p", "", "节点压力图输出路径（png/svg/pdf）")
	return cmd
}

func newComponents() *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "列出已注册的元件类型及其配置列",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for _, c := range component.Components() {
				cols := make([]string, 0, len(c.ComponentInput()))
				for _, col := range c.ComponentInput() {
					s := col.Name + ":" + col.Kind.String()
					if col.Required() {
						s += "*"
					}
					cols = append(cols, s)
				}
				if _, err := fmt.Fprintf(w, "%-12s %s\n", c.TableName(), strings.Join(cols, " ")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

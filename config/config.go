package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"pipeflow/maths"
)

// 默认求解参数
var (
	MaxIter           = 100    // 最大迭代次数
	TolP              = 1e-5   // 压力收敛容差（bar）
	TolV              = 1e-5   // 流速收敛容差（m/s）
	TolRes            = 1e-5   // 方程残差容差
	Alpha             = 1.0    // 阻尼系数
	Accelerated       = true   // 分组求和使用直接寻址
	CheckConnectivity = true   // 求解前检查连通性
	LogLevel          = "info" // 日志级别
)

// EnvPrefix 环境变量前缀
const EnvPrefix = "PIPEFLOW"

// ErrOptions 求解参数非法
var ErrOptions = errors.New("config: 求解参数非法")

// Options 求解参数，一次求解内只读
type Options struct {
	MaxIter           int     `mapstructure:"max_iter" validate:"gt=0"`
	TolP              float64 `mapstructure:"tol_p" validate:"gt=0"`
	TolV              float64 `mapstructure:"tol_v" validate:"gt=0"`
	TolRes            float64 `mapstructure:"tol_res" validate:"gt=0"`
	Alpha             float64 `mapstructure:"alpha" validate:"gt=0,lte=1"`
	Accelerated       bool    `mapstructure:"accelerated"`
	CheckConnectivity bool    `mapstructure:"check_connectivity"`
	LogLevel          string  `mapstructure:"log_level" validate:"oneof=panic fatal error warn warning info debug trace"`
}

var validate = validator.New()

// Default 返回默认参数
func Default() Options {
	return Options{
		MaxIter:           MaxIter,
		TolP:              TolP,
		TolV:              TolV,
		TolRes:            TolRes,
		Alpha:             Alpha,
		Accelerated:       Accelerated,
		CheckConnectivity: CheckConnectivity,
		LogLevel:          LogLevel,
	}
}

// setDefaults 将默认参数写入viper
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("max_iter", d.MaxIter)
	v.SetDefault("tol_p", d.TolP)
	v.SetDefault("tol_v", d.TolV)
	v.SetDefault("tol_res", d.TolRes)
	v.SetDefault("alpha", d.Alpha)
	v.SetDefault("accelerated", d.Accelerated)
	v.SetDefault("check_connectivity", d.CheckConnectivity)
	v.SetDefault("log_level", d.LogLevel)
}

// Load 从配置文件（toml/yaml/json）和 PIPEFLOW_ 环境变量读取求解参数。
// path 为空时只使用默认值与环境变量。
func Load(path string) (Options, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Options{}, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
		}
	}
	var opts Options
	if err := v.Unmarshal(&opts); err != nil {
		return Options{}, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Validate 校验参数
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			e := verrs[0]
			return fmt.Errorf("%w: %s 不满足 %s（值 %v）", ErrOptions, e.Field(), e.Tag(), e.Value())
		}
		return fmt.Errorf("%w: %v", ErrOptions, err)
	}
	return nil
}

// Level 解析日志级别，非法时返回 Info
func (o Options) Level() logrus.Level {
	level, err := logrus.ParseLevel(o.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// Strategy 分组求和执行方式
func (o Options) Strategy() maths.Strategy { return maths.StrategyOf(o.Accelerated) }

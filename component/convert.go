package component

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// convert 将任意基础类型转换为列类型对应的值
func convert(kind Kind, v any) (any, error) {
	switch kind {
	case KindText:
		return toText(v)
	case KindUint:
		return toUint(v)
	case KindFloat:
		return toFloat(v)
	case KindBool:
		return toBool(v)
	}
	return nil, fmt.Errorf("未知列类型 %s", kind)
}

func toText(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case fmt.Stringer:
		return val.String(), nil
	}
	return "", fmt.Errorf("%T 不能作为文本", v)
}

func toUint(v any) (uint, error) {
	var i int64
	switch val := v.(type) {
	case uint:
		return val, nil
	case uint8:
		return uint(val), nil
	case uint16:
		return uint(val), nil
	case uint32:
		return uint(val), nil
	case uint64:
		return uint(val), nil
	case int:
		i = int64(val)
	case int8:
		i = int64(val)
	case int16:
		i = int64(val)
	case int32:
		i = int64(val)
	case int64:
		i = val
	case float32:
		return toUint(float64(val))
	case float64:
		if val != math.Trunc(val) || math.IsInf(val, 0) || math.IsNaN(val) {
			return 0, fmt.Errorf("%v 不是整数", val)
		}
		i = int64(val)
	case string:
		u, err := strconv.ParseUint(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return 0, err
		}
		return uint(u), nil
	default:
		return 0, fmt.Errorf("%T 不能作为整数", v)
	}
	if i < 0 {
		return 0, fmt.Errorf("%d 为负数", i)
	}
	return uint(i), nil
}

func toFloat(v any) (float64, error) {
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int8:
		return float64(val), nil
	case int16:
		return float64(val), nil
	case int32:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case uint:
		return float64(val), nil
	case uint8:
		return float64(val), nil
	case uint16:
		return float64(val), nil
	case uint32:
		return float64(val), nil
	case uint64:
		return float64(val), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(val), 64)
	}
	return 0, fmt.Errorf("%T 不能作为浮点数", v)
}

func toBool(v any) (bool, error) {
	switch val := v.(type) {
	case bool:
		return val, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(val))
	}
	return false, fmt.Errorf("%T 不能作为布尔值", v)
}

package utils

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// SplitConfigString splits "name,key=value,flag" into a map. The first
// part without '=' is kept under the empty key; later bare parts map to "".
func SplitConfigString(config string) map[string]string {
	params := make(map[string]string)
	for i, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		subParts := strings.SplitN(part, "=", 2)
		switch {
		case len(subParts) == 2:
			params[subParts[0]] = subParts[1]
		case i == 0:
			params[""] = subParts[0]
		default:
			params[subParts[0]] = ""
		}
	}
	return params
}

// PopParamOr parses and removes params[key], or returns defaultValue when
// the key is absent. A bool key without a value reads as true.
func PopParamOr[T interface{ bool | int | float64 }](params map[string]string, key string, defaultValue T) (T, error) {
	value, exists := params[key]
	if !exists {
		return defaultValue, nil
	}
	delete(params, key)

	var parsed any
	var err error
	switch any(defaultValue).(type) {
	case int:
		parsed, err = strconv.Atoi(value)
	case float64:
		parsed, err = strconv.ParseFloat(value, 64)
	case bool:
		if value == "" {
			parsed = true
		} else {
			parsed, err = strconv.ParseBool(value)
		}
	}
	if err != nil {
		return defaultValue, errors.Wrapf(err, "failed to parse configuration %s=%q", key, value)
	}
	return parsed.(T), nil
}

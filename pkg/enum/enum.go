package enum

import (
	"fmt"
	"reflect"
)

var enumManager = map[reflect.Type]any{}

type enum[T ~string] struct {
	toEnum map[string]T
}

// New registers value as a member of the enum of its type.
func New[T ~string](value T) T {
	t := reflect.TypeOf(value)
	if _, ok := enumManager[t]; !ok {
		enumManager[t] = enum[T]{toEnum: make(map[string]T)}
	}

	enumManager[t].(enum[T]).toEnum[string(value)] = value
	return value
}

func ToEnum[T ~string](s string) (T, error) {
	var defaultT T
	e, ok := enumManager[reflect.TypeOf(defaultT)]
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	t, ok := e.(enum[T]).toEnum[s]
	if !ok {
		return defaultT, fmt.Errorf("not found value %s in enum %T", s, defaultT)
	}

	return t, nil
}

// Values returns every registered member of the enum T.
func Values[T ~string]() []T {
	var defaultT T
	e, ok := enumManager[reflect.TypeOf(defaultT)]
	if !ok {
		return nil
	}

	result := make([]T, 0, len(e.(enum[T]).toEnum))
	for _, v := range e.(enum[T]).toEnum {
		result = append(result, v)
	}

	return result
}

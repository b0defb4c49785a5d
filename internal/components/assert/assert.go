// Package assert checks constructor preconditions, a failed check is a programming error
// and panics.
package assert

import (
	"fmt"
	"reflect"
)

// NotNil panics when a required dependency is nil, including a nil pointer stored in an
// interface.
func NotNil(name string, value any) {
	if value == nil {
		panic(fmt.Sprintf("expected %s to be not nil", name))
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if v.IsNil() {
			panic(fmt.Sprintf("expected %s to be not nil, got a nil %s", name, v.Type()))
		}
	}
}

func NotEmpty(name, value string) {
	if value == "" {
		panic(fmt.Sprintf("expected %s to be non-empty", name))
	}
}

package domain

import (
	"reflect"
	"strings"
)

// EventTypeName devuelve el nombre del tipo T sin el sufijo "Event", o def si no tiene nombre.
func EventTypeName[T any](def string) string {
	name := typeName(reflect.TypeFor[T]())
	if name == "" {
		return def
	}
	if trimmed := strings.TrimSuffix(name, "Event"); trimmed != "" {
		return trimmed
	}
	return name
}

// AggregateTypeName devuelve el nombre simple del tipo T, o "" si no tiene.
func AggregateTypeName[T any]() string {
	return typeName(reflect.TypeFor[T]())
}

// TypeNameOf es la versión en tiempo de ejecución para valores concretos.
func TypeNameOf(v any) string {
	if v == nil {
		return ""
	}
	return typeName(reflect.TypeOf(v))
}

func typeName(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return t.Name()
}

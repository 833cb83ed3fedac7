// Package mask flattens structs into ordered maps for logging, hiding the
// values of fields tagged with `mask:"true"`.
package mask

import (
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	tagName = "mask"

	// Masked replaces the value of every non-zero masked field.
	Masked = "***masked***"
)

// StructToOrdMap returns the fields of v as dotted keys ("postgres.password")
// in declaration order. Names come from the yaml tag, then the json tag, then
// the field name. Fields tagged "-" are skipped.
func StructToOrdMap(v any) *orderedmap.OrderedMap[string, any] {
	om := orderedmap.New[string, any]()
	if v == nil {
		return om
	}
	flatten(om, reflect.ValueOf(v), "")
	return om
}

func flatten(om *orderedmap.OrderedMap[string, any], val reflect.Value, prefix string) {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			om.Set(prefix, nil)
			return
		}
		val = val.Elem()
	}

	if val.Kind() != reflect.Struct {
		om.Set(prefix, val.Interface())
		return
	}

	typ := val.Type()
	for i := range val.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		name, skip := fieldName(field)
		if skip {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		fv := val.Field(i)
		switch {
		case strings.EqualFold(field.Tag.Get(tagName), "true"):
			om.Set(name, maskValue(fv))
		case isStruct(fv):
			flatten(om, fv, name)
		default:
			om.Set(name, fv.Interface())
		}
	}
}

func isStruct(val reflect.Value) bool {
	if val.Kind() == reflect.Pointer {
		return !val.IsNil() && val.Elem().Kind() == reflect.Struct
	}
	return val.Kind() == reflect.Struct
}

// maskValue keeps zero values visible so a missing secret is still noticeable.
func maskValue(val reflect.Value) any {
	if val.IsZero() {
		return val.Interface()
	}
	return Masked
}

func fieldName(field reflect.StructField) (string, bool) {
	for _, tag := range []string{"yaml", "json"} {
		v, ok := field.Tag.Lookup(tag)
		if !ok {
			continue
		}
		v, _, _ = strings.Cut(v, ",")
		if v == "-" {
			return "", true
		}
		if v != "" {
			return v, false
		}
	}
	return field.Name, false
}

package debugui

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/plus3/lumen/ecs"
)

var baseType = reflect.TypeFor[ecs.Base]()

type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
	IsStruct  bool
	IsSlice   bool
	IsMap     bool
}

// FieldValue is a formatted snapshot of one exported behavior field.
type FieldValue struct {
	Name  string
	Kind  reflect.Kind
	Value string
}

type ReflectionCache struct {
	mu         sync.RWMutex
	fieldCache map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fieldCache: make(map[reflect.Type][]FieldInfo),
	}
}

// GetFields lists the exported fields of struct type t. The embedded
// behavior Base is skipped since it carries no exported state.
func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fieldCache[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.fieldCache[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() || (field.Anonymous && field.Type == baseType) {
				continue
			}

			fieldType := field.Type
			isPointer := fieldType.Kind() == reflect.Ptr
			if isPointer {
				fieldType = fieldType.Elem()
			}

			fields = append(fields, FieldInfo{
				Name:      field.Name,
				Type:      fieldType,
				Index:     i,
				IsPointer: isPointer,
				IsStruct:  fieldType.Kind() == reflect.Struct,
				IsSlice:   fieldType.Kind() == reflect.Slice,
				IsMap:     fieldType.Kind() == reflect.Map,
			})
		}
	}

	rc.fieldCache[t] = fields
	return fields
}

var globalReflectionCache = NewReflectionCache()

// Describe formats the exported fields of a behavior in declaration order.
func Describe(b ecs.Behavior) []FieldValue {
	val := reflect.ValueOf(b)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil
		}
		val = val.Elem()
	}

	fields := globalReflectionCache.GetFields(val.Type())
	out := make([]FieldValue, 0, len(fields))
	for _, field := range fields {
		fv := val.Field(field.Index)
		out = append(out, FieldValue{
			Name:  field.Name,
			Kind:  field.Type.Kind(),
			Value: formatValue(fv, field),
		})
	}
	return out
}

func formatValue(val reflect.Value, field FieldInfo) string {
	if field.IsPointer {
		if val.IsNil() {
			return "nil"
		}
		val = val.Elem()
	}
	switch val.Kind() {
	case reflect.Slice:
		return fmt.Sprintf("[%d items]", val.Len())
	case reflect.Map:
		return fmt.Sprintf("map[%d items]", val.Len())
	case reflect.Func:
		if val.IsNil() {
			return "nil"
		}
		return "func"
	case reflect.Float32, reflect.Float64:
		return fmt.Sprintf("%.3f", val.Float())
	}
	return fmt.Sprintf("%v", val.Interface())
}

package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/lumen/ecs"
)

type toggler interface {
	Enabled() bool
	SetEnabled(bool)
}

// BehaviorInspector shows and edits the exported fields of every behavior
// attached to the selected entity.
type BehaviorInspector struct{}

func NewBehaviorInspector() *BehaviorInspector {
	return &BehaviorInspector{}
}

func (bi *BehaviorInspector) Render(scene *ecs.Scene, selected ecs.EntityId) {
	if !imgui.BeginV("Behavior Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if selected.IsZero() {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	entity, ok := scene.Entity(selected)
	if !ok {
		imgui.Text(fmt.Sprintf("Entity %d not found", selected.Index()))
		imgui.End()
		return
	}

	imgui.InputTextWithHint("Name", "", &entity.Name, imgui.InputTextFlagsNone, nil)
	imgui.InputTextWithHint("Tag", "", &entity.Tag, imgui.InputTextFlagsNone, nil)
	imgui.Checkbox("Active", &entity.Active)
	imgui.Separator()

	i := 0
	for b := range entity.Behaviors() {
		val := reflect.ValueOf(b).Elem()
		if imgui.TreeNodeStr(fmt.Sprintf("%s##%d", val.Type().Name(), i)) {
			if t, ok := b.(toggler); ok {
				enabled := t.Enabled()
				if imgui.Checkbox(fmt.Sprintf("Enabled##%d", i), &enabled) {
					t.SetEnabled(enabled)
				}
			}
			for _, field := range globalReflectionCache.GetFields(val.Type()) {
				fieldVal := val.Field(field.Index)
				if field.IsPointer && !fieldVal.IsNil() {
					fieldVal = fieldVal.Elem()
				}
				bi.renderField(field.Name, fieldVal, field)
			}
			imgui.TreePop()
		}
		i++
	}

	imgui.End()
}

func (bi *BehaviorInspector) renderField(name string, val reflect.Value, field FieldInfo) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	if field.IsPointer && val.Kind() == reflect.Ptr && val.IsNil() {
		imgui.Text(fmt.Sprintf("%s: nil", name))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		bi.label(name, 150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		bi.label(name, 150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 && val.CanSet() {
			val.SetUint(uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		bi.label(name, 150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.String:
		v := val.String()
		bi.label(name, 200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nf := range globalReflectionCache.GetFields(val.Type()) {
				nested := val.Field(nf.Index)
				if nf.IsPointer && !nested.IsNil() {
					nested = nested.Elem()
				}
				bi.renderField(nf.Name, nested, nf)
			}
			imgui.TreePop()
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %s", name, formatValue(val, FieldInfo{})))
	}
}

func (bi *BehaviorInspector) label(name string, width float32) {
	imgui.Text(fmt.Sprintf("%s:", name))
	imgui.SameLine()
	imgui.SetNextItemWidth(width)
}

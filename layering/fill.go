// Package layering fills gaps in loaded documents from a default document,
// so records persisted before a field existed pick up its default without an
// explicit migration.
package layering

import "reflect"

// Fill returns a new document that keeps every explicit value from doc while
// filling nil pointers, nil maps, nil slices, and zero-valued fields from
// defaults. Non-nil empty slices and maps count as explicit: an intentionally
// cleared list is not resurrected.
func Fill[T any](doc, defaults T) T {
	merged := fillValue(reflect.ValueOf(doc), reflect.ValueOf(defaults))

	var zero T
	if !merged.IsValid() {
		return zero
	}
	if merged.Type() != reflect.TypeOf(zero) {
		result := reflect.New(reflect.TypeOf(zero)).Elem()
		result.Set(merged.Convert(reflect.TypeOf(zero)))
		return result.Interface().(T)
	}
	return merged.Interface().(T)
}

func fillValue(doc, defaults reflect.Value) reflect.Value {
	if !doc.IsValid() {
		return cloneValue(defaults)
	}

	switch doc.Kind() {
	case reflect.Pointer:
		if doc.IsNil() {
			return cloneValue(defaults)
		}
		var defaultsElem reflect.Value
		if defaults.IsValid() && defaults.Kind() == reflect.Pointer && !defaults.IsNil() {
			defaultsElem = defaults.Elem()
		}
		filled := fillValue(doc.Elem(), defaultsElem)
		result := reflect.New(doc.Type().Elem())
		result.Elem().Set(filled)
		return result
	case reflect.Interface:
		if doc.IsNil() {
			return cloneValue(defaults)
		}
		var defaultsElem reflect.Value
		if defaults.IsValid() && !defaults.IsNil() {
			defaultsElem = defaults.Elem()
		}
		filled := fillValue(doc.Elem(), defaultsElem)
		return filled.Convert(doc.Type())
	case reflect.Struct:
		result := reflect.New(doc.Type()).Elem()
		var defaultsStruct reflect.Value
		if defaults.IsValid() && defaults.Type() == doc.Type() {
			defaultsStruct = defaults
		}
		for i := 0; i < doc.NumField(); i++ {
			field := result.Field(i)
			if !field.CanSet() {
				continue
			}
			var defaultsField reflect.Value
			if defaultsStruct.IsValid() {
				defaultsField = defaultsStruct.Field(i)
			}
			field.Set(fillValue(doc.Field(i), defaultsField))
		}
		return result
	case reflect.Map:
		if doc.IsNil() {
			return cloneValue(defaults)
		}
		return cloneValue(doc)
	case reflect.Slice:
		if doc.IsNil() {
			return cloneValue(defaults)
		}
		return cloneValue(doc)
	default:
		if doc.IsZero() && defaults.IsValid() {
			return cloneValue(defaults)
		}
		return cloneValue(doc)
	}
}

func cloneValue(v reflect.Value) reflect.Value {
	if !v.IsValid() {
		return v
	}

	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.New(v.Type().Elem())
		clone.Elem().Set(cloneValue(v.Elem()))
		return clone
	case reflect.Interface:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		elem := cloneValue(v.Elem())
		if !elem.IsValid() {
			return reflect.Zero(v.Type())
		}
		return elem.Convert(v.Type())
	case reflect.Struct:
		clone := reflect.New(v.Type()).Elem()
		for i := 0; i < v.NumField(); i++ {
			field := clone.Field(i)
			if !field.CanSet() {
				continue
			}
			field.Set(cloneValue(v.Field(i)))
		}
		return clone
	case reflect.Map:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			clone.SetMapIndex(iter.Key(), cloneValue(iter.Value()))
		}
		return clone
	case reflect.Slice:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		clone := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			clone.Index(i).Set(cloneValue(v.Index(i)))
		}
		return clone
	default:
		return reflect.ValueOf(v.Interface())
	}
}

package transducer

import "reflect"

// fresh returns a copy of v that shares no backing array or map with it.
// Other kinds are returned as is.
func fresh[R any](v R) R {
	rv := reflect.ValueOf(&v).Elem()
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		cp := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Cap())
		reflect.Copy(cp, rv)
		return cp.Interface().(R)
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		cp := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		for iter := rv.MapRange(); iter.Next(); {
			cp.SetMapIndex(iter.Key(), iter.Value())
		}
		return cp.Interface().(R)
	}
	return v
}

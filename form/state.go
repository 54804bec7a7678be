package form

import (
	"reflect"
	"sort"
)

// State tracks a form's working copy against its defaults together with the
// field errors to display. It is not safe for concurrent use.
type State[T any] struct {
	defaults T
	data     T
	errors   map[string]string
}

func NewState[T any](initial T) *State[T] {
	return &State[T]{
		defaults: deepCopy(initial),
		data:     deepCopy(initial),
		errors:   make(map[string]string),
	}
}

// Form returns the working copy for callers to edit in place.
func (s *State[T]) Form() *T {
	return &s.data
}

func (s *State[T]) IsDirty() bool {
	return !reflect.DeepEqual(s.data, s.defaults)
}

// DirtyFields lists the top level fields whose value differs from the default.
func (s *State[T]) DirtyFields() []string {
	current := reflect.ValueOf(&s.data).Elem()
	initial := reflect.ValueOf(&s.defaults).Elem()
	var dirty []string
	switch current.Kind() {
	case reflect.Struct:
		for i := 0; i < current.NumField(); i++ {
			sf := current.Type().Field(i)
			if !sf.IsExported() {
				continue
			}
			if !reflect.DeepEqual(current.Field(i).Interface(), initial.Field(i).Interface()) {
				name, _, _ := fieldName(sf)
				dirty = append(dirty, name)
			}
		}
	case reflect.Map:
		seen := map[string]struct{}{}
		for _, m := range []reflect.Value{current, initial} {
			for _, k := range m.MapKeys() {
				key := k.String()
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				a, b := current.MapIndex(k), initial.MapIndex(k)
				if a.IsValid() != b.IsValid() || (a.IsValid() && !reflect.DeepEqual(a.Interface(), b.Interface())) {
					dirty = append(dirty, key)
				}
			}
		}
		sort.Strings(dirty)
	default:
		if s.IsDirty() {
			dirty = append(dirty, "")
		}
	}
	return dirty
}

// Reset restores the named fields, or every field when none are named, and
// clears the matching errors.
func (s *State[T]) Reset(fields ...string) {
	if len(fields) == 0 {
		s.data = deepCopy(s.defaults)
		s.ClearErrors()
		return
	}
	current := reflect.ValueOf(&s.data).Elem()
	initial := reflect.ValueOf(&s.defaults).Elem()
	for _, name := range fields {
		switch current.Kind() {
		case reflect.Struct:
			if i, ok := fieldIndex(current.Type(), name); ok {
				current.Field(i).Set(copyValue(initial.Field(i)))
			}
		case reflect.Map:
			if current.IsNil() {
				continue
			}
			key := reflect.ValueOf(name).Convert(current.Type().Key())
			if v := initial.MapIndex(key); v.IsValid() {
				current.SetMapIndex(key, copyValue(v))
			} else {
				current.SetMapIndex(key, reflect.Value{})
			}
		}
	}
	s.ClearErrors(fields...)
}

// Defaults replaces the defaults and resets the form to them. With no
// updates the current values become the new defaults.
func (s *State[T]) Defaults(updates ...func(defaults *T)) {
	if len(updates) == 0 {
		s.defaults = deepCopy(s.data)
	}
	for _, update := range updates {
		update(&s.defaults)
	}
	s.Reset()
}

// SetErrors replaces all current errors.
func (s *State[T]) SetErrors(errs map[string]string) {
	s.errors = make(map[string]string, len(errs))
	for k, v := range errs {
		s.errors[k] = v
	}
}

func (s *State[T]) ClearErrors(fields ...string) {
	if len(fields) == 0 {
		s.errors = make(map[string]string)
		return
	}
	for _, f := range fields {
		delete(s.errors, f)
	}
}

func (s *State[T]) Errors() map[string]string {
	out := make(map[string]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

func (s *State[T]) Error(field string) string {
	return s.errors[field]
}

func (s *State[T]) HasErrors() bool {
	return len(s.errors) > 0
}

func fieldIndex(t reflect.Type, name string) (int, bool) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tagName, _, _ := fieldName(sf)
		if tagName == name || sf.Name == name {
			return i, true
		}
	}
	return 0, false
}

func deepCopy[T any](v T) T {
	src := reflect.ValueOf(&v).Elem()
	return copyValue(src).Interface().(T)
}

func copyValue(src reflect.Value) reflect.Value {
	if !src.IsValid() {
		return src
	}
	dst := reflect.New(src.Type()).Elem()
	switch src.Kind() {
	case reflect.Pointer:
		if src.IsNil() {
			return dst
		}
		p := reflect.New(src.Type().Elem())
		p.Elem().Set(copyValue(src.Elem()))
		dst.Set(p)
	case reflect.Slice:
		if src.IsNil() {
			return dst
		}
		s := reflect.MakeSlice(src.Type(), src.Len(), src.Len())
		for i := 0; i < src.Len(); i++ {
			s.Index(i).Set(copyValue(src.Index(i)))
		}
		dst.Set(s)
	case reflect.Map:
		if src.IsNil() {
			return dst
		}
		m := reflect.MakeMapWithSize(src.Type(), src.Len())
		for _, k := range src.MapKeys() {
			m.SetMapIndex(k, copyValue(src.MapIndex(k)))
		}
		dst.Set(m)
	case reflect.Struct:
		dst.Set(src)
		for i := 0; i < src.NumField(); i++ {
			if dst.Field(i).CanSet() {
				dst.Field(i).Set(copyValue(src.Field(i)))
			}
		}
	case reflect.Interface:
		if src.IsNil() {
			return dst
		}
		dst.Set(copyValue(src.Elem()))
	default:
		dst.Set(src)
	}
	return dst
}

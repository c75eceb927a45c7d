package utils

import "reflect"

// ApplyPtrDTO copies each non-nil pointer field of a DTO onto the matching
// field of dst (matched by field name). dst must be a pointer to a struct
// whose target fields are pointers of the same element type. Used for
// partial profile updates where an absent field means "leave unchanged".
func ApplyPtrDTO(dto any, dst any) {
	sv := reflect.ValueOf(dto)
	dv := reflect.ValueOf(dst)
	if sv.Kind() != reflect.Ptr || dv.Kind() != reflect.Ptr {
		return
	}
	s := sv.Elem()
	d := dv.Elem()
	if s.Kind() != reflect.Struct || d.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < s.NumField(); i++ {
		fv := s.Field(i)
		if fv.Kind() != reflect.Ptr || fv.IsNil() {
			continue
		}
		name := s.Type().Field(i).Name
		df := d.FieldByName(name)
		if df.IsValid() && df.CanSet() && df.Type() == fv.Type() {
			df.Set(fv)
		}
	}
}

package tuc

import "reflect"

// ptrOf returns the address of a pointer-typed value as a uintptr, used
// only to build comparable cache keys from GPU resource identity. It never
// dereferences or otherwise touches the pointed-to memory.
func ptrOf(p any) uintptr {
	if p == nil {
		return 0
	}
	v := reflect.ValueOf(p)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return 0
	}
	return v.Pointer()
}

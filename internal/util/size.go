package util

import "unsafe"

// SliceBytes estimates the payload bytes held by a slice: element count
// times the static element size. Indirect storage behind pointer-typed
// elements is not followed; the estimate is a floor, which is the right
// bias for a bytes-saved statistic.
func SliceBytes[E any](s []E) int {
	var e E
	return len(s) * int(unsafe.Sizeof(e))
}

// MapBytes estimates the payload bytes held by a map: entry count times
// the static key and value sizes. Bucket overhead and indirect storage
// are ignored, same floor bias as SliceBytes.
func MapBytes[K comparable, V any](m map[K]V) int {
	var k K
	var v V
	return len(m) * int(unsafe.Sizeof(k)+unsafe.Sizeof(v))
}

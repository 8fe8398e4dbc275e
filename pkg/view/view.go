// Package view provides strided, bounds-checked views over externally owned
// memory.
//
// A View[T] is an (origin, count, byte stride) triple. It never owns memory,
// but because the origin is held as an unsafe.Pointer the garbage collector
// keeps the backing allocation alive for as long as any view references it.
// Strides larger than the element size let a view walk one field of an
// interleaved struct array:
//
//	type vertex struct {
//		Position math.Vec3
//		Normal   math.Vec3
//	}
//	verts := make([]vertex, n)
//	normals := view.Must(view.FromField[vertex, math.Vec3](verts, unsafe.Offsetof(vertex{}.Normal)))
//
// Index and slice violations are programming errors and panic, mirroring
// built-in slice indexing. Views taken from a Store panic when used after
// the store has been resized.
package view

import (
	"iter"
	"unsafe"

	"github.com/Faultbox/meshops/pkg/errs"
)

// Presence distinguishes a view that was never bound to storage from one
// that is bound but holds no elements.
type Presence uint8

const (
	Absent Presence = iota
	Empty
	Populated
)

// String returns a human-readable presence name.
func (p Presence) String() string {
	switch p {
	case Absent:
		return "absent"
	case Empty:
		return "empty"
	case Populated:
		return "populated"
	default:
		return "unknown"
	}
}

// View is a non-owning strided view of count elements of type T.
// The zero value is an absent, empty view.
type View[T any] struct {
	ptr    unsafe.Pointer
	count  int
	stride int
	bound  bool

	// gen points at the owning Store's generation counter, epoch is the
	// value it had when this view was taken. nil for unmanaged memory.
	gen   *uint64
	epoch uint64
}

// Of returns a tightly packed view of s. The view aliases s.
func Of[T any](s []T) View[T] {
	return View[T]{
		ptr:    unsafe.Pointer(unsafe.SliceData(s)),
		count:  len(s),
		stride: sizeOf[T](),
		bound:  true,
	}
}

// FromPointer returns a view of count elements starting at p, stride bytes
// apart. stride must be at least the size of T.
func FromPointer[T any](p *T, count, stride int) (View[T], error) {
	if err := checkLayout[T]("view.FromPointer", count, stride); err != nil {
		return View[T]{}, err
	}
	if p == nil && count > 0 {
		return View[T]{}, errs.Invalid("view.FromPointer", "nil origin with count %d", count)
	}
	return View[T]{ptr: unsafe.Pointer(p), count: count, stride: stride, bound: true}, nil
}

// FromField returns a view of the field at byte offset within each element
// of s. Use unsafe.Offsetof to obtain the offset.
func FromField[S, T any](s []S, offset uintptr) (View[T], error) {
	structSize := unsafe.Sizeof(*new(S))
	fieldSize := unsafe.Sizeof(*new(T))
	if offset+fieldSize > structSize {
		return View[T]{}, errs.Invalid("view.FromField", "field [%d,%d) exceeds element size %d", offset, offset+fieldSize, structSize)
	}
	if offset%unsafe.Alignof(*new(T)) != 0 {
		return View[T]{}, errs.Invalid("view.FromField", "offset %d is not aligned for the field type", offset)
	}
	base := unsafe.Pointer(unsafe.SliceData(s))
	if base != nil {
		base = unsafe.Add(base, offset)
	}
	return View[T]{ptr: base, count: len(s), stride: int(structSize), bound: true}, nil
}

// FromBytes returns a view of count elements inside buf, stride bytes apart.
// The last element must end within buf and the origin must be aligned for T.
func FromBytes[T any](buf []byte, count, stride int) (View[T], error) {
	if err := checkLayout[T]("view.FromBytes", count, stride); err != nil {
		return View[T]{}, err
	}
	if count == 0 {
		return View[T]{ptr: unsafe.Pointer(unsafe.SliceData(buf)), stride: stride, bound: true}, nil
	}
	need := (count-1)*stride + sizeOf[T]()
	if need > len(buf) {
		return View[T]{}, errs.Invalid("view.FromBytes", "%d elements with stride %d need %d bytes, have %d", count, stride, need, len(buf))
	}
	ptr := unsafe.Pointer(unsafe.SliceData(buf))
	if err := checkAlign[T]("view.FromBytes", ptr, stride); err != nil {
		return View[T]{}, err
	}
	return View[T]{ptr: ptr, count: count, stride: stride, bound: true}, nil
}

// Must returns v or panics if err is non-nil.
func Must[T any](v View[T], err error) View[T] {
	if err != nil {
		panic(err)
	}
	return v
}

// Len returns the number of elements.
func (v View[T]) Len() int { return v.count }

// Stride returns the byte distance between consecutive elements.
func (v View[T]) Stride() int {
	if v.stride == 0 {
		return sizeOf[T]()
	}
	return v.stride
}

// IsEmpty reports whether the view has no elements.
func (v View[T]) IsEmpty() bool { return v.count == 0 }

// Presence reports whether the view is absent, bound but empty, or populated.
func (v View[T]) Presence() Presence {
	switch {
	case v.count > 0:
		return Populated
	case v.bound:
		return Empty
	default:
		return Absent
	}
}

// IsPacked reports whether elements are contiguous.
func (v View[T]) IsPacked() bool { return v.Stride() == sizeOf[T]() }

// Stale reports whether the store this view was taken from has since been
// resized. Views over unmanaged memory are never stale.
func (v View[T]) Stale() bool {
	return v.gen != nil && *v.gen != v.epoch
}

// Ptr returns a pointer to element i.
func (v View[T]) Ptr(i int) *T {
	v.check("view.Ptr", i)
	return (*T)(unsafe.Add(v.ptr, i*v.stride))
}

// At returns a copy of element i.
func (v View[T]) At(i int) T {
	v.check("view.At", i)
	return *(*T)(unsafe.Add(v.ptr, i*v.stride))
}

// Set stores value at element i.
func (v View[T]) Set(i int, value T) {
	v.check("view.Set", i)
	*(*T)(unsafe.Add(v.ptr, i*v.stride)) = value
}

// Slice returns the sub-view [offset, offset+length). offset must be less
// than Len and length at most Len-offset.
func (v View[T]) Slice(offset, length int) View[T] {
	v.live("view.Slice")
	if offset < 0 || offset >= v.count {
		panic(errs.Invalid("view.Slice", "offset %d out of range [0,%d)", offset, v.count))
	}
	if length < 0 || length > v.count-offset {
		panic(errs.Invalid("view.Slice", "length %d exceeds %d remaining elements", length, v.count-offset))
	}
	s := v
	s.ptr = unsafe.Add(v.ptr, offset*v.stride)
	s.count = length
	return s
}

// SliceNonEmpty returns Slice(offset, length), or v itself if v is empty.
func (v View[T]) SliceNonEmpty(offset, length int) View[T] {
	if v.count == 0 {
		return v
	}
	return v.Slice(offset, length)
}

// All iterates over index, value pairs.
func (v View[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		v.live("view.All")
		for i := 0; i < v.count; i++ {
			if !yield(i, *(*T)(unsafe.Add(v.ptr, i*v.stride))) {
				return
			}
		}
	}
}

// Packed returns the elements as a Go slice aliasing the view when the view
// is tightly packed. ok is false for interleaved views.
func (v View[T]) Packed() (s []T, ok bool) {
	v.live("view.Packed")
	if !v.IsPacked() {
		return nil, false
	}
	if v.count == 0 {
		return nil, true
	}
	return unsafe.Slice((*T)(v.ptr), v.count), true
}

// AppendTo appends all elements to dst and returns the extended slice.
func (v View[T]) AppendTo(dst []T) []T {
	for _, x := range v.All() {
		dst = append(dst, x)
	}
	return dst
}

// Fill sets every element to value.
func (v View[T]) Fill(value T) {
	v.live("view.Fill")
	for i := 0; i < v.count; i++ {
		*(*T)(unsafe.Add(v.ptr, i*v.stride)) = value
	}
}

// Copy copies min(dst.Len(), src.Len()) elements from src to dst and returns
// the number copied. Overlapping views over the same memory are handled.
func Copy[T any](dst, src View[T]) int {
	dst.live("view.Copy")
	src.live("view.Copy")
	n := min(dst.count, src.count)
	if n == 0 {
		return 0
	}
	if uintptr(dst.ptr) > uintptr(src.ptr) {
		for i := n - 1; i >= 0; i-- {
			*(*T)(unsafe.Add(dst.ptr, i*dst.stride)) = *(*T)(unsafe.Add(src.ptr, i*src.stride))
		}
		return n
	}
	for i := 0; i < n; i++ {
		*(*T)(unsafe.Add(dst.ptr, i*dst.stride)) = *(*T)(unsafe.Add(src.ptr, i*src.stride))
	}
	return n
}

func (v View[T]) check(op string, i int) {
	v.live(op)
	if uint(i) >= uint(v.count) {
		panic(errs.Invalid(op, "index %d out of range [0,%d)", i, v.count))
	}
}

func (v View[T]) live(op string) {
	if v.Stale() {
		panic(errs.Invalid(op, "view used after its store was resized"))
	}
}

func sizeOf[T any]() int {
	return int(unsafe.Sizeof(*new(T)))
}

func checkLayout[T any](op string, count, stride int) error {
	if count < 0 {
		return errs.Invalid(op, "negative count %d", count)
	}
	if stride <= 0 {
		return errs.Invalid(op, "stride %d must be positive", stride)
	}
	if stride < sizeOf[T]() {
		return errs.Invalid(op, "stride %d smaller than element size %d", stride, sizeOf[T]())
	}
	return nil
}

func checkAlign[T any](op string, ptr unsafe.Pointer, stride int) error {
	align := unsafe.Alignof(*new(T))
	if uintptr(ptr)%align != 0 || uintptr(stride)%align != 0 {
		return errs.Invalid(op, "origin or stride %d not aligned to %d bytes", stride, align)
	}
	return nil
}

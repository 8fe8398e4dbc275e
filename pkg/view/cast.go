package view

import (
	"unsafe"

	"github.com/Faultbox/meshops/pkg/errs"
)

// Cast reinterprets v as a view of U.
//
// The conversion is allowed when T and U have the same size, in which case
// the stride is kept, or when v is tightly packed, in which case the result
// is tightly packed over the same bytes: Len()*sizeof(U) equals
// v.Len()*sizeof(T). The bytes must divide evenly and the origin and stride
// must be aligned for U. Anything else is an InvalidValue error.
func Cast[U, T any](v View[T]) (View[U], error) {
	const op = "view.Cast"
	sizeT, sizeU := sizeOf[T](), sizeOf[U]()
	if sizeU == 0 || sizeT == 0 {
		return View[U]{}, errs.Invalid(op, "zero-sized element type")
	}
	if v.Stale() {
		return View[U]{}, errs.Invalid(op, "view used after its store was resized")
	}

	out := View[U]{ptr: v.ptr, bound: v.bound, gen: v.gen, epoch: v.epoch}
	switch {
	case sizeT == sizeU:
		out.count = v.count
		out.stride = v.Stride()
	case v.IsPacked():
		total := v.count * sizeT
		if total%sizeU != 0 {
			return View[U]{}, errs.Invalid(op, "%d bytes is not a multiple of the %d byte target element", total, sizeU)
		}
		out.count = total / sizeU
		out.stride = sizeU
	default:
		return View[U]{}, errs.Invalid(op, "stride %d with element size %d cannot be reinterpreted as %d byte elements", v.Stride(), sizeT, sizeU)
	}

	if out.count > 0 {
		if err := checkAlign[U](op, out.ptr, out.stride); err != nil {
			return View[U]{}, err
		}
	}
	return out, nil
}

// MustCast is like Cast but panics on an invalid conversion.
func MustCast[U, T any](v View[T]) View[U] {
	return Must[U](Cast[U](v))
}

// Bytes returns the raw bytes spanned by a tightly packed view. ok is false
// for interleaved views, whose gaps may belong to other data.
func (v View[T]) Bytes() (b []byte, ok bool) {
	v.live("view.Bytes")
	if !v.IsPacked() {
		return nil, false
	}
	if v.count == 0 {
		return nil, true
	}
	return unsafe.Slice((*byte)(v.ptr), v.count*sizeOf[T]()), true
}

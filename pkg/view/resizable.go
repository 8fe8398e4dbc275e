package view

import "github.com/Faultbox/meshops/pkg/errs"

// ResizeFunc asks an owning container to hold count elements, filling new
// ones with fill, and returns a view of the new contents.
type ResizeFunc[T any] func(count int, fill T) View[T]

// Resizable is a View whose owner can be asked to grow or shrink. After a
// Resize the embedded view is refreshed; views derived before it must be
// re-acquired.
type Resizable[T any] struct {
	View[T]
	resize ResizeFunc[T]
}

// NewResizable binds v to a resize callback.
func NewResizable[T any](v View[T], resize ResizeFunc[T]) Resizable[T] {
	return Resizable[T]{View: v, resize: resize}
}

// CanResize reports whether a resize callback is bound.
func (r *Resizable[T]) CanResize() bool { return r.resize != nil }

// Resize asks the owner for count elements and refreshes the view.
// It panics if no callback is bound.
func (r *Resizable[T]) Resize(count int, fill T) {
	if r.resize == nil {
		panic(errs.Invalid("view.Resize", "view has no resize callback"))
	}
	if count < 0 {
		panic(errs.Invalid("view.Resize", "negative count %d", count))
	}
	r.View = r.resize(count, fill)
}

// CastResizable reinterprets r as a resizable view of U following the rules
// of Cast. Resizing the result to n elements resizes the owner to hold the
// same number of bytes, which must be a whole number of T elements, and
// fills the new U elements with the given fill value.
func CastResizable[U, T any](r Resizable[T]) (Resizable[U], error) {
	v, err := Cast[U](r.View)
	if err != nil {
		return Resizable[U]{}, err
	}
	if r.resize == nil {
		return Resizable[U]{View: v}, nil
	}
	inner := r.resize
	sizeT, sizeU := sizeOf[T](), sizeOf[U]()
	prev := v.Len()
	outer := func(count int, fill U) View[U] {
		bytes := count * sizeU
		if bytes%sizeT != 0 {
			panic(errs.Invalid("view.Resize", "%d elements of %d bytes do not fill whole %d byte owner elements", count, sizeU, sizeT))
		}
		var zero T
		out := MustCast[U](inner(bytes/sizeT, zero))
		for i := prev; i < count; i++ {
			out.Set(i, fill)
		}
		prev = count
		return out
	}
	return Resizable[U]{View: v, resize: outer}, nil
}

package view

import "unsafe"

// Store is a growable, owned array of T. Views taken from a Store record the
// store's generation; any Resize bumps the generation so that stale views
// panic instead of reading relocated memory.
type Store[T any] struct {
	data []T
	gen  uint64
}

// NewStore returns a store holding count zero values.
func NewStore[T any](count int) *Store[T] {
	return &Store[T]{data: make([]T, count)}
}

// StoreOf returns a store that takes ownership of s.
func StoreOf[T any](s []T) *Store[T] {
	return &Store[T]{data: s}
}

// Len returns the number of elements.
func (s *Store[T]) Len() int { return len(s.data) }

// Generation returns the number of resizes performed so far.
func (s *Store[T]) Generation() uint64 { return s.gen }

// Elems returns the backing slice. Like any view, it must not be used after
// the next Resize.
func (s *Store[T]) Elems() []T { return s.data }

// View returns a tightly packed view of the current contents.
func (s *Store[T]) View() View[T] {
	return View[T]{
		ptr:    unsafe.Pointer(unsafe.SliceData(s.data)),
		count:  len(s.data),
		stride: sizeOf[T](),
		bound:  true,
		gen:    &s.gen,
		epoch:  s.gen,
	}
}

// Resize grows or shrinks the store to count elements, filling new elements
// with fill, and returns a fresh view. All earlier views become stale.
func (s *Store[T]) Resize(count int, fill T) View[T] {
	if count < 0 {
		count = 0
	}
	old := len(s.data)
	switch {
	case count <= old:
		clear(s.data[count:])
		s.data = s.data[:count]
	case count <= cap(s.data):
		s.data = s.data[:count]
	default:
		grown := make([]T, count, max(count, 2*cap(s.data)))
		copy(grown, s.data)
		s.data = grown
	}
	for i := old; i < count; i++ {
		s.data[i] = fill
	}
	s.gen++
	return s.View()
}

// Resizable returns a resizable view bound to this store.
func (s *Store[T]) Resizable() Resizable[T] {
	return NewResizable(s.View(), s.Resize)
}

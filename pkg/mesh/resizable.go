package mesh

import "github.com/Faultbox/meshops/pkg/errs"

// ResizeFunc resizes the attributes selected by mask in some owning storage
// and returns a bundle whose masked attributes view the new contents.
type ResizeFunc func(mask AttributeFlags, triangles, vertices int) (Attributes, error)

// Resizable is a bundle that can ask its owner to grow or shrink selected
// attributes. After Resize the embedded bundle is refreshed for the masked
// attributes; views taken from it earlier must be re-acquired.
type Resizable struct {
	Attributes
	resize ResizeFunc
}

// NewResizable pairs a bundle with a resize callback.
func NewResizable(a Attributes, resize ResizeFunc) *Resizable {
	return &Resizable{Attributes: a, resize: resize}
}

// NewResizableFromData returns a resizable bundle over d's storage.
func NewResizableFromData(d *Data) *Resizable {
	return NewResizable(d.View(), func(mask AttributeFlags, triangles, vertices int) (Attributes, error) {
		if err := d.Resize(mask, triangles, vertices); err != nil {
			return Attributes{}, err
		}
		return d.View(), nil
	})
}

// Resize resizes the attributes selected by mask.
func (r *Resizable) Resize(mask AttributeFlags, triangles, vertices int) error {
	if r.resize == nil {
		return errs.Invalid("mesh.Resize", "bundle has no resize callback")
	}
	updated, err := r.resize(mask, triangles, vertices)
	if err != nil {
		return err
	}
	r.Replace(updated, mask)
	return nil
}

// Append grows the bundle by the triangle and vertex counts of src and
// copies every attribute present in src into the new range, returning that
// range. Attributes present in only one side are grown as well; their new
// or old range is zero-filled. Index values are copied as they are.
//
// src must not view the bundle's own storage.
func (r *Resizable) Append(src Attributes) (MeshSlice, error) {
	const op = "mesh.Append"
	if err := r.checkConsistent(op); err != nil {
		return MeshSlice{}, err
	}
	if err := src.checkConsistent(op); err != nil {
		return MeshSlice{}, err
	}

	s := MeshSlice{
		TriangleOffset: r.TriangleCount(),
		TriangleCount:  src.TriangleCount(),
		VertexOffset:   r.VertexCount(),
		VertexCount:    src.VertexCount(),
	}
	mask := r.Flags() | src.Flags()
	if err := r.Resize(mask, s.TriangleOffset+s.TriangleCount, s.VertexOffset+s.VertexCount); err != nil {
		return MeshSlice{}, errs.Wrap(op, err)
	}

	dst, err := r.Slice(s)
	if err != nil {
		return MeshSlice{}, errs.Wrap(op, err)
	}
	if err := dst.CopyFrom(src); err != nil {
		return MeshSlice{}, errs.Wrap(op, err)
	}
	return s, nil
}

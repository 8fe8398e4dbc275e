package mesh

// Set holds several meshes concatenated into one flat Data, with one slice
// per mesh.
type Set struct {
	Flat   Data
	Slices []MeshSlice
}

// Add appends m to the set and returns its index.
func (s *Set) Add(m Attributes) (int, error) {
	slice, err := s.Flat.Append(m)
	if err != nil {
		return 0, err
	}
	s.Slices = append(s.Slices, slice)
	return len(s.Slices) - 1, nil
}

// AddOffset appends m like Add and shifts its triangle indices by the
// vertex offset of its slice, so that Flat stays one valid mesh.
func (s *Set) AddOffset(m Attributes) (int, error) {
	i, err := s.Add(m)
	if err != nil {
		return 0, err
	}
	part, err := s.Mesh(i)
	if err != nil {
		return 0, err
	}
	base := uint32(s.Slices[i].VertexOffset)
	for j, tri := range part.TriangleVertices.All() {
		part.TriangleVertices.Set(j, tri.Add(base))
	}
	return i, nil
}

// Len returns the number of meshes.
func (s *Set) Len() int { return len(s.Slices) }

// Mesh returns the bundle of mesh i. Triangle indices are those stored by
// Add or AddOffset; after AddOffset, RebaseIndices on a copy gives
// slice-local indices.
func (s *Set) Mesh(i int) (Attributes, error) {
	return s.Flat.View().Slice(s.Slices[i])
}

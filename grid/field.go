package grid

import "fmt"

// Real is the precision switch for the whole module. All buffers cooperating
// in one kernel call share a single instantiation; mixing precisions within
// a run is a caller error the type system rules out.
type Real interface {
	~float32 | ~float64
}

// Field is a dense grid function over the ghostbox B, stored with the first
// axis varying fastest. Values outside whatever fillbox the last kernel call
// used are stale or zero depending on context; only the fillbox content is
// guaranteed.
type Field[T Real] struct {
	B      Box
	Data   []T
	stride [3]int
}

func NewField[T Real](b Box) (f *Field[T]) {
	if b.Empty() {
		panic(fmt.Sprintf("grid: attempt to allocate field over empty box %s", b))
	}
	f = &Field[T]{
		B:    b,
		Data: make([]T, b.NumCells()),
	}
	f.stride = strides(b)
	return
}

// NewFieldLike allocates a zeroed field over the same ghostbox as f.
func NewFieldLike[T Real](f *Field[T]) *Field[T] {
	return NewField[T](f.B)
}

func strides(b Box) (s [3]int) {
	s[0] = 1
	s[1] = b.Extent(0)
	s[2] = b.Extent(0) * b.Extent(1)
	return
}

// Idx maps grid point (i,j,k) to the flat data offset. For 2D fields pass
// k = 0. No bounds checking; kernels validate boxes up front instead.
func (f *Field[T]) Idx(i, j, k int) int {
	return (i - f.B.Lo[0]) + f.stride[1]*(j-f.B.Lo[1]) + f.stride[2]*(k-f.B.Lo[2])
}

// Stride returns the flat-offset step for a unit move along axis n.
func (f *Field[T]) Stride(n int) int {
	return f.stride[n]
}

func (f *Field[T]) At(i, j, k int) T {
	return f.Data[f.Idx(i, j, k)]
}

func (f *Field[T]) Set(i, j, k int, v T) {
	f.Data[f.Idx(i, j, k)] = v
}

// Fill sets every value in the ghostbox to v.
func (f *Field[T]) Fill(v T) {
	for n := range f.Data {
		f.Data[n] = v
	}
}

// FillBox sets every value within box to v. Points of box outside the
// ghostbox are ignored; an empty box is a no-op.
func (f *Field[T]) FillBox(box Box, v T) {
	box = box.Intersect(f.B)
	if box.Empty() {
		return
	}
	for k := box.Lo[2]; k <= box.Hi[2]; k++ {
		for j := box.Lo[1]; j <= box.Hi[1]; j++ {
			base := f.Idx(box.Lo[0], j, k)
			row := f.Data[base : base+box.Extent(0)]
			for n := range row {
				row[n] = v
			}
		}
	}
}

// Copy allocates a deep copy of f.
func (f *Field[T]) Copy() (o *Field[T]) {
	o = NewField[T](f.B)
	copy(o.Data, f.Data)
	return
}

// Apply evaluates fn at every grid point of the ghostbox, passing storage
// order coordinates, and stores the result. Handy for setting up initial
// conditions and manufactured solutions.
func (f *Field[T]) Apply(fn func(i, j, k int) T) {
	var n int
	for k := f.B.Lo[2]; k <= f.B.Hi[2]; k++ {
		for j := f.B.Lo[1]; j <= f.B.Hi[1]; j++ {
			for i := f.B.Lo[0]; i <= f.B.Hi[0]; i++ {
				f.Data[n] = fn(i, j, k)
				n++
			}
		}
	}
}

// Mask is a one-byte-per-cell grid function over a ghostbox, used to mark
// narrow band membership. Lower values mark points closer to the interface;
// a term call visits a listed point only when its mark is at or below the
// call's fillbox threshold.
type Mask struct {
	B      Box
	Data   []uint8
	stride [3]int
}

func NewMask(b Box) (m *Mask) {
	if b.Empty() {
		panic(fmt.Sprintf("grid: attempt to allocate mask over empty box %s", b))
	}
	m = &Mask{
		B:    b,
		Data: make([]uint8, b.NumCells()),
	}
	m.stride = strides(b)
	return
}

func (m *Mask) Idx(i, j, k int) int {
	return (i - m.B.Lo[0]) + m.stride[1]*(j-m.B.Lo[1]) + m.stride[2]*(k-m.B.Lo[2])
}

func (m *Mask) At(i, j, k int) uint8 {
	return m.Data[m.Idx(i, j, k)]
}

func (m *Mask) Set(i, j, k int, v uint8) {
	m.Data[m.Idx(i, j, k)] = v
}

// Fill sets every mark in the ghostbox to v.
func (m *Mask) Fill(v uint8) {
	for n := range m.Data {
		m.Data[n] = v
	}
}

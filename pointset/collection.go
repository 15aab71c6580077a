package pointset

// Collection pairs a point set with an optional parallel sequence of
// human-readable identifiers. It is immutable after construction;
// downstream consumers only read.
type Collection[T Float] struct {
	points *Points[T]
	ids    []string
}

// NewCollection attaches ids to points. A nil ids slice means the
// collection carries no identifiers; otherwise the slice length must equal
// the number of points.
func NewCollection[T Float](points *Points[T], ids []string) (*Collection[T], error) {
	if ids != nil && len(ids) != points.Len() {
		return nil, &CardinalityError{Points: points.Len(), IDs: len(ids)}
	}
	return &Collection[T]{points: points, ids: ids}, nil
}

// Points returns the underlying point set.
func (c *Collection[T]) Points() *Points[T] { return c.points }

// IDs returns the identifier sequence as supplied at construction, or nil
// when the collection has none.
func (c *Collection[T]) IDs() []string { return c.ids }

package inheritance

import "fmt"

type Pair[T any] struct {
	First  T
	Second T
}

// PairEnumerator yields every unordered pair (items[i], items[j]) with i < j,
// in index order. It is lazy and can be restarted with Reset.
type PairEnumerator[T any] struct {
	items []T
	i, j  int
}

func NewPairEnumerator[T any](items []T) (*PairEnumerator[T], error) {
	if len(items) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 elements to form pairs, got %d", ErrInvalidInput, len(items))
	}

	p := &PairEnumerator[T]{items: append([]T(nil), items...)}
	p.Reset()

	return p, nil
}

// Next returns the next pair, or false once every pair has been produced.
func (p *PairEnumerator[T]) Next() (Pair[T], bool) {
	if p.i >= len(p.items)-1 {
		return Pair[T]{}, false
	}

	out := Pair[T]{First: p.items[p.i], Second: p.items[p.j]}

	p.j++
	if p.j == len(p.items) {
		p.i++
		p.j = p.i + 1
	}

	return out, true
}

func (p *PairEnumerator[T]) Reset() {
	p.i, p.j = 0, 1
}

// Len is the total number of pairs, n(n-1)/2.
func (p *PairEnumerator[T]) Len() int {
	n := len(p.items)
	return n * (n - 1) / 2
}

// Pairs collects every pair of items.
func Pairs[T any](items []T) ([]Pair[T], error) {
	p, err := NewPairEnumerator(items)
	if err != nil {
		return nil, err
	}

	out := make([]Pair[T], 0, p.Len())
	for pair, ok := p.Next(); ok; pair, ok = p.Next() {
		out = append(out, pair)
	}

	return out, nil
}

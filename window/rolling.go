package window

import (
	"github.com/gammazero/deque"
	"movingavg/stats"
)

// Rolling is a FIFO view over the most recent samples. It has no fixed
// capacity of its own: every Update carries the wanted size, and the
// window evicts oldest-first until the new sample fits. After an Update
// with size W the length is min(samples appended so far, W).
type Rolling[U stats.Number] struct {
	buf *deque.Deque[U]
}

func NewRolling[U stats.Number]() *Rolling[U] {
	return &Rolling[U]{
		buf: deque.New[U](),
	}
}

// Update appends sample after making room. size must be at least 1.
func (rolling *Rolling[U]) Update(sample U, size int) {
	for rolling.buf.Len() >= size {
		rolling.buf.PopFront()
	}
	rolling.buf.PushBack(sample)
}

func (rolling *Rolling[U]) Len() int {
	return rolling.buf.Len()
}

// At returns the element at index, oldest first. Panics out of range, like
// indexing a slice.
func (rolling *Rolling[U]) At(index int) U {
	return rolling.buf.At(index)
}

// Values copies the window contents in arrival order.
func (rolling *Rolling[U]) Values() []U {
	values := make([]U, rolling.buf.Len())
	for i := range values {
		values[i] = rolling.buf.At(i)
	}
	return values
}

func (rolling *Rolling[U]) Clear() {
	rolling.buf.Clear()
}

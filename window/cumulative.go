package window

import "movingavg/stats"

// Cumulative records every sample ever appended, in arrival order. Nothing
// is evicted; the engine appends to it even while disabled.
type Cumulative[U stats.Number] struct {
	data []U
}

func NewCumulative[U stats.Number]() *Cumulative[U] {
	return &Cumulative[U]{
		data: make([]U, 0),
	}
}

func (series *Cumulative[U]) Append(sample U) {
	series.data = append(series.data, sample)
}

func (series *Cumulative[U]) Len() int {
	return len(series.data)
}

// Values returns the backing series itself, not a copy. Callers must treat
// it as read-only.
func (series *Cumulative[U]) Values() []U {
	return series.data
}

func (series *Cumulative[U]) Clear() {
	series.data = series.data[:0]
}

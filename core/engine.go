package core

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"movingavg/stats"
	"movingavg/tree"
	"movingavg/window"
	"os"
)

var (
	ErrEmptyCollection   = errors.New("no samples recorded")
	ErrInvalidWindowSize = errors.New("window size must be at least 1")
)

// Engine derives five statistics from one stream of scalar samples: simple,
// cumulative, weighted and exponential moving averages, and the moving
// median. T is the raw input type, U the storage and output type.
//
// The engine is single-threaded: the caller's loop is the only scheduler,
// and nothing here is safe for concurrent use.
//
// Construction leaves the engine disabled. Add always records history, but
// every Read* returns zero until Begin is called.
type Engine[T stats.Number, U stats.Number] struct {
	enabled     bool
	input       T
	windowFresh bool
	rolling     *window.Rolling[U]
	series      *window.Cumulative[U]
	values      [statCount]U
	calculated  [statCount]bool
	streak      int
	out         io.Writer
	rng         *rand.Rand
}

func NewEngine[T stats.Number, U stats.Number]() *Engine[T, U] {
	return &Engine[T, U]{
		rolling: window.NewRolling[U](),
		series:  window.NewCumulative[U](),
		out:     os.Stdout,
	}
}

// SetOutput redirects Print away from stdout. Chainable.
func (engine *Engine[T, U]) SetOutput(out io.Writer) *Engine[T, U] {
	engine.out = out
	return engine
}

// SetRand pins the level source used by the moving-median skip lists, for
// reproducible runs. Chainable; nil keeps the process-wide source.
func (engine *Engine[T, U]) SetRand(rng *rand.Rand) *Engine[T, U] {
	engine.rng = rng
	return engine
}

// Begin enables computation. Idempotent.
func (engine *Engine[T, U]) Begin() {
	engine.enabled = true
}

// End disables computation but keeps every recorded sample. Idempotent.
func (engine *Engine[T, U]) End() {
	engine.enabled = false
}

// Add records sample regardless of the enabled gate: the raw value for
// peak detection and EMA, the converted value in the cumulative series,
// and a dirty mark so the next consuming read refreshes the window.
func (engine *Engine[T, U]) Add(sample T) {
	engine.input = sample
	engine.series.Append(U(sample))
	engine.windowFresh = false
}

// refreshWindow rotates the newest sample into the rolling window, at most
// once per Add. Reads that land between two adds reuse the same window,
// including the size the first of them asked for.
func (engine *Engine[T, U]) refreshWindow(size int) {
	if engine.windowFresh {
		return
	}
	engine.rolling.Update(U(engine.input), size)
	engine.windowFresh = true
}

// ReadAverage computes the simple moving average over the most recent
// windowSize samples.
//
// While disabled it returns (0, nil), indistinguishable from a computed
// zero average; the same holds for every other Read method.
func (engine *Engine[T, U]) ReadAverage(windowSize int) (U, error) {
	if !engine.enabled {
		return 0, nil
	}
	if windowSize < 1 {
		return 0, ErrInvalidWindowSize
	}
	if engine.series.Len() == 0 {
		return 0, ErrEmptyCollection
	}
	engine.refreshWindow(windowSize)

	engine.values[SMA] = U(stats.Mean(engine.rolling.Values()))
	engine.calculated[SMA] = true
	return engine.values[SMA], nil
}

// ReadCumulativeAverage computes the mean of every sample recorded since
// construction, gated or not. It never touches the rolling window.
func (engine *Engine[T, U]) ReadCumulativeAverage() (U, error) {
	if !engine.enabled {
		return 0, nil
	}
	if engine.series.Len() == 0 {
		return 0, ErrEmptyCollection
	}

	engine.values[CA] = U(stats.Mean(engine.series.Values()))
	engine.calculated[CA] = true
	return engine.values[CA], nil
}

// ReadWeightedAverage computes the weighted moving average over the most
// recent windowSize samples, the newest weighted highest.
func (engine *Engine[T, U]) ReadWeightedAverage(windowSize int) (U, error) {
	if !engine.enabled {
		return 0, nil
	}
	if windowSize < 1 {
		return 0, ErrInvalidWindowSize
	}
	if engine.series.Len() == 0 {
		return 0, ErrEmptyCollection
	}
	engine.refreshWindow(windowSize)

	engine.values[WMA] = U(stats.WeightedMean(engine.rolling.Values()))
	engine.calculated[WMA] = true
	return engine.values[WMA], nil
}

// ReadExponentialAverage folds the current raw sample into the running
// exponential average, alpha parts sample to 1-alpha parts previous value.
// The running value starts at 0, persists across calls, and is independent
// of the rolling window. Alpha is taken as given, even outside [0, 1].
func (engine *Engine[T, U]) ReadExponentialAverage(alpha float64) (U, error) {
	if !engine.enabled {
		return 0, nil
	}

	prev := float64(engine.values[EMA])
	engine.values[EMA] = U(stats.Smooth(prev, float64(engine.input), alpha))
	engine.calculated[EMA] = true
	return engine.values[EMA], nil
}

// ReadMovingMedian builds a fresh skip list over the current window and
// returns its upper-middle element. The list lives only for this call.
func (engine *Engine[T, U]) ReadMovingMedian(windowSize int) (U, error) {
	if !engine.enabled {
		return 0, nil
	}
	if windowSize < 1 {
		return 0, ErrInvalidWindowSize
	}
	if engine.series.Len() == 0 {
		return 0, ErrEmptyCollection
	}
	engine.refreshWindow(windowSize)

	list := tree.NewSkipList[U](windowSize, engine.rng)
	for _, value := range engine.rolling.Values() {
		list.Insert(value)
	}
	median, err := list.Median()
	if err != nil {
		return 0, err
	}

	engine.values[MM] = median
	engine.calculated[MM] = true
	return median, nil
}

// DetectedPeak reports whether the raw sample stream has stayed at or
// above threshold for matches consecutive calls. A sample below threshold
// resets the streak, as does a detection. The streak is private to this
// engine, so independent engines never interfere. Returns false while
// disabled without touching the streak.
func (engine *Engine[T, U]) DetectedPeak(threshold T, matches int) bool {
	if !engine.enabled {
		return false
	}
	if engine.input < threshold {
		engine.streak = 0
		return false
	}

	engine.streak++
	if engine.streak >= matches {
		engine.streak = 0
		return true
	}
	return false
}

// Print writes one line to the output sink: the raw sample, then every
// statistic that is both selected and already calculated, tab-separated in
// the fixed order SMA, CA, WMA, EMA, MM. No arguments selects all five.
// Never recomputes; statistics never read since the last Reset are skipped
// silently.
func (engine *Engine[T, U]) Print(selection ...Stat) error {
	var selected [statCount]bool
	if len(selection) == 0 {
		for i := range selected {
			selected[i] = true
		}
	}
	for _, stat := range selection {
		if stat >= 0 && stat < statCount {
			selected[stat] = true
		}
	}

	if _, err := fmt.Fprintf(engine.out, "Raw-Data:%v", engine.input); err != nil {
		return err
	}
	for _, stat := range printOrder {
		if !selected[stat] || !engine.calculated[stat] {
			continue
		}
		if _, err := fmt.Fprintf(engine.out, "\t%v:%v", stat, engine.values[stat]); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(engine.out)
	return err
}

// Reset drops all recorded history, caches, flags, and the peak streak,
// returning the engine to its just-constructed state. The enabled gate is
// left as it is.
func (engine *Engine[T, U]) Reset() {
	var zero T
	engine.input = zero
	engine.windowFresh = false
	engine.rolling.Clear()
	engine.series.Clear()
	for i := range engine.values {
		engine.values[i] = 0
		engine.calculated[i] = false
	}
	engine.streak = 0
}

// WindowValues returns the rolling window contents, oldest first.
func (engine *Engine[T, U]) WindowValues() []U {
	return engine.rolling.Values()
}

// HistoryLen reports how many samples Add has recorded since construction.
func (engine *Engine[T, U]) HistoryLen() int {
	return engine.series.Len()
}

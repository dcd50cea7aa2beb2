package window

import (
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestRollingFillsBelowCapacity(t *testing.T) {
	rolling := NewRolling[int16]()

	rolling.Update(10, 3)
	rolling.Update(20, 3)
	assert.Equal(t, 2, rolling.Len())

	if diff := cmp.Diff([]int16{10, 20}, rolling.Values()); diff != "" {
		t.Fatalf("window mismatch (-want +got):\n%s", diff)
	}
}

func TestRollingEvictsOldestFirst(t *testing.T) {
	rolling := NewRolling[int16]()
	for _, sample := range []int16{10, 20, 30, 40} {
		rolling.Update(sample, 3)
	}

	assert.Equal(t, 3, rolling.Len())
	if diff := cmp.Diff([]int16{20, 30, 40}, rolling.Values()); diff != "" {
		t.Fatalf("window mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, int16(20), rolling.At(0))
	assert.Equal(t, int16(40), rolling.At(2))
}

func TestRollingShrinksWhenSizeDrops(t *testing.T) {
	rolling := NewRolling[int]()
	for sample := 1; sample <= 5; sample++ {
		rolling.Update(sample, 5)
	}
	assert.Equal(t, 5, rolling.Len())

	// a smaller size evicts everything that no longer fits
	rolling.Update(6, 3)
	if diff := cmp.Diff([]int{4, 5, 6}, rolling.Values()); diff != "" {
		t.Fatalf("window mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, rolling.Len())
	assert.Equal(t, 4, rolling.At(0))
}

func TestRollingGrowsWhenSizeRises(t *testing.T) {
	rolling := NewRolling[int]()
	for sample := 1; sample <= 4; sample++ {
		rolling.Update(sample, 2)
	}
	assert.Equal(t, 2, rolling.Len())

	rolling.Update(5, 4)
	if diff := cmp.Diff([]int{3, 4, 5}, rolling.Values()); diff != "" {
		t.Fatalf("window mismatch (-want +got):\n%s", diff)
	}
}

func TestRollingValuesIsACopy(t *testing.T) {
	rolling := NewRolling[int]()
	rolling.Update(1, 2)
	rolling.Update(2, 2)

	values := rolling.Values()
	values[0] = 99
	assert.Equal(t, 1, rolling.At(0))
}

func TestRollingClear(t *testing.T) {
	rolling := NewRolling[int]()
	rolling.Update(1, 4)
	rolling.Update(2, 4)
	rolling.Clear()

	assert.Equal(t, 0, rolling.Len())
	assert.Empty(t, rolling.Values())

	rolling.Update(3, 4)
	assert.Equal(t, []int{3}, rolling.Values())
}

package tree

import (
	"errors"
	"golang.org/x/exp/constraints"
	"math/rand"
)

var ErrIndexOutOfRange = errors.New("skiplist: index out of range")

type skipNode[V constraints.Ordered] struct {
	value V
	next  []*skipNode[V]
}

// SkipList keeps a sorted set of values under a tower of express lanes.
// Level 0 links every member in ascending order; each higher level links a
// coin-flip subset of the level below it, so searches skip ahead in
// expected O(log n). Values are unique: inserting an existing value is a
// no-op.
type SkipList[V constraints.Ordered] struct {
	header   *skipNode[V]
	level    int
	maxLevel int
	size     int
	rng      *rand.Rand
}

// NewSkipList bounds the level tower at maxLevel. A nil rng uses the
// process-wide source, which callers seed once at startup; tests pass a
// seeded rng for reproducible towers.
func NewSkipList[V constraints.Ordered](maxLevel int, rng *rand.Rand) *SkipList[V] {
	if maxLevel < 0 {
		maxLevel = 0
	}
	return &SkipList[V]{
		header:   &skipNode[V]{next: make([]*skipNode[V], maxLevel+1)},
		level:    0,
		maxLevel: maxLevel,
		size:     0,
		rng:      rng,
	}
}

func (list *SkipList[V]) flip() bool {
	if list.rng != nil {
		return list.rng.Intn(2) == 0
	}
	return rand.Intn(2) == 0
}

// randomLevel flips a fair coin until it lands tails or the configured
// ceiling is reached. A node assigned level L participates in levels 0..L.
func (list *SkipList[V]) randomLevel() int {
	level := 0
	for level < list.maxLevel && list.flip() {
		level++
	}
	return level
}

// findPredecessors walks from the top level down, recording at each level
// the last node whose value is still below value. The scratch slice is
// local to the call, never shared list state.
func (list *SkipList[V]) findPredecessors(value V) []*skipNode[V] {
	update := make([]*skipNode[V], list.maxLevel+1)
	current := list.header
	for i := list.level; i >= 0; i-- {
		for current.next[i] != nil && current.next[i].value < value {
			current = current.next[i]
		}
		update[i] = current
	}
	return update
}

func (list *SkipList[V]) Len() int {
	return list.size
}

// Insert splices value into every level assigned to it by the coin flips.
// Returns false without inserting when an equal value is already present.
func (list *SkipList[V]) Insert(value V) bool {
	update := list.findPredecessors(value)

	if next := update[0].next[0]; next != nil && next.value == value {
		return false
	}

	newLevel := list.randomLevel()
	if newLevel > list.level {
		for i := list.level + 1; i <= newLevel; i++ {
			update[i] = list.header
		}
		list.level = newLevel
	}

	node := &skipNode[V]{
		value: value,
		next:  make([]*skipNode[V], newLevel+1),
	}
	for i := 0; i <= newLevel; i++ {
		node.next[i] = update[i].next[i]
		update[i].next[i] = node
	}
	list.size++
	return true
}

// Remove unsplices value from every level it participates in and trims
// levels left empty at the top. Returns false if value is not a member.
func (list *SkipList[V]) Remove(value V) bool {
	update := list.findPredecessors(value)

	target := update[0].next[0]
	if target == nil || target.value != value {
		return false
	}

	for i := list.level; i >= 0; i-- {
		if update[i].next[i] == target {
			update[i].next[i] = target.next[i]
		}
	}
	for list.level > 0 && list.header.next[list.level] == nil {
		list.level--
	}
	list.size--
	return true
}

// At walks level 0 to the index-th smallest member.
func (list *SkipList[V]) At(index int) (V, error) {
	if index < 0 || index >= list.size {
		var zero V
		return zero, ErrIndexOutOfRange
	}
	current := list.header.next[0]
	for i := 0; i < index; i++ {
		current = current.next[0]
	}
	return current.value, nil
}

// Median returns the member at index Len()/2 in ascending order: the
// upper-middle element for even sizes, never an average of the two central
// values. Fails with ErrIndexOutOfRange on an empty list.
func (list *SkipList[V]) Median() (V, error) {
	return list.At(list.size / 2)
}

// Values returns the membership in ascending order.
func (list *SkipList[V]) Values() []V {
	values := make([]V, 0, list.size)
	for node := list.header.next[0]; node != nil; node = node.next[0] {
		values = append(values, node.value)
	}
	return values
}

// Package growth derives procedurally generated plant structure from a
// species, a seed and an age.
//
// Derivation is deterministic: the same PlantSpec and age always produce the
// same node sequence, so archived plants are regenerated from their stored
// parameters. Nodes are emitted in birth order, which makes the structure at a
// smaller age a prefix of the structure at any larger age.
package growth

import (
	"container/heap"
	"iter"
	"sort"
	"time"

	"github.com/alexanderramin/florodoro/internal/domain"
)

// Engine incrementally grows a single plant. It memoizes everything derived
// so far and keeps not-yet-born nodes in a heap, so each Grow call only pays
// for the nodes that became visible since the previous call.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	spec    domain.PlantSpec
	rules   *ruleSet
	age     time.Duration
	nodes   []domain.GrowthNode
	pending nodeHeap
}

// NewEngine prepares a plant for growth at age zero.
func NewEngine(spec domain.PlantSpec) (*Engine, error) {
	rules, err := rulesFor(spec.Species)
	if err != nil {
		return nil, err
	}
	if spec.MaxAge <= 0 {
		return nil, &domain.InvalidAgeError{Age: spec.MaxAge}
	}
	e := &Engine{spec: spec, rules: rules}
	heap.Push(&e.pending, e.trunk())
	return e, nil
}

// Derive returns the structure of spec at age. It is a pure function.
func Derive(spec domain.PlantSpec, age time.Duration) ([]domain.GrowthNode, error) {
	e, err := NewEngine(spec)
	if err != nil {
		return nil, err
	}
	if err := e.Grow(age); err != nil {
		return nil, err
	}
	return e.Structure(), nil
}

// Grow advances the plant to age. Ages past MaxAge are clamped, and an age
// below the current one leaves the plant unchanged.
func (e *Engine) Grow(age time.Duration) error {
	if age < 0 {
		return &domain.InvalidAgeError{Age: age}
	}
	if age > e.spec.MaxAge {
		age = e.spec.MaxAge
	}
	if age > e.age {
		e.age = age
	}
	for e.pending.Len() > 0 && e.pending[0].BornAt <= e.age {
		n := heap.Pop(&e.pending).(domain.GrowthNode)
		e.nodes = append(e.nodes, n)
		for _, child := range e.sprout(n) {
			heap.Push(&e.pending, child)
		}
	}
	return nil
}

// Spec returns the parameters the engine grows from.
func (e *Engine) Spec() domain.PlantSpec {
	return e.spec
}

// Age returns the current age of the plant.
func (e *Engine) Age() time.Duration {
	return e.age
}

// Done reports whether the plant reached MaxAge.
func (e *Engine) Done() bool {
	return e.age >= e.spec.MaxAge
}

// Structure returns a copy of the nodes visible at the current age.
func (e *Engine) Structure() []domain.GrowthNode {
	out := make([]domain.GrowthNode, len(e.nodes))
	copy(out, e.nodes)
	return out
}

// Nodes yields the nodes visible at the time of each iteration. The sequence
// can be ranged over any number of times.
func (e *Engine) Nodes() iter.Seq[domain.GrowthNode] {
	return func(yield func(domain.GrowthNode) bool) {
		for _, n := range e.nodes[:len(e.nodes):len(e.nodes)] {
			if !yield(n) {
				return
			}
		}
	}
}

// NodesAt returns the prefix of the grown structure born by age.
// Ages beyond the current age return the current structure.
func (e *Engine) NodesAt(age time.Duration) []domain.GrowthNode {
	i := sort.Search(len(e.nodes), func(i int) bool { return e.nodes[i].BornAt > age })
	out := make([]domain.GrowthNode, i)
	copy(out, e.nodes[:i])
	return out
}

// Snapshot returns a read-only copy of the plant at its current age.
func (e *Engine) Snapshot() domain.PlantInstance {
	return domain.PlantInstance{Spec: e.spec, Age: e.age, Structure: e.Structure()}
}

// Complete grows the plant to MaxAge and returns the finished snapshot.
func (e *Engine) Complete() domain.PlantInstance {
	_ = e.Grow(e.spec.MaxAge)
	return e.Snapshot()
}

// nodeHeap orders pending nodes by birth age, then identity.
type nodeHeap []domain.GrowthNode

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].BornAt != h[j].BornAt {
		return h[i].BornAt < h[j].BornAt
	}
	return h[i].ID < h[j].ID
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) { *h = append(*h, x.(domain.GrowthNode)) }

func (h *nodeHeap) Pop() any {
	old := *h
	n := old[len(old)-1]
	*h = old[:len(old)-1]
	return n
}

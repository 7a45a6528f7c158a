package growth

import (
	"math"
	"time"

	"github.com/alexanderramin/florodoro/internal/domain"
)

// birthJitter spreads sibling births over this fraction of MaxAge.
const birthJitter = 0.1

func (e *Engine) trunk() domain.GrowthNode {
	rs := e.rules
	id := rootKey(e.spec.Seed)
	r := streamFor(e.spec.Seed, id)

	lean := uniform(r, rs.lean)
	if rs.leanBothSides {
		lean *= side(r)
	}
	length := uniform(r, rs.trunkLength)
	return domain.GrowthNode{
		ID:        id,
		Kind:      domain.NodeTrunk,
		Angle:     lean,
		Length:    length,
		Thickness: rs.trunkThickness * length / rs.trunkLength.hi,
		BornAt:    0,
		MatureAt:  e.fraction(rs.trunkGrow),
	}
}

// sprout lists every child a freshly born node will ever have. Children are
// born no earlier than their parent.
func (e *Engine) sprout(parent domain.GrowthNode) []domain.GrowthNode {
	if !parent.Kind.Woody() {
		return nil
	}
	rs := e.rules
	var children []domain.GrowthNode

	if parent.Generation < rs.generations {
		children = append(children, e.branches(parent)...)
	}
	if parent.Kind == domain.NodeTrunk {
		children = append(children, e.ornaments(parent, rs.crown)...)
	}
	if parent.Kind == domain.NodeBranch && parent.Generation == rs.generations {
		children = append(children, e.ornaments(parent, rs.tips)...)
	}
	return children
}

func (e *Engine) branches(parent domain.GrowthNode) []domain.GrowthNode {
	rs := e.rules
	g := parent.Generation + 1
	split := streamFor(e.spec.Seed, parent.ID^splitSalt)
	k := between(split, rs.branching[parent.Generation])

	children := make([]domain.GrowthNode, 0, k)
	for i := 0; i < k; i++ {
		id := childKey(parent.ID, g, i)
		r := streamFor(e.spec.Seed, id)

		dir := side(r)
		if k == 2 {
			dir = float64(i*2 - 1)
		}
		attach := uniform(r, rs.attach)
		x, y := along(parent, attach)
		length := parent.Length * uniform(r, rs.lengthRatio)
		if parent.Kind == domain.NodeTrunk {
			// Branches higher up the trunk are shorter.
			length *= 1.6 * (1 - attach)
		}
		born := e.birth(parent, rs.unlockAt[parent.Generation], r.Float64())

		children = append(children, domain.GrowthNode{
			ID:         id,
			Parent:     parent.ID,
			Kind:       rs.branchKind,
			Generation: g,
			X:          x,
			Y:          y,
			Angle:      parent.Angle + dir*uniform(r, rs.spread),
			Length:     length,
			Thickness:  parent.Thickness * rs.thicknessRatio,
			BornAt:     born,
			MatureAt:   e.mature(born, uniform(r, rs.branchGrow)),
		})
	}
	return children
}

func (e *Engine) ornaments(carrier domain.GrowthNode, rules []ornamentRule) []domain.GrowthNode {
	g := carrier.Generation + 1
	var out []domain.GrowthNode
	slot := ornamentSlot
	for _, rule := range rules {
		split := streamFor(e.spec.Seed, childKey(carrier.ID, g, slot)^splitSalt)
		n := between(split, rule.count)
		offset := split.Float64() * 2 * math.Pi

		for i := 0; i < n; i++ {
			id := childKey(carrier.ID, g, slot+i)
			r := streamFor(e.spec.Seed, id)

			x, y := along(carrier, uniform(r, rule.attach))
			angle := carrier.Angle
			if rule.radial {
				angle = offset + float64(i)*2*math.Pi/float64(n)
			}
			length := carrier.Length * uniform(r, rule.length)
			born := e.birth(carrier, rule.unlockAt, r.Float64())

			out = append(out, domain.GrowthNode{
				ID:         id,
				Parent:     carrier.ID,
				Kind:       rule.kind,
				Generation: g,
				X:          x,
				Y:          y,
				Angle:      angle,
				Length:     length,
				Thickness:  length * uniform(r, rule.width),
				BornAt:     born,
				MatureAt:   e.mature(born, uniform(r, rule.grow)),
			})
		}
		slot += ornamentSlot
	}
	return out
}

// along returns the point at fraction t of the node's full length.
func along(n domain.GrowthNode, t float64) (float64, float64) {
	return n.X + math.Sin(n.Angle)*n.Length*t, n.Y + math.Cos(n.Angle)*n.Length*t
}

func (e *Engine) fraction(f float64) time.Duration {
	return time.Duration(math.Min(1, math.Max(0, f)) * float64(e.spec.MaxAge))
}

func (e *Engine) birth(parent domain.GrowthNode, unlockAt, jitter float64) time.Duration {
	born := e.fraction(unlockAt)
	if parent.BornAt > born {
		born = parent.BornAt
	}
	born += e.fraction(jitter * birthJitter)
	if born > e.spec.MaxAge {
		born = e.spec.MaxAge
	}
	return born
}

func (e *Engine) mature(born time.Duration, growFrac float64) time.Duration {
	m := born + e.fraction(growFrac)
	if m > e.spec.MaxAge {
		m = e.spec.MaxAge
	}
	return m
}

package growth

import "github.com/alexanderramin/florodoro/internal/domain"

type span struct{ lo, hi float64 }

type intSpan struct{ lo, hi int }

// ornamentRule places terminal decorations (canopy, foliage, petals) onto a
// woody carrier node. Lengths are relative to the carrier, widths relative to
// the ornament itself.
type ornamentRule struct {
	kind     domain.NodeKind
	count    intSpan
	attach   span
	length   span
	width    span
	radial   bool
	unlockAt float64
	grow     span
}

// ruleSet is the recursive branching contract of one species. Slices indexed
// by generation describe what a woody node of that generation sprouts.
type ruleSet struct {
	trunkLength    span
	trunkThickness float64
	lean           span
	leanBothSides  bool
	trunkGrow      float64

	generations    int
	branchKind     domain.NodeKind
	branching      []intSpan
	unlockAt       []float64
	spread         span
	attach         span
	lengthRatio    span
	thicknessRatio float64
	branchGrow     span

	crown []ornamentRule
	tips  []ornamentRule
}

// rulesFor returns the rule-set of a species. The catalog is closed.
func rulesFor(s domain.Species) (*ruleSet, error) {
	switch s {
	case domain.SpeciesSpruce:
		return spruceRules(1), nil
	case domain.SpeciesDoubleSpruce:
		return spruceRules(2), nil
	case domain.SpeciesMaple:
		return mapleRules(), nil
	case domain.SpeciesFlower:
		return flowerRules(), nil
	default:
		return nil, &domain.InvalidSpeciesError{Species: s}
	}
}

func spruceRules(layers int) *ruleSet {
	rs := &ruleSet{
		trunkLength:    span{0.53, 0.59},
		trunkThickness: 0.065,
		lean:           span{-0.04, 0.04},
		trunkGrow:      0.75,

		generations:    1,
		branchKind:     domain.NodeBranch,
		branching:      []intSpan{{1, 2}},
		unlockAt:       []float64{0.3},
		spread:         span{0.93, 1.16},
		attach:         span{0.45, 0.55},
		lengthRatio:    span{0.3, 0.36},
		thicknessRatio: 0.8,
		branchGrow:     span{0.3, 0.45},

		crown: []ornamentRule{{
			kind:     domain.NodeCanopy,
			count:    intSpan{1, 1},
			attach:   span{0.28, 0.32},
			length:   span{1.05, 1.15},
			width:    span{0.9, 0.95},
			unlockAt: 0.1,
			grow:     span{0.6, 0.7},
		}},
	}
	if layers > 1 {
		rs.crown = append(rs.crown, ornamentRule{
			kind:     domain.NodeCanopy,
			count:    intSpan{1, 1},
			attach:   span{0.6, 0.66},
			length:   span{0.68, 0.74},
			width:    span{1.1, 1.2},
			unlockAt: 0.35,
			grow:     span{0.45, 0.55},
		})
	}
	return rs
}

func mapleRules() *ruleSet {
	return &ruleSet{
		trunkLength:    span{0.53, 0.59},
		trunkThickness: 0.065,
		lean:           span{-0.03, 0.03},
		trunkGrow:      0.7,

		generations:    2,
		branchKind:     domain.NodeBranch,
		branching:      []intSpan{{2, 2}, {1, 2}},
		unlockAt:       []float64{0.2, 0.45},
		spread:         span{0.75, 1.05},
		attach:         span{0.45, 0.7},
		lengthRatio:    span{0.45, 0.6},
		thicknessRatio: 0.7,
		branchGrow:     span{0.25, 0.4},

		crown: []ornamentRule{{
			kind:     domain.NodeFoliage,
			count:    intSpan{1, 1},
			attach:   span{0.9, 1},
			length:   span{0.8, 0.95},
			width:    span{1, 1},
			unlockAt: 0.4,
			grow:     span{0.4, 0.5},
		}},
		tips: []ornamentRule{{
			kind:     domain.NodeFoliage,
			count:    intSpan{1, 1},
			attach:   span{0.9, 1},
			length:   span{0.9, 1.1},
			width:    span{1, 1},
			unlockAt: 0.55,
			grow:     span{0.25, 0.4},
		}},
	}
}

func flowerRules() *ruleSet {
	return &ruleSet{
		trunkLength:    span{0.36, 0.4},
		trunkThickness: 0.02,
		lean:           span{0.11, 0.27},
		leanBothSides:  true,
		trunkGrow:      0.6,

		generations:    1,
		branchKind:     domain.NodeLeaf,
		branching:      []intSpan{{2, 2}},
		unlockAt:       []float64{0.15},
		spread:         span{0.8, 1},
		attach:         span{0.25, 0.4},
		lengthRatio:    span{0.33, 0.4},
		thicknessRatio: 2.5,
		branchGrow:     span{0.35, 0.45},

		crown: []ornamentRule{
			{
				kind:     domain.NodePetal,
				count:    intSpan{5, 7},
				attach:   span{1, 1},
				length:   span{0.3, 0.42},
				width:    span{0.55, 0.7},
				radial:   true,
				unlockAt: 0.5,
				grow:     span{0.3, 0.35},
			},
			{
				kind:     domain.NodePistil,
				count:    intSpan{1, 1},
				attach:   span{1, 1},
				length:   span{0.08, 0.1},
				width:    span{1, 1},
				unlockAt: 0.6,
				grow:     span{0.2, 0.25},
			},
		},
	}
}

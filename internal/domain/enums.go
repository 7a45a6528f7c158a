package domain

type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseStudying Phase = "studying"
	PhaseBreaking Phase = "breaking"
	PhasePaused   Phase = "paused"
	PhaseFinished Phase = "finished"
)

// Running reports whether the phase accrues elapsed time on tick.
func (p Phase) Running() bool {
	return p == PhaseStudying || p == PhaseBreaking
}

type Species string

const (
	SpeciesSpruce       Species = "spruce"
	SpeciesDoubleSpruce Species = "double_spruce"
	SpeciesMaple        Species = "maple"
	SpeciesFlower       Species = "flower"
)

// AllSpecies is the fixed species catalog in menu order.
var AllSpecies = []Species{SpeciesSpruce, SpeciesDoubleSpruce, SpeciesMaple, SpeciesFlower}

var speciesNames = map[Species]string{
	SpeciesSpruce:       "Spruce",
	SpeciesDoubleSpruce: "Double spruce",
	SpeciesMaple:        "Maple",
	SpeciesFlower:       "Flower",
}

// Valid reports whether s is part of the species catalog.
func (s Species) Valid() bool {
	_, ok := speciesNames[s]
	return ok
}

// DisplayName returns the human-readable species name.
func (s Species) DisplayName() string {
	if name, ok := speciesNames[s]; ok {
		return name
	}
	return string(s)
}

// ParseSpecies accepts either the identifier or the display name.
func ParseSpecies(v string) (Species, error) {
	for _, s := range AllSpecies {
		if string(s) == v || speciesNames[s] == v {
			return s, nil
		}
	}
	return "", &InvalidSpeciesError{Species: Species(v)}
}

type NodeKind string

const (
	NodeTrunk   NodeKind = "trunk"
	NodeBranch  NodeKind = "branch"
	NodeLeaf    NodeKind = "leaf"
	NodeCanopy  NodeKind = "canopy"
	NodeFoliage NodeKind = "foliage"
	NodePetal   NodeKind = "petal"
	NodePistil  NodeKind = "pistil"
)

// Woody reports whether the node kind can carry further branches.
func (k NodeKind) Woody() bool {
	return k == NodeTrunk || k == NodeBranch
}

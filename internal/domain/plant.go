package domain

import (
	"math"
	"time"
)

// PlantSpec identifies a reproducible plant. Species and Seed fix every
// branching choice; MaxAge is the age at which growth is complete.
type PlantSpec struct {
	Species Species
	Seed    int64
	MaxAge  time.Duration
}

// GrowthNode is one structural element of a plant. Coordinates are in canvas
// units: the plant is rooted at (0, 0), Y grows upward and the canvas is one
// unit tall with X in [-0.5, 0.5]. Angle is in radians, 0 pointing straight up,
// positive leaning right. Geometry is fixed once a node exists.
//
// Kinds are drawn as follows: trunk, branch and leaf are tapered strokes from
// (X, Y) along Angle; canopy is a triangle with base Thickness and apex at Tip;
// foliage and pistil are discs of diameter Length centered on (X, Y); petal
// is an ellipse of Length by Thickness reaching out from (X, Y).
type GrowthNode struct {
	ID         uint64
	Parent     uint64
	Kind       NodeKind
	Generation int
	X, Y       float64
	Angle      float64
	Length     float64
	Thickness  float64
	BornAt     time.Duration
	MatureAt   time.Duration
}

// Tip returns the end point of the node at full length.
func (n GrowthNode) Tip() (float64, float64) {
	return n.X + math.Sin(n.Angle)*n.Length, n.Y + math.Cos(n.Angle)*n.Length
}

// Extent returns the drawn fraction [0, 1] of the node at the given plant age,
// eased at both ends.
func (n GrowthNode) Extent(age time.Duration) float64 {
	if age < n.BornAt {
		return 0
	}
	span := n.MatureAt - n.BornAt
	if span <= 0 || age >= n.MatureAt {
		return 1
	}
	return SmoothStep(float64(age-n.BornAt) / float64(span))
}

// SmoothStep eases x in [0, 1] with a sine ramp.
func SmoothStep(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return (math.Sin((x-0.5)*math.Pi) + 1) / 2
}

// PlantInstance is a read-only snapshot of a plant at a given age.
type PlantInstance struct {
	Spec      PlantSpec
	Age       time.Duration
	Structure []GrowthNode
}

// Progress returns Age as a fraction of MaxAge.
func (p PlantInstance) Progress() float64 {
	if p.Spec.MaxAge <= 0 {
		return 0
	}
	return math.Min(1, float64(p.Age)/float64(p.Spec.MaxAge))
}

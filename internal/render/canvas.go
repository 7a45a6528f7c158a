// Package render rasterizes growth nodes onto a character grid for the
// terminal.
//
// The grid maps the plant canvas (X in [-0.5, 0.5], Y in [0, 1], rooted at
// the bottom center) onto Width columns and Height rows. Terminal cells are
// about twice as tall as wide, so a Width of 2*Height keeps proportions.
package render

import (
	"iter"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/florodoro/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type cell struct {
	r    rune
	kind domain.NodeKind
	id   uint64
}

// Canvas is a fixed-size character grid.
type Canvas struct {
	width, height int
	cells         []cell
}

// NewCanvas returns an empty canvas. Sizes below 3x3 are raised to 3x3.
func NewCanvas(width, height int) *Canvas {
	width, height = max(width, 3), max(height, 3)
	return &Canvas{width: width, height: height, cells: make([]cell, width*height)}
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Clear empties every cell.
func (c *Canvas) Clear() {
	clear(c.cells)
}

// Draw paints nodes as they look at the given plant age. Later nodes paint
// over earlier ones, so children cover their parents.
func (c *Canvas) Draw(nodes iter.Seq[domain.GrowthNode], age time.Duration) {
	for n := range nodes {
		e := n.Extent(age)
		if e <= 0 {
			continue
		}
		switch n.Kind {
		case domain.NodeTrunk, domain.NodeBranch, domain.NodeLeaf:
			c.stroke(n, e)
		case domain.NodeCanopy:
			c.triangle(n, e)
		case domain.NodeFoliage, domain.NodePistil:
			c.disc(n, n.X, n.Y, n.Length*e/2, n.Length*e/2)
		case domain.NodePetal:
			length := n.Length * e
			sin, cos := math.Sincos(n.Angle)
			cx, cy := n.X+sin*length/2, n.Y+cos*length/2
			c.disc(n, cx, cy, length/2, n.Thickness*e/2)
		}
	}
}

// DrawPlant paints a plant snapshot at its own age.
func (c *Canvas) DrawPlant(p domain.PlantInstance) {
	c.Draw(slices.Values(p.Structure), p.Age)
}

// String returns the grid as plain text, one line per row.
func (c *Canvas) String() string {
	return c.render(func(cl cell) string { return string(cl.r) })
}

// Styled returns the grid colored by node kind.
func (c *Canvas) Styled() string {
	return c.render(func(cl cell) string { return styleFor(cl).Render(string(cl.r)) })
}

func (c *Canvas) render(paint func(cell) string) string {
	var b strings.Builder
	for row := 0; row < c.height; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < c.width; col++ {
			cl := c.cells[row*c.width+col]
			if cl.r == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(paint(cl))
		}
	}
	return b.String()
}

// toCell maps canvas units to a grid position.
func (c *Canvas) toCell(x, y float64) (col, row int) {
	col = int(math.Round((x + 0.5) * float64(c.width-1)))
	row = int(math.Round((1 - y) * float64(c.height-1)))
	return col, row
}

func (c *Canvas) set(col, row int, r rune, n domain.GrowthNode) {
	if col < 0 || col >= c.width || row < 0 || row >= c.height {
		return
	}
	c.cells[row*c.width+col] = cell{r: r, kind: n.Kind, id: n.ID}
}

// step is the sampling distance in canvas units, half a cell.
func (c *Canvas) step() float64 {
	return 0.5 / float64(max(c.width, c.height))
}

func (c *Canvas) stroke(n domain.GrowthNode, extent float64) {
	length := n.Length * extent
	sin, cos := math.Sincos(n.Angle)
	r := strokeRune(n)
	for t := 0.0; t <= length; t += c.step() {
		col, row := c.toCell(n.X+sin*t, n.Y+cos*t)
		c.set(col, row, r, n)
	}
	if length == 0 {
		col, row := c.toCell(n.X, n.Y)
		c.set(col, row, r, n)
	}
}

// triangle fills a triangle with base Thickness centered on (X, Y) and apex
// at the scaled tip.
func (c *Canvas) triangle(n domain.GrowthNode, extent float64) {
	length := n.Length * extent
	half := n.Thickness * extent / 2
	sin, cos := math.Sincos(n.Angle)
	step := c.step()
	for t := 0.0; t <= length; t += step {
		w := half * (1 - t/max(length, step))
		ax, ay := n.X+sin*t, n.Y+cos*t
		for s := -w; s <= w; s += step {
			col, row := c.toCell(ax+cos*s, ay-sin*s)
			c.set(col, row, '^', n)
		}
	}
}

// disc fills an ellipse with radii rx along the node axis and ry across it.
func (c *Canvas) disc(n domain.GrowthNode, cx, cy, rx, ry float64) {
	r := discRune(n.Kind)
	step := c.step()
	if rx < step && ry < step {
		col, row := c.toCell(cx, cy)
		c.set(col, row, r, n)
		return
	}
	sin, cos := math.Sincos(n.Angle)
	for u := -rx; u <= rx; u += step {
		for v := -ry; v <= ry; v += step {
			if rx > 0 && ry > 0 && (u*u)/(rx*rx)+(v*v)/(ry*ry) > 1 {
				continue
			}
			col, row := c.toCell(cx+sin*u+cos*v, cy+cos*u-sin*v)
			c.set(col, row, r, n)
		}
	}
}

func strokeRune(n domain.GrowthNode) rune {
	if n.Kind == domain.NodeLeaf {
		return '~'
	}
	if n.Kind == domain.NodeTrunk {
		return '#'
	}
	a := math.Mod(n.Angle, math.Pi)
	if a < 0 {
		a += math.Pi
	}
	switch {
	case a < math.Pi/8 || a >= 7*math.Pi/8:
		return '|'
	case a < 3*math.Pi/8:
		return '/'
	case a < 5*math.Pi/8:
		return '-'
	default:
		return '\\'
	}
}

func discRune(k domain.NodeKind) rune {
	switch k {
	case domain.NodePistil:
		return 'o'
	case domain.NodePetal:
		return '*'
	default:
		return '@'
	}
}

var (
	woodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#a9784f"))
	leafStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8ec07c"))
	needleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#689d6a"))
	pistilStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fabd2f"))
	petalStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#d3869b")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#fb4934")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#83a598")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#fe8019")),
	}
)

func styleFor(cl cell) lipgloss.Style {
	switch cl.kind {
	case domain.NodeTrunk, domain.NodeBranch:
		return woodStyle
	case domain.NodeCanopy:
		return needleStyle
	case domain.NodePistil:
		return pistilStyle
	case domain.NodePetal:
		return petalStyles[cl.id%uint64(len(petalStyles))]
	default:
		return leafStyle
	}
}

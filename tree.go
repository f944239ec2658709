package orbits

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

/*

spacial tree acceleration structure.
point oct-tree based on Barnes-Hut.
https://en.wikipedia.org/wiki/Barnes%E2%80%93Hut_simulation

*/

// TreeField approximates gravity with a Barnes-Hut octree rebuilt on every
// call. A node is treated as a single point mass when the body lies outside
// it and width/distance < Theta. Theta of 0 always opens nodes and gives the
// same result as DirectField. Workers > 1 walks the tree concurrently.
type TreeField struct {
	Theta   float64
	Workers int
}

func (f TreeField) ComputeAccelerations(bodies []*Body, G float64) {
	if len(bodies) == 0 {
		return
	}
	root := maketree(bodies)
	eachBody(bodies, f.Workers, func(b *Body) {
		b.Acceleration = root.gravity(b, f.Theta, G)
	})
}

type nodekind uint8

// node types
const (
	external nodekind = iota
	internal
)

// deepest level at which a leaf splits. leaves at this depth hold every body
// pushed to them, which keeps coincident bodies from recursing forever.
const maxDepth = 32

type octant uint8

// child positions (octants)
// low bit is X axis, high bit is Z axis
// L (0) means < center, H (1) means >= center
const (
	LLL octant = 0b000
	LLH octant = 0b001
	LHL octant = 0b010
	LHH octant = 0b011
	HLL octant = 0b100
	HLH octant = 0b101
	HHL octant = 0b110
	HHH octant = 0b111
)

type nodebound struct {
	center, width mgl64.Vec3
}

// returns the max width among the 3 dimensions.
func (n nodebound) max() float64 {
	return math.Max(n.width[0], math.Max(n.width[1], n.width[2]))
}

// does this bound contain point?
func (n nodebound) contains(point mgl64.Vec3) bool {
	halfwidth := n.width.Mul(0.5)
	return (n.center[0]-halfwidth[0] <= point[0] && point[0] <= n.center[0]+halfwidth[0]) &&
		(n.center[1]-halfwidth[1] <= point[1] && point[1] <= n.center[1]+halfwidth[1]) &&
		(n.center[2]-halfwidth[2] <= point[2] && point[2] <= n.center[2]+halfwidth[2])
}

// scale the width of the bounds.
func (n nodebound) scale(s float64) nodebound {
	n.width = n.width.Mul(s)
	return n
}

// move the center of the bound.
func (n nodebound) translate(tx mgl64.Vec3) nodebound {
	n.center = n.center.Add(tx)
	return n
}

// generate the bounds for an octant of the parent's bounds.
func octantBound(parent nodebound, oct octant) nodebound {
	// each octant is ±1/4 of the parent's width from the parent's center.
	tx := mgl64.Vec3{
		parent.width[0] * 0.25 * (float64((oct&LLH)*2) - 1.0),
		parent.width[1] * 0.25 * (float64(((oct&LHL)>>1)*2) - 1.0),
		parent.width[2] * 0.25 * (float64(((oct&HLL)>>2)*2) - 1.0),
	}
	return parent.scale(0.5).translate(tx)
}

// determines which octant (relative to midpoint) in which point belongs.
func octantBits(midpoint, point mgl64.Vec3) octant {
	return octant((^math.Float64bits(point[0]-midpoint[0]) >> 63) |
		(^math.Float64bits(point[1]-midpoint[1])>>63)<<1 |
		(^math.Float64bits(point[2]-midpoint[2])>>63)<<2)
}

// smallest power-of-two cube centered on the bodies' bounding box that
// contains all of them.
func boundsOf(bodies []*Body) nodebound {
	lo := bodies[0].Position
	hi := lo
	for _, b := range bodies[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], b.Position[k])
			hi[k] = math.Max(hi[k], b.Position[k])
		}
	}
	extent := math.Max(hi[0]-lo[0], math.Max(hi[1]-lo[1], hi[2]-lo[2]))
	width := math.Exp2(math.Ceil(math.Log2(extent + 1)))
	return nodebound{
		center: lo.Add(hi).Mul(0.5),
		width:  mgl64.Vec3{width, width, width},
	}
}

type node struct {
	kind         nodekind
	depth        int
	children     []*node
	bodies       []*Body // external nodes only
	totalMass    float64
	centerOfMass mgl64.Vec3
	bounds       nodebound
}

// create children nodes with appropriate bounds
func (n *node) split() {
	n.children = make([]*node, 8)
	for i := LLL; i <= HHH; i++ {
		n.children[i] = &node{bounds: octantBound(n.bounds, i), depth: n.depth + 1}
	}
}

// fold a point mass into this node's aggregate.
func (n *node) addMass(point mgl64.Vec3, mass float64) {
	n.totalMass += mass
	n.centerOfMass = n.centerOfMass.Add(point.Sub(n.centerOfMass).Mul(mass / n.totalMass))
}

// place a body in the tree rooted at this node. the caller has already
// established that the body lies inside the node's bounds; children are
// chosen by octant alone.
func (n *node) push(b *Body) {
	switch n.kind {
	case external:
		// simple case: an empty leaf, or a leaf too deep to split
		if len(n.bodies) == 0 || n.depth >= maxDepth {
			n.bodies = append(n.bodies, b)
			n.addMass(b.Position, b.Mass)
			return
		}

		// the leaf already has a body. convert it into an internal
		// node and push the existing bodies down into the children.
		n.split()
		for _, old := range n.bodies {
			n.children[octantBits(n.bounds.center, old.Position)].push(old)
		}
		n.kind = internal
		n.bodies = nil

		// process the incoming body exactly as for an internal node
		fallthrough

	case internal:
		n.children[octantBits(n.bounds.center, b.Position)].push(b)
		n.addMass(b.Position, b.Mass)
	}
}

// walk the body through the tree, summing the gravitational acceleration on
// it from nearby bodies or distant "aggregate" bodies, using theta as the
// accuracy dial.
func (n *node) gravity(b *Body, theta, G float64) (a mgl64.Vec3) {
	if n.totalMass == 0 {
		return // this is an empty leaf
	}

	switch n.kind {
	case internal:
		d := n.centerOfMass.Sub(b.Position)
		r := d.Len()
		if n.bounds.contains(b.Position) || r == 0 || n.bounds.max()/r >= theta {
			// too close to treat the node as a single distant point.
			for _, child := range n.children {
				a = a.Add(child.gravity(b, theta, G))
			}
			return
		}
		return d.Mul(G * n.totalMass / (r * r * r))

	case external:
		for _, other := range n.bodies {
			if other == b {
				continue // prevent a body interacting with itself
			}
			a = a.Add(pull(b, other, G))
		}
	}
	return
}

// builds a tree by pushing all bodies into a root sized to hold them.
func maketree(bodies []*Body) (root *node) {
	root = &node{bounds: boundsOf(bodies)}
	for _, b := range bodies {
		root.push(b)
	}
	return
}

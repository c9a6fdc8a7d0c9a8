package grove

import "math"

// Affine is a 2D affine matrix [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Affine [6]float64

// Identity is the identity affine matrix.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Translate returns a translation matrix.
func Translate(x, y float64) Affine { return Affine{1, 0, 0, 1, x, y} }

// Multiply returns m * o: o is applied first, then m.
func (m Affine) Multiply(o Affine) Affine {
	return Affine{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Apply transforms the point (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Translation returns the matrix's translation component.
func (m Affine) Translation() (x, y float64) { return m[4], m[5] }

// Invert returns the inverse matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func (m Affine) Invert() Affine {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return Identity
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// LocalTransform computes the node's local matrix.
//
// Composition order:
//
//	Translate(-AnchorX, -AnchorY) -> Scale -> Rotate -> Translate(X, Y)
func (n *Node) LocalTransform() Affine {
	sx := n.ScaleX
	sy := n.ScaleY
	sin, cos := math.Sincos(n.Rotation * math.Pi / 180)

	// After Scale * Translate(-anchor):
	//   a=sx, b=0, c=0, d=sy, tx=-ax*sx, ty=-ay*sy
	preTx := -n.AnchorX * sx
	preTy := -n.AnchorY * sy

	// After Rotate, then Translate(X, Y):
	return Affine{
		cos * sx,
		sin * sx,
		-sin * sy,
		cos * sy,
		cos*preTx - sin*preTy + n.X,
		sin*preTx + cos*preTy + n.Y,
	}
}

// WorldTransform composes the local transforms of the node's ancestors, from
// the root down to the node itself.
func (n *Node) WorldTransform() Affine {
	m := n.LocalTransform()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalTransform().Multiply(m)
	}
	return m
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return n.WorldTransform().Apply(lx, ly)
}

// WorldToLocal converts a world-space point to this node's local space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return n.WorldTransform().Invert().Apply(wx, wy)
}

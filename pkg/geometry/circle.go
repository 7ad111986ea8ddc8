package geometry

import (
	"fmt"
	"math"
)

// CircleFit represents the result of fitting a circle to points
type CircleFit struct {
	Center Vector3 // Circle center in 3D
	Radius float64 // Circle radius
	Normal Vector3 // Normal vector of the plane containing the circle
	StdDev float64 // Standard deviation of fit (quality measure)
}

// FitCircle fits the circumscribed circle of a polygon face in the face's own
// plane. The circle passes through the first, middle and last points; StdDev
// measures how far the remaining points are from it, so a regular polygon
// fits with StdDev close to zero.
//
// Uses the 3-point determinant formula in plane coordinates:
//
//	D = 2(x₁(y₂-y₃) + x₂(y₃-y₁) + x₃(y₁-y₂))
//	cx = ((x₁²+y₁²)(y₂-y₃) + (x₂²+y₂²)(y₃-y₁) + (x₃²+y₃²)(y₁-y₂)) / D
//	cy = ((x₁²+y₁²)(x₃-x₂) + (x₂²+y₂²)(x₁-x₃) + (x₃²+y₃²)(x₂-x₁)) / D
func FitCircle(points []Vector3) (*CircleFit, error) {
	if len(points) < 3 {
		return nil, fmt.Errorf("need at least 3 points to fit a circle")
	}

	normal := NewellNormal(points)
	if normal == (Vector3{}) {
		return nil, fmt.Errorf("points are collinear")
	}

	// Orthonormal basis of the face plane, anchored at the first point
	origin := points[0]
	u := points[1].Sub(origin).Normalize()
	v := normal.Cross(u)

	project := func(p Vector3) (float64, float64) {
		d := p.Sub(origin)
		return d.Dot(u), d.Dot(v)
	}

	x1, y1 := project(points[0])
	x2, y2 := project(points[len(points)/2])
	x3, y3 := project(points[len(points)-1])

	D := 2.0 * (x1*(y2-y3) + x2*(y3-y1) + x3*(y1-y2))
	if math.Abs(D) < 1e-10 {
		return nil, fmt.Errorf("points are collinear")
	}

	s1 := x1*x1 + y1*y1
	s2 := x2*x2 + y2*y2
	s3 := x3*x3 + y3*y3

	cx := (s1*(y2-y3) + s2*(y3-y1) + s3*(y1-y2)) / D
	cy := (s1*(x3-x2) + s2*(x1-x3) + s3*(x2-x1)) / D

	center := origin.Add(u.Mul(cx)).Add(v.Mul(cy))
	radius := center.Distance(points[0])

	var sumError float64
	for _, p := range points {
		d := center.Distance(p) - radius
		sumError += d * d
	}

	return &CircleFit{
		Center: center,
		Radius: radius,
		Normal: normal,
		StdDev: math.Sqrt(sumError / float64(len(points))),
	}, nil
}

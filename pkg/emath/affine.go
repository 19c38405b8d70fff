package emath

// Some basic affine transformations, used to place extended sources and
// to build the CD matrices of a WCS.

import(
	"fmt"
	"math"
	"golang.org/x/image/math/f64"  // Will be "image/math/f64" at some point, hopefully make this file redundant
)

// Use a local type so we can hang methods off it
type Aff3 f64.Aff3

// Cut-n-pasted from image@0.7.0/draw/scale:matMul
func (p Aff3)Mult(q Aff3) Aff3 {
	return Aff3{
		p[3*0+0]*q[3*0+0] + p[3*0+1]*q[3*1+0],
		p[3*0+0]*q[3*0+1] + p[3*0+1]*q[3*1+1],
		p[3*0+0]*q[3*0+2] + p[3*0+1]*q[3*1+2] + p[3*0+2],
		p[3*1+0]*q[3*0+0] + p[3*1+1]*q[3*1+0],
		p[3*1+0]*q[3*0+1] + p[3*1+1]*q[3*1+1],
		p[3*1+0]*q[3*0+2] + p[3*1+1]*q[3*1+2] + p[3*1+2],
	}
}

func Identity() Aff3 {
	return Aff3{1, 0, 0,   0, 1, 0}
}

func (m1 Aff3)Translate(tx, ty float64) Aff3 {
	return m1.Mult(Aff3{1, 0, tx,   0, 1, ty})
}

func (m1 Aff3)Rotate(thetaDeg float64) Aff3 {
	r := Rotation(thetaDeg)
	return m1.Mult(Aff3{r[0], r[1], 0,    r[2], r[3], 0})
}

// Scale stretches x and y independently (e.g. an axis ratio on x only)
func (m1 Aff3)Scale(sx, sy float64) Aff3 {
	return m1.Mult(Aff3{sx, 0, 0,   0, sy, 0})
}

func (m Aff3)Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// A Mat2 is a row-major 2x2 matrix; we use it for WCS CD matrices, where
// [0],[1] are CD1_1,CD1_2 and [2],[3] are CD2_1,CD2_2.
type Mat2 [4]float64

// Rotation returns the counter-clockwise rotation matrix for the angle.
// Rotation(a).Mult(Rotation(b)) == Rotation(a+b), within float error.
func Rotation(thetaDeg float64) Mat2 {
	cosTheta := Cosd(thetaDeg)
	sinTheta := Sind(thetaDeg)
	return Mat2{cosTheta, -1*sinTheta,   sinTheta, cosTheta}
}

func (a Mat2)Mult(b Mat2) Mat2 {
	return Mat2{
		a[0]*b[0] + a[1]*b[2],  a[0]*b[1] + a[1]*b[3],
		a[2]*b[0] + a[3]*b[2],  a[2]*b[1] + a[3]*b[3],
	}
}

func (m Mat2)Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y, m[2]*x + m[3]*y
}

func (m Mat2)Det() float64 { return m[0]*m[3] - m[1]*m[2] }

// At gives FITS-style 1-indexed access, so At(1,2) is CD1_2
func (m Mat2)At(i, j int) float64 { return m[2*(i-1) + (j-1)] }

// WCSMatrix builds the CD matrix for a detector with the given pixel scale
// (arcsec/pixel) at position angle pa (degrees). Unless flip is set, the
// x-scale is negated, so RA decreases as pixel x increases.
//
// If the pixel scale is unknown (zero, negative or NaN) there is no matrix
// to build, and ok is false; callers must leave the CD keywords alone.
func WCSMatrix(pixelScale, pa float64, flip bool) (m Mat2, ok bool) {
	if !(pixelScale > 0) {
		return Mat2{}, false
	}

	s := pixelScale / 3600.0
	xs := -1 * s
	if flip { xs = s }

	return Rotation(pa).Mult(Mat2{xs, 0,   0, s}), true
}

func (m Mat2)String() string {
	return fmt.Sprintf("[[%14.8g, %14.8g], [%14.8g, %14.8g]]", m[0], m[1], m[2], m[3])
}

// Degrees, since that's what every header keyword uses
func Cosd(deg float64) float64 { return math.Cos(deg * math.Pi / 180.0) }
func Sind(deg float64) float64 { return math.Sin(deg * math.Pi / 180.0) }

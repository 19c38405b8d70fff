package emath

import "math"

// Some functions that only operate on basic types, that are useful

// https://www.sjbrown.co.uk/posts/gamma-correct-rendering/ - "linear RGB to sRGB"
// `f` is assumed to be in the range [0,1]
func GammaExpand_F64(f float64) float64 {
	if f <= 0.0031308 {
		return 12.92 * f
	}
	return 1.055 * math.Pow(f, 1.0/2.4) - 0.055
}

// NormalizeDeg folds an angle into [0,360)
func NormalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360.0)
	if deg < 0 { deg += 360.0 }
	return deg
}

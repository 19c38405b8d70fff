package faker

import(
	"math"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/emath"
)

// FWHM in arcsec to Gaussian sigma in arcsec
const fwhmToSigma = 0.42466

// A Location is where to put a source: pixel coords on one extension, or a sky
// position that gets resolved to an extension.
type Location struct {
	X, Y    float64
	RA, Dec float64
	OnSky   bool
}

func Pixel(x, y float64) Location    { return Location{X:x, Y:y} }
func Sky(ra, dec float64) Location   { return Location{RA:ra, Dec:dec, OnSky:true} }

func (ad *AstroFaker)resolve(op string, at Location) (*AstroFaker, float64, float64, error) {
	if at.OnSky {
		return ad.SkyToPixel(at.RA, at.Dec)
	}
	s, err := ad.single(op)
	if err != nil {
		return nil, 0, 0, err
	}
	return s, at.X, at.Y, nil
}

// Star is a circular Gaussian. Give either Amplitude (peak pixel value) or Flux
// (total counts); FWHM is in arcsec and defaults to the seeing.
type Star struct {
	Amplitude float64
	Flux      float64
	FWHM      float64
	At        Location
}

// Galaxy is a Sersic profile convolved with the seeing. N defaults to 4, Re (arcsec)
// to 1, AxisRatio to 1. PA is the position angle of the major axis, in degrees.
type Galaxy struct {
	Amplitude float64
	N         float64
	Re        float64
	AxisRatio float64
	PA        float64
	At        Location
}

// Sersic returns the profile A.exp(-b.(r/re)^(1/n)), with b from the Ciotti &
// Bertin (1999) expansion.
func Sersic(amplitude, re, n float64) func(r float64) float64 {
	m := 1.0 / n
	b := 2*n - 1.0/3 + 4*m/405 + 46*m*m/25515
	return func(r float64) float64 {
		return amplitude * math.Exp(-b * math.Pow(r/re, m))
	}
}

func (ad *AstroFaker)sigmaPixels(op string, fwhm float64) (float64, error) {
	scale := ad.PixelScale()
	if !(scale > 0) {
		return 0, geometryErrorf("%s: pixel scale of '%s' is unknown", op, ad.Filename())
	}
	return fwhmToSigma * fwhm / scale, nil
}

// AddObject adds fn, evaluated at every pixel centre, into a single extension
func (ad *AstroFaker)AddObject(fn func(x, y float64) float64) error {
	s, err := ad.single("AddObject")
	if err != nil {
		return err
	}
	e := s.Ext()
	return e.Data.AddGrid(e.Data.Evaluate(fn))
}

func (ad *AstroFaker)AddStar(star Star) error {
	if star.Amplitude == 0 && star.Flux == 0 {
		return &UnderspecifiedSourceError{Kind: "star", Need: "amplitude or flux"}
	}
	s, x0, y0, err := ad.resolve("AddStar", star.At)
	if err != nil {
		return err
	}

	fwhm := star.FWHM
	if fwhm == 0 { fwhm = s.Seeing() }
	sigma, err := s.sigmaPixels("AddStar", fwhm)
	if err != nil {
		return err
	}

	amplitude := star.Amplitude
	if amplitude == 0 {
		amplitude = star.Flux / (2 * math.Pi * sigma * sigma)
	}

	return s.AddObject(func(x, y float64) float64 {
		dx, dy := x-x0, y-y0
		return amplitude * math.Exp(-0.5 * (dx*dx + dy*dy) / (sigma*sigma))
	})
}

func (ad *AstroFaker)AddGalaxy(g Galaxy) error {
	if g.Amplitude == 0 {
		return &UnderspecifiedSourceError{Kind: "galaxy", Need: "amplitude"}
	}
	if g.N == 0 { g.N = 4 }
	if g.Re == 0 { g.Re = 1 }
	if g.AxisRatio == 0 { g.AxisRatio = 1 }

	s, x0, y0, err := ad.resolve("AddGalaxy", g.At)
	if err != nil {
		return err
	}
	scale := s.PixelScale()
	sigma, err := s.sigmaPixels("AddGalaxy", s.Seeing())
	if err != nil {
		return err
	}

	// Into the galaxy's own frame: shift to its centre, line up the major axis, squash
	toGalaxy := emath.Identity().Scale(g.AxisRatio, 1).Rotate(s.PHU().FloatOr("PA", 0) - g.PA).Translate(-x0, -y0)
	profile := Sersic(g.Amplitude, g.Re/scale, g.N)

	e := s.Ext()
	obj := e.Data.Evaluate(func(x, y float64) float64 {
		gx, gy := toGalaxy.Apply(x, y)
		return profile(math.Hypot(gx, gy))
	})
	return e.Data.AddGrid(obj.GaussianFilter(sigma))
}

package campaign

import(
	"fmt"
	"math/rand/v2"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/faker"
	"github.com/GeminiDRSoftware/AstroFaker/pkg/wcs"
)

// A PerSource value can vary along the sequence of sources (0=first)
type PerSource func(i int) float64

func Constant(v float64) PerSource { return func(int) float64 { return v } }

type StarFieldOptions struct {
	N      int
	Border float64   // pixels to keep clear of each edge; negative lets stars fall off the field
	Radius float64   // arcsec around the pointing; if >0, Border is ignored
	FWHM   PerSource // nil for the seeing
	Flux   PerSource
}

type GalaxyFieldOptions struct {
	N         int
	Border    float64
	Radius    float64
	Amplitude PerSource
	SersicN   float64 // 0 picks 1 (disc) or 4 (bulge) at random
	Re        PerSource
}

// placer draws sky positions that cover base, either uniformly over the area of
// its extensions, or in a disc around its pointing
type placer struct {
	wcss   []*wcs.WCS
	shapes [][2]int
	rng    *rand.Rand

	border        float64
	radius        float64 // pixels
	xbase, ybase  float64
}

func newPlacer(base *faker.AstroFaker, border, radius float64, rng *rand.Rand) (*placer, error) {
	if base.Len() == 0 {
		return nil, faker.GeometryErrorf("'%s' has no extensions to place sources on", base.Filename())
	}
	p := placer{rng:rng, border:border}
	for i:=0; i<base.Len(); i++ {
		s, err := base.Slice(i)
		if err != nil {
			return nil, err
		}
		w, err := s.WCS()
		if err != nil {
			return nil, fmt.Errorf("extension %d of '%s': %v", i, base.Filename(), err)
		}
		nx, ny := s.Ext().Shape()
		p.wcss = append(p.wcss, w)
		p.shapes = append(p.shapes, [2]int{nx, ny})
	}

	if radius > 0 {
		scale := base.PixelScale()
		if !(scale > 0) {
			return nil, faker.GeometryErrorf("pixel scale of '%s' is unknown", base.Filename())
		}
		x, y, err := p.wcss[0].SkyToPixel(base.RA(), base.Dec())
		if err != nil {
			return nil, fmt.Errorf("pointing of '%s': %v", base.Filename(), err)
		}
		p.radius, p.xbase, p.ybase = radius/scale, x, y
	}
	return &p, nil
}

// indices picks the extension for each of n sources, before any positions
func (p *placer)indices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = p.rng.IntN(len(p.wcss))
	}
	return idx
}

func (p *placer)place(index int) (float64, float64) {
	if p.radius > 0 {
		var rx, ry float64
		for {
			rx, ry = 2*p.rng.Float64()-1, 2*p.rng.Float64()-1
			if rx*rx + ry*ry <= 1.0 { break }
		}
		return p.wcss[0].PixelToSky(p.xbase + rx*p.radius, p.ybase + ry*p.radius)
	}

	nx, ny := p.shapes[index][0], p.shapes[index][1]
	y := p.rng.Float64() * (float64(ny) - 2*p.border) + p.border
	x := p.rng.Float64() * (float64(nx) - 2*p.border) + p.border
	return p.wcss[index].PixelToSky(x, y)
}

// MakeStarField builds a list of stars at random positions on (or around) base.
// The list can then be added to every frame of a dither, so they all see the
// same sky.
func MakeStarField(base *faker.AstroFaker, opts StarFieldOptions, rng *rand.Rand) (SourceList, error) {
	if opts.Flux == nil { opts.Flux = Constant(1.0) }
	if opts.FWHM == nil { opts.FWHM = Constant(0) }

	p, err := newPlacer(base, opts.Border, opts.Radius, rng)
	if err != nil {
		return nil, err
	}

	sl := SourceList{}
	for i, index := range p.indices(opts.N) {
		ra, dec := p.place(index)
		sl = append(sl, Source{Kind:"star", RA:ra, Dec:dec, Flux:opts.Flux(i), FWHM:opts.FWHM(i)})
	}
	return sl, nil
}

// MakeGalaxyField is like MakeStarField, with random orientations and shapes too
func MakeGalaxyField(base *faker.AstroFaker, opts GalaxyFieldOptions, rng *rand.Rand) (SourceList, error) {
	if opts.Amplitude == nil { opts.Amplitude = Constant(1.0) }
	if opts.Re == nil { opts.Re = Constant(1.0) }

	p, err := newPlacer(base, opts.Border, opts.Radius, rng)
	if err != nil {
		return nil, err
	}

	sl := SourceList{}
	for i, index := range p.indices(opts.N) {
		ra, dec := p.place(index)
		n := opts.SersicN
		if n == 0 {
			n = 1
			if rng.IntN(2) == 1 { n = 4 }
		}
		sl = append(sl, Source{
			Kind:      "galaxy",
			RA:        ra,
			Dec:       dec,
			Amplitude: opts.Amplitude(i),
			N:         n,
			Re:        opts.Re(i),
			AxisRatio: 0.3 + 0.7*rng.Float64(),
			PA:        180 * rng.Float64(),
		})
	}
	return sl, nil
}

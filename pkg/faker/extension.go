package faker

import(
	"fmt"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/emath"
)

type ExtensionOptions struct {
	Data          *emath.FloatGrid       // if nil, zeros of Shape
	Shape         [2]int                 // nx, ny; zero means the shape of the first extension
	PixelScale    float64                // arcsec/pixel; zero means use the descriptor
	Flip          bool                   // East to the right when North is up
	ExtraKeywords map[string]interface{} // applied to the new header last
	Mask          []uint16
	Variance      *emath.FloatGrid
}

func sectionString(nx, ny int) string { return fmt.Sprintf("[1:%d,1:%d]", nx, ny) }

// AddExtension appends an extension with the basic header keywords. The first
// extension of a frame that has a pointing gets a TAN WCS with its reference
// pixel in the middle; later ones share its CRVAL, with their own CRPIX at their
// centre unless ExtraKeywords say otherwise.
func (ad *AstroFaker)AddExtension(opts ExtensionOptions) error {
	if err := ad.requireWhole("AddExtension"); err != nil {
		return err
	}
	dec, decorated := ad.d.inst.(ExtensionDecorator)
	if decorated {
		dec.PrepareExtension(ad, &opts)
	}

	fr := ad.d.frame
	var data emath.FloatGrid
	if opts.Data != nil {
		data = *opts.Data
	} else {
		nx, ny := opts.Shape[0], opts.Shape[1]
		if nx == 0 && ny == 0 {
			if fr.Len() == 0 {
				return geometryErrorf("must specify a shape if there is no data and no extensions")
			}
			nx, ny = fr.Ext(0).Shape()
		}
		if nx <= 0 || ny <= 0 {
			return geometryErrorf("extension shape %dx%d", nx, ny)
		}
		data = emath.NewFloatGrid(nx, ny)
	}
	if opts.Mask != nil && len(opts.Mask) != data.Len() {
		return geometryErrorf("mask has %d pixels, data has %d", len(opts.Mask), data.Len())
	}
	if opts.Variance != nil && (opts.Variance.Dx() != data.Dx() || opts.Variance.Dy() != data.Dy()) {
		return geometryErrorf("variance is %dx%d, data is %dx%d", opts.Variance.Dx(), opts.Variance.Dy(), data.Dx(), data.Dy())
	}

	e := fr.Append(data)
	e.Mask = opts.Mask
	e.Variance = opts.Variance
	nx, ny := e.Shape()
	h := e.Header

	section := sectionString(nx, ny)
	h.Set("EXTNAME", "SCI")
	h.Set("EXTVER", fr.Len())
	h.Set(ad.KeywordFor(DataSection), section)
	h.Set(ad.KeywordFor(DetectorSection), section)
	h.Set(ad.KeywordFor(ArraySection), section)

	ra, hasRA := ad.PHU().Float("RA")
	dec0, hasDec := ad.PHU().Float("DEC")
	if fr.Len() == 1 && hasRA && hasDec {
		h.Set("CRVAL1", ra)
		h.Set("CRVAL2", dec0)
		h.Set("CTYPE1", "RA---TAN")
		h.Set("CTYPE2", "DEC--TAN")
		h.Set("CRPIX1", 0.5 * float64(nx+1))
		h.Set("CRPIX2", 0.5 * float64(ny+1))
	} else if h0 := fr.Ext(0).Header; fr.Len() > 1 && h0.Has("CRVAL1") && h0.Has("CRVAL2") {
		for _, k := range []string{"CRVAL1", "CRVAL2", "CTYPE1", "CTYPE2"} {
			if v, ok := h0.Get(k); ok { h.Set(k, v) }
		}
		h.Set("CRPIX1", 0.5 * float64(nx+1))
		h.Set("CRPIX2", 0.5 * float64(ny+1))
	}

	scale := opts.PixelScale
	if scale == 0 {
		scale = ad.PixelScale()
	}
	if cd, ok := emath.WCSMatrix(scale, ad.PHU().FloatOr("PA", 0), opts.Flip); ok {
		for i:=1; i<=2; i++ {
			for j:=1; j<=2; j++ {
				h.Set(fmt.Sprintf("CD%d_%d", i, j), cd.At(i, j))
			}
		}
	}

	h.Update(opts.ExtraKeywords)

	if decorated {
		dec.FinishExtension(ad, e)
	}
	return nil
}

// InitDefaultExtensions throws away any extensions and builds the instrument's
// standard detector layout.
func (ad *AstroFaker)InitDefaultExtensions(layout Layout) error {
	if err := ad.requireWhole("InitDefaultExtensions"); err != nil {
		return err
	}
	ad.d.frame.Reset()
	return ad.d.inst.InitDefaultExtensions(ad, layout)
}

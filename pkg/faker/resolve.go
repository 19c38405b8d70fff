package faker

import(
	"fmt"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/wcs"
)

// WCS of a slice's extension
func (ad *AstroFaker)WCS() (*wcs.WCS, error) {
	s, err := ad.single("WCS")
	if err != nil {
		return nil, err
	}
	w, err := wcs.FromHeader(s.Ext().Header)
	if err != nil {
		return nil, fmt.Errorf("extension %d of '%s': %w", s.index, ad.Filename(), err)
	}
	return w, nil
}

// PixelToSky converts 0-indexed pixel coords on a slice to (ra, dec)
func (ad *AstroFaker)PixelToSky(x, y float64) (float64, float64, error) {
	w, err := ad.WCS()
	if err != nil {
		return 0, 0, err
	}
	ra, dec := w.PixelToSky(x, y)
	return ra, dec, nil
}

// SkyToPixel finds where (ra, dec) falls. On a slice (or a frame with only one
// extension) that is simply the WCS answer, on or off the detector. On a frame
// with several extensions, it is the first extension whose pixels cover the
// position; if none do, the error is a *LocationNotFoundError.
func (ad *AstroFaker)SkyToPixel(ra, dec float64) (*AstroFaker, float64, float64, error) {
	if s, err := ad.single("SkyToPixel"); err == nil {
		w, err := s.WCS()
		if err != nil {
			return nil, 0, 0, err
		}
		x, y, err := w.SkyToPixel(ra, dec)
		if err != nil {
			return nil, 0, 0, err
		}
		return s, x, y, nil
	}

	for i, e := range ad.d.frame.Exts {
		w, err := wcs.FromHeader(e.Header)
		if err != nil { continue }
		x, y, err := w.SkyToPixel(ra, dec)
		if err != nil { continue }

		nx, ny := e.Shape()
		if x >= -0.5 && x < float64(nx)-0.5 && y >= -0.5 && y < float64(ny)-0.5 {
			return &AstroFaker{d: ad.d, index: i}, x, y, nil
		}
	}

	return nil, 0, 0, &LocationNotFoundError{RA: ra, Dec: dec}
}

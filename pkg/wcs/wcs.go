package wcs

// A minimal FITS world coordinate system: the gnomonic (TAN) projection with a CD
// matrix, or a plain linear mapping when the CTYPEs say nothing about TAN. Pixel
// coordinates are 0-indexed throughout; the FITS 1-indexed CRPIX is handled here.

import(
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/emath"
)

// Keywords is the view of a header that a WCS needs
type Keywords interface {
	Float(name string) (float64, bool)
	String(name string) (string, bool)
}

type WCS struct {
	CRVAL [2]float64 // degrees
	CRPIX [2]float64 // FITS convention, 1-indexed
	CD    emath.Mat2 // degrees/pixel
	Tan   bool

	inv   emath.Mat2
}

func New(crval, crpix [2]float64, cd emath.Mat2, tan bool) (*WCS, error) {
	w := WCS{CRVAL:crval, CRPIX:crpix, CD:cd, Tan:tan}

	var inv mat.Dense
	if err := inv.Inverse(mat.NewDense(2, 2, []float64{cd[0], cd[1], cd[2], cd[3]})); err != nil {
		return nil, fmt.Errorf("wcs: CD matrix %s cannot be inverted: %v", cd, err)
	}
	w.inv = emath.Mat2{inv.At(0,0), inv.At(0,1), inv.At(1,0), inv.At(1,1)}

	return &w, nil
}

// FromHeader reads CRVALn, CRPIXn and the CD matrix. CDELTn (with no rotation) is
// accepted when there is no CD matrix.
func FromHeader(h Keywords) (*WCS, error) {
	var crval, crpix [2]float64
	for i, n := range []string{"1", "2"} {
		var ok bool
		if crval[i], ok = h.Float("CRVAL"+n); !ok {
			return nil, fmt.Errorf("wcs: no CRVAL%s in header", n)
		}
		if crpix[i], ok = h.Float("CRPIX"+n); !ok {
			return nil, fmt.Errorf("wcs: no CRPIX%s in header", n)
		}
	}

	cd := emath.Mat2{}
	found := false
	for i:=1; i<=2; i++ {
		for j:=1; j<=2; j++ {
			if v, ok := h.Float(fmt.Sprintf("CD%d_%d", i, j)); ok {
				cd[2*(i-1)+(j-1)] = v
				found = true
			}
		}
	}
	if !found {
		d1, ok1 := h.Float("CDELT1")
		d2, ok2 := h.Float("CDELT2")
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("wcs: header has neither CD matrix nor CDELT")
		}
		cd = emath.Mat2{d1, 0,   0, d2}
	}

	ctype1, _ := h.String("CTYPE1")
	ctype2, _ := h.String("CTYPE2")
	tan := strings.HasSuffix(ctype1, "-TAN") && strings.HasSuffix(ctype2, "-TAN")

	return New(crval, crpix, cd, tan)
}

// intermediate world coords (degrees) to pixel offsets from CRPIX, and back
func (w *WCS)toIntermediate(x, y float64) (float64, float64) {
	return w.CD.Apply(x+1-w.CRPIX[0], y+1-w.CRPIX[1])
}

func (w *WCS)fromIntermediate(xi, eta float64) (float64, float64) {
	dx, dy := w.inv.Apply(xi, eta)
	return dx + w.CRPIX[0] - 1, dy + w.CRPIX[1] - 1
}

// PixelToSky maps a 0-indexed pixel position to (ra, dec) in degrees, ra in [0,360)
func (w *WCS)PixelToSky(x, y float64) (float64, float64) {
	xi, eta := w.toIntermediate(x, y)
	if !w.Tan {
		return emath.NormalizeDeg(w.CRVAL[0] + xi), w.CRVAL[1] + eta
	}

	xi, eta = xi*math.Pi/180, eta*math.Pi/180
	ra0, dec0 := w.CRVAL[0]*math.Pi/180, w.CRVAL[1]*math.Pi/180

	d := math.Cos(dec0) - eta*math.Sin(dec0)
	ra := ra0 + math.Atan2(xi, d)
	dec := math.Atan2(math.Sin(dec0) + eta*math.Cos(dec0), math.Hypot(xi, d))

	return emath.NormalizeDeg(ra*180/math.Pi), dec*180/math.Pi
}

// SkyToPixel maps (ra, dec) in degrees to a 0-indexed pixel position. Points more than
// 90 degrees from the tangent point have no projection.
func (w *WCS)SkyToPixel(ra, dec float64) (float64, float64, error) {
	if !w.Tan {
		dra := math.Remainder(ra - w.CRVAL[0], 360)
		x, y := w.fromIntermediate(dra, dec - w.CRVAL[1])
		return x, y, nil
	}

	ra0, dec0 := w.CRVAL[0]*math.Pi/180, w.CRVAL[1]*math.Pi/180
	a, d := ra*math.Pi/180, dec*math.Pi/180

	cosc := math.Sin(dec0)*math.Sin(d) + math.Cos(dec0)*math.Cos(d)*math.Cos(a-ra0)
	if cosc <= 0 {
		return math.NaN(), math.NaN(), fmt.Errorf("wcs: (%.6f,%.6f) is not on the tangent plane at (%.6f,%.6f)",
			ra, dec, w.CRVAL[0], w.CRVAL[1])
	}

	xi  := math.Cos(d) * math.Sin(a-ra0) / cosc
	eta := (math.Cos(dec0)*math.Sin(d) - math.Sin(dec0)*math.Cos(d)*math.Cos(a-ra0)) / cosc

	x, y := w.fromIntermediate(xi*180/math.Pi, eta*180/math.Pi)
	return x, y, nil
}

func (w WCS)String() string {
	proj := "LIN"
	if w.Tan { proj = "TAN" }
	return fmt.Sprintf("wcs{%s, crval=(%.7f,%.7f), crpix=(%.2f,%.2f), cd=%s}",
		proj, w.CRVAL[0], w.CRVAL[1], w.CRPIX[0], w.CRPIX[1], w.CD)
}

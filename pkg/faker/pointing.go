package faker

import(
	"fmt"
	"time"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/emath"
)

// SkyOffset moves the telescope by (dra, ddec) arcsec. The offset keywords in the
// PHU accumulate, and every extension's CRVAL follows. An offset followed by its
// negation leaves the headers as they were.
func (ad *AstroFaker)SkyOffset(dra, ddec float64) error {
	if err := ad.requireWhole("SkyOffset"); err != nil {
		return err
	}
	phu := ad.PHU()
	phu.AddFloat("RAOFFSET", dra)
	phu.AddFloat("DECOFFSE", ddec)

	dx, dy := ad.xyMapping(dra, ddec)
	phu.AddFloat(ad.KeywordFor(TelescopeXOffset), dx)
	phu.AddFloat(ad.KeywordFor(TelescopeYOffset), dy)

	dp, dq := ad.pqMapping(dra, ddec)
	phu.AddFloat("POFFSET", dp)
	phu.AddFloat("QOFFSET", dq)

	cosDec := emath.Cosd(ad.Dec())
	for _, e := range ad.d.frame.Exts {
		if e.Header.Has("CRVAL1") { e.Header.AddFloat("CRVAL1", dra / (3600.0 * cosDec)) }
		if e.Header.Has("CRVAL2") { e.Header.AddFloat("CRVAL2", ddec / 3600.0) }
	}
	return nil
}

// Instrument X,Y offsets run the other way to the sky, in the frame rotated by PA-IAA
func (ad *AstroFaker)xyMapping(dra, ddec float64) (float64, float64) {
	pa := ad.PHU().FloatOr("PA", 0)
	iaa := ad.PHU().FloatOr("IAA", 0)
	dx, dy := emath.Rotation(pa - iaa).Apply(dra, ddec)
	return -dx, -dy
}

func (ad *AstroFaker)pqMapping(dra, ddec float64) (float64, float64) {
	return emath.Rotation(ad.PHU().FloatOr("PA", 0)).Apply(dra, ddec)
}

// Rotate turns the field by angle degrees, rotating each extension's current CD
// matrix in place. Extensions are assumed to share CRVAL.
func (ad *AstroFaker)Rotate(angle float64) error {
	if err := ad.requireWhole("Rotate"); err != nil {
		return err
	}
	r := emath.Rotation(angle)
	keys := []string{"CD1_1", "CD1_2", "CD2_1", "CD2_2"}
	for _, e := range ad.d.frame.Exts {
		if !e.Header.Has("CD1_1") { continue }
		cd := emath.Mat2{}
		for j, k := range keys {
			cd[j] = e.Header.FloatOr(k, 0)
		}
		cd = r.Mult(cd)
		for j, k := range keys {
			e.Header.Set(k, cd[j])
		}
	}
	ad.PHU().Set("PA", emath.NormalizeDeg(ad.PHU().FloatOr("PA", 0) + angle))
	return nil
}

// TimeOffset moves the observation time on by d, writing the result into DATE-OBS
func (ad *AstroFaker)TimeOffset(d time.Duration) error {
	if err := ad.requireWhole("TimeOffset"); err != nil {
		return err
	}
	t, err := ad.ObservationTime()
	if err != nil {
		return fmt.Errorf("TimeOffset: %v", err)
	}
	ad.PHU().Set("DATE-OBS", t.Add(d).Format(DateObsLayout))
	return nil
}

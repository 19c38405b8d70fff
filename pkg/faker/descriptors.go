package faker

import(
	"fmt"
	"math"
	"time"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/emath"
)

// Override pins a descriptor to a value, ahead of anything the headers say. It
// applies to the whole frame, slices included.
func (ad *AstroFaker)Override(name string, value interface{}) { ad.d.overrides[name] = value }
func (ad *AstroFaker)ClearOverride(name string)               { delete(ad.d.overrides, name) }

func (ad *AstroFaker)IsOverridden(name string) bool {
	_, ok := ad.d.overrides[name]
	return ok
}

func (ad *AstroFaker)overrideFloat(name string) (float64, bool) {
	switch v := ad.d.overrides[name].(type) {
	case float64: return v, true
	case int:     return float64(v), true
	}
	return 0, false
}

func (ad *AstroFaker)KeywordFor(concept string) string { return ad.d.inst.KeywordFor(concept) }

// PixelScale in arcsec/pixel: from the CD matrix of the relevant extension if it
// has one, else the instrument's nominal value. 0 if unknown.
func (ad *AstroFaker)PixelScale() float64 {
	if v, ok := ad.overrideFloat(DescPixelScale); ok { return v }

	if i := ad.relevant(); i >= 0 {
		h := ad.d.frame.Ext(i).Header
		cd := emath.Mat2{}
		found := 0
		for j, k := range []string{"CD1_1", "CD1_2", "CD2_1", "CD2_2"} {
			if v, ok := h.Float(k); ok {
				cd[j] = v
				found++
			}
		}
		if found > 0 {
			if s := math.Sqrt(math.Abs(cd.Det())) * 3600; s > 0 { return s }
		}
	}

	return ad.d.inst.NominalPixelScale(ad)
}

// Gain in electrons/ADU: the extension's GAIN keyword, else the instrument's value
func (ad *AstroFaker)Gain() float64 {
	if v, ok := ad.overrideFloat(DescGain); ok { return v }
	i := ad.relevant()
	if i < 0 { return 0 }
	if v, ok := ad.d.frame.Ext(i).Header.Float("GAIN"); ok { return v }
	return ad.d.inst.Gain(&AstroFaker{d: ad.d, index: i})
}

// ReadNoise in electrons: the extension's RDNOISE keyword, else the instrument's value
func (ad *AstroFaker)ReadNoise() float64 {
	if v, ok := ad.overrideFloat(DescReadNoise); ok { return v }
	i := ad.relevant()
	if i < 0 { return 0 }
	if v, ok := ad.d.frame.Ext(i).Header.Float("RDNOISE"); ok { return v }
	return ad.d.inst.ReadNoise(&AstroFaker{d: ad.d, index: i})
}

func (ad *AstroFaker)ExposureTime() float64 {
	if v, ok := ad.overrideFloat(DescExposureTime); ok { return v }
	return ad.PHU().FloatOr(ad.KeywordFor(ExposureTime), 0)
}

func (ad *AstroFaker)RA() float64 {
	if v, ok := ad.overrideFloat(DescRA); ok { return v }
	return ad.PHU().FloatOr("RA", 0)
}

func (ad *AstroFaker)Dec() float64 {
	if v, ok := ad.overrideFloat(DescDec); ok { return v }
	return ad.PHU().FloatOr("DEC", 0)
}

func (ad *AstroFaker)InstrumentName() string {
	if v, ok := ad.d.overrides[DescInstrument].(string); ok { return v }
	if v, ok := ad.PHU().String("INSTRUME"); ok { return v }
	return ad.d.inst.Name()
}

// ObservationTime is read from DATE-OBS and nothing else, so that TimeOffset has
// one place to write.
func (ad *AstroFaker)ObservationTime() (time.Time, error) {
	s, ok := ad.PHU().String("DATE-OBS")
	if !ok {
		return time.Time{}, fmt.Errorf("no DATE-OBS in PHU of '%s'", ad.Filename())
	}
	return parseDateObs(s)
}

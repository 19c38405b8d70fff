package faker

import(
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/emath"
)

func (ad *AstroFaker)normal() distuv.Normal {
	return distuv.Normal{Mu:0, Sigma:1, Src:ad.d.rng}
}

// AddPoissonNoise adds Normal noise with sigma sqrt(counts) to every pixel, scaled
// by scale. Data in ADU (the default if there's no BUNIT) is converted to electrons
// and back with the gain. The variance plane is left alone.
func (ad *AstroFaker)AddPoissonNoise(scale float64) error {
	return ad.each(func(s *AstroFaker) error {
		e := s.Ext()
		div := 1.0
		if isADU(e.Header) {
			gain := s.Gain()
			if !(gain > 0) {
				return fmt.Errorf("AddPoissonNoise: extension %d has gain %v", s.index, gain)
			}
			div = math.Sqrt(gain)
		}

		n := s.normal()
		values := e.Data.Values()
		for i, v := range values {
			values[i] += scale * math.Sqrt(math.Max(v, 0)) * n.Rand() / div
		}
		return nil
	})
}

// AddReadNoise adds Normal noise with sigma the read noise (electrons) to every
// pixel, scaled by scale, and divided by the gain for data in ADU. The variance
// plane is left alone.
func (ad *AstroFaker)AddReadNoise(scale float64) error {
	return ad.each(func(s *AstroFaker) error {
		e := s.Ext()
		div := 1.0
		if isADU(e.Header) {
			if div = s.Gain(); !(div > 0) {
				return fmt.Errorf("AddReadNoise: extension %d has gain %v", s.index, div)
			}
		}

		sigma := scale * s.ReadNoise() / div
		n := s.normal()
		values := e.Data.Values()
		for i := range values {
			values[i] += sigma * n.Rand()
		}
		return nil
	})
}

// ZeroData resets the pixels to zero, with a new shape if one is given, and drops
// any mask and variance.
func (ad *AstroFaker)ZeroData(shape [2]int) error {
	if shape[0] < 0 || shape[1] < 0 || (shape[0] == 0) != (shape[1] == 0) {
		return geometryErrorf("ZeroData shape %v", shape)
	}
	return ad.each(func(s *AstroFaker) error {
		e := s.Ext()
		nx, ny := shape[0], shape[1]
		if nx == 0 {
			nx, ny = e.Shape()
		}
		e.Data = emath.NewFloatGrid(nx, ny)
		e.Mask = nil
		e.Variance = nil
		return nil
	})
}

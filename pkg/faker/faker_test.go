package faker

import(
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/astrodata"
	"github.com/GeminiDRSoftware/AstroFaker/pkg/emath"
)

type testInstrument struct {
	scale float64
}

func (ti testInstrument)Name() string                        { return "TEST" }
func (ti testInstrument)Telescope() string                   { return "Gemini-North" }
func (ti testInstrument)KeywordFor(concept string) string    { return DefaultKeywords[concept] }
func (ti testInstrument)NominalPixelScale(*AstroFaker) float64 { return ti.scale }
func (ti testInstrument)Gain(*AstroFaker) float64            { return 2.0 }
func (ti testInstrument)ReadNoise(*AstroFaker) float64       { return 5.0 }

func (ti testInstrument)AddRequiredPHUKeywords(ad *AstroFaker, mode string) {
	ad.PHU().Set("IAA", 0.0)
	if strings.Contains(mode, "IMAGE") {
		ad.PHU().Set("GRATING", "MIRROR")
	}
}

func (ti testInstrument)InitDefaultExtensions(ad *AstroFaker, layout Layout) error {
	return ad.AddExtension(ExtensionOptions{Shape: [2]int{100, 100}})
}

func newTestFaker(t *testing.T) *AstroFaker {
	t.Helper()
	ad := New(testInstrument{scale: 0.18}, CreateOptions{})
	require.NoError(t, ad.InitDefaultExtensions(Layout{}))
	ad.Seed(1)
	return ad
}

// two 100x100 extensions side by side; extension 1 continues extension 0 to the right
func newTwoExtFaker(t *testing.T) *AstroFaker {
	t.Helper()
	ad := newTestFaker(t)
	require.NoError(t, ad.AddExtension(ExtensionOptions{ExtraKeywords: map[string]interface{}{"CRPIX1": -49.5}}))
	return ad
}

func TestCreate(t *testing.T) {
	ad := New(testInstrument{}, CreateOptions{ExtraKeywords: map[string]interface{}{"OBJECT": "M31", "RA": 10.0}})
	phu := ad.PHU()

	assert.Equal(t, "TEST", ad.InstrumentName())
	assert.Equal(t, DefaultFilename, ad.Filename())
	assert.Equal(t, 0, ad.Len())
	assert.Equal(t, 10.0, ad.RA())
	assert.Equal(t, 0.0, ad.Dec())
	assert.Equal(t, DefaultExptime, ad.ExposureTime())
	for _, k := range []string{"PA", "RAOFFSET", "DECOFFSE", "XOFFSET", "YOFFSET", "POFFSET", "QOFFSET", "IAA"} {
		v, ok := phu.Float(k)
		assert.True(t, ok, k)
		assert.Equal(t, 0.0, v, k)
	}
	s, _ := phu.String("ORIGNAME")
	assert.Equal(t, DefaultFilename, s)
	s, _ = phu.String("GRATING")
	assert.Equal(t, "MIRROR", s)
	s, _ = phu.String("OBJECT")
	assert.Equal(t, "M31", s)
}

func TestCreateFromPHU(t *testing.T) {
	phu := astrodata.NewHeader()
	phu.Set("INSTRUME", "TEST")
	ad := New(testInstrument{}, CreateOptions{PHU: phu, Filename: "x.fits"})

	// nothing added beyond the filename
	assert.Equal(t, []string{"INSTRUME", "ORIGNAME"}, ad.PHU().Keys())
	assert.Equal(t, "x.fits", ad.Filename())
}

func TestAddExtensionHeaders(t *testing.T) {
	ad := newTestFaker(t)
	require.Equal(t, 1, ad.Len())
	h := ad.Frame().Ext(0).Header

	want := map[string]interface{}{
		"EXTNAME": "SCI", "EXTVER": 1,
		"DATASEC": "[1:100,1:100]", "DETSEC": "[1:100,1:100]", "ARRAYSEC": "[1:100,1:100]",
		"CRVAL1": 180.0, "CRVAL2": 0.0, "CTYPE1": "RA---TAN", "CTYPE2": "DEC--TAN",
		"CRPIX1": 50.5, "CRPIX2": 50.5,
		"CD1_1": -0.18/3600, "CD1_2": 0.0, "CD2_1": 0.0, "CD2_2": 0.18/3600,
	}
	if diff := cmp.Diff(want, h.AsMap(), cmpopts.EquateApprox(0, 1e-15)); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 0.18, ad.PixelScale(), 1e-12)
}

func TestAddExtensionFollowsPA(t *testing.T) {
	ad := New(testInstrument{scale: 0.5}, CreateOptions{ExtraKeywords: map[string]interface{}{"PA": 30.0}})
	require.NoError(t, ad.AddExtension(ExtensionOptions{Shape: [2]int{20, 10}, Flip: true}))
	h := ad.Frame().Ext(0).Header

	cd, _ := emath.WCSMatrix(0.5, 30, true)
	for i, k := range []string{"CD1_1", "CD1_2", "CD2_1", "CD2_2"} {
		assert.InDelta(t, cd[i], h.FloatOr(k, math.NaN()), 1e-15, k)
	}
	assert.Equal(t, 10.5, h.FloatOr("CRPIX1", 0))
	assert.Equal(t, 5.5, h.FloatOr("CRPIX2", 0))
}

func TestAddExtensionUnknownScale(t *testing.T) {
	ad := New(testInstrument{}, CreateOptions{})
	require.NoError(t, ad.AddExtension(ExtensionOptions{Shape: [2]int{10, 10}}))
	h := ad.Frame().Ext(0).Header
	assert.True(t, h.Has("CRVAL1"))
	assert.False(t, h.Has("CD1_1"))
	assert.Equal(t, 0.0, ad.PixelScale())

	// so stars can't be sized
	err := ad.AddStar(Star{Flux: 1, At: Pixel(5, 5)})
	var ge *InvalidGeometryError
	assert.ErrorAs(t, err, &ge)
}

func TestAddExtensionShapes(t *testing.T) {
	ad := New(testInstrument{scale: 0.1}, CreateOptions{})
	err := ad.AddExtension(ExtensionOptions{})
	var ge *InvalidGeometryError
	require.ErrorAs(t, err, &ge)

	require.Error(t, ad.AddExtension(ExtensionOptions{Shape: [2]int{-1, 5}}))

	g := emath.NewFloatGrid(7, 3)
	require.NoError(t, ad.AddExtension(ExtensionOptions{Data: &g}))
	require.NoError(t, ad.AddExtension(ExtensionOptions{}))
	nx, ny := ad.Frame().Ext(1).Shape()
	assert.Equal(t, []int{7, 3}, []int{nx, ny})
	extver, _ := ad.Frame().Ext(1).Header.Int("EXTVER")
	assert.Equal(t, 2, extver)

	require.Error(t, ad.AddExtension(ExtensionOptions{Mask: make([]uint16, 5)}))
}

func TestGranularity(t *testing.T) {
	ad := newTwoExtFaker(t)
	slice, err := ad.Slice(1)
	require.NoError(t, err)

	var whole *MustOperateOnWholeFrameError
	assert.ErrorAs(t, slice.SkyOffset(1, 1), &whole)
	assert.ErrorAs(t, slice.Rotate(1), &whole)
	assert.ErrorAs(t, slice.TimeOffset(time.Second), &whole)
	assert.ErrorAs(t, slice.SetSeeing(1), &whole)
	assert.ErrorAs(t, slice.AddExtension(ExtensionOptions{}), &whole)
	_, err = slice.Slice(0)
	assert.ErrorAs(t, err, &whole)

	var single *MustOperateOnSingleExtensionError
	assert.ErrorAs(t, ad.AddObject(func(x, y float64) float64 { return 1 }), &single)
	assert.ErrorAs(t, ad.AddStar(Star{Flux: 1, At: Pixel(1, 1)}), &single)

	// sliceable operations are fine either way
	require.NoError(t, slice.ZeroData([2]int{}))
	require.NoError(t, ad.ZeroData([2]int{}))

	// a whole frame with one extension counts as single
	one := newTestFaker(t)
	require.NoError(t, one.AddObject(func(x, y float64) float64 { return 1 }))
	assert.Equal(t, 10000.0, one.Frame().Ext(0).Data.Sum())
}

func TestSliceWritesThrough(t *testing.T) {
	ad := newTwoExtFaker(t)
	slice, err := ad.Slice(1)
	require.NoError(t, err)
	require.NoError(t, slice.AddObject(func(x, y float64) float64 { return 2 }))

	assert.Equal(t, 0.0, ad.Frame().Ext(0).Data.Sum())
	assert.Equal(t, 20000.0, ad.Frame().Ext(1).Data.Sum())

	_, err = ad.Slice(2)
	assert.Error(t, err)
}

func TestSeeing(t *testing.T) {
	ad := newTestFaker(t)
	assert.Equal(t, DefaultSeeing, ad.Seeing())
	require.NoError(t, ad.SetSeeing(1.2))
	assert.Equal(t, 1.2, ad.Seeing())

	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		var se *InvalidSeeingError
		assert.ErrorAs(t, ad.SetSeeing(v), &se, "%v", v)
	}
	assert.Equal(t, 1.2, ad.Seeing())
}

func TestSkyOffset(t *testing.T) {
	ad := newTestFaker(t)
	require.NoError(t, ad.SkyOffset(3, 4))

	phu := ad.PHU()
	assert.Equal(t, 3.0, phu.FloatOr("RAOFFSET", 0))
	assert.Equal(t, 4.0, phu.FloatOr("DECOFFSE", 0))
	assert.InDelta(t, -3.0, phu.FloatOr("XOFFSET", 0), 1e-12)
	assert.InDelta(t, -4.0, phu.FloatOr("YOFFSET", 0), 1e-12)
	assert.InDelta(t, 3.0, phu.FloatOr("POFFSET", 0), 1e-12)
	assert.InDelta(t, 4.0, phu.FloatOr("QOFFSET", 0), 1e-12)

	h := ad.Frame().Ext(0).Header
	assert.InDelta(t, 180 + 3.0/3600, h.FloatOr("CRVAL1", 0), 1e-12)
	assert.InDelta(t, 4.0/3600, h.FloatOr("CRVAL2", 0), 1e-12)
}

func TestSkyOffsetRotated(t *testing.T) {
	ad := New(testInstrument{scale: 0.1}, CreateOptions{ExtraKeywords: map[string]interface{}{"PA": 90.0, "IAA": 90.0}})
	require.NoError(t, ad.SkyOffset(1, 0))

	// X,Y rotate by PA-IAA = 0, P,Q by PA = 90
	assert.InDelta(t, -1.0, ad.PHU().FloatOr("XOFFSET", 0), 1e-12)
	assert.InDelta(t, 0.0, ad.PHU().FloatOr("YOFFSET", 0), 1e-12)
	assert.InDelta(t, 0.0, ad.PHU().FloatOr("POFFSET", 0), 1e-12)
	assert.InDelta(t, 1.0, ad.PHU().FloatOr("QOFFSET", 0), 1e-12)
}

func TestSkyOffsetIsUndone(t *testing.T) {
	ad := newTwoExtFaker(t)
	require.NoError(t, ad.Rotate(33))
	require.NoError(t, ad.SkyOffset(-7, 2))
	before := ad.Clone()

	require.NoError(t, ad.SkyOffset(12.3, -4.56))
	require.NoError(t, ad.SkyOffset(-12.3, 4.56))

	approx := cmpopts.EquateApprox(0, 1e-9)
	if diff := cmp.Diff(before.PHU().AsMap(), ad.PHU().AsMap(), approx); diff != "" {
		t.Errorf("PHU (-before +after):\n%s", diff)
	}
	for i := range ad.Frame().Exts {
		if diff := cmp.Diff(before.Frame().Ext(i).Header.AsMap(), ad.Frame().Ext(i).Header.AsMap(), approx); diff != "" {
			t.Errorf("extension %d (-before +after):\n%s", i, diff)
		}
	}
}

func TestRotate(t *testing.T) {
	ad := newTwoExtFaker(t)
	before := ad.Clone()

	require.NoError(t, ad.Rotate(360))
	approx := cmpopts.EquateApprox(0, 1e-15)
	for i := range ad.Frame().Exts {
		if diff := cmp.Diff(before.Frame().Ext(i).Header.AsMap(), ad.Frame().Ext(i).Header.AsMap(), approx); diff != "" {
			t.Errorf("extension %d (-before +after):\n%s", i, diff)
		}
	}
	assert.Equal(t, 0.0, ad.PHU().FloatOr("PA", -1))

	require.NoError(t, ad.Rotate(-10))
	assert.InDelta(t, 350.0, ad.PHU().FloatOr("PA", -1), 1e-12)
	assert.InDelta(t, 0.18, ad.PixelScale(), 1e-12)

	// CD is rotated, not rebuilt from PA
	h := ad.Frame().Ext(1).Header
	cd, _ := emath.WCSMatrix(0.18, 350, false)
	assert.InDelta(t, cd[1], h.FloatOr("CD1_2", 0), 1e-15)
}

func TestTimeOffset(t *testing.T) {
	ad := newTestFaker(t)
	require.NoError(t, ad.TimeOffset(25*time.Second))
	s, _ := ad.PHU().String("DATE-OBS")
	assert.Equal(t, "2001-01-01T00:00:25", s)

	require.NoError(t, ad.TimeOffset(1500*time.Millisecond))
	s, _ = ad.PHU().String("DATE-OBS")
	assert.Equal(t, "2001-01-01T00:00:26.5", s)

	tm, err := ad.ObservationTime()
	require.NoError(t, err)
	assert.True(t, tm.Equal(time.Date(2001, 1, 1, 0, 0, 26, 500000000, time.UTC)), "%v", tm)

	ad.PHU().Delete("DATE-OBS")
	assert.Error(t, ad.TimeOffset(time.Second))
}

func TestWCSRoundTripOnFreshFrame(t *testing.T) {
	ad := newTestFaker(t)
	ra, dec, err := ad.PixelToSky(49.5, 49.5)
	require.NoError(t, err)
	assert.InDelta(t, 180.0, ra, 1e-12)
	assert.InDelta(t, 0.0, dec, 1e-12)

	for _, p := range [][2]float64{{0, 0}, {99, 99}, {12.5, 80.25}} {
		ra, dec, err := ad.PixelToSky(p[0], p[1])
		require.NoError(t, err)
		s, x, y, err := ad.SkyToPixel(ra, dec)
		require.NoError(t, err)
		assert.Equal(t, 0, s.Index())
		assert.InDelta(t, p[0], x, 1e-6)
		assert.InDelta(t, p[1], y, 1e-6)
	}
}

func TestResolveAcrossExtensions(t *testing.T) {
	ad := newTwoExtFaker(t)
	slice1, _ := ad.Slice(1)
	ra, dec, err := slice1.PixelToSky(30, 40)
	require.NoError(t, err)

	s, x, y, err := ad.SkyToPixel(ra, dec)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Index())
	assert.InDelta(t, 30.0, x, 1e-6)
	assert.InDelta(t, 40.0, y, 1e-6)

	// The same position seen from extension 0's WCS alone is off its pixels
	slice0, _ := ad.Slice(0)
	_, x, _, err = slice0.SkyToPixel(ra, dec)
	require.NoError(t, err)
	assert.InDelta(t, 130.0, x, 1e-6)

	// Off both
	_, _, _, err = ad.SkyToPixel(180.1, 0)
	var lnf *LocationNotFoundError
	assert.ErrorAs(t, err, &lnf)
	assert.Equal(t, 180.1, lnf.RA)

	// No extensions at all
	empty := New(testInstrument{scale: 0.1}, CreateOptions{})
	_, _, _, err = empty.SkyToPixel(180, 0)
	assert.ErrorAs(t, err, &lnf)

	// A star off the detector doesn't touch anything
	err = ad.AddStar(Star{Flux: 100, At: Sky(180.1, 0)})
	assert.True(t, errors.As(err, &lnf))
	assert.Equal(t, 0.0, ad.Frame().Ext(0).Data.Sum() + ad.Frame().Ext(1).Data.Sum())
}

func TestStarFluxAndPeak(t *testing.T) {
	ad := newTestFaker(t)
	require.NoError(t, ad.AddStar(Star{Flux: 1000, At: Sky(180, 0)}))

	data := ad.Frame().Ext(0).Data
	assert.InDelta(t, 1000.0, data.Sum(), 1.0)
	x, y, _ := data.MaxIdx()
	assert.Contains(t, []int{49, 50}, x)
	assert.Contains(t, []int{49, 50}, y)
}

func TestStarAmplitude(t *testing.T) {
	ad := newTestFaker(t)
	require.NoError(t, ad.AddStar(Star{Amplitude: 50, FWHM: 0.5, At: Pixel(20, 30)}))

	data := ad.Frame().Ext(0).Data
	x, y, v := data.MaxIdx()
	assert.Equal(t, []int{20, 30}, []int{x, y})
	assert.InDelta(t, 50.0, v, 1e-12)

	sigma := 0.42466 * 0.5 / 0.18
	assert.InDelta(t, 50 * 2 * math.Pi * sigma * sigma, data.Sum(), 1e-6)
}

func TestUnderspecifiedSources(t *testing.T) {
	ad := newTestFaker(t)
	var ue *UnderspecifiedSourceError
	assert.ErrorAs(t, ad.AddStar(Star{At: Pixel(1, 1)}), &ue)
	assert.ErrorAs(t, ad.AddGalaxy(Galaxy{N: 1, At: Pixel(1, 1)}), &ue)
}

func TestGalaxy(t *testing.T) {
	ad := newTestFaker(t)
	require.NoError(t, ad.AddGalaxy(Galaxy{Amplitude: 100, At: Pixel(50, 50)}))

	data := ad.Frame().Ext(0).Data
	x, y, v := data.MaxIdx()
	assert.Equal(t, []int{50, 50}, []int{x, y})
	assert.Less(t, v, 100.0)
	assert.Greater(t, v, 0.0)

	// round galaxy, so it is symmetric about its centre
	assert.InDelta(t, data.Get(45, 50), data.Get(55, 50), 1e-9)
	assert.InDelta(t, data.Get(50, 45), data.Get(45, 50), 1e-9)
}

func TestGalaxyIsElongated(t *testing.T) {
	ad := newTestFaker(t)
	require.NoError(t, ad.SetSeeing(0.1))
	require.NoError(t, ad.AddGalaxy(Galaxy{Amplitude: 100, N: 1, Re: 2, AxisRatio: 0.5, At: Pixel(50, 50)}))

	// x is squashed before evaluating, so the profile falls off more slowly along x
	data := ad.Frame().Ext(0).Data
	assert.Greater(t, data.Get(60, 50), data.Get(50, 60))
}

func TestSersic(t *testing.T) {
	f := Sersic(10, 5, 1)
	assert.Equal(t, 10.0, f(0))
	assert.InDelta(t, 10 * math.Exp(-(2 - 1.0/3 + 4.0/405 + 46.0/25515)), f(5), 1e-12)
}

func TestReadNoise(t *testing.T) {
	ad := newTestFaker(t)
	ad.Override(DescGain, 1.0)
	ad.Override(DescReadNoise, 10.0)
	require.NoError(t, ad.AddReadNoise(1))

	mean, std := stat.MeanStdDev(ad.Frame().Ext(0).Data.Values(), nil)
	assert.InDelta(t, 0.0, mean, 0.5)
	assert.InDelta(t, 10.0, std, 0.5)

	// In electrons the gain doesn't matter
	ad = newTestFaker(t)
	ad.Frame().Ext(0).Header.Set("BUNIT", "electron")
	require.NoError(t, ad.AddReadNoise(2))
	_, std = stat.MeanStdDev(ad.Frame().Ext(0).Data.Values(), nil)
	assert.InDelta(t, 10.0, std, 0.5)

	// In ADU it's divided by gain (2), not sqrt(gain)
	ad = newTestFaker(t)
	ad.Frame().Ext(0).Header.Set("BUNIT", "adu")
	require.NoError(t, ad.AddReadNoise(1))
	_, std = stat.MeanStdDev(ad.Frame().Ext(0).Data.Values(), nil)
	assert.InDelta(t, 2.5, std, 0.15)
}

func TestPoissonNoise(t *testing.T) {
	ad := newTestFaker(t)
	v := emath.NewFloatGrid(100, 100)
	ad.Frame().Ext(0).Variance = &v
	require.NoError(t, ad.AddObject(func(x, y float64) float64 { return 400 }))
	require.NoError(t, ad.AddPoissonNoise(1))

	// 400 ADU with gain 2 is 800 electrons; sigma sqrt(800)/2 ADU
	mean, std := stat.MeanStdDev(ad.Frame().Ext(0).Data.Values(), nil)
	assert.InDelta(t, 400.0, mean, 0.5)
	assert.InDelta(t, math.Sqrt(400.0/2), std, 0.05*math.Sqrt(400.0/2))
	assert.Equal(t, 0.0, ad.Frame().Ext(0).Variance.Sum())

	// Zero and negative pixels get no noise
	ad = newTestFaker(t)
	require.NoError(t, ad.AddObject(func(x, y float64) float64 { return -5 }))
	require.NoError(t, ad.AddPoissonNoise(1))
	assert.Equal(t, -50000.0, ad.Frame().Ext(0).Data.Sum())
}

func TestNoiseOnEachExtension(t *testing.T) {
	ad := newTwoExtFaker(t)
	require.NoError(t, ad.AddReadNoise(1))
	d0 := ad.Frame().Ext(0).Data.Values()
	d1 := ad.Frame().Ext(1).Data.Values()
	assert.NotEqual(t, d0[:10], d1[:10], "each extension draws its own noise")
	_, std := stat.MeanStdDev(d1, nil)
	assert.InDelta(t, 2.5, std, 0.15)
}

func TestSeededNoiseIsReproducible(t *testing.T) {
	run := func() []float64 {
		ad := newTestFaker(t)
		ad.Seed(99)
		require.NoError(t, ad.AddObject(func(x, y float64) float64 { return x + y }))
		require.NoError(t, ad.AddPoissonNoise(1))
		require.NoError(t, ad.AddReadNoise(1))
		return ad.Frame().Ext(0).Data.Values()
	}
	assert.Equal(t, run(), run())
}

func TestZeroData(t *testing.T) {
	ad := newTestFaker(t)
	ad.Frame().Ext(0).Mask = make([]uint16, 10000)
	require.NoError(t, ad.AddObject(func(x, y float64) float64 { return 1 }))
	require.NoError(t, ad.ZeroData([2]int{20, 10}))

	e := ad.Frame().Ext(0)
	nx, ny := e.Shape()
	assert.Equal(t, []int{20, 10}, []int{nx, ny})
	assert.Equal(t, 0.0, e.Data.Sum())
	assert.Nil(t, e.Mask)
	assert.Nil(t, e.Variance)

	assert.Error(t, ad.ZeroData([2]int{5, 0}))
}

func TestOverrides(t *testing.T) {
	ad := newTestFaker(t)
	assert.Equal(t, 2.0, ad.Gain())
	ad.Frame().Ext(0).Header.Set("GAIN", 3.0)
	assert.Equal(t, 3.0, ad.Gain())

	ad.Override(DescGain, 7)
	ad.Override(DescPixelScale, 0.5)
	ad.Override(DescInstrument, "OTHER")
	assert.True(t, ad.IsOverridden(DescGain))
	assert.Equal(t, 7.0, ad.Gain())
	assert.Equal(t, 0.5, ad.PixelScale())
	assert.Equal(t, "OTHER", ad.InstrumentName())

	slice, _ := ad.Slice(0)
	assert.Equal(t, 7.0, slice.Gain())

	ad.ClearOverride(DescGain)
	ad.ClearOverride(DescPixelScale)
	assert.Equal(t, 3.0, ad.Gain())
	assert.InDelta(t, 0.18, ad.PixelScale(), 1e-12)
	assert.Equal(t, 5.0, ad.ReadNoise())
}

func TestCloneIsIndependent(t *testing.T) {
	ad := newTestFaker(t)
	ad.Override(DescGain, 4.0)
	c := ad.Clone()

	require.NoError(t, c.SkyOffset(10, 10))
	require.NoError(t, c.SetSeeing(2))
	require.NoError(t, c.AddObject(func(x, y float64) float64 { return 1 }))
	c.Override(DescGain, 1.0)
	c.UpdateFilename("_1")
	require.NoError(t, c.AddExtension(ExtensionOptions{}))

	assert.Equal(t, 0.0, ad.PHU().FloatOr("RAOFFSET", -1))
	assert.Equal(t, 180.0, ad.Frame().Ext(0).Header.FloatOr("CRVAL1", -1))
	assert.Equal(t, DefaultSeeing, ad.Seeing())
	assert.Equal(t, 0.0, ad.Frame().Ext(0).Data.Sum())
	assert.Equal(t, 4.0, ad.Gain())
	assert.Equal(t, DefaultFilename, ad.Filename())
	assert.Equal(t, 1, ad.Len())
	assert.Equal(t, 2, c.Len())
}

func TestWrite(t *testing.T) {
	ad := newTestFaker(t)
	dir := t.TempDir()
	filename, err := ad.Write(dir)
	require.NoError(t, err)
	assert.FileExists(t, filename)

	// again, over the top
	_, err = ad.Write(dir)
	require.NoError(t, err)

	slice, _ := ad.Slice(0)
	_, err = slice.Write(dir)
	assert.Error(t, err)
}

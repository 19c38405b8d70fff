package instruments

import(
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/astrodata"
	"github.com/GeminiDRSoftware/AstroFaker/pkg/faker"
)

func create(t *testing.T, name string, extra map[string]interface{}) *faker.AstroFaker {
	t.Helper()
	ad, err := Create(name, faker.CreateOptions{ExtraKeywords: extra})
	require.NoError(t, err)
	return ad
}

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{"F2", "GMOS-N", "GMOS-S", "GNIRS", "GSAOI", "NIRI"}, Names())

	inst, err := Lookup("gmos-s")
	require.NoError(t, err)
	assert.Equal(t, "GMOS-S", inst.Name())

	_, err = Create("HST", faker.CreateOptions{})
	var ue *faker.UnknownInstrumentError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "HST", ue.Name)
}

func TestRequiredPHUKeywords(t *testing.T) {
	tests := []struct{
		name      string
		telescope string
		iaa       float64
		extra     map[string]interface{}
	}{
		{"F2", "Gemini-South", 0.117, map[string]interface{}{"GRISM": "Open", "CD3_3": 1}},
		{"GMOS-N", "Gemini-North", 179.901, map[string]interface{}{"GRATING": "MIRROR"}},
		{"GMOS-S", "Gemini-South", 359.9, map[string]interface{}{"GRATING": "MIRROR"}},
		{"GNIRS", "Gemini-North", 89.747, nil},
		{"GSAOI", "Gemini-South", 0.959, nil},
		{"NIRI", "Gemini-North", 270.56, nil},
	}
	for _, tc := range tests {
		ad := create(t, tc.name, nil)
		phu := ad.PHU()
		s, _ := phu.String("INSTRUME")
		assert.Equal(t, tc.name, s)
		s, _ = phu.String("TELESCOP")
		assert.Equal(t, tc.telescope, s, tc.name)
		assert.Equal(t, tc.iaa, phu.FloatOr("IAA", -1), tc.name)
		assert.Equal(t, 10.0, ad.ExposureTime(), tc.name)
		for k, v := range tc.extra {
			got, _ := phu.Get(k)
			assert.Equal(t, v, got, "%s %s", tc.name, k)
		}
	}
}

func TestModeIsChecked(t *testing.T) {
	ad, err := Create("GMOS-N", faker.CreateOptions{Mode: "MOS"})
	require.NoError(t, err)
	assert.False(t, ad.PHU().Has("GRATING"))
}

func TestFromPHU(t *testing.T) {
	phu := astrodata.NewHeader()
	phu.Set("INSTRUME", "GNIRS")
	phu.Set("RA", 12.0)
	ad, err := Create("", faker.CreateOptions{PHU: phu})
	require.NoError(t, err)
	assert.Equal(t, "GNIRS", ad.Instrument().Name())
	assert.False(t, ad.PHU().Has("IAA"))

	phu = astrodata.NewHeader()
	_, err = FromPHU(phu, faker.CreateOptions{})
	assert.Error(t, err)
}

func TestF2Extensions(t *testing.T) {
	ad := create(t, "F2", nil)
	require.NoError(t, ad.InitDefaultExtensions(faker.Layout{}))
	require.Equal(t, 1, ad.Len())
	nx, ny := ad.Frame().Ext(0).Shape()
	assert.Equal(t, []int{2048, 2048}, []int{nx, ny})
	assert.InDelta(t, 0.179, ad.PixelScale(), 1e-12)
}

func TestGNIRSExtensions(t *testing.T) {
	ad := create(t, "GNIRS", nil)
	require.NoError(t, ad.InitDefaultExtensions(faker.Layout{}))
	nx, ny := ad.Frame().Ext(0).Shape()
	assert.Equal(t, []int{1024, 1022}, []int{nx, ny})
	assert.InDelta(t, 0.15, ad.PixelScale(), 1e-12)
}

func TestGSAOIExtensions(t *testing.T) {
	ad := create(t, "GSAOI", nil)
	require.NoError(t, ad.InitDefaultExtensions(faker.Layout{}))
	require.Equal(t, 4, ad.Len())

	want := [][2]float64{{-500, 3000}, {1650, 3000}, {1650, 850}, {-500, 850}}
	for i, w := range want {
		h := ad.Frame().Ext(i).Header
		assert.Equal(t, w[0], h.FloatOr("CRPIX1", 0), "ext %d", i)
		assert.Equal(t, w[1], h.FloatOr("CRPIX2", 0), "ext %d", i)
		assert.Equal(t, 180.0, h.FloatOr("CRVAL1", 0), "ext %d", i)
	}
	assert.InDelta(t, 0.0195, ad.PixelScale(), 1e-12)

	// the pointing lands on the third array, at its CRPIX
	s, x, y, err := ad.SkyToPixel(180, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Index())
	assert.InDelta(t, 1649.0, x, 1e-6)
	assert.InDelta(t, 849.0, y, 1e-6)

	// 20" East and 10" North of it is off the end of that one, and on the fourth
	s, _, _, err = ad.SkyToPixel(180 - 20.0/3600, 10.0/3600)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Index())
}

func TestGMOSExtensions(t *testing.T) {
	ad := create(t, "GMOS-N", nil)
	require.NoError(t, ad.InitDefaultExtensions(faker.Layout{}))
	require.Equal(t, 3, ad.Len())
	nx, ny := ad.Frame().Ext(0).Shape()
	assert.Equal(t, []int{1024, 2088}, []int{nx, ny})
	assert.InDelta(t, 0.1614, ad.PixelScale(), 1e-12)

	s, _ := ad.Frame().Ext(2).Header.String("DETSEC")
	assert.Equal(t, "[4097:6144,1:4176]", s)

	// The middle of the middle CCD is the pointing
	mid, _ := ad.Slice(1)
	ra, dec, err := mid.PixelToSky(0.5*1025-1, 0.5*2089-1)
	require.NoError(t, err)
	assert.InDelta(t, 180.0, ra, 1e-10)
	assert.InDelta(t, 0.0, dec, 1e-10)

	// The left CCD continues to the right, across the gap, into the middle one
	left, _ := ad.Slice(0)
	ra0, dec0, err := left.PixelToSky(1024 + 67.0/2, 100)
	require.NoError(t, err)
	ra1, dec1, err := mid.PixelToSky(0, 100)
	require.NoError(t, err)
	assert.InDelta(t, ra1, ra0, 1e-10)
	assert.InDelta(t, dec1, dec0, 1e-10)
}

func TestGMOSBinning(t *testing.T) {
	ad := create(t, "GMOS-S", nil)
	require.NoError(t, ad.InitDefaultExtensions(faker.Layout{XBin: 4}))
	nx, ny := ad.Frame().Ext(1).Shape()
	assert.Equal(t, []int{512, 1044}, []int{nx, ny})
	assert.InDelta(t, 0.32, ad.PixelScale(), 1e-12)
	s, _ := ad.Frame().Ext(1).Header.String("CCDSUM")
	assert.Equal(t, "4 4", s)

	var ge *faker.InvalidGeometryError
	assert.ErrorAs(t, ad.InitDefaultExtensions(faker.Layout{XBin: 3}), &ge)
	assert.ErrorAs(t, ad.InitDefaultExtensions(faker.Layout{XBin: 1, YBin: 2}), &ge)
}

func TestNIRIExtensions(t *testing.T) {
	ad := create(t, "NIRI", nil)
	require.NoError(t, ad.InitDefaultExtensions(faker.Layout{ROISize: 512}))
	require.Equal(t, 1, ad.Len())

	h := ad.Frame().Ext(0).Header
	nx, ny := ad.Frame().Ext(0).Shape()
	assert.Equal(t, []int{512, 512}, []int{nx, ny})
	for _, k := range []string{"DATASEC", "DETSEC", "ARRAYSEC"} {
		assert.False(t, h.Has(k), k)
	}
	for k, v := range map[string]int{"LOWROW": 0, "HIROW": 511, "LOWCOL": 0, "HICOL": 511} {
		got, ok := h.Int(k)
		assert.True(t, ok, k)
		assert.Equal(t, v, got, k)
	}
	assert.InDelta(t, 0.1171, ad.PixelScale(), 1e-12)
	assert.Less(t, h.FloatOr("CD1_1", 0), 0.0)
}

func TestNIRIAddExtensionDefaults(t *testing.T) {
	ad := create(t, "NIRI", nil)
	extra := map[string]interface{}{"OBJECT": "x"}
	require.NoError(t, ad.AddExtension(faker.ExtensionOptions{ExtraKeywords: extra}))
	nx, _ := ad.Frame().Ext(0).Shape()
	assert.Equal(t, 1024, nx)
	assert.Len(t, extra, 1, "caller's keywords untouched")
	hicol, _ := ad.Frame().Ext(0).Header.Int("HICOL")
	assert.Equal(t, 1023, hicol)
}

func TestNIRIPorts(t *testing.T) {
	ad := create(t, "NIRI", map[string]interface{}{"INPORT": 1})
	require.NoError(t, ad.InitDefaultExtensions(faker.Layout{FRatio: 14}))
	assert.Greater(t, ad.Frame().Ext(0).Header.FloatOr("CD1_1", 0), 0.0, "bottom port flips")
	assert.InDelta(t, 0.499, ad.PixelScale(), 1e-12)

	ad = create(t, "NIRI", map[string]interface{}{"INPORT": 1, "AOFOLD": "IN"})
	require.NoError(t, ad.InitDefaultExtensions(faker.Layout{FRatio: 32, ROISize: 768}))
	assert.Less(t, ad.Frame().Ext(0).Header.FloatOr("CD1_1", 0), 0.0, "AO doesn't flip")
	assert.InDelta(t, 0.0214, ad.PixelScale(), 1e-12)
}

func TestNIRIInvalidLayouts(t *testing.T) {
	var ge *faker.InvalidGeometryError

	ad := create(t, "NIRI", nil)
	assert.ErrorAs(t, ad.InitDefaultExtensions(faker.Layout{FRatio: 7}), &ge)
	assert.ErrorAs(t, ad.InitDefaultExtensions(faker.Layout{ROISize: 100}), &ge)

	ad = create(t, "NIRI", map[string]interface{}{"AOFOLD": "IN", "INPORT": 1})
	assert.ErrorAs(t, ad.InitDefaultExtensions(faker.Layout{FRatio: 6}), &ge)

	ad = create(t, "NIRI", map[string]interface{}{"AOFOLD": "IN", "INPORT": 3})
	assert.ErrorAs(t, ad.InitDefaultExtensions(faker.Layout{FRatio: 32}), &ge)
	assert.Equal(t, 0, ad.Len())
}

func TestOpen(t *testing.T) {
	ad := create(t, "NIRI", nil)
	require.NoError(t, ad.InitDefaultExtensions(faker.Layout{ROISize: 512}))
	require.NoError(t, ad.AddStar(faker.Star{Flux: 1000, At: faker.Sky(180, 0)}))
	filename, err := ad.Write(t.TempDir())
	require.NoError(t, err)

	ad2, err := Open(filename)
	require.NoError(t, err)
	assert.Equal(t, "NIRI", ad2.InstrumentName())
	require.Equal(t, 1, ad2.Len())
	assert.InDelta(t, 1000.0, ad2.Frame().Ext(0).Data.Sum(), 1.0)
	assert.InDelta(t, 0.1171, ad2.PixelScale(), 1e-9)
}

package instruments

import(
	"strings"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/astrodata"
	"github.com/GeminiDRSoftware/AstroFaker/pkg/faker"
)

// arcsec/pixel for each camera f/ratio
var niriPixelScales = map[int]float64{6: 0.1171, 14: 0.499, 32: 0.0219}

const(
	niriAOPixelScale = 0.0214
	niriDefaultSize  = 1024
)

type NIRI struct {
	gemini
}

func newNIRI() *NIRI {
	n := NIRI{newGemini("NIRI")}
	n.iaa = 270.56
	n.scale = niriPixelScales[6]
	n.gain = 12.3
	n.readNoise = 35.0
	return &n
}

// isAO is true when the AO fold mirror is in the beam
func isAO(ad *faker.AstroFaker) bool {
	fold, _ := ad.PHU().String("AOFOLD")
	return strings.ToUpper(strings.TrimSpace(fold)) == "IN"
}

// NominalPixelScale follows the CAMERA keyword (f6, f14, f32) when there is one
func (n *NIRI)NominalPixelScale(ad *faker.AstroFaker) float64 {
	camera, _ := ad.PHU().String("CAMERA")
	switch strings.ToLower(strings.TrimSpace(camera)) {
	case "f14": return niriPixelScales[14]
	case "f32":
		if isAO(ad) { return niriAOPixelScale }
		return niriPixelScales[32]
	}
	return n.scale
}

// InitDefaultExtensions builds one square ROI for the camera in use. AO needs the
// f/32 camera and the bottom port; without AO, the bottom port flips the image.
func (n *NIRI)InitDefaultExtensions(ad *faker.AstroFaker, layout faker.Layout) error {
	fratio, roi := layout.FRatio, layout.ROISize
	if fratio == 0 { fratio = 6 }
	if roi == 0 { roi = niriDefaultSize }

	scale, ok := niriPixelScales[fratio]
	if !ok {
		return faker.GeometryErrorf("invalid NIRI f/ratio %d", fratio)
	}
	inport, _ := ad.PHU().Int("INPORT")
	ao := isAO(ad)
	if ao {
		if fratio != 32 {
			return faker.GeometryErrorf("AO used without f/32 setting")
		}
		if inport != 1 {
			return faker.GeometryErrorf("AO observations require the bottom port")
		}
		scale = niriAOPixelScale
	}
	if roi != 512 && roi != 768 && roi != 1024 {
		return faker.GeometryErrorf("invalid NIRI roi_size %d", roi)
	}

	return ad.AddExtension(faker.ExtensionOptions{
		Shape:      [2]int{roi, roi},
		PixelScale: scale,
		Flip:       inport == 1 && !ao,
	})
}

// PrepareExtension gives NIRI defaults, and describes the array the NIRI way, by
// its first and last rows and columns.
func (n *NIRI)PrepareExtension(ad *faker.AstroFaker, opts *faker.ExtensionOptions) {
	if opts.Data == nil && opts.Shape == [2]int{} {
		opts.Shape = [2]int{niriDefaultSize, niriDefaultSize}
	}
	if opts.PixelScale == 0 {
		opts.PixelScale = n.NominalPixelScale(ad)
	}

	nx, ny := opts.Shape[0], opts.Shape[1]
	if opts.Data != nil {
		nx, ny = opts.Data.Dx(), opts.Data.Dy()
	}

	// don't write into the caller's map
	extra := map[string]interface{}{"LOWROW": 0, "HIROW": ny-1, "LOWCOL": 0, "HICOL": nx-1}
	for k, v := range opts.ExtraKeywords {
		extra[k] = v
	}
	opts.ExtraKeywords = extra
}

// FinishExtension drops the section keywords, which NIRI doesn't use
func (n *NIRI)FinishExtension(ad *faker.AstroFaker, ext *astrodata.Extension) {
	for _, c := range []string{faker.ArraySection, faker.DataSection, faker.DetectorSection} {
		ext.Header.Delete(n.KeywordFor(c))
	}
}

package instruments

import(
	"fmt"
	"strings"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/faker"
)

const(
	gmosCCDWidth  = 2048 // unbinned pixels
	gmosCCDHeight = 4176
	gmosNumCCDs   = 3
	gmosDefaultBin = 2
)

// GMOS is either GMOS-N or GMOS-S: three CCDs side by side, with gaps
type GMOS struct {
	gemini
	chipGap int // unbinned pixels
}

func newGMOS(name string) *GMOS {
	g := GMOS{gemini: newGemini(name)}
	if name == "GMOS-N" {
		g.iaa, g.scale, g.gain, g.readNoise, g.chipGap = 179.901, 0.0807, 1.63, 4.14, 67
	} else {
		g.iaa, g.scale, g.gain, g.readNoise, g.chipGap = 359.9, 0.08, 1.83, 3.98, 61
	}
	return &g
}

func (g *GMOS)AddRequiredPHUKeywords(ad *faker.AstroFaker, mode string) {
	g.gemini.AddRequiredPHUKeywords(ad, mode)
	if strings.Contains(mode, "IMAGE") {
		ad.PHU().Set("GRATING", "MIRROR")
	}
}

// NominalPixelScale is per binned pixel
func (g *GMOS)NominalPixelScale(ad *faker.AstroFaker) float64 {
	xbin, _ := gmosBinning(ad)
	return g.scale * float64(xbin)
}

// gmosBinning comes from CCDSUM, on the first extension if there is one
func gmosBinning(ad *faker.AstroFaker) (int, int) {
	ccdsum, ok := ad.PHU().String("CCDSUM")
	if f := ad.Frame(); f.Len() > 0 {
		if s, found := f.Ext(0).Header.String("CCDSUM"); found { ccdsum, ok = s, true }
	}
	xbin, ybin := 1, 1
	if ok {
		fmt.Sscanf(ccdsum, "%d %d", &xbin, &ybin)
	}
	return xbin, ybin
}

func validBin(b int) bool { return b == 1 || b == 2 || b == 4 }

// InitDefaultExtensions lays the CCDs out left to right, with the middle of the
// middle CCD at the pointing.
func (g *GMOS)InitDefaultExtensions(ad *faker.AstroFaker, layout faker.Layout) error {
	xbin, ybin := layout.XBin, layout.YBin
	if xbin == 0 { xbin = gmosDefaultBin }
	if ybin == 0 { ybin = xbin }
	if !validBin(xbin) || !validBin(ybin) {
		return faker.GeometryErrorf("GMOS binning %dx%d, must be 1, 2 or 4", xbin, ybin)
	}
	if xbin != ybin {
		return faker.GeometryErrorf("GMOS imaging binning %dx%d must be square", xbin, ybin)
	}

	nx, ny := gmosCCDWidth/xbin, gmosCCDHeight/ybin
	step := float64(nx) + float64(g.chipGap)/float64(xbin)
	ccdsum := fmt.Sprintf("%d %d", xbin, ybin)
	ad.PHU().Set("CCDSUM", ccdsum)

	for i:=0; i<gmosNumCCDs; i++ {
		err := ad.AddExtension(faker.ExtensionOptions{
			Shape:      [2]int{nx, ny},
			PixelScale: g.scale * float64(xbin),
			ExtraKeywords: map[string]interface{}{
				"CCDSUM":   ccdsum,
				"CCDNAME":  fmt.Sprintf("CCD%d", i+1),
				"CRPIX1":   0.5*float64(nx+1) + float64(1-i)*step,
				"CRPIX2":   0.5*float64(ny+1),
				g.KeywordFor(faker.DetectorSection): fmt.Sprintf("[%d:%d,1:%d]", i*gmosCCDWidth+1, (i+1)*gmosCCDWidth, gmosCCDHeight),
				g.KeywordFor(faker.ArraySection):    fmt.Sprintf("[1:%d,1:%d]", gmosCCDWidth, gmosCCDHeight),
			},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

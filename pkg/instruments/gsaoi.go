package instruments

import "github.com/GeminiDRSoftware/AstroFaker/pkg/faker"

type GSAOI struct {
	gemini
}

func newGSAOI() *GSAOI {
	g := GSAOI{newGemini("GSAOI")}
	g.iaa = 0.959
	g.scale = 0.0195
	g.gain = 2.4
	g.readNoise = 26.0
	return &g
}

// InitDefaultExtensions builds the four 2048x2048 arrays. Real GSAOI headers have
// no consistent offsets between the arrays' CRPIXs; these are values seen in the
// wild.
func (g *GSAOI)InitDefaultExtensions(ad *faker.AstroFaker, layout faker.Layout) error {
	for i:=0; i<4; i++ {
		crpix1 := 1650.0
		if i == 0 || i == 3 { crpix1 = -500.0 }
		crpix2 := 850.0
		if i < 2 { crpix2 = 3000.0 }

		err := ad.AddExtension(faker.ExtensionOptions{
			Shape:         [2]int{2048, 2048},
			PixelScale:    g.scale,
			ExtraKeywords: map[string]interface{}{"CRPIX1": crpix1, "CRPIX2": crpix2},
		})
		if err != nil {
			return err
		}
	}
	return nil
}

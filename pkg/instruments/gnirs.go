package instruments

import "github.com/GeminiDRSoftware/AstroFaker/pkg/faker"

type GNIRS struct {
	gemini
}

func newGNIRS() *GNIRS {
	g := GNIRS{newGemini("GNIRS")}
	g.iaa = 89.747
	g.scale = 0.15 // short camera
	g.gain = 13.5
	g.readNoise = 7.0
	return &g
}

// One 1024x1022 array (the last two rows are never read)
func (g *GNIRS)InitDefaultExtensions(ad *faker.AstroFaker, layout faker.Layout) error {
	return ad.AddExtension(faker.ExtensionOptions{Shape: [2]int{1024, 1022}})
}

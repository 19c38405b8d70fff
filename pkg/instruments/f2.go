package instruments

import(
	"strings"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/faker"
)

type F2 struct {
	gemini
}

func newF2() *F2 {
	f := F2{newGemini("F2")}
	f.iaa = 0.117
	f.scale = 0.179
	f.gain = 4.44
	f.readNoise = 11.7
	return &f
}

func (f *F2)AddRequiredPHUKeywords(ad *faker.AstroFaker, mode string) {
	f.gemini.AddRequiredPHUKeywords(ad, mode)
	ad.PHU().Set("CD3_3", 1)
	if strings.Contains(mode, "IMAGE") {
		ad.PHU().Set("GRISM", "Open")
	}
}

// One 2048x2048 detector
func (f *F2)InitDefaultExtensions(ad *faker.AstroFaker, layout faker.Layout) error {
	return ad.AddExtension(faker.ExtensionOptions{Shape: [2]int{2048, 2048}, PixelScale: 0.179})
}

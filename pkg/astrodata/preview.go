package astrodata

import(
	"fmt"
	"image"
	"image/color"
	"log"
	"os"

	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
)

// HDRImage presents an extension's data plane as a monochrome HDR image, so it can
// be looked at in an HDR viewer without any stretch. Row 0 of the data is the
// bottom of the picture. RGBE has no negative numbers, so noise below zero is
// clipped.
type HDRImage struct {
	*Extension
}

// Implement image.Image
func (hi HDRImage)ColorModel() color.Model { return hdrcolor.RGBModel }
func (hi HDRImage)Bounds() image.Rectangle { return image.Rect(0, 0, hi.Data.Dx(), hi.Data.Dy()) }
func (hi HDRImage)At(x, y int) color.Color { return hi.HDRAt(x,y) }

// Implement hdr.Image
func (hi HDRImage)Size() int               { return hi.Data.Len() }
func (hi HDRImage)HDRAt(x, y int) hdrcolor.Color {
	v := hi.Data.Get(x, hi.Data.Dy()-1-y)
	if v < 0 { v = 0 }
	return hdrcolor.RGB{R: v, G: v, B: v}
}

// WriteHDR writes extension i as a Radiance .hdr file
func (fr *Frame)WriteHDR(i int, filename string) error {
	if i < 0 || i >= fr.Len() {
		return fmt.Errorf("WriteHDR: no extension %d in '%s'", i, fr.Filename)
	}
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("WriteHDR, open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		err := rgbe.Encode(writer, HDRImage{fr.Ext(i)})
		if err != nil {
			log.Printf("WriteHDR, encoding RGBE file: %v\n", err)
		}
		return err
	}
}

// WritePNG writes extension i as a stretched grayscale PNG, titled with the filename
func (fr *Frame)WritePNG(i int, filename string) error {
	if i < 0 || i >= fr.Len() {
		return fmt.Errorf("WritePNG: no extension %d in '%s'", i, fr.Filename)
	}
	title := fmt.Sprintf("%s [%d]", fr.Filename, i+1)
	return fr.Ext(i).Data.ToImg(title, filename)
}

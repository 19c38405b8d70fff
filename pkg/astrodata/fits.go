package astrodata

import(
	"fmt"
	"io"
	"os"

	"github.com/astrogo/fitsio"

	"github.com/GeminiDRSoftware/AstroFaker/pkg/emath"
)

// Keywords that the FITS encoder owns; we never copy these in or out.
var structural = map[string]bool{
	"SIMPLE":true, "BITPIX":true, "NAXIS":true, "NAXIS1":true, "NAXIS2":true, "NAXIS3":true,
	"EXTEND":true, "XTENSION":true, "PCOUNT":true, "GCOUNT":true, "END":true,
	"BSCALE":true, "BZERO":true,
}

func toCards(h *Header) []fitsio.Card {
	cards := []fitsio.Card{}
	for _, c := range h.cards {
		if structural[c.Name] { continue }
		cards = append(cards, fitsio.Card{Name:c.Name, Value:c.Value, Comment:c.Comment})
	}
	return cards
}

func fromCards(fh *fitsio.Header) *Header {
	h := NewHeader()
	for _, k := range fh.Keys() {
		if structural[k] { continue }
		if c := fh.Get(k); c != nil {
			h.Set(c.Name, c.Value)
			h.SetComment(c.Name, c.Comment)
		}
	}
	return h
}

func writeImage(f *fitsio.File, bitpix int, axes []int, h *Header, data interface{}) error {
	im := fitsio.NewImage(bitpix, axes)
	defer im.Close()

	if err := im.Header().Append(toCards(h)...); err != nil {
		return err
	}
	if data != nil {
		if err := im.Write(data); err != nil {
			return err
		}
	}
	return f.Write(im)
}

// Encode streams the frame as a multi-extension FITS file. Each extension becomes a
// SCI image; variance and mask planes follow it as VAR and DQ images with the same
// EXTVER.
func (fr *Frame)Encode(w io.Writer) error {
	f, err := fitsio.Create(w)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := writeImage(f, 8, nil, fr.PHU, nil); err != nil {
		return fmt.Errorf("writing PHU: %v", err)
	}

	for i, e := range fr.Exts {
		nx, ny := e.Shape()
		axes := []int{nx, ny}
		extver := i+1
		if v, ok := e.Header.Int("EXTVER"); ok { extver = v }

		if err := writeImage(f, -64, axes, e.Header, e.Data.Values()); err != nil {
			return fmt.Errorf("writing extension %d: %v", i, err)
		}

		if e.Variance != nil {
			vh := NewHeader()
			vh.Update(map[string]interface{}{"EXTNAME":"VAR", "EXTVER":extver})
			if err := writeImage(f, -64, axes, vh, e.Variance.Values()); err != nil {
				return fmt.Errorf("writing variance %d: %v", i, err)
			}
		}

		if e.Mask != nil {
			dq := make([]int32, len(e.Mask))
			for j, m := range e.Mask {
				dq[j] = int32(m)
			}
			dh := NewHeader()
			dh.Update(map[string]interface{}{"EXTNAME":"DQ", "EXTVER":extver})
			if err := writeImage(f, 32, axes, dh, dq); err != nil {
				return fmt.Errorf("writing mask %d: %v", i, err)
			}
		}
	}

	return nil
}

func (fr *Frame)WriteFile(filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		if err := fr.Encode(writer); err != nil {
			return fmt.Errorf("encoding '%s': %v", filename, err)
		}
		return nil
	}
}

// Decode reads a FITS file written by Encode. Only SCI images become extensions;
// other image HDUs are skipped.
func Decode(r io.Reader, filename string) (*Frame, error) {
	f, err := fitsio.Open(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	hdus := f.HDUs()
	if len(hdus) == 0 {
		return nil, fmt.Errorf("no HDUs in '%s'", filename)
	}

	fr := NewFrame(fromCards(hdus[0].Header()), filename)
	for i, hdu := range hdus[1:] {
		img, ok := hdu.(fitsio.Image)
		if !ok { continue }
		h := fromCards(hdu.Header())
		if name, _ := h.String("EXTNAME"); name != "SCI" { continue }

		axes := hdu.Header().Axes()
		if len(axes) != 2 {
			return nil, fmt.Errorf("HDU %d of '%s' has %d axes, want 2", i+1, filename, len(axes))
		}
		var values []float64
		if err := img.Read(&values); err != nil {
			return nil, fmt.Errorf("HDU %d of '%s': %v", i+1, filename, err)
		}
		g, err := emath.NewFloatGridFrom(axes[0], values)
		if err != nil {
			return nil, err
		}
		e := fr.Append(g)
		e.Header = h
	}

	return fr, nil
}

func ReadFile(filename string) (*Frame, error) {
	if reader, err := os.Open(filename); err != nil {
		return nil, fmt.Errorf("open '%s': %v", filename, err)
	} else {
		defer reader.Close()
		return Decode(reader, filename)
	}
}

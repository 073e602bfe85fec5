package camera

import (
	"fmt"
	"image"
	"image/color"
)

// yuyvImage exposes a raw YUYV 4:2:2 buffer as an image.Image without
// copying. Two horizontal pixels share one chroma pair:
// [Y0 U Y1 V] covers pixels x and x+1.
type yuyvImage struct {
	rect image.Rectangle
	pix  []byte
}

// newYUYVImage wraps a raw YUYV frame. The buffer length must be
// exactly 2 bytes per pixel.
func newYUYVImage(w, h int, pix []byte) (image.Image, error) {
	if want := 2 * w * h; len(pix) != want {
		return nil, fmt.Errorf("wrong YUYV frame length for %dx%d (want %d, got %d)", w, h, want, len(pix))
	}
	return &yuyvImage{rect: image.Rect(0, 0, w, h), pix: pix}, nil
}

func (f *yuyvImage) ColorModel() color.Model {
	return color.YCbCrModel
}

func (f *yuyvImage) Bounds() image.Rectangle {
	return f.rect
}

func (f *yuyvImage) At(x, y int) color.Color {
	i := f.rect.Dx()*y*2 + (x&^1)*2
	if x&1 == 0 {
		return color.YCbCr{Y: f.pix[i], Cb: f.pix[i+1], Cr: f.pix[i+3]}
	}
	return color.YCbCr{Y: f.pix[i+2], Cb: f.pix[i+1], Cr: f.pix[i+3]}
}

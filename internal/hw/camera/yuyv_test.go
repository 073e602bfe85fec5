package camera

import (
	"image"
	"image/color"
	"testing"
)

func TestNewYUYVImage_WrongLength(t *testing.T) {
	if _, err := newYUYVImage(2, 2, make([]byte, 7)); err == nil {
		t.Error("expected error for short buffer, got nil")
	}
	if _, err := newYUYVImage(2, 2, make([]byte, 9)); err == nil {
		t.Error("expected error for long buffer, got nil")
	}
}

func TestYUYVImage_At(t *testing.T) {
	// 2x2 frame: each row is one macropixel [Y0 Cb Y1 Cr].
	pix := []byte{
		10, 100, 20, 200, // row 0
		30, 110, 40, 210, // row 1
	}
	img, err := newYUYVImage(2, 2, pix)
	if err != nil {
		t.Fatalf("newYUYVImage: %v", err)
	}

	if got, want := img.Bounds(), image.Rect(0, 0, 2, 2); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if img.ColorModel() != color.YCbCrModel {
		t.Errorf("ColorModel() = %v, want YCbCrModel", img.ColorModel())
	}

	cases := []struct {
		x, y int
		want color.YCbCr
	}{
		{0, 0, color.YCbCr{Y: 10, Cb: 100, Cr: 200}},
		{1, 0, color.YCbCr{Y: 20, Cb: 100, Cr: 200}},
		{0, 1, color.YCbCr{Y: 30, Cb: 110, Cr: 210}},
		{1, 1, color.YCbCr{Y: 40, Cb: 110, Cr: 210}},
	}
	for _, tc := range cases {
		got := img.At(tc.x, tc.y).(color.YCbCr)
		if got != tc.want {
			t.Errorf("At(%d,%d) = %+v, want %+v", tc.x, tc.y, got, tc.want)
		}
	}
}

package preprocess

import (
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

var (
	black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

func TestLetterBoxResize(t *testing.T) {

	tests := []struct {
		srcWidth      int
		srcHeight     int
		resizeWidth   int
		resizeHeight  int
		expectedXPad  int
		expectedYPad  int
		expectedScale float32
	}{
		{1280, 720, 640, 640, 0, 140, 0.50},
		{800, 1000, 640, 640, 64, 0, 0.64},
		{800, 800, 640, 640, 0, 0, 0.8},
	}

	for _, tc := range tests {
		img := gocv.NewMatWithSize(tc.srcHeight, tc.srcWidth, gocv.MatTypeCV8UC1)

		resizedImg := gocv.NewMat()

		resizer := NewResizer(tc.srcWidth, tc.srcHeight, tc.resizeWidth, tc.resizeHeight)

		resizer.LetterBoxResize(img, &resizedImg, black)

		if resizer.XPad() != tc.expectedXPad || resizer.YPad() != tc.expectedYPad {
			t.Errorf("Test failed for src (%d, %d): Padding values wrong, expected XPad=%d, YPad=%d, got xPad=%d, yPad=%d",
				tc.srcWidth, tc.srcHeight, tc.expectedXPad, tc.expectedYPad, resizer.XPad(), resizer.YPad())
		}

		if resizer.ScaleFactor() != tc.expectedScale {
			t.Errorf("Test failed for src (%d, %d): Scalefactor incorrect, expected %f, got %f",
				tc.srcWidth, tc.srcHeight, tc.expectedScale, resizer.ScaleFactor())
		}

		img.Close()
		resizedImg.Close()
		resizer.Close()
	}
}

func TestScaleRect(t *testing.T) {

	resizer := NewResizer(1280, 720, 640, 640)
	defer resizer.Close()

	tests := []struct {
		name     string
		rect     image.Rectangle
		expected image.Rectangle
	}{
		{"inside", image.Rect(100, 190, 200, 240), image.Rect(200, 100, 400, 200)},
		{"clamped to source", image.Rect(0, 0, 640, 640), image.Rect(0, 0, 1280, 720)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := resizer.ScaleRect(tc.rect)

			if got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestNewResizerWidth(t *testing.T) {

	resizer := NewResizerWidth(1280, 720, 640)
	defer resizer.Close()

	if resizer.DestWidth() != 640 || resizer.DestHeight() != 360 {
		t.Errorf("expected 640x360, got %dx%d", resizer.DestWidth(), resizer.DestHeight())
	}

	if resizer.XPad() != 0 || resizer.YPad() != 0 {
		t.Errorf("expected no padding, got xPad=%d, yPad=%d", resizer.XPad(), resizer.YPad())
	}

	// upscaling is not applied
	resizer = NewResizerWidth(320, 240, 640)
	defer resizer.Close()

	if resizer.DestWidth() != 320 || resizer.DestHeight() != 240 {
		t.Errorf("expected 320x240, got %dx%d", resizer.DestWidth(), resizer.DestHeight())
	}
}

package preprocess

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// Resizer defines the struct used for handling image resizing
type Resizer struct {
	// srcWidth is the width of the source image
	srcWidth int
	// srcHeight is the height of the source image
	srcHeight int
	// destWidth is the width to scale to
	destWidth int
	// destHeight is the height to scale to
	destHeight int
	// tempMat is a Mat used during the resize process
	tempMat gocv.Mat
	// letterbox parameters used in scaling
	xPad  int
	yPad  int
	scale float32
	// resize dimensions
	resizeW int
	resizeH int
}

// NewResizer returns a resizer used for scaling a video frame down to the
// working size of a detector
func NewResizer(srcWidth, srcHeight, destWidth, destHeight int) *Resizer {
	r := &Resizer{
		srcWidth:   srcWidth,
		srcHeight:  srcHeight,
		destWidth:  destWidth,
		destHeight: destHeight,
		tempMat:    gocv.NewMat(),
	}

	// precalculate scaling dimensions
	r.preCalc()

	return r
}

// Close frees memory allocated during resize process
func (r *Resizer) Close() error {
	return r.tempMat.Close()
}

// preCalc the scaling factors for source and destination Mats
func (r *Resizer) preCalc() {

	r.resizeW = r.destWidth
	r.resizeH = r.destHeight

	scaleW := float32(r.destWidth) / float32(r.srcWidth)
	scaleH := float32(r.destHeight) / float32(r.srcHeight)
	r.scale = scaleH

	if scaleW < scaleH {
		r.scale = scaleW
		r.resizeH = int(float32(r.srcHeight) * r.scale)
	} else {
		r.resizeW = int(float32(r.srcWidth) * r.scale)
	}

	r.yPad = (r.destHeight - r.resizeH) / 2 // padding height / 2
	r.xPad = (r.destWidth - r.resizeW) / 2  // padding width / 2
}

// LetterBoxResize resizes the input image to the destination dimensions
// whilst maintaining image aspect.  Color is that used for letter box padding.
func (r *Resizer) LetterBoxResize(src gocv.Mat, dest *gocv.Mat, color color.RGBA) {

	gocv.Resize(src, &r.tempMat, image.Pt(r.resizeW, r.resizeH),
		0, 0, gocv.InterpolationArea)

	gocv.CopyMakeBorder(r.tempMat, dest, r.yPad, r.destHeight-r.resizeH-r.yPad,
		r.xPad, r.destWidth-r.resizeW-r.xPad, gocv.BorderConstant, color)
}

// ScaleFactor returns the scale factor used in letterbox resize
func (r *Resizer) ScaleFactor() float32 {
	return r.scale
}

// XPad returns the x padding used in letterbox resize
func (r *Resizer) XPad() int {
	return r.xPad
}

// YPad returns the y padding used in letterbox resize
func (r *Resizer) YPad() int {
	return r.yPad
}

// SrcWidth returns the width of the source image
func (r *Resizer) SrcWidth() int {
	return r.srcWidth
}

// SrcHeight returns the height of the source image
func (r *Resizer) SrcHeight() int {
	return r.srcHeight
}

// NewResizerWidth returns a resizer that scales the source to destWidth,
// keeping the source aspect ratio so no letter box padding is applied
func NewResizerWidth(srcWidth, srcHeight, destWidth int) *Resizer {

	if destWidth <= 0 || destWidth > srcWidth {
		destWidth = srcWidth
	}

	destHeight := int(float32(srcHeight) * float32(destWidth) / float32(srcWidth))

	return NewResizer(srcWidth, srcHeight, destWidth, destHeight)
}

// ScaleRect maps a rectangle in letterboxed destination coordinates back to
// the source image, clamped to the source bounds
func (r *Resizer) ScaleRect(rect image.Rectangle) image.Rectangle {

	scale := func(v, pad, max int) int {
		res := int(float32(v-pad) / r.scale)

		if res < 0 {
			return 0
		}

		if res > max {
			return max
		}

		return res
	}

	return image.Rect(
		scale(rect.Min.X, r.xPad, r.srcWidth),
		scale(rect.Min.Y, r.yPad, r.srcHeight),
		scale(rect.Max.X, r.xPad, r.srcWidth),
		scale(rect.Max.Y, r.yPad, r.srcHeight),
	)
}

// DestWidth returns the width of the destination image
func (r *Resizer) DestWidth() int {
	return r.destWidth
}

// DestHeight returns the height of the destination image
func (r *Resizer) DestHeight() int {
	return r.destHeight
}

package detect

import (
	"fmt"
	"image"
	"image/color"

	"github.com/swdee/go-objtrack/postprocess"
	"github.com/swdee/go-objtrack/postprocess/result"
	"github.com/swdee/go-objtrack/preprocess"
	"gocv.io/x/gocv"
)

// MotionParams defines the parameters used by the motion detector
type MotionParams struct {
	// MinArea is the minimum contour area, in source frame pixels, for a
	// moving region to be reported
	MinArea float64
	// ScaleWidth is the width frames are scaled down to before background
	// subtraction, 0 keeps the source size
	ScaleWidth int
	// Threshold is the foreground mask binary threshold, MOG2 marks shadows
	// with 127 so the default of 200 ignores them
	Threshold float32
	// KernelSize is the size of the morphology kernel used to clean the mask
	KernelSize int
}

// MotionDefaultParams returns the default motion detector parameters
// - Min Area: 500
// - Scale Width: 640
// - Threshold: 200
// - Kernel Size: 5
func MotionDefaultParams() MotionParams {
	return MotionParams{
		MinArea:    500,
		ScaleWidth: 640,
		Threshold:  200,
		KernelSize: 5,
	}
}

// Motion detects moving regions using MOG2 background subtraction
type Motion struct {
	params  MotionParams
	backSub gocv.BackgroundSubtractorMOG2
	kernel  gocv.Mat
	// resizer is created on the first frame once the source size is known
	resizer *preprocess.Resizer
	scaled  gocv.Mat
	mask    gocv.Mat
	idGen   *result.IDGenerator
}

// NewMotion returns a motion detector
func NewMotion(p MotionParams) *Motion {

	if p.KernelSize < 1 {
		p.KernelSize = 1
	}

	return &Motion{
		params:  p,
		backSub: gocv.NewBackgroundSubtractorMOG2(),
		kernel:  gocv.GetStructuringElement(gocv.MorphRect, image.Pt(p.KernelSize, p.KernelSize)),
		scaled:  gocv.NewMat(),
		mask:    gocv.NewMat(),
		idGen:   result.NewIDGenerator(),
	}
}

// Detect applies background subtraction to the frame and returns the
// bounding boxes of the moving regions.  The first frames only build the
// background model and usually return nothing.
func (m *Motion) Detect(frame gocv.Mat) ([]postprocess.DetectResult, error) {

	if frame.Empty() {
		return nil, fmt.Errorf("empty frame")
	}

	if m.resizer == nil || m.resizer.SrcWidth() != frame.Cols() ||
		m.resizer.SrcHeight() != frame.Rows() {

		if m.resizer != nil {
			m.resizer.Close()
		}

		m.resizer = preprocess.NewResizerWidth(frame.Cols(), frame.Rows(), m.params.ScaleWidth)
	}

	m.resizer.LetterBoxResize(frame, &m.scaled, color.RGBA{A: 255})

	m.backSub.Apply(m.scaled, &m.mask)

	gocv.Threshold(m.mask, &m.mask, m.params.Threshold, 255, gocv.ThresholdBinary)
	gocv.MorphologyEx(m.mask, &m.mask, gocv.MorphOpen, m.kernel)
	gocv.MorphologyEx(m.mask, &m.mask, gocv.MorphClose, m.kernel)

	contours := gocv.FindContours(m.mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	// contour area is measured on the scaled frame
	scale := float64(m.resizer.ScaleFactor())
	minArea := m.params.MinArea * scale * scale

	dets := make([]postprocess.DetectResult, 0)

	for i := 0; i < contours.Size(); i++ {

		contour := contours.At(i)

		if gocv.ContourArea(contour) < minArea {
			continue
		}

		rect := m.resizer.ScaleRect(gocv.BoundingRect(contour))

		if rect.Empty() {
			continue
		}

		dets = append(dets, postprocess.DetectResult{
			Class:       -1,
			Box:         postprocess.BoxFromRect(rect),
			Probability: 1,
			ID:          m.idGen.GetNext(),
		})
	}

	return dets, nil
}

// Close frees the memory held by the detector
func (m *Motion) Close() error {

	if m.resizer != nil {
		m.resizer.Close()
	}

	m.scaled.Close()
	m.mask.Close()
	m.kernel.Close()

	return m.backSub.Close()
}

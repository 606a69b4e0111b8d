package postprocess

import (
	"image"
	"sort"

	"github.com/swdee/go-objtrack/postprocess/result"
	"gocv.io/x/gocv"
)

// SSD defines the struct for SSD style (MobileNet-SSD, ResNet-SSD) OpenCV DNN
// model output post processing
type SSD struct {
	// Params are the Model configuration parameters
	Params SSDParams
	// idGen is the counter that increments and provides the next number
	// for each detection result ID
	idGen *result.IDGenerator
}

// SSDParams defines the struct containing the SSD parameters to use for post
// processing operations
type SSDParams struct {
	// BoxThreshold is the minimum probability score required for a bounding box
	// region to be considered for processing
	BoxThreshold float32
	// NMSThreshold is the Non-Maximum Suppression threshold used for defining
	// the maximum allowed Intersection Over Union (IoU) between two
	// bounding boxes for both to be kept
	NMSThreshold float32
	// MaxObjectNumber is the maximum number of objects detected that can be
	// returned
	MaxObjectNumber int
	// Classes restricts results to these class IDs, nil keeps all classes
	Classes map[int]bool
}

// SSDDefaultParams returns an instance of SSDParams configured with default
// values
// - Box Threshold: 0.5
// - NMS Threshold: 0.4
// - Maximum Object Number: 64
func SSDDefaultParams() SSDParams {
	return SSDParams{
		BoxThreshold:    0.5,
		NMSThreshold:    0.4,
		MaxObjectNumber: 64,
	}
}

// NewSSD returns an instance of the SSD post processor
func NewSSD(p SSDParams) *SSD {
	return &SSD{
		Params: p,
		idGen:  result.NewIDGenerator(),
	}
}

// SSDResult defines a struct used for object detection results
type SSDResult struct {
	DetectResults []DetectResult
}

// GetDetectResults returns the object detection results containing bounding
// boxes
func (r SSDResult) GetDetectResults() []DetectResult {
	return r.DetectResults
}

// ssdFields is the number of values describing each detection, being image
// id, class id, confidence, then left, top, right, bottom normalised to 0..1
const ssdFields = 7

// DetectObjects decodes the network output blob of shape [1,1,N,7] into
// detection results scaled to a frame of the given width and height
func (s *SSD) DetectObjects(output gocv.Mat, width, height int) DetectionResult {

	// flatten to a single row so values can be read sequentially
	flat := output.Reshape(1, 1)
	defer flat.Close()

	total := flat.Total()

	var boxes []image.Rectangle
	var scores []float32
	var classes []int

	for i := 0; i+ssdFields <= total; i += ssdFields {

		score := flat.GetFloatAt(0, i+2)

		if score < s.Params.BoxThreshold {
			continue
		}

		left := clampInt(int(flat.GetFloatAt(0, i+3)*float32(width)), 0, width)
		top := clampInt(int(flat.GetFloatAt(0, i+4)*float32(height)), 0, height)
		right := clampInt(int(flat.GetFloatAt(0, i+5)*float32(width)), 0, width)
		bottom := clampInt(int(flat.GetFloatAt(0, i+6)*float32(height)), 0, height)

		if right <= left || bottom <= top {
			continue
		}

		class := int(flat.GetFloatAt(0, i+1))

		if s.Params.Classes != nil && !s.Params.Classes[class] {
			continue
		}

		boxes = append(boxes, image.Rect(left, top, right, bottom))
		scores = append(scores, score)
		classes = append(classes, class)
	}

	res := SSDResult{
		DetectResults: make([]DetectResult, 0),
	}

	if len(boxes) == 0 {
		return res
	}

	keep := s.nmsByClass(boxes, scores, classes)

	for _, idx := range keep {

		if len(res.DetectResults) >= s.Params.MaxObjectNumber {
			break
		}

		res.DetectResults = append(res.DetectResults, DetectResult{
			Class:       classes[idx],
			Box:         BoxFromRect(boxes[idx]),
			Probability: scores[idx],
			ID:          s.idGen.GetNext(),
		})
	}

	return res
}

// nmsByClass runs Non-Maximum Suppression separately for each class so
// overlapping objects of different classes are both kept.  The surviving
// indices are returned in descending score order.
func (s *SSD) nmsByClass(boxes []image.Rectangle, scores []float32,
	classes []int) []int {

	// group detection indices by class ID
	groups := make(map[int][]int)
	var classIDs []int

	for i, c := range classes {
		if _, ok := groups[c]; !ok {
			classIDs = append(classIDs, c)
		}
		groups[c] = append(groups[c], i)
	}

	sort.Ints(classIDs)

	var keep []int

	for _, c := range classIDs {

		idxs := groups[c]

		classBoxes := make([]image.Rectangle, len(idxs))
		classScores := make([]float32, len(idxs))

		for k, idx := range idxs {
			classBoxes[k] = boxes[idx]
			classScores[k] = scores[idx]
		}

		for _, k := range gocv.NMSBoxes(classBoxes, classScores,
			s.Params.BoxThreshold, s.Params.NMSThreshold) {
			keep = append(keep, idxs[k])
		}
	}

	sort.SliceStable(keep, func(a, b int) bool {
		if scores[keep[a]] != scores[keep[b]] {
			return scores[keep[a]] > scores[keep[b]]
		}
		return keep[a] < keep[b]
	})

	return keep
}

// clampInt restricts the value to be within the range min and max
func clampInt(val, min, max int) int {

	if val > min {

		if val < max {
			return val
		}

		return max
	}

	return min
}

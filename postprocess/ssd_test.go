package postprocess

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gocv.io/x/gocv"
)

// ssdOutput builds a network output blob holding the given detections
func ssdOutput(t *testing.T, dets [][ssdFields]float32) gocv.Mat {
	t.Helper()

	out := gocv.NewMatWithSize(1, len(dets)*ssdFields, gocv.MatTypeCV32F)
	t.Cleanup(func() { out.Close() })

	for i, det := range dets {
		for k, v := range det {
			out.SetFloatAt(0, i*ssdFields+k, v)
		}
	}

	return out
}

func TestSSDDetectObjects(t *testing.T) {

	out := ssdOutput(t, [][ssdFields]float32{
		{0, 15, 0.9, 0.1, 0.2, 0.5, 0.6},
		// below box threshold
		{0, 7, 0.3, 0.6, 0.6, 0.9, 0.9},
		// overlaps the first box and is suppressed
		{0, 15, 0.8, 0.1, 0.2, 0.5, 0.61},
		// clamped to the frame
		{0, 7, 0.7, 0.8, -0.1, 1.2, 0.3},
	})

	ssd := NewSSD(SSDDefaultParams())
	got := ssd.DetectObjects(out, 200, 100).GetDetectResults()

	expected := []DetectResult{
		{Class: 15, Box: BoxRect{Left: 20, Top: 20, Right: 100, Bottom: 60}, Probability: 0.9, ID: 1},
		{Class: 7, Box: BoxRect{Left: 160, Top: 0, Right: 200, Bottom: 30}, Probability: 0.7, ID: 2},
	}

	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("detections mismatch (-want +got):\n%s", diff)
	}
}

func TestSSDNoDetections(t *testing.T) {

	out := ssdOutput(t, [][ssdFields]float32{
		{0, 15, 0.1, 0.1, 0.2, 0.5, 0.6},
	})

	got := NewSSD(SSDDefaultParams()).DetectObjects(out, 200, 100).GetDetectResults()

	if len(got) != 0 {
		t.Errorf("expected no detections, got %v", got)
	}
}

func TestSSDOverlappingDifferentClasses(t *testing.T) {

	out := ssdOutput(t, [][ssdFields]float32{
		{0, 15, 0.9, 0.1, 0.2, 0.5, 0.6},
		// same box as above but another class so not suppressed
		{0, 7, 0.8, 0.1, 0.2, 0.5, 0.6},
	})

	got := NewSSD(SSDDefaultParams()).DetectObjects(out, 200, 100).GetDetectResults()

	expected := []DetectResult{
		{Class: 15, Box: BoxRect{Left: 20, Top: 20, Right: 100, Bottom: 60}, Probability: 0.9, ID: 1},
		{Class: 7, Box: BoxRect{Left: 20, Top: 20, Right: 100, Bottom: 60}, Probability: 0.8, ID: 2},
	}

	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("detections mismatch (-want +got):\n%s", diff)
	}
}

func TestSSDClassFilterBeforeMaxObjects(t *testing.T) {

	out := ssdOutput(t, [][ssdFields]float32{
		{0, 15, 0.95, 0.0, 0.0, 0.2, 0.2},
		{0, 15, 0.9, 0.3, 0.6, 0.5, 0.9},
		{0, 7, 0.6, 0.6, 0.1, 0.9, 0.5},
	})

	p := SSDDefaultParams()
	p.MaxObjectNumber = 1
	p.Classes = map[int]bool{7: true}

	got := NewSSD(p).DetectObjects(out, 200, 100).GetDetectResults()

	expected := []DetectResult{
		{Class: 7, Box: BoxRect{Left: 120, Top: 10, Right: 180, Bottom: 50}, Probability: 0.6, ID: 1},
	}

	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("detections mismatch (-want +got):\n%s", diff)
	}
}
